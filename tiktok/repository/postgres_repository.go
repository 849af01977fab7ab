package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pocketmark/api/internal/database/postgres"
	"github.com/pocketmark/api/tiktok/models"
)

type postgresTokenRepository struct {
	client *postgres.Client
}

// NewPostgresTokenRepository creates a token repository backed by PostgreSQL.
func NewPostgresTokenRepository(client *postgres.Client) TokenRepository {
	return &postgresTokenRepository{client: client}
}

func (r *postgresTokenRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

func (r *postgresTokenRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Token, error) {
	query := `
		SELECT user_id, open_id, access_token, refresh_token, scopes,
		       expires_at, refresh_expires_at, created_at, updated_at
		FROM tiktok_tokens
		WHERE user_id = $1
	`

	var token models.Token
	err := sqlx.GetContext(ctx, r.getExecutor(ctx), &token, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tiktok token: %w", err)
	}
	return &token, nil
}

func (r *postgresTokenRepository) Upsert(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tiktok_tokens (
			user_id, open_id, access_token, refresh_token, scopes,
			expires_at, refresh_expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			open_id = EXCLUDED.open_id,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			scopes = EXCLUDED.scopes,
			expires_at = EXCLUDED.expires_at,
			refresh_expires_at = EXCLUDED.refresh_expires_at,
			updated_at = NOW()
	`

	exec := r.getExecutor(ctx)
	if _, err := exec.ExecContext(ctx, query,
		token.UserID,
		token.OpenID,
		token.AccessToken,
		token.RefreshToken,
		token.Scopes,
		token.ExpiresAt,
		token.RefreshExpiresAt,
	); err != nil {
		return fmt.Errorf("upsert tiktok token: %w", err)
	}
	return nil
}
