package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pocketmark/api/categories/models"
	"github.com/pocketmark/api/internal/database/postgres"
)

type postgresRepository struct {
	client *postgres.Client
}

// NewPostgresRepository creates a category repository backed by PostgreSQL.
func NewPostgresRepository(client *postgres.Client) Repository {
	return &postgresRepository{client: client}
}

func (r *postgresRepository) getExecutor(ctx context.Context) sqlx.ExtContext {
	if txVal := ctx.Value("tx"); txVal != nil {
		if tx, ok := txVal.(*sqlx.Tx); ok {
			return tx
		}
	}
	return r.client.DB()
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT id, name, color, icon FROM categories ORDER BY id`

	var categories []models.Category
	if err := sqlx.SelectContext(ctx, r.getExecutor(ctx), &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
