package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/tiktok/models"
)

// TokenRepository stores per-user TikTok OAuth tokens.
type TokenRepository interface {
	// FindByUser returns the user's token, or nil when the account was never
	// connected.
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Token, error)

	// Upsert inserts or replaces the user's token.
	Upsert(ctx context.Context, token *models.Token) error
}
