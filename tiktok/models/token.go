package models

import (
	"time"

	uuid "github.com/gofrs/uuid"
)

// Token holds a user's TikTok OAuth credentials.
type Token struct {
	UserID           uuid.UUID `db:"user_id"`
	OpenID           string    `db:"open_id"`
	AccessToken      string    `db:"access_token"`
	RefreshToken     string    `db:"refresh_token"`
	Scopes           string    `db:"scopes"`
	ExpiresAt        time.Time `db:"expires_at"`
	RefreshExpiresAt time.Time `db:"refresh_expires_at"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
