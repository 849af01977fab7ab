package repository

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/bookmarks/models"
)

// Repository defines data access for bookmarks.
type Repository interface {
	// Insert stores a new bookmark and fills its ID and timestamps.
	Insert(ctx context.Context, bookmark *models.Bookmark) error

	// FindByIDAndOwner returns the owner's bookmark or nil when absent.
	// Rows belonging to other owners are indistinguishable from absent rows.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Bookmark, error)

	// FindByID returns a bookmark regardless of owner, or nil when absent.
	// Reserved for the enrichment worker; never exposed through handlers.
	FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error)

	// FindByOwnerAndURL returns the owner's bookmark for a URL, or nil.
	// Used for idempotent platform sync.
	FindByOwnerAndURL(ctx context.Context, ownerID uuid.UUID, url string) (*models.Bookmark, error)

	// ApplyCategorization writes enrichment results. A nil description keeps
	// the current one. updated_at is bumped.
	ApplyCategorization(ctx context.Context, id uuid.UUID, categoryID int, contentType string, description *string) error

	// List returns the owner's bookmarks hydrated with category data.
	List(ctx context.Context, ownerID uuid.UUID, filter models.ListFilter) ([]models.BookmarkResponse, error)
}
