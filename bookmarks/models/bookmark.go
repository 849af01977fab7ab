package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	uuid "github.com/gofrs/uuid"
)

// Source platforms recorded on a bookmark. The column is free text; these are
// the values the service itself writes.
const (
	SourceManual = "manual"
	SourceTikTok = "tiktok"
)

// Bookmark represents a saved reference owned by a user.
type Bookmark struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerUserID uuid.UUID `json:"ownerUserId" db:"user_id"`

	Title       string `json:"title" db:"title"`
	URL         string `json:"url" db:"url"`
	Description string `json:"description" db:"description"`

	SourcePlatform string `json:"sourcePlatform" db:"source_platform"`

	// ContentType is set by enrichment (e.g. "recipe", "video").
	ContentType *string `json:"contentType" db:"content_type"`

	ThumbnailURL *string  `json:"thumbnailUrl" db:"thumbnail_url"`
	Latitude     *float64 `json:"latitude" db:"latitude"`
	Longitude    *float64 `json:"longitude" db:"longitude"`
	LocationName *string  `json:"locationName" db:"location_name"`

	Metadata JSONB `json:"metadata" db:"metadata"`

	// CategoryID is nil until enrichment assigns one.
	CategoryID *int `json:"categoryId" db:"category_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// JSONB is a custom type for PostgreSQL JSONB that implements sql.Scanner and driver.Valuer
type JSONB map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return json.Marshal(JSONB{})
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(bytes, j)
}

// CreateBookmarkRequest is the canonical bookmark creation payload that every
// ingestion source is normalized into.
type CreateBookmarkRequest struct {
	Title          string   `json:"title"`
	URL            string   `json:"url"`
	Description    string   `json:"description"`
	SourcePlatform string   `json:"sourcePlatform"`
	ContentType    *string  `json:"contentType"`
	ThumbnailURL   *string  `json:"thumbnailUrl"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	LocationName   *string  `json:"locationName"`
	Metadata       JSONB    `json:"metadata"`
}

// CategoryRef is the category projection embedded in bookmark responses.
type CategoryRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// BookmarkResponse is a bookmark hydrated with its category, as served by the
// listing endpoint.
type BookmarkResponse struct {
	Bookmark
	Category *CategoryRef `json:"category"`
}

// BookmarksListResponse wraps a page of hydrated bookmarks.
type BookmarksListResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks"`
}

// ListFilter narrows the bookmark listing.
type ListFilter struct {
	Search     string
	CategoryID *int
	Limit      int
	Offset     int
}
