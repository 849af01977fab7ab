package models

import (
	"database/sql"
	"time"

	uuid "github.com/gofrs/uuid"
)

// Queue entry statuses. The only legal transitions are
// pending -> processing -> completed and pending -> processing -> failed.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Priorities for new entries. Higher runs first.
const (
	PriorityDefault = 0
	PriorityImport  = 1
)

// Entry tracks one enrichment attempt cycle for a bookmark. Entries are never
// deleted; they are the audit trail of enrichment attempts.
type Entry struct {
	ID                    int64          `json:"id" db:"id"`
	BookmarkID            uuid.UUID      `json:"bookmarkId" db:"bookmark_id"`
	Status                string         `json:"status" db:"status"`
	Priority              int            `json:"priority" db:"priority"`
	RetryCount            int            `json:"retryCount" db:"retry_count"`
	ProcessingStartedAt   *time.Time     `json:"processingStartedAt" db:"processing_started_at"`
	ProcessingCompletedAt *time.Time     `json:"processingCompletedAt" db:"processing_completed_at"`
	ErrorMessage          sql.NullString `json:"-" db:"error_message"`
	CreatedAt             time.Time      `json:"createdAt" db:"created_at"`
}
