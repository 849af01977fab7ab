package repository

import (
	"context"
	"errors"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/queue/models"
)

// Sentinel errors for illegal or empty state transitions.
var (
	// ErrNoPendingEntry is returned by Claim when no pending entry exists for
	// the bookmark (already claimed, or never enqueued). Callers treat it as
	// benign.
	ErrNoPendingEntry = errors.New("no pending queue entry")

	// ErrNotProcessing is returned by Complete and Fail when the entry is not
	// in the processing state. That indicates a logic error in the caller.
	ErrNotProcessing = errors.New("queue entry is not processing")
)

// Repository owns the enrichment queue rows and their state machine.
type Repository interface {
	// Enqueue inserts a pending entry for the bookmark. The caller guarantees
	// at most one pending or processing entry exists per bookmark.
	Enqueue(ctx context.Context, bookmarkID uuid.UUID, priority int) error

	// Claim atomically moves the bookmark's entry from pending to processing,
	// stamping processing_started_at. Exactly one concurrent caller wins; the
	// rest get ErrNoPendingEntry.
	Claim(ctx context.Context, bookmarkID uuid.UUID) error

	// Complete moves the entry from processing to completed, stamping
	// processing_completed_at.
	Complete(ctx context.Context, bookmarkID uuid.UUID) error

	// Fail moves the entry from processing to failed, increments retry_count
	// and records the failure reason. It does not re-enqueue.
	Fail(ctx context.Context, bookmarkID uuid.UUID, reason string) error

	// NextPending returns bookmark IDs of up to limit eligible entries,
	// ordered by priority (higher first) then created_at (earlier first).
	// An empty slice means the queue is drained.
	NextPending(ctx context.Context, limit int) ([]uuid.UUID, error)

	// RevertStale moves entries stuck in processing for longer than olderThan
	// back to pending so an abandoned claim is eventually retried. Returns the
	// number of reverted entries.
	RevertStale(ctx context.Context, olderThan time.Duration) (int64, error)

	// FindByBookmark returns the bookmark's newest entry, or nil when none
	// exists.
	FindByBookmark(ctx context.Context, bookmarkID uuid.UUID) (*models.Entry, error)
}
