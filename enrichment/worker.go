// Package enrichment drives queued bookmarks through classification and
// applies the results.
package enrichment

import (
	"context"
	"errors"
	"fmt"

	uuid "github.com/gofrs/uuid"
	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	bmrepo "github.com/pocketmark/api/bookmarks/repository"
	"github.com/pocketmark/api/classifier"
	"github.com/pocketmark/api/internal/pkg/log"
	queuerepo "github.com/pocketmark/api/queue/repository"
)

// Worker enriches one bookmark end-to-end: claim, classify, apply, complete.
type Worker struct {
	bookmarks  bmrepo.Repository
	queue      queuerepo.Repository
	classifier classifier.Classifier
}

// NewWorker constructs an enrichment worker.
func NewWorker(bookmarks bmrepo.Repository, queue queuerepo.Repository, cls classifier.Classifier) *Worker {
	return &Worker{bookmarks: bookmarks, queue: queue, classifier: cls}
}

// Process drives the bookmark's queue entry through classification. When no
// pending entry exists the call is a no-op (nil result, nil error), so
// re-invocation is idempotent. All other failures are recorded on the queue
// entry and returned to the caller.
func (w *Worker) Process(ctx context.Context, bookmarkID uuid.UUID) (*classifier.Result, error) {
	if err := w.queue.Claim(ctx, bookmarkID); err != nil {
		if errors.Is(err, queuerepo.ErrNoPendingEntry) {
			// Already claimed or already processed; nothing to do.
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	bookmark, err := w.bookmarks.FindByID(ctx, bookmarkID)
	if err != nil {
		w.failEntry(ctx, bookmarkID, err.Error())
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	if bookmark == nil {
		// A queue entry without its bookmark is a fatal inconsistency.
		w.failEntry(ctx, bookmarkID, "bookmark not found")
		return nil, fmt.Errorf("%w: queued bookmark %s", bmerrors.ErrBookmarkNotFound, bookmarkID)
	}

	input := classifier.Input{
		Title:       bookmark.Title,
		URL:         bookmark.URL,
		Description: bookmark.Description,
	}
	if bookmark.LocationName != nil {
		input.LocationName = *bookmark.LocationName
	}

	result, err := w.classifier.Classify(ctx, input)
	if err != nil {
		w.failEntry(ctx, bookmarkID, err.Error())
		return nil, err
	}

	// Never overwrite a present description with an empty suggestion, and
	// skip the write entirely when the suggestion matches what is stored.
	var description *string
	if result.SuggestedDescription != "" && result.SuggestedDescription != bookmark.Description {
		description = &result.SuggestedDescription
	}

	if err := w.bookmarks.ApplyCategorization(ctx, bookmarkID, result.CategoryID, result.ContentType, description); err != nil {
		w.failEntry(ctx, bookmarkID, err.Error())
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	if err := w.queue.Complete(ctx, bookmarkID); err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	return result, nil
}

// failEntry records the failure reason on the queue entry. The entry stays
// failed until something external retriggers it.
func (w *Worker) failEntry(ctx context.Context, bookmarkID uuid.UUID, reason string) {
	if err := w.queue.Fail(ctx, bookmarkID, reason); err != nil {
		log.ErrorWithContext(ctx, "failed to mark queue entry failed for %s: %v", bookmarkID, err)
	}
}
