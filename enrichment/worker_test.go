package enrichment

import (
	"context"
	"errors"
	"testing"

	uuid "github.com/gofrs/uuid"
	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	bmmodels "github.com/pocketmark/api/bookmarks/models"
	"github.com/pocketmark/api/classifier"
	queuerepo "github.com/pocketmark/api/queue/repository"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testBookmark(id uuid.UUID) *bmmodels.Bookmark {
	return &bmmodels.Bookmark{
		ID:          id,
		OwnerUserID: uuid.Must(uuid.NewV4()),
		Title:       "Carbonara in 15 minutes",
		URL:         "https://food.example/carbonara",
		Description: "Quick weeknight pasta",
	}
}

func TestWorkerProcess(t *testing.T) {
	ctx := context.Background()
	bookmarkID := uuid.Must(uuid.NewV4())

	t.Run("applies the categorization and completes the entry", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		bookmark := testBookmark(bookmarkID)
		result := &classifier.Result{
			CategoryID:           1,
			Confidence:           0.92,
			Reasoning:            "recipe content",
			SuggestedDescription: "A fast carbonara recipe",
			ContentType:          "recipe",
		}

		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(bookmark, nil).Once()
		mockCls.On("Classify", ctx, classifier.Input{
			Title:       bookmark.Title,
			URL:         bookmark.URL,
			Description: bookmark.Description,
		}).Return(result, nil).Once()
		mockBookmarks.On("ApplyCategorization", ctx, bookmarkID, 1, "recipe",
			mock.MatchedBy(func(d *string) bool {
				return d != nil && *d == "A fast carbonara recipe"
			})).Return(nil).Once()
		mockQueue.On("Complete", ctx, bookmarkID).Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		got, err := worker.Process(ctx, bookmarkID)

		require.NoError(t, err)
		require.Equal(t, result, got)
		mockBookmarks.AssertExpectations(t)
		mockQueue.AssertExpectations(t)
		mockCls.AssertExpectations(t)
	})

	t.Run("treats a missed claim as a no-op", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		mockQueue.On("Claim", ctx, bookmarkID).Return(queuerepo.ErrNoPendingEntry).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		got, err := worker.Process(ctx, bookmarkID)

		require.NoError(t, err)
		require.Nil(t, got)
		mockBookmarks.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockCls.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	})

	t.Run("fails the entry when the bookmark is gone", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(nil, nil).Once()
		mockQueue.On("Fail", ctx, bookmarkID, "bookmark not found").Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		got, err := worker.Process(ctx, bookmarkID)

		require.Error(t, err)
		require.ErrorIs(t, err, bmerrors.ErrBookmarkNotFound)
		require.Nil(t, got)
		mockQueue.AssertExpectations(t)
	})

	t.Run("records the classification failure on the entry", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		classifyErr := errors.New("model returned category_id out of range")
		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(testBookmark(bookmarkID), nil).Once()
		mockCls.On("Classify", ctx, mock.Anything).Return(nil, classifyErr).Once()
		mockQueue.On("Fail", ctx, bookmarkID, classifyErr.Error()).Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		got, err := worker.Process(ctx, bookmarkID)

		require.ErrorIs(t, err, classifyErr)
		require.Nil(t, got)
		mockBookmarks.AssertNotCalled(t, "ApplyCategorization",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockQueue.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		mockQueue.AssertExpectations(t)
	})

	t.Run("keeps the stored description when the suggestion is empty", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		result := &classifier.Result{
			CategoryID:  7,
			Confidence:  0.6,
			Reasoning:   "tech article",
			ContentType: "article",
		}
		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(testBookmark(bookmarkID), nil).Once()
		mockCls.On("Classify", ctx, mock.Anything).Return(result, nil).Once()
		mockBookmarks.On("ApplyCategorization", ctx, bookmarkID, 7, "article",
			(*string)(nil)).Return(nil).Once()
		mockQueue.On("Complete", ctx, bookmarkID).Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		_, err := worker.Process(ctx, bookmarkID)

		require.NoError(t, err)
		mockBookmarks.AssertExpectations(t)
	})

	t.Run("skips the description write when the suggestion matches", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		bookmark := testBookmark(bookmarkID)
		result := &classifier.Result{
			CategoryID:           1,
			Confidence:           0.8,
			Reasoning:            "recipe content",
			SuggestedDescription: bookmark.Description,
			ContentType:          "recipe",
		}
		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(bookmark, nil).Once()
		mockCls.On("Classify", ctx, mock.Anything).Return(result, nil).Once()
		mockBookmarks.On("ApplyCategorization", ctx, bookmarkID, 1, "recipe",
			(*string)(nil)).Return(nil).Once()
		mockQueue.On("Complete", ctx, bookmarkID).Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		_, err := worker.Process(ctx, bookmarkID)

		require.NoError(t, err)
		mockBookmarks.AssertExpectations(t)
	})

	t.Run("fails the entry when the write-back fails", func(t *testing.T) {
		mockBookmarks := new(mockBookmarkRepository)
		mockQueue := new(mockQueueRepository)
		mockCls := new(mockClassifier)

		writeErr := errors.New("connection reset")
		result := &classifier.Result{
			CategoryID:           10,
			Confidence:           0.3,
			Reasoning:            "no clear category",
			SuggestedDescription: "Something else",
			ContentType:          "other",
		}
		mockQueue.On("Claim", ctx, bookmarkID).Return(nil).Once()
		mockBookmarks.On("FindByID", ctx, bookmarkID).Return(testBookmark(bookmarkID), nil).Once()
		mockCls.On("Classify", ctx, mock.Anything).Return(result, nil).Once()
		mockBookmarks.On("ApplyCategorization", ctx, bookmarkID, 10, "other",
			mock.Anything).Return(writeErr).Once()
		mockQueue.On("Fail", ctx, bookmarkID, writeErr.Error()).Return(nil).Once()

		worker := NewWorker(mockBookmarks, mockQueue, mockCls)
		_, err := worker.Process(ctx, bookmarkID)

		require.ErrorIs(t, err, bmerrors.ErrDatabaseOperation)
		mockQueue.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
		mockQueue.AssertExpectations(t)
	})
}
