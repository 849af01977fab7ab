package services

import (
	"context"
	"errors"
	"testing"

	uuid "github.com/gofrs/uuid"
	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/bookmarks/models"
	queuemodels "github.com/pocketmark/api/queue/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateBookmark(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())

	t.Run("stores the bookmark and enqueues exactly one pending entry", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)

		createdID := uuid.Must(uuid.NewV4())
		mockRepo.On("Insert", ctx, mock.MatchedBy(func(b *models.Bookmark) bool {
			return b.Title == "Pasta" && b.URL == "http://a.example/pasta" &&
				b.OwnerUserID == ownerID && b.SourcePlatform == models.SourceManual
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Bookmark).ID = createdID
		}).Return(nil).Once()
		mockQueue.On("Enqueue", ctx, createdID, queuemodels.PriorityDefault).Return(nil).Once()

		svc := NewService(mockRepo, mockQueue)
		bookmark, err := svc.CreateBookmark(ctx, ownerID, models.CreateBookmarkRequest{
			Title: "Pasta",
			URL:   "http://a.example/pasta",
		}, queuemodels.PriorityDefault)

		require.NoError(t, err)
		require.Equal(t, createdID, bookmark.ID)
		require.NotNil(t, bookmark.Metadata)
		mockRepo.AssertExpectations(t)
		mockQueue.AssertExpectations(t)
	})

	t.Run("rejects empty title and url without touching the store", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)

		svc := NewService(mockRepo, mockQueue)
		_, err := svc.CreateBookmark(ctx, ownerID, models.CreateBookmarkRequest{
			Title: "   ",
			URL:   "",
		}, queuemodels.PriorityDefault)

		require.True(t, errors.Is(err, bmerrors.ErrInvalidRequest))
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("keeps a caller-provided source platform", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)

		mockRepo.On("Insert", ctx, mock.MatchedBy(func(b *models.Bookmark) bool {
			return b.SourcePlatform == "instagram"
		})).Return(nil).Once()
		mockQueue.On("Enqueue", ctx, mock.Anything, queuemodels.PriorityDefault).Return(nil).Once()

		svc := NewService(mockRepo, mockQueue)
		_, err := svc.CreateBookmark(ctx, ownerID, models.CreateBookmarkRequest{
			Title:          "Reel",
			URL:            "http://i.example/r",
			SourcePlatform: "instagram",
		}, queuemodels.PriorityDefault)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wraps store failures", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)
		mockRepo.On("Insert", ctx, mock.Anything).Return(errors.New("db down")).Once()

		svc := NewService(mockRepo, mockQueue)
		_, err := svc.CreateBookmark(ctx, ownerID, models.CreateBookmarkRequest{
			Title: "T", URL: "u",
		}, queuemodels.PriorityDefault)

		require.True(t, errors.Is(err, bmerrors.ErrDatabaseOperation))
	})
}

func TestCreateBookmarkIfAbsent(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())
	req := models.CreateBookmarkRequest{
		Title:          "TikTok Video",
		URL:            "https://www.tiktok.com/@u/video/1",
		SourcePlatform: models.SourceTikTok,
	}

	t.Run("creates and enqueues when the url is new", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)

		mockRepo.On("FindByOwnerAndURL", ctx, ownerID, req.URL).Return(nil, nil).Once()
		mockRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
		mockQueue.On("Enqueue", ctx, mock.Anything, queuemodels.PriorityDefault).Return(nil).Once()

		svc := NewService(mockRepo, mockQueue)
		created, err := svc.CreateBookmarkIfAbsent(ctx, ownerID, req, queuemodels.PriorityDefault)

		require.NoError(t, err)
		require.True(t, created)
		mockRepo.AssertExpectations(t)
		mockQueue.AssertExpectations(t)
	})

	t.Run("is a no-op when the owner already has the url", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockQueue := new(MockQueueRepository)

		existing := &models.Bookmark{ID: uuid.Must(uuid.NewV4()), URL: req.URL}
		mockRepo.On("FindByOwnerAndURL", ctx, ownerID, req.URL).Return(existing, nil).Once()

		svc := NewService(mockRepo, mockQueue)
		created, err := svc.CreateBookmarkIfAbsent(ctx, ownerID, req, queuemodels.PriorityDefault)

		require.NoError(t, err)
		require.False(t, created)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockQueue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetBookmark(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())
	bookmarkID := uuid.Must(uuid.NewV4())

	t.Run("returns the owner's bookmark", func(t *testing.T) {
		mockRepo := new(MockRepository)
		found := &models.Bookmark{ID: bookmarkID, OwnerUserID: ownerID}
		mockRepo.On("FindByIDAndOwner", ctx, bookmarkID, ownerID).Return(found, nil).Once()

		svc := NewService(mockRepo, new(MockQueueRepository))
		bookmark, err := svc.GetBookmark(ctx, ownerID, bookmarkID)

		require.NoError(t, err)
		require.Equal(t, bookmarkID, bookmark.ID)
	})

	t.Run("foreign-owner rows are not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("FindByIDAndOwner", ctx, bookmarkID, ownerID).Return(nil, nil).Once()

		svc := NewService(mockRepo, new(MockQueueRepository))
		_, err := svc.GetBookmark(ctx, ownerID, bookmarkID)

		require.True(t, errors.Is(err, bmerrors.ErrBookmarkNotFound))
	})
}

func TestListBookmarks(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.Must(uuid.NewV4())

	mockRepo := new(MockRepository)
	filter := models.ListFilter{Search: "pasta", Limit: 20}
	rows := []models.BookmarkResponse{
		{Bookmark: models.Bookmark{Title: "Pasta"}},
	}
	mockRepo.On("List", ctx, ownerID, filter).Return(rows, nil).Once()

	svc := NewService(mockRepo, new(MockQueueRepository))
	resp, err := svc.ListBookmarks(ctx, ownerID, filter)

	require.NoError(t, err)
	require.Len(t, resp.Bookmarks, 1)
	mockRepo.AssertExpectations(t)
}
