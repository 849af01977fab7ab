package services

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/bookmarks/models"
	"github.com/pocketmark/api/bookmarks/repository"
	queuemodels "github.com/pocketmark/api/queue/models"
	queuerepo "github.com/pocketmark/api/queue/repository"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a test double for the bookmark repository.
type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) Insert(ctx context.Context, bookmark *models.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *MockRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Bookmark, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Bookmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockRepository) FindByOwnerAndURL(ctx context.Context, ownerID uuid.UUID, url string) (*models.Bookmark, error) {
	args := m.Called(ctx, ownerID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bookmark), args.Error(1)
}

func (m *MockRepository) ApplyCategorization(ctx context.Context, id uuid.UUID, categoryID int, contentType string, description *string) error {
	args := m.Called(ctx, id, categoryID, contentType, description)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, ownerID uuid.UUID, filter models.ListFilter) ([]models.BookmarkResponse, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookmarkResponse), args.Error(1)
}

// MockQueueRepository is a test double for the queue repository.
type MockQueueRepository struct {
	mock.Mock
}

var _ queuerepo.Repository = (*MockQueueRepository)(nil)

func (m *MockQueueRepository) Enqueue(ctx context.Context, bookmarkID uuid.UUID, priority int) error {
	args := m.Called(ctx, bookmarkID, priority)
	return args.Error(0)
}

func (m *MockQueueRepository) Claim(ctx context.Context, bookmarkID uuid.UUID) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

func (m *MockQueueRepository) Complete(ctx context.Context, bookmarkID uuid.UUID) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

func (m *MockQueueRepository) Fail(ctx context.Context, bookmarkID uuid.UUID, reason string) error {
	args := m.Called(ctx, bookmarkID, reason)
	return args.Error(0)
}

func (m *MockQueueRepository) NextPending(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockQueueRepository) RevertStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQueueRepository) FindByBookmark(ctx context.Context, bookmarkID uuid.UUID) (*queuemodels.Entry, error) {
	args := m.Called(ctx, bookmarkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queuemodels.Entry), args.Error(1)
}
