package enrichment

import (
	"context"
	"time"

	uuid "github.com/gofrs/uuid"
	bmmodels "github.com/pocketmark/api/bookmarks/models"
	bmrepo "github.com/pocketmark/api/bookmarks/repository"
	"github.com/pocketmark/api/classifier"
	queuemodels "github.com/pocketmark/api/queue/models"
	queuerepo "github.com/pocketmark/api/queue/repository"
	"github.com/stretchr/testify/mock"
)

type mockBookmarkRepository struct {
	mock.Mock
}

var _ bmrepo.Repository = (*mockBookmarkRepository)(nil)

func (m *mockBookmarkRepository) Insert(ctx context.Context, bookmark *bmmodels.Bookmark) error {
	args := m.Called(ctx, bookmark)
	return args.Error(0)
}

func (m *mockBookmarkRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*bmmodels.Bookmark, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bmmodels.Bookmark), args.Error(1)
}

func (m *mockBookmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*bmmodels.Bookmark, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bmmodels.Bookmark), args.Error(1)
}

func (m *mockBookmarkRepository) FindByOwnerAndURL(ctx context.Context, ownerID uuid.UUID, url string) (*bmmodels.Bookmark, error) {
	args := m.Called(ctx, ownerID, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bmmodels.Bookmark), args.Error(1)
}

func (m *mockBookmarkRepository) ApplyCategorization(ctx context.Context, id uuid.UUID, categoryID int, contentType string, description *string) error {
	args := m.Called(ctx, id, categoryID, contentType, description)
	return args.Error(0)
}

func (m *mockBookmarkRepository) List(ctx context.Context, ownerID uuid.UUID, filter bmmodels.ListFilter) ([]bmmodels.BookmarkResponse, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bmmodels.BookmarkResponse), args.Error(1)
}

type mockQueueRepository struct {
	mock.Mock
}

var _ queuerepo.Repository = (*mockQueueRepository)(nil)

func (m *mockQueueRepository) Enqueue(ctx context.Context, bookmarkID uuid.UUID, priority int) error {
	args := m.Called(ctx, bookmarkID, priority)
	return args.Error(0)
}

func (m *mockQueueRepository) Claim(ctx context.Context, bookmarkID uuid.UUID) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

func (m *mockQueueRepository) Complete(ctx context.Context, bookmarkID uuid.UUID) error {
	args := m.Called(ctx, bookmarkID)
	return args.Error(0)
}

func (m *mockQueueRepository) Fail(ctx context.Context, bookmarkID uuid.UUID, reason string) error {
	args := m.Called(ctx, bookmarkID, reason)
	return args.Error(0)
}

func (m *mockQueueRepository) NextPending(ctx context.Context, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *mockQueueRepository) RevertStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockQueueRepository) FindByBookmark(ctx context.Context, bookmarkID uuid.UUID) (*queuemodels.Entry, error) {
	args := m.Called(ctx, bookmarkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queuemodels.Entry), args.Error(1)
}

type mockClassifier struct {
	mock.Mock
}

var _ classifier.Classifier = (*mockClassifier)(nil)

func (m *mockClassifier) Classify(ctx context.Context, input classifier.Input) (*classifier.Result, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*classifier.Result), args.Error(1)
}
