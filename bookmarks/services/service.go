package services

import (
	"context"
	"fmt"
	"strings"

	uuid "github.com/gofrs/uuid"
	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/bookmarks/models"
	"github.com/pocketmark/api/bookmarks/repository"
	queuerepo "github.com/pocketmark/api/queue/repository"
)

// Service defines bookmark ingestion and read operations. Every ingestion
// source is normalized into a CreateBookmarkRequest before it reaches this
// layer; creation always leaves exactly one pending queue entry behind.
type Service interface {
	// CreateBookmark validates and stores a bookmark, then enqueues it for
	// enrichment with the given priority.
	CreateBookmark(ctx context.Context, ownerID uuid.UUID, req models.CreateBookmarkRequest, priority int) (*models.Bookmark, error)

	// CreateBookmarkIfAbsent behaves like CreateBookmark but is a no-op when
	// the owner already has a bookmark with the same URL. Returns true when a
	// bookmark was created.
	CreateBookmarkIfAbsent(ctx context.Context, ownerID uuid.UUID, req models.CreateBookmarkRequest, priority int) (bool, error)

	// GetBookmark returns the owner's bookmark or ErrBookmarkNotFound.
	GetBookmark(ctx context.Context, ownerID, id uuid.UUID) (*models.Bookmark, error)

	// ListBookmarks returns the owner's bookmarks hydrated with categories.
	ListBookmarks(ctx context.Context, ownerID uuid.UUID, filter models.ListFilter) (*models.BookmarksListResponse, error)
}

type service struct {
	repo      repository.Repository
	queueRepo queuerepo.Repository
}

// NewService constructs a bookmark service.
func NewService(repo repository.Repository, queueRepo queuerepo.Repository) Service {
	return &service{repo: repo, queueRepo: queueRepo}
}

func (s *service) CreateBookmark(ctx context.Context, ownerID uuid.UUID, req models.CreateBookmarkRequest, priority int) (*models.Bookmark, error) {
	bookmark, err := s.normalize(ownerID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	if err := s.queueRepo.Enqueue(ctx, bookmark.ID, priority); err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	return bookmark, nil
}

func (s *service) CreateBookmarkIfAbsent(ctx context.Context, ownerID uuid.UUID, req models.CreateBookmarkRequest, priority int) (bool, error) {
	bookmark, err := s.normalize(ownerID, req)
	if err != nil {
		return false, err
	}

	existing, err := s.repo.FindByOwnerAndURL(ctx, ownerID, bookmark.URL)
	if err != nil {
		return false, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	if existing != nil {
		// Already saved; no duplicate row and no duplicate queue entry.
		return false, nil
	}

	if err := s.repo.Insert(ctx, bookmark); err != nil {
		return false, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	if err := s.queueRepo.Enqueue(ctx, bookmark.ID, priority); err != nil {
		return false, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	return true, nil
}

func (s *service) GetBookmark(ctx context.Context, ownerID, id uuid.UUID) (*models.Bookmark, error) {
	bookmark, err := s.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	if bookmark == nil {
		return nil, bmerrors.ErrBookmarkNotFound
	}
	return bookmark, nil
}

func (s *service) ListBookmarks(ctx context.Context, ownerID uuid.UUID, filter models.ListFilter) (*models.BookmarksListResponse, error) {
	bookmarks, err := s.repo.List(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	return &models.BookmarksListResponse{Bookmarks: bookmarks}, nil
}

// normalize converts a creation request into a canonical bookmark record,
// enforcing the non-empty title and url invariant.
func (s *service) normalize(ownerID uuid.UUID, req models.CreateBookmarkRequest) (*models.Bookmark, error) {
	title := strings.TrimSpace(req.Title)
	url := strings.TrimSpace(req.URL)

	if title == "" || url == "" {
		return nil, fmt.Errorf("%w: title and url are required", bmerrors.ErrInvalidRequest)
	}

	sourcePlatform := strings.TrimSpace(req.SourcePlatform)
	if sourcePlatform == "" {
		sourcePlatform = models.SourceManual
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = models.JSONB{}
	}

	return &models.Bookmark{
		OwnerUserID:    ownerID,
		Title:          title,
		URL:            url,
		Description:    strings.TrimSpace(req.Description),
		SourcePlatform: sourcePlatform,
		ContentType:    req.ContentType,
		ThumbnailURL:   req.ThumbnailURL,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		LocationName:   req.LocationName,
		Metadata:       metadata,
	}, nil
}
