package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/categories/models"
	"github.com/pocketmark/api/categories/repository"
	"github.com/pocketmark/api/internal/cache"
	"github.com/pocketmark/api/internal/pkg/log"
)

const cacheKey = "categories:all"

// Service serves the fixed category set, cached because it only changes by
// migration.
type Service interface {
	ListCategories(ctx context.Context) (*models.CategoriesResponse, error)
}

type service struct {
	repo  repository.Repository
	cache cache.Cache
	ttl   time.Duration
}

// NewService constructs a category service. Pass cache.Noop{} to disable
// caching.
func NewService(repo repository.Repository, c cache.Cache, ttl time.Duration) Service {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &service{repo: repo, cache: c, ttl: ttl}
}

func (s *service) ListCategories(ctx context.Context) (*models.CategoriesResponse, error) {
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var resp models.CategoriesResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry; fall through to the database and rewrite it.
	} else if !errors.Is(err, cache.ErrKeyNotFound) {
		log.WarnWithContext(ctx, "category cache read failed: %v", err)
	}

	categories, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}

	resp := &models.CategoriesResponse{Categories: categories}
	if encoded, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, encoded, s.ttl); err != nil {
			log.WarnWithContext(ctx, "category cache write failed: %v", err)
		}
	}
	return resp, nil
}
