package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	uuid "github.com/gofrs/uuid"
	bmerrors "github.com/pocketmark/api/bookmarks/errors"
	bmmodels "github.com/pocketmark/api/bookmarks/models"
	bmservices "github.com/pocketmark/api/bookmarks/services"
	"github.com/pocketmark/api/internal/pkg/log"
	"github.com/pocketmark/api/internal/pkg/scrape"
	queuemodels "github.com/pocketmark/api/queue/models"
	"github.com/pocketmark/api/tiktok"
	tkmodels "github.com/pocketmark/api/tiktok/models"
	"github.com/pocketmark/api/tiktok/repository"
)

const (
	fallbackTitle = "TikTok Video"
	titleSuffix   = " | TikTok"
	videoContent  = "video"
)

// MetaFetcher extracts page metadata from a URL.
type MetaFetcher interface {
	FetchMeta(ctx context.Context, targetURL string) (*scrape.PageMeta, error)
}

var _ MetaFetcher = (*scrape.Fetcher)(nil)

// Service defines TikTok ingestion operations.
type Service interface {
	// BeginAuth returns the URL the user visits to link their account,
	// carrying the given CSRF state.
	BeginAuth(state string) string

	// Connect exchanges an authorization code and stores the resulting
	// tokens for the user.
	Connect(ctx context.Context, ownerID uuid.UUID, code string) error

	// Import scrapes a single shared TikTok URL and saves it as a bookmark.
	Import(ctx context.Context, ownerID uuid.UUID, videoURL string) (*bmmodels.Bookmark, error)

	// Sync pulls the connected account's videos and saves the ones not seen
	// before. Returns the number of newly created bookmarks.
	Sync(ctx context.Context, ownerID uuid.UUID) (int, error)
}

type service struct {
	bookmarks bmservices.Service
	tokens    repository.TokenRepository
	platform  tiktok.PlatformClient
	fetcher   MetaFetcher
}

// NewService constructs a TikTok ingestion service.
func NewService(bookmarks bmservices.Service, tokens repository.TokenRepository, platform tiktok.PlatformClient, fetcher MetaFetcher) Service {
	return &service{bookmarks: bookmarks, tokens: tokens, platform: platform, fetcher: fetcher}
}

func (s *service) BeginAuth(state string) string {
	return s.platform.AuthorizeURL(state)
}

func (s *service) Connect(ctx context.Context, ownerID uuid.UUID, code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("%w: missing authorization code", bmerrors.ErrInvalidRequest)
	}

	token, err := s.platform.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %v", bmerrors.ErrUpstream, err)
	}

	now := time.Now()
	record := &tkmodels.Token{
		UserID:           ownerID,
		OpenID:           token.OpenID,
		AccessToken:      token.AccessToken,
		RefreshToken:     token.RefreshToken,
		Scopes:           token.Scope,
		ExpiresAt:        now.Add(time.Duration(token.ExpiresIn) * time.Second),
		RefreshExpiresAt: now.Add(time.Duration(token.RefreshExpiresIn) * time.Second),
	}
	if err := s.tokens.Upsert(ctx, record); err != nil {
		return fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	return nil
}

func (s *service) Import(ctx context.Context, ownerID uuid.UUID, videoURL string) (*bmmodels.Bookmark, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" || !strings.Contains(videoURL, "tiktok.com") {
		return nil, fmt.Errorf("%w: not a TikTok URL", bmerrors.ErrInvalidRequest)
	}

	meta, err := s.fetcher.FetchMeta(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bmerrors.ErrUpstream, err)
	}

	title := strings.TrimSpace(strings.TrimSuffix(meta.Title, titleSuffix))
	if title == "" {
		title = fallbackTitle
	}

	contentType := videoContent
	bookmark, err := s.bookmarks.CreateBookmark(ctx, ownerID, bmmodels.CreateBookmarkRequest{
		Title:          title,
		URL:            videoURL,
		Description:    strings.TrimSpace(meta.Description),
		SourcePlatform: bmmodels.SourceTikTok,
		ContentType:    &contentType,
	}, queuemodels.PriorityImport)
	if err != nil {
		return nil, err
	}
	return bookmark, nil
}

func (s *service) Sync(ctx context.Context, ownerID uuid.UUID) (int, error) {
	token, err := s.tokens.FindByUser(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", bmerrors.ErrDatabaseOperation, err)
	}
	if token == nil {
		return 0, fmt.Errorf("%w: no TikTok account linked", bmerrors.ErrNotConnected)
	}

	videos, err := s.platform.ListVideos(ctx, token.AccessToken)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", bmerrors.ErrUpstream, err)
	}

	imported := 0
	for _, video := range videos {
		if video.ShareURL == "" {
			continue
		}
		title := video.Title
		if title == "" {
			title = fallbackTitle
		}

		contentType := videoContent
		req := bmmodels.CreateBookmarkRequest{
			Title:          title,
			URL:            video.ShareURL,
			SourcePlatform: bmmodels.SourceTikTok,
			ContentType:    &contentType,
		}
		if video.CoverImageURL != "" {
			cover := video.CoverImageURL
			req.ThumbnailURL = &cover
		}

		created, err := s.bookmarks.CreateBookmarkIfAbsent(ctx, ownerID, req, queuemodels.PriorityDefault)
		if err != nil {
			// One bad row should not abort the whole sync run.
			log.WarnWithContext(ctx, "skipping video %s during sync: %v", video.ID, err)
			continue
		}
		if created {
			imported++
		}
	}

	return imported, nil
}
