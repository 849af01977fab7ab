package bookmarks

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/bookmarks/handlers"
	"github.com/pocketmark/api/internal/middleware/authjwt"
	"github.com/pocketmark/api/internal/middleware/ratelimit"
	platformconfig "github.com/pocketmark/api/internal/platform/config"
)

type Handlers struct {
	BookmarkHandler *handlers.BookmarkHandler
}

// RegisterRoutes wires bookmark endpoints.
func RegisterRoutes(app *fiber.App, h *Handlers, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})
	ingestLimiter := ratelimit.New(ratelimit.Config{
		Enabled:  cfg.RateLimits.Ingest.Enabled,
		Max:      cfg.RateLimits.Ingest.Max,
		Duration: cfg.RateLimits.Ingest.Duration,
	})

	group := app.Group("/bookmarks", authMiddleware)

	group.Post("/", ingestLimiter, h.BookmarkHandler.Create)
	group.Get("/", h.BookmarkHandler.List)
}
