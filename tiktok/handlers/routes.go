package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/internal/middleware/authjwt"
	"github.com/pocketmark/api/internal/middleware/ratelimit"
	platformconfig "github.com/pocketmark/api/internal/platform/config"
)

// RegisterRoutes wires TikTok ingestion endpoints.
func RegisterRoutes(app *fiber.App, h *TikTokHandler, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})
	importLimiter := ratelimit.New(ratelimit.Config{
		Enabled:  cfg.RateLimits.Import.Enabled,
		Max:      cfg.RateLimits.Import.Max,
		Duration: cfg.RateLimits.Import.Duration,
	})

	group := app.Group("/tiktok", authMiddleware)

	group.Get("/auth/start", h.AuthStart)
	group.Get("/auth/callback", h.AuthCallback)
	group.Post("/import", importLimiter, h.Import)
	group.Post("/sync", h.Sync)
}
