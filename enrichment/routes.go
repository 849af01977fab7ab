package enrichment

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/internal/middleware/authjwt"
	platformconfig "github.com/pocketmark/api/internal/platform/config"
)

// RegisterRoutes wires enrichment endpoints.
func RegisterRoutes(app *fiber.App, h *Handler, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})

	group := app.Group("/ai", authMiddleware)

	group.Post("/categorize", h.Categorize)
}
