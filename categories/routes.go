package categories

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/categories/handlers"
	"github.com/pocketmark/api/internal/middleware/authjwt"
	platformconfig "github.com/pocketmark/api/internal/platform/config"
)

// RegisterRoutes wires category endpoints.
func RegisterRoutes(app *fiber.App, h *handlers.CategoryHandler, cfg *platformconfig.Config) {
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey: cfg.JWT.PublicKey,
	})

	group := app.Group("/categories", authMiddleware)

	group.Get("/", h.List)
}
