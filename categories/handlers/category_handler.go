package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/categories/services"
)

type CategoryHandler struct {
	service services.Service
}

func NewCategoryHandler(service services.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List returns the fixed category set.
// Endpoint: GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	resp, err := h.service.ListCategories(c.Context())
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}
