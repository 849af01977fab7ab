package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/bookmarks/models"
	"github.com/pocketmark/api/bookmarks/services"
	"github.com/pocketmark/api/internal/types"
	queuemodels "github.com/pocketmark/api/queue/models"
)

type BookmarkHandler struct {
	service services.Service
}

func NewBookmarkHandler(service services.Service) *BookmarkHandler {
	return &BookmarkHandler{service: service}
}

// Create saves a manually entered bookmark and queues it for enrichment.
// Endpoint: POST /bookmarks
func (h *BookmarkHandler) Create(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	var req models.CreateBookmarkRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "invalid request body")
	}

	bookmark, err := h.service.CreateBookmark(c.Context(), user.UserID, req, queuemodels.PriorityDefault)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"bookmark": bookmark})
}

// List returns the current user's bookmarks with optional search and category
// filters.
// Endpoint: GET /bookmarks?search=...&category=...&limit=...&offset=...
func (h *BookmarkHandler) List(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	filter := models.ListFilter{
		Search: c.Query("search"),
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}

	if category := c.Query("category"); category != "" && category != "all" {
		categoryID, err := strconv.Atoi(category)
		if err != nil {
			return errors.HandleValidationError(c, "category must be an integer")
		}
		filter.CategoryID = &categoryID
	}

	resp, err := h.service.ListBookmarks(c.Context(), user.UserID, filter)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(resp)
}
