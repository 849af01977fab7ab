package enrichment

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/bookmarks/errors"
	bmservices "github.com/pocketmark/api/bookmarks/services"
	"github.com/pocketmark/api/internal/types"
)

type categorizeRequest struct {
	BookmarkID string `json:"bookmarkId"`
}

type Handler struct {
	bookmarks bmservices.Service
	worker    *Worker
}

func NewHandler(bookmarks bmservices.Service, worker *Worker) *Handler {
	return &Handler{bookmarks: bookmarks, worker: worker}
}

// Categorize runs enrichment for one of the caller's bookmarks synchronously.
// Endpoint: POST /ai/categorize
func (h *Handler) Categorize(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	var req categorizeRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "invalid request body")
	}
	if req.BookmarkID == "" {
		return errors.HandleValidationError(c, "bookmarkId is required")
	}

	bookmarkID, err := uuid.FromString(req.BookmarkID)
	if err != nil {
		return errors.HandleUUIDError(c, "bookmarkId")
	}

	// Ownership check before touching the queue; foreign bookmarks read as
	// not found.
	if _, err := h.bookmarks.GetBookmark(c.Context(), user.UserID, bookmarkID); err != nil {
		return errors.HandleServiceError(c, err)
	}

	result, err := h.worker.Process(c.Context(), bookmarkID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	if result == nil {
		// No pending entry; enrichment already ran or is running.
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"success":          true,
			"alreadyProcessed": true,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":        true,
		"categorization": result,
	})
}
