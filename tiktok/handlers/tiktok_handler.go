package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	uuid "github.com/gofrs/uuid"
	"github.com/pocketmark/api/bookmarks/errors"
	"github.com/pocketmark/api/internal/types"
	"github.com/pocketmark/api/tiktok/services"
)

type importRequest struct {
	TikTokURL string `json:"tiktokUrl"`
}

type TikTokHandler struct {
	service services.Service
}

func NewTikTokHandler(service services.Service) *TikTokHandler {
	return &TikTokHandler{service: service}
}

// AuthStart returns the platform authorization URL for account linking.
// Endpoint: GET /tiktok/auth/start
func (h *TikTokHandler) AuthStart(c *fiber.Ctx) error {
	if _, ok := c.Locals(types.UserCtxName).(types.UserContext); !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	state := uuid.Must(uuid.NewV4()).String()
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"authorizeUrl": h.service.BeginAuth(state),
		"state":        state,
	})
}

// AuthCallback finishes account linking by exchanging the authorization code.
// Endpoint: GET /tiktok/auth/callback?code=...
func (h *TikTokHandler) AuthCallback(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	code := c.Query("code")
	if code == "" {
		return errors.HandleValidationError(c, "code is required")
	}

	if err := h.service.Connect(c.Context(), user.UserID, code); err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}

// Import saves one shared TikTok URL as a bookmark.
// Endpoint: POST /tiktok/import
func (h *TikTokHandler) Import(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleValidationError(c, "invalid request body")
	}
	if req.TikTokURL == "" {
		return errors.HandleValidationError(c, "tiktokUrl is required")
	}

	bookmark, err := h.service.Import(c.Context(), user.UserID, req.TikTokURL)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"bookmark": fiber.Map{
			"id":          bookmark.ID,
			"title":       bookmark.Title,
			"url":         bookmark.URL,
			"description": bookmark.Description,
		},
	})
}

// Sync imports the connected account's videos that are not saved yet.
// Endpoint: POST /tiktok/sync
func (h *TikTokHandler) Sync(c *fiber.Ctx) error {
	user, ok := c.Locals(types.UserCtxName).(types.UserContext)
	if !ok {
		return errors.HandleUserContextError(c, "invalid user context")
	}

	imported, err := h.service.Sync(c.Context(), user.UserID)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success":  true,
		"imported": imported,
	})
}
