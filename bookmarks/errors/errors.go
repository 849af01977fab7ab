package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error kinds for the ingestion and enrichment pipeline.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInvalidUUID        = errors.New("invalid uuid")
	ErrMissingUserContext = errors.New("missing user context")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrNotConnected       = errors.New("platform account not connected")
	ErrUpstream           = errors.New("upstream request failed")
	ErrClassification     = errors.New("classification failed")
	ErrDatabaseOperation  = errors.New("database operation failed")
)

const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidUUID        = "INVALID_UUID"
	CodeMissingUserCtx     = "MISSING_USER_CONTEXT"
	CodeBookmarkNotFound   = "BOOKMARK_NOT_FOUND"
	CodeNotConnected       = "PLATFORM_NOT_CONNECTED"
	CodeUpstreamError      = "UPSTREAM_ERROR"
	CodeClassificationFail = "CLASSIFICATION_FAILED"
	CodeDatabaseError      = "DATABASE_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// HandleServiceError maps service errors onto HTTP responses by kind.
func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrInvalidUUID):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidUUID, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrMissingUserContext):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeMissingUserCtx, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrNotConnected):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeNotConnected, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrBookmarkNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{Code: CodeBookmarkNotFound, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrUpstream):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Code: CodeUpstreamError, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrClassification):
		return c.Status(http.StatusBadGateway).JSON(ErrorResponse{Code: CodeClassificationFail, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrDatabaseOperation):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{Code: CodeDatabaseError, Message: err.Error(), Details: err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "An unexpected error occurred", Details: err.Error()})
	}
}

func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: message, Details: message})
}

func HandleUUIDError(c *fiber.Ctx, fieldName string) error {
	msg := fmt.Sprintf("Invalid %s format", fieldName)
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidUUID, Message: msg, Details: msg})
}

func HandleUserContextError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeMissingUserCtx, Message: message, Details: message})
}
