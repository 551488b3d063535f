package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hrms-backend/internal/domain"
	"hrms-backend/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	if isGuest, ok := c.Get("isGuest"); ok {
		fields["is_guest"] = isGuest
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps a service error onto the standard envelope using the
// domain error kinds: validation -> 400, not found -> 404, conflict -> 409,
// anything else -> 500 with fallback as the message.
func FromError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrConflict):
		Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
