package handlers

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/hallulies/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Error codes carried in the "code" field of every error body.
const (
	CodeValidation         = "validation_error"
	CodeMalformedPayload   = "malformed_payload"
	CodePayloadTooLarge    = "payload_too_large"
	CodeInvalidCredentials = "invalid_credentials"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeConflict           = "conflict"
	CodeInternal           = "internal_failure"
)

// APIError is the body of every non-2xx response. Error is always a plain
// string so clients can show it directly.
type APIError struct {
	Error     string      `json:"error"`
	Code      string      `json:"code"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	if id, ok := middlewares.RequestIDFromContext(ctx); ok && id != "" {
		return id
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.AbortWithStatusJSON(status, APIError{
		Error:     message,
		Code:      code,
		RequestID: requestIDFrom(ctx),
		Details:   details,
	})
}

func RespondValidation(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, CodeValidation, message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, CodeNotFound, message, nil)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, CodeConflict, message, nil)
}

func RespondUnauthorized(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusUnauthorized, code, message, nil)
}

// RespondInternal logs the cause and hides it from the client.
func RespondInternal(ctx *gin.Context, log *slog.Logger, op string, err error) {
	log.ErrorContext(ctx.Request.Context(), "handler.failed",
		"op", op,
		"err", err,
	)
	RespondError(ctx, http.StatusInternalServerError, CodeInternal, "Internal server error", nil)
}
