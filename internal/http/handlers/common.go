package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/http/middleware"
)

// RespondError sends a plain error payload with request_id. "message" is
// always present since the web client reads it for toasts.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError decodes the body into dst and answers 400 itself on failure.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	err := c.ShouldBindJSON(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		RespondError(c, http.StatusBadRequest, "body kosong", nil)
	default:
		RespondError(c, http.StatusBadRequest, "payload tidak valid", err)
	}
	return false
}
