package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain"
	"travelapp/internal/gateway"
	"travelapp/internal/http/middleware"
)

// ErrorResponse is the body of every mapped error. Message duplicates Error
// for clients that only read "message".
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Message:   message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain and gateway errors to HTTP responses. Both
// gateway failures surface as one "payment invalid" condition.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsPersistFailed(err):
		respondError(c, http.StatusInternalServerError, "persist_failed", "gagal menyimpan order", nil)
	case domain.IsUnrecognizedOrderKind(err):
		respondError(c, http.StatusUnprocessableEntity, "unrecognized_order_kind", "jenis order tidak dikenal", nil)
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case errors.Is(err, gateway.ErrRejected), errors.Is(err, gateway.ErrUnavailable):
		respondError(c, http.StatusBadGateway, "gateway_error", "Pembayaran tidak valid", nil)
	case domain.IsInternal(err):
		respondError(c, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
