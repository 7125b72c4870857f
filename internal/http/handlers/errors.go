package handlers

import (
	"net/http"

	"tripbook/internal/domain"
	"tripbook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Backing-store
// failures get their own code so clients know the mutation is committed
// in memory and only persistence needs retrying.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err) || domain.IsConstraint(err) || domain.IsTxOpen(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	case domain.IsBackingStore(err):
		respondError(c, http.StatusServiceUnavailable, "backing_store_error", err.Error(), nil)
	case domain.IsNotInitialized(err):
		respondError(c, http.StatusServiceUnavailable, "store_not_ready", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
