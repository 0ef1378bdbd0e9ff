package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/networth-tracker/backend/internal/auth"
	"github.com/networth-tracker/backend/internal/domain"
	marketprices "github.com/networth-tracker/backend/internal/prices"
)

// writeError maps service and domain errors onto HTTP responses with a
// stable {error, message} shape.
func writeError(c *gin.Context, err error) {
	var authErr auth.AuthError
	if errors.As(err, &authErr) {
		status := http.StatusUnauthorized
		switch authErr.Code {
		case auth.ErrEmailExists.Code:
			status = http.StatusConflict
		case auth.ErrWeakPassword.Code:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": authErr.Code, "message": authErr.Message})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "resource not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": err.Error()})
	case errors.Is(err, domain.ErrDuplicateSnapshot):
		c.JSON(http.StatusConflict, gin.H{"error": "DUPLICATE_SNAPSHOT", "message": "a snapshot already exists for this date"})
	case errors.Is(err, marketprices.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "PROVIDER_UNAVAILABLE", "message": "price provider unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL_ERROR", "message": "internal server error"})
	}
}

// writeValidationError reports a per-field validation failure.
func writeValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION_ERROR", "message": err.Error()})
}

// pathID parses the :id path parameter. A malformed id behaves as an
// unknown resource.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "NOT_FOUND", "message": "resource not found"})
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses an optional uuid query filter. Returns an error
// response when present but malformed.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "message": name + " must be a uuid"})
		return nil, false
	}
	return &id, true
}
