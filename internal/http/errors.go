package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriel-rosch/fibershare-sub001/internal/models"
)

// errorMapping pins each domain error to an HTTP status and a stable
// machine-readable code. The order matters only in that every sentinel
// appears exactly once.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{models.ErrNotFound, http.StatusNotFound, "not_found"},
	{models.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{models.ErrPortConflict, http.StatusConflict, "port_conflict"},
	{models.ErrPortUnavailable, http.StatusConflict, "port_unavailable"},
	{models.ErrInvalidPrice, http.StatusBadRequest, "invalid_price"},
	{models.ErrInvalidCapacity, http.StatusBadRequest, "invalid_capacity"},
	{models.ErrUnauthorized, http.StatusForbidden, "unauthorized"},
	{models.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

// respondError translates a service error into the API error shape:
// {"error": {"code": ..., "message": ...}}
func respondError(c *gin.Context, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			c.JSON(m.status, gin.H{"error": gin.H{"code": m.code, "message": err.Error()}})
			return
		}
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal", "message": err.Error()}})
}
