package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/internal/metadata"
)

// Pinger reports liveness of an external handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AppHandler serves the operational endpoints.
type AppHandler struct {
	store metadata.Store
	cache Pinger
}

// NewAppHandler takes the metadata store and the session cache handle; cache
// may be nil when the deployment has no Redis (OIDC auth).
func NewAppHandler(store metadata.Store, cache Pinger) *AppHandler {
	return &AppHandler{store: store, cache: cache}
}

// GetStatus reports liveness of the database and cache connections.
func (h *AppHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	dbAlive := h.store.Ping(ctx) == nil
	cacheAlive := h.cache != nil && h.cache.Ping(ctx) == nil

	c.JSON(http.StatusOK, gin.H{"redis": cacheAlive, "db": dbAlive})
}

// GetStats reports how many owners and files the store holds.
func (h *AppHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.store.CountOwners(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	files, err := h.store.CountFiles(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "files": files})
}
