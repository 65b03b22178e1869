package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/cmd/middleware"
)

// GetIndex lists the caller's entities, optionally scoped to one parent
// folder, 20 per zero-based page.
func (h *FileHandler) GetIndex(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	result, err := h.svc.List(c.Request.Context(), userID, c.Query("parentId"), page)
	if err != nil {
		h.log.Error("listing failed", "owner_id", userID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
