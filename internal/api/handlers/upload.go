package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/cmd/middleware"
	"github.com/files-manager/files-service/internal/files"
)

// PostUpload creates a folder or stores an uploaded file. The response is
// sent as soon as the metadata record is durable; rendition generation for
// images happens asynchronously.
func (h *FileHandler) PostUpload(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req files.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	file, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}
