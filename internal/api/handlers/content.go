package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/cmd/middleware"
)

// GetContent serves an entity's bytes with a content type derived from its
// name. The optional size query selects a rendition; a rendition that was
// never produced is a plain 404.
func (h *FileHandler) GetContent(c *gin.Context) {
	callerID, _ := middleware.UserID(c)

	data, contentType, err := h.svc.Content(c.Request.Context(), callerID, c.Param("id"), c.Query("size"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, contentType, data)
}
