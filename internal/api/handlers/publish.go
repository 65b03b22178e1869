package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/cmd/middleware"
)

// PutPublish makes an owned entity publicly visible. Publishing an already
// public entity is a no-op returning the same state.
func (h *FileHandler) PutPublish(c *gin.Context) {
	h.setVisibility(c, true)
}

// PutUnpublish reverts an owned entity to private.
func (h *FileHandler) PutUnpublish(c *gin.Context) {
	h.setVisibility(c, false)
}

func (h *FileHandler) setVisibility(c *gin.Context, public bool) {
	userID, _ := middleware.UserID(c)

	file, err := h.svc.SetVisibility(c.Request.Context(), userID, c.Param("id"), public)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}
