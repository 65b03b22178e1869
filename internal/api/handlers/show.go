package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/cmd/middleware"
)

// GetShow returns entity metadata. Authentication is optional here: public
// entities are visible to anonymous callers, and the access gate hides
// everything else behind a uniform not-found.
func (h *FileHandler) GetShow(c *gin.Context) {
	callerID, _ := middleware.UserID(c)

	file, err := h.svc.Get(c.Request.Context(), callerID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}
