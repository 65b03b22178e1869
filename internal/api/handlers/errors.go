package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/files-manager/files-service/internal/files"
)

// respondError maps service errors to the wire error strings. Anything not
// explicitly mapped is an internal fault and stays opaque to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, files.ErrMissingName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
	case errors.Is(err, files.ErrMissingKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing type"})
	case errors.Is(err, files.ErrMissingContent), errors.Is(err, files.ErrInvalidContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data"})
	case errors.Is(err, files.ErrParentNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent not found"})
	case errors.Is(err, files.ErrParentNotFolder):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parent is not a folder"})
	case errors.Is(err, files.ErrFolderHasNoContent):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A folder doesn't have content"})
	case errors.Is(err, files.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
