package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/files-manager/files-service/cmd/middleware"
	"github.com/files-manager/files-service/internal/api/handlers"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Token")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

// Deps carries the wired handlers and middleware into route registration.
type Deps struct {
	Files *handlers.FileHandler
	App   *handlers.AppHandler
	Auth  gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.Use(corsMiddleware())

	r.GET("/status", deps.App.GetStatus)
	r.GET("/stats", deps.App.GetStats)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	f := r.Group("/files", deps.Auth)
	{
		f.POST("", middleware.RequireUser(), deps.Files.PostUpload)
		f.GET("", middleware.RequireUser(), deps.Files.GetIndex)
		// Show and content run without RequireUser: public entities are
		// served to anonymous callers, the access gate decides per entity.
		f.GET("/:id", deps.Files.GetShow)
		f.GET("/:id/data", deps.Files.GetContent)
		f.PUT("/:id/publish", middleware.RequireUser(), deps.Files.PutPublish)
		f.PUT("/:id/unpublish", middleware.RequireUser(), deps.Files.PutUnpublish)
	}
}
