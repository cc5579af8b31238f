package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mlutsenko/bookshelf/internal/auth"
)

// RouterConfig bundles all controller dependencies for router construction.
type RouterConfig struct {
	AuthMiddleware *auth.Middleware
	Health         *HealthController
	Batch          *BatchController
	Import         *ReadingLogImportController
	ShelfRecords   *ShelfRecordsController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.Handler())
	{
		api.POST("/batch", cfg.Batch.Sync)
		api.POST("/shelves/:id/import", cfg.Import.Import)
		api.GET("/shelves/:id/records", cfg.ShelfRecords.List)
	}

	return router
}
