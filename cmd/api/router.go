package main

import (
	"context"
	"net/http"
	"time"

	"bookstore-jsonb/internal/infrastructure/database"
	"bookstore-jsonb/internal/shared/middleware"
	"bookstore-jsonb/internal/shared/response"
	"bookstore-jsonb/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c.DB, c.Config.App.Version))
		c.BookHandler.RegisterRoutes(v1)
	}

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================

type healthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() (*database.PoolStats, error)
}

func healthCheckHandler(db healthChecker, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   version,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := db.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		} else if stats, err := db.Stats(); err == nil {
			health["pool"] = stats
		}
		health["services"] = gin.H{"database": dbStatus}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
