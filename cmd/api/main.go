package main

import (
	"log"

	"bookstore-jsonb/internal/config"
	"bookstore-jsonb/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Configuration loaded", map[string]interface{}{
		"app":    cfg.App.Name,
		"env":    cfg.App.Environment,
		"schema": cfg.Database.Schema,
	})

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve(cfg)
}
