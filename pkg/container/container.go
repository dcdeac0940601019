package container

import (
	"context"
	"fmt"
	"time"

	"bookstore-jsonb/internal/config"
	"bookstore-jsonb/internal/infrastructure/database"
	"bookstore-jsonb/migrations"
	"bookstore-jsonb/pkg/jsondoc"

	"bookstore-jsonb/internal/domains/book/model"
	bookHandler "bookstore-jsonb/internal/domains/book/handler"
	bookRepo "bookstore-jsonb/internal/domains/book/repository"
	bookService "bookstore-jsonb/internal/domains/book/service"

	"github.com/rs/zerolog/log"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB

	// Document codecs, mỗi codec gắn với một shape cố định
	BookCodec  *jsondoc.Codec[model.Book]
	AuditCodec *jsondoc.Codec[model.AuditRecord]

	// Repositories
	BookRepo  bookRepo.RepositoryInterface
	AuditRepo bookRepo.AuditRepositoryInterface

	// Services
	BookService bookService.ServiceInterface

	// Handlers
	BookHandler *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, migrations) - phụ thuộc Config
// 3. Codecs - phụ thuộc Config
// 4. Repositories - phụ thuộc DB + codecs
// 5. Services - phụ thuộc Repositories
// 6. Handlers - phụ thuộc Services
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool, migrations.FS, cfg.Database.Schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	log.Info().Msg("✅ Database connected")

	// ========================================
	// STEP 2: CODECS, REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initCodecs()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initCodecs() {
	opts := jsondoc.Options{DisallowUnknownFields: c.Config.Document.StrictDecode}
	c.BookCodec = jsondoc.New[model.Book](opts)
	c.AuditCodec = jsondoc.New[model.AuditRecord](opts)
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	c.BookRepo = bookRepo.NewPostgresRepository(pool, c.BookCodec)
	c.AuditRepo = bookRepo.NewAuditRepository(pool, c.AuditCodec)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.DB.Pool, c.BookRepo, c.AuditRepo)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup giải phóng resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")
	if c.DB != nil {
		c.DB.Close()
	}
}
