package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/actiondesk/action-tracker/pkg/validator"

	"github.com/actiondesk/action-tracker/internal/adapter/handler"
	"github.com/actiondesk/action-tracker/internal/adapter/repository"
	"github.com/actiondesk/action-tracker/internal/infrastructure/cache"
	"github.com/actiondesk/action-tracker/internal/infrastructure/database"
	"github.com/actiondesk/action-tracker/internal/usecase/actionitem"
	"github.com/actiondesk/action-tracker/internal/usecase/meeting"
	pkgai "github.com/actiondesk/action-tracker/pkg/ai"
	"github.com/actiondesk/action-tracker/pkg/config"
)

// @title           Action Tracker API
// @version         1.0
// @description     API for tracking meeting action items with LLM-backed extraction

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via the migrate script.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run scripts/migrate.go for schema changes in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	actionItemRepo := repository.NewActionItemRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize extraction components
	log.Println("🤖 Initializing extraction components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	runLocker := cache.NewRedisLock(redisClient)

	// Initialize services
	log.Println("✨ Initializing services...")
	actionItemService := actionitem.NewService(actionItemRepo, meetingRepo, groqClient, runLocker, logger)
	meetingService := meeting.NewService(meetingRepo)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	actionItemHandler := handler.NewActionItemHandler(actionItemService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, actionItemService, logger)
	log.Println("✅ Handlers initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, actionItemHandler, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
