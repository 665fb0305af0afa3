package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/intakehq/document-router-api/internal/classifier"
	"github.com/intakehq/document-router-api/internal/config"
	"github.com/intakehq/document-router-api/internal/db"
	"github.com/intakehq/document-router-api/internal/dispatcher"
	"github.com/intakehq/document-router-api/internal/handlers"
	"github.com/intakehq/document-router-api/internal/memory"
	"github.com/intakehq/document-router-api/internal/repository"
	"github.com/intakehq/document-router-api/internal/router"
	"github.com/intakehq/document-router-api/internal/storage"
	"github.com/intakehq/document-router-api/internal/utils"
)

const migrationsDir = "internal/db/migrations"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize mirror database
	database, err := db.NewSQLiteDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to open database", "error", err)
	}
	defer database.Close()

	// Run migrations
	if err := db.RunMigrations(cfg.DatabasePath, migrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	// Memory store: JSON log file + sqlite mirror
	repo := repository.NewRepository(database)
	store := memory.NewStore(cfg.LogFile, repo, logger)

	// Intent classifier with lazily constructed zero-shot client
	provider := classifier.NewProvider(func() (classifier.ZeroShot, error) {
		return classifier.NewHFZeroShot(cfg.HFAPIKey, cfg.HFModel, logger)
	}, logger)
	cls := classifier.New(provider, logger)

	disp := dispatcher.New(cls, logger)

	// Optional raw document archive
	var archive storage.Storage
	if cfg.S3Enabled {
		archive, err = storage.NewS3Storage(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", "error", err)
		}
	}

	// Setup HTTP router
	docHandler := handlers.NewDocumentHandler(disp, store, archive, cfg.MaxFileSize, logger)
	handler := router.NewRouter(docHandler, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
