package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"discography/internal/config"
	"discography/internal/handlers"
	"discography/internal/models"
	"discography/internal/repositories"
	"discography/internal/router"
	"discography/internal/store"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	gin.SetMode(cfg.GinMode)

	catalogue, err := loadCatalogue(cfg)
	if err != nil {
		slog.Error("Failed to load catalogue", "error", err, "source", cfg.SeedSource)
		os.Exit(1)
	}

	dispatcher := handlers.NewDispatcher(router.Catalogue(), handlers.NewResourceHandler(catalogue))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handlers.NewEngine(dispatcher),
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port, "mode", cfg.GinMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// loadCatalogue builds the in-memory store from the configured seed source
func loadCatalogue(cfg *config.Config) (*store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.SeedSource != config.SeedSourceMongo {
		return repositories.LoadStore(ctx, repositories.NewFileSeedRepository(cfg.SeedDir))
	}

	// Initialize database
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongodbDatabase)
	if err != nil {
		return nil, err
	}
	defer db.Close(context.Background())

	return repositories.LoadStore(ctx, repositories.NewMongoSeedRepository(db))
}
