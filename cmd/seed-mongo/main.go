package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"discography/internal/config"
	"discography/internal/models"
	"discography/internal/repositories"
)

func main() {
	export := flag.Bool("export", false, "write the MongoDB seed back to SEED_DIR instead of importing it")
	flag.Parse()

	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.RequireMongo(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Initialize database
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongodbDatabase)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	mongoRepo := repositories.NewMongoSeedRepository(db)

	if *export {
		err = exportSeed(ctx, mongoRepo, cfg.SeedDir)
	} else {
		err = importSeed(ctx, mongoRepo, cfg.SeedDir)
	}
	if err != nil {
		slog.Error("Seed transfer failed", "error", err, "dir", cfg.SeedDir, "export", *export)
		os.Exit(1)
	}
}

// importSeed copies the JSON seed files in dir into MongoDB
func importSeed(ctx context.Context, mongoRepo repositories.MongoSeedRepository, dir string) error {
	seed, err := repositories.NewFileSeedRepository(dir).Load(ctx)
	if err != nil {
		return err
	}

	if err := mongoRepo.Replace(ctx, seed); err != nil {
		return err
	}

	slog.Info("Seed imported",
		"artists", len(seed.Artists),
		"albums", len(seed.Albums),
		"songs", len(seed.Songs))
	fmt.Printf("Imported %d artists, %d albums, %d songs\n", len(seed.Artists), len(seed.Albums), len(seed.Songs))
	return nil
}

// exportSeed writes the MongoDB seed to JSON seed files in dir
func exportSeed(ctx context.Context, mongoRepo repositories.MongoSeedRepository, dir string) error {
	seed, err := mongoRepo.Load(ctx)
	if err != nil {
		return err
	}

	if err := repositories.WriteSeedFiles(dir, seed); err != nil {
		return err
	}

	slog.Info("Seed exported",
		"artists", len(seed.Artists),
		"albums", len(seed.Albums),
		"songs", len(seed.Songs))
	fmt.Printf("Exported %d artists, %d albums, %d songs\n", len(seed.Artists), len(seed.Albums), len(seed.Songs))
	return nil
}
