package main

import (
	"context"
	"os"
	"time"

	"github.com/therealutkarshpriyadarshi/vidtube/internal/config"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/database"
	"github.com/therealutkarshpriyadarshi/vidtube/internal/logging"
)

var categoryNames = []string{
	"Cars and vehicles",
	"Comedy",
	"Education",
	"Gaming",
	"Entertainment",
	"Film and animation",
	"How-to and style",
	"Music",
	"News and politics",
	"People and blogs",
	"Pets and animals",
	"Science and technology",
	"Sports",
	"Travel and events",
}

// Seeds the static category set. Safe to re-run: existing names are
// skipped.
func main() {
	logger := logging.NewDefaultLogger()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := repo.SeedCategories(ctx, categoryNames); err != nil {
		logger.Fatalf("Failed to seed categories: %v", err)
	}

	logger.Infof("Seeded %d categories", len(categoryNames))
}
