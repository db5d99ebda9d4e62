// Package main provides the entry point for the week data import tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yourusername/leaguebook/internal/config"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/logger"
	"github.com/yourusername/leaguebook/internal/repository"
	"github.com/yourusername/leaguebook/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		filePath   = flag.String("file", "", "Path to the week JSON file to import")
		batchSize  = flag.Int("batch-size", 100, "Projection upsert batch size")
	)
	flag.Parse()

	if *filePath == "" {
		log.Fatalf("A week file is required (use -file)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	ctx := context.Background()
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.Fatalf("Failed to create repositories: %v", err)
	}
	importer := service.NewImportService(
		repos.Projection,
		repos.Roster,
		service.NewImportValidator(appLog),
		appLog,
		*batchSize,
	)

	metrics, err := importer.ImportFile(ctx, *filePath)
	if err != nil {
		appLog.Fatalf("Import failed: %v", err)
	}
	if metrics.ValidationErrors > 0 || metrics.Errors > 0 {
		appLog.Warnf("Import finished with problems: %s", metrics)
	}
	fmt.Println(metrics)
}
