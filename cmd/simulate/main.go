// Package main provides the entry point for the weekly simulation CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/leaguebook/internal/config"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/engine"
	"github.com/yourusername/leaguebook/internal/health"
	"github.com/yourusername/leaguebook/internal/logger"
	"github.com/yourusername/leaguebook/internal/metrics"
	"github.com/yourusername/leaguebook/internal/models"
	"github.com/yourusername/leaguebook/internal/repository"
	"github.com/yourusername/leaguebook/internal/scheduler"
	"github.com/yourusername/leaguebook/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		season     = flag.Int("season", 0, "Season to simulate (defaults to league.season)")
		week       = flag.Int("week", 0, "Week to simulate (defaults to the current week)")
		trials     = flag.Int("trials", 0, "Override trial count")
		seed       = flag.Int64("seed", 0, "Override RNG seed")
		workers    = flag.Int("workers", 0, "Override worker count")
		daemon     = flag.Bool("daemon", false, "Run the weekly scheduler instead of a single simulation")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath)
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	svc := buildService(cfg, db, appLog)

	if *daemon {
		runScheduler(ctx, cfg, db, svc, appLog)
		return
	}

	params := service.RunParams{
		Season:  resolveSeason(*season, cfg),
		Week:    resolveWeek(*week, cfg, appLog),
		Trials:  *trials,
		Seed:    *seed,
		Workers: *workers,
	}

	result, err := svc.RunWeek(ctx, params)
	if err != nil {
		appLog.Fatalf("Simulation failed: %v", err)
	}
	fmt.Print(engine.GenerateConsoleReport(result))
}

func loadConfigWithSecrets(path string) *config.Config {
	cfg, err := config.Load(path)
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
	return cfg
}

func buildService(cfg *config.Config, db *database.DB, appLog *logrus.Logger) *service.SimulationService {
	builder := engine.NewDistributionBuilder(cfg.Simulation.DefaultCV, cfg.Simulation.MeanFloor)
	eng, err := engine.NewEngine(builder, engine.OddsConfig{
		Vig:             cfg.Odds.Vig,
		TotalPercentile: cfg.Odds.TotalPercentile,
	}, appLog)
	if err != nil {
		appLog.Fatalf("Failed to create engine: %v", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.Fatalf("Failed to create repositories: %v", err)
	}
	svc, err := service.NewSimulationService(
		eng,
		repos,
		cfg.League.SlotTemplate(),
		service.Defaults{
			Trials:  cfg.Simulation.Trials,
			Seed:    cfg.Simulation.Seed,
			Workers: cfg.Simulation.Workers,
		},
		appLog,
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
	)
	if err != nil {
		appLog.Fatalf("Failed to create simulation service: %v", err)
	}
	return svc
}

func resolveSeason(flagSeason int, cfg *config.Config) int {
	if flagSeason > 0 {
		return flagSeason
	}
	return cfg.League.Season
}

func resolveWeek(flagWeek int, cfg *config.Config, appLog *logrus.Logger) int {
	if flagWeek > 0 {
		return flagWeek
	}
	weekOf, err := weekFunc(cfg)
	if err != nil {
		appLog.Fatalf("Cannot determine current week: %v (pass -week explicitly)", err)
	}
	_, week := weekOf(time.Now().UTC())
	return week
}

func weekFunc(cfg *config.Config) (scheduler.WeekFunc, error) {
	if cfg.Schedule.SeasonStart == "" {
		return nil, fmt.Errorf("schedule.season_start is not configured")
	}
	start, err := time.Parse("2006-01-02", cfg.Schedule.SeasonStart)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule.season_start: %w", err)
	}
	return scheduler.SeasonWeek(cfg.League.Season, start, cfg.Schedule.MaxWeek), nil
}

func runScheduler(ctx context.Context, cfg *config.Config, db *database.DB, svc *service.SimulationService, appLog *logrus.Logger) {
	if !cfg.Schedule.Enabled {
		appLog.Fatalf("schedule.enabled must be true to run in daemon mode")
	}

	weekOf, err := weekFunc(cfg)
	if err != nil {
		appLog.Fatalf("Cannot build week resolver: %v", err)
	}

	sched := scheduler.NewScheduler(svc, appLog)
	if err := sched.ScheduleWeeklyRun(cfg.Schedule.WeeklyRun, weekOf); err != nil {
		appLog.Fatalf("Failed to schedule weekly run: %v", err)
	}
	if err := sched.Start(); err != nil {
		appLog.Fatalf("Failed to start scheduler: %v", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Logger:      appLog,
		DB:          db,
	})
	healthServer.RegisterCheck("scheduler", func(ctx context.Context) error {
		if !sched.IsRunning() {
			return fmt.Errorf("scheduler is not running")
		}
		return nil
	})
	healthServer.RegisterCheck("current_run", currentRunCheck(svc, weekOf))
	if err := healthServer.Start(ctx); err != nil {
		appLog.Fatalf("Failed to start health server: %v", err)
	}
	healthServer.SetReady(true)

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg, appLog)
	}

	appLog.WithFields(logrus.Fields{
		"expression": cfg.Schedule.WeeklyRun,
		"next_run":   sched.GetNextRun().Format(time.RFC3339),
	}).Info("Scheduler running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	cancel()
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}
	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error during metrics server shutdown")
		}
	}

	appLog.Info("Scheduler shut down successfully")
}

// currentRunCheck reports an error when the active week's published run
// cannot be read. A week with no run yet is not an error; the first
// scheduled simulation has simply not fired.
func currentRunCheck(svc *service.SimulationService, weekOf scheduler.WeekFunc) health.Check {
	return func(ctx context.Context) error {
		season, week := weekOf(time.Now().UTC())
		_, _, _, _, err := svc.CurrentRun(ctx, season, week)
		if err != nil && !errors.Is(err, models.ErrNoCurrentRun) {
			return fmt.Errorf("current run for season %d week %d: %w", season, week, err)
		}
		return nil
	}
}

func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()

	return server
}
