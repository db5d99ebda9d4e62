// Package main provides a read-only CLI for inspecting the current
// published run for a week.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/leaguebook/internal/config"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/models"
	"github.com/yourusername/leaguebook/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	season     int
	week       int
	logger     *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVarP(&season, "season", "s", 0, "Season (defaults to league.season)")
	rootCmd.PersistentFlags().IntVarP(&week, "week", "w", 0, "Week to display")
	rootCmd.AddCommand(outcomesCmd)
	rootCmd.AddCommand(factsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Display the published quotes for a week",
	Long:  `Displays the current run's matchup quotes, team outcomes and market facts without triggering a simulation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayQuotes()
	},
}

var outcomesCmd = &cobra.Command{
	Use:   "outcomes",
	Short: "Display per-team score distributions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayOutcomes()
	},
}

var factsCmd = &cobra.Command{
	Use:   "facts",
	Short: "Display league-wide market facts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayFacts()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setupDependencies() error {
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if season == 0 {
		season = cfg.League.Season
	}
	if week == 0 {
		return fmt.Errorf("a week is required (use --week)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return nil
}

func currentRun(ctx context.Context) (*models.SimulationRun, error) {
	run, err := repos.Run.GetCurrent(ctx, season, week)
	if errors.Is(err, models.ErrNoCurrentRun) {
		return nil, fmt.Errorf("no published run for season %d week %d", season, week)
	}
	return run, err
}

func displayQuotes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run, err := currentRun(ctx)
	if err != nil {
		return err
	}
	quotes, err := repos.Run.GetQuotes(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load quotes: %w", err)
	}

	printRunHeader(run)
	stake := decimal.NewFromInt(100)
	for _, q := range quotes {
		fmt.Printf("%s vs %s: %.1f%%/%.1f%%  ml %s/%s",
			q.HomeTeamID, q.AwayTeamID,
			q.HomeWinProb*100, q.AwayWinProb*100,
			models.FormatMoneyline(q.HomeMoneyline), models.FormatMoneyline(q.AwayMoneyline))
		homePayout, homeErr := models.PotentialPayout(q.HomeMoneyline, stake)
		awayPayout, awayErr := models.PotentialPayout(q.AwayMoneyline, stake)
		if homeErr == nil && awayErr == nil {
			fmt.Printf("  pays %s/%s per 100", homePayout.StringFixed(2), awayPayout.StringFixed(2))
		}
		if q.TotalLine != nil {
			fmt.Printf("  o/u %.1f (%s/%s)",
				*q.TotalLine, models.FormatMoneyline(*q.OverPrice), models.FormatMoneyline(*q.UnderPrice))
		}
		fmt.Println()
	}
	return nil
}

func displayOutcomes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run, err := currentRun(ctx)
	if err != nil {
		return err
	}
	outcomes, err := repos.Run.GetOutcomes(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load outcomes: %w", err)
	}

	printRunHeader(run)
	for _, o := range outcomes {
		fmt.Printf("%-24s mean %7.2f  sd %6.2f  p10 %7.2f  median %7.2f  p90 %7.2f\n",
			o.TeamName, o.Mean, o.StdDev, o.Percentiles.P10, o.Percentiles.P50, o.Percentiles.P90)
	}
	return nil
}

func displayFacts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	run, err := currentRun(ctx)
	if err != nil {
		return err
	}
	facts, err := repos.Run.GetFacts(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to load facts: %w", err)
	}

	printRunHeader(run)
	for _, f := range facts {
		fmt.Printf("%-15s %-12s %.1f%%  %s\n",
			f.Kind, f.TeamID, f.Probability*100, models.FormatMoneyline(f.Moneyline))
	}
	return nil
}

func printRunHeader(run *models.SimulationRun) {
	fmt.Printf("Run %s: season %d week %d, %d trials (published %s)\n\n",
		run.ID, run.Season, run.Week, run.Trials, run.CreatedAt.UTC().Format(time.RFC3339))
}
