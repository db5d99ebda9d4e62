package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/models"
)

// PostgresRunRepository implements RunRepository for PostgreSQL
type PostgresRunRepository struct {
	db *database.DB
}

// NewPostgresRunRepository creates a new run repository
func NewPostgresRunRepository(db *database.DB) RunRepository {
	return &PostgresRunRepository{db: db}
}

// PublishRun stores a completed run and swaps the current-run pointer for its
// week inside one transaction. The previous run for the week is deleted; its
// outcome, quote and fact rows go with it via cascade. Readers either see the
// old run or the new one, never a mix.
func (r *PostgresRunRepository) PublishRun(ctx context.Context, run *models.SimulationRun, outcomes []*models.TeamOutcome, quotes []*models.MatchupQuote, facts []*models.MarketFact) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		// Find the run being replaced, if any
		var oldRunID *uuid.UUID
		err := tx.QueryRow(ctx,
			`SELECT run_id FROM current_runs WHERE season = $1 AND week = $2`,
			run.Season, run.Week,
		).Scan(&oldRunID)
		if err != nil && err != pgx.ErrNoRows {
			return fmt.Errorf("failed to look up current run: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO simulation_runs (id, season, week, trials, seed, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			run.ID, run.Season, run.Week, run.Trials, run.Seed, run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert simulation run: %w", err)
		}

		if err := copyOutcomes(ctx, tx, outcomes); err != nil {
			return err
		}

		for _, q := range quotes {
			_, err := tx.Exec(ctx,
				`INSERT INTO matchup_quotes (run_id, season, week, home_team_id, away_team_id,
				                             home_win_prob, away_win_prob, home_moneyline, away_moneyline,
				                             total_line, over_price, under_price, tie_trials)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
				q.RunID, q.Season, q.Week, q.HomeTeamID, q.AwayTeamID,
				q.HomeWinProb, q.AwayWinProb, q.HomeMoneyline, q.AwayMoneyline,
				q.TotalLine, q.OverPrice, q.UnderPrice, q.TieTrials,
			)
			if err != nil {
				return fmt.Errorf("failed to insert matchup quote: %w", err)
			}
		}

		for _, f := range facts {
			_, err := tx.Exec(ctx,
				`INSERT INTO market_facts (run_id, season, week, kind, team_id, probability, moneyline)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				f.RunID, f.Season, f.Week, f.Kind, f.TeamID, f.Probability, f.Moneyline,
			)
			if err != nil {
				return fmt.Errorf("failed to insert market fact: %w", err)
			}
		}

		// Swap the pointer to the new run
		_, err = tx.Exec(ctx,
			`INSERT INTO current_runs (season, week, run_id)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (season, week) DO UPDATE SET run_id = EXCLUDED.run_id`,
			run.Season, run.Week, run.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update current run pointer: %w", err)
		}

		// Drop the replaced run; dependent rows cascade
		if oldRunID != nil {
			_, err = tx.Exec(ctx, `DELETE FROM simulation_runs WHERE id = $1`, *oldRunID)
			if err != nil {
				return fmt.Errorf("failed to delete replaced run: %w", err)
			}
		}

		return nil
	})
}

// copyOutcomes bulk-inserts team outcomes within the publish transaction
func copyOutcomes(ctx context.Context, tx pgx.Tx, outcomes []*models.TeamOutcome) error {
	if len(outcomes) == 0 {
		return nil
	}

	columns := []string{
		"run_id", "team_id", "team_name", "mean", "variance", "stddev",
		"p10", "p25", "p50", "p75", "p90", "unfilled_slots",
	}

	rows := make([][]interface{}, len(outcomes))
	for i, o := range outcomes {
		rows[i] = []interface{}{
			o.RunID, o.TeamID, o.TeamName, o.Mean, o.Variance, o.StdDev,
			o.Percentiles.P10, o.Percentiles.P25, o.Percentiles.P50,
			o.Percentiles.P75, o.Percentiles.P90, o.UnfilledSlots,
		}
	}

	count, err := tx.CopyFrom(ctx, pgx.Identifier{"team_outcomes"}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to batch insert team outcomes: %w", err)
	}

	if count != int64(len(outcomes)) {
		return fmt.Errorf("inserted %d outcome rows, expected %d", count, len(outcomes))
	}

	return nil
}

// GetByID retrieves a simulation run by ID
func (r *PostgresRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error) {
	query := `
		SELECT id, season, week, trials, seed, created_at
		FROM simulation_runs WHERE id = $1
	`

	run := &models.SimulationRun{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Season, &run.Week, &run.Trials, &run.Seed, &run.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}

	return run, nil
}

// GetCurrent retrieves the current run for a season and week
func (r *PostgresRunRepository) GetCurrent(ctx context.Context, season, week int) (*models.SimulationRun, error) {
	query := `
		SELECT sr.id, sr.season, sr.week, sr.trials, sr.seed, sr.created_at
		FROM current_runs cr
		JOIN simulation_runs sr ON sr.id = cr.run_id
		WHERE cr.season = $1 AND cr.week = $2
	`

	run := &models.SimulationRun{}
	err := r.db.GetPool().QueryRow(ctx, query, season, week).Scan(
		&run.ID, &run.Season, &run.Week, &run.Trials, &run.Seed, &run.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNoCurrentRun
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get current run: %w", err)
	}

	return run, nil
}

// GetOutcomes retrieves all team outcomes for a run
func (r *PostgresRunRepository) GetOutcomes(ctx context.Context, runID uuid.UUID) ([]*models.TeamOutcome, error) {
	query := `
		SELECT run_id, team_id, team_name, mean, variance, stddev,
		       p10, p25, p50, p75, p90, unfilled_slots
		FROM team_outcomes
		WHERE run_id = $1
		ORDER BY team_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []*models.TeamOutcome
	for rows.Next() {
		o := &models.TeamOutcome{}
		err := rows.Scan(
			&o.RunID, &o.TeamID, &o.TeamName, &o.Mean, &o.Variance, &o.StdDev,
			&o.Percentiles.P10, &o.Percentiles.P25, &o.Percentiles.P50,
			&o.Percentiles.P75, &o.Percentiles.P90, &o.UnfilledSlots,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// GetQuotes retrieves all matchup quotes for a run
func (r *PostgresRunRepository) GetQuotes(ctx context.Context, runID uuid.UUID) ([]*models.MatchupQuote, error) {
	query := `
		SELECT run_id, season, week, home_team_id, away_team_id,
		       home_win_prob, away_win_prob, home_moneyline, away_moneyline,
		       total_line, over_price, under_price, tie_trials
		FROM matchup_quotes
		WHERE run_id = $1
		ORDER BY home_team_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchup quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*models.MatchupQuote
	for rows.Next() {
		q := &models.MatchupQuote{}
		err := rows.Scan(
			&q.RunID, &q.Season, &q.Week, &q.HomeTeamID, &q.AwayTeamID,
			&q.HomeWinProb, &q.AwayWinProb, &q.HomeMoneyline, &q.AwayMoneyline,
			&q.TotalLine, &q.OverPrice, &q.UnderPrice, &q.TieTrials,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matchup quote: %w", err)
		}
		quotes = append(quotes, q)
	}

	return quotes, rows.Err()
}

// GetFacts retrieves all market facts for a run
func (r *PostgresRunRepository) GetFacts(ctx context.Context, runID uuid.UUID) ([]*models.MarketFact, error) {
	query := `
		SELECT run_id, season, week, kind, team_id, probability, moneyline
		FROM market_facts
		WHERE run_id = $1
		ORDER BY kind ASC, team_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query market facts: %w", err)
	}
	defer rows.Close()

	var facts []*models.MarketFact
	for rows.Next() {
		f := &models.MarketFact{}
		err := rows.Scan(&f.RunID, &f.Season, &f.Week, &f.Kind, &f.TeamID, &f.Probability, &f.Moneyline)
		if err != nil {
			return nil, fmt.Errorf("failed to scan market fact: %w", err)
		}
		facts = append(facts, f)
	}

	return facts, rows.Err()
}

// Delete removes a simulation run and its dependent rows
func (r *PostgresRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, `DELETE FROM simulation_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete simulation run: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
