package database

import (
	"context"
	"fmt"

	"github.com/yourusername/leaguebook/internal/config"
)

// schemaStatements creates the tables the application writes to. The DDL
// is idempotent so startup can run it on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS projections (
		player_id   TEXT NOT NULL,
		name        TEXT NOT NULL,
		position    TEXT NOT NULL,
		season      INT NOT NULL,
		week        INT NOT NULL,
		mean        DOUBLE PRECISION NOT NULL,
		stddev      DOUBLE PRECISION,
		stats       JSONB,
		fetched_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (player_id, season, week)
	)`,
	`CREATE TABLE IF NOT EXISTS rosters (
		team_id   TEXT PRIMARY KEY,
		team_name TEXT NOT NULL,
		owner     TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS roster_players (
		team_id   TEXT NOT NULL REFERENCES rosters(team_id) ON DELETE CASCADE,
		player_id TEXT NOT NULL,
		season    INT NOT NULL,
		week      INT NOT NULL,
		PRIMARY KEY (team_id, player_id, season, week)
	)`,
	`CREATE TABLE IF NOT EXISTS matchups (
		season       INT NOT NULL,
		week         INT NOT NULL,
		home_team_id TEXT NOT NULL REFERENCES rosters(team_id),
		away_team_id TEXT NOT NULL REFERENCES rosters(team_id),
		PRIMARY KEY (season, week, home_team_id, away_team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS simulation_runs (
		id         UUID PRIMARY KEY,
		season     INT NOT NULL,
		week       INT NOT NULL,
		trials     INT NOT NULL,
		seed       BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS current_runs (
		season INT NOT NULL,
		week   INT NOT NULL,
		run_id UUID NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		PRIMARY KEY (season, week)
	)`,
	`CREATE TABLE IF NOT EXISTS team_outcomes (
		run_id         UUID NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		team_id        TEXT NOT NULL,
		team_name      TEXT NOT NULL,
		mean           DOUBLE PRECISION NOT NULL,
		variance       DOUBLE PRECISION NOT NULL,
		stddev         DOUBLE PRECISION NOT NULL,
		p10            DOUBLE PRECISION NOT NULL,
		p25            DOUBLE PRECISION NOT NULL,
		p50            DOUBLE PRECISION NOT NULL,
		p75            DOUBLE PRECISION NOT NULL,
		p90            DOUBLE PRECISION NOT NULL,
		unfilled_slots TEXT[],
		PRIMARY KEY (run_id, team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS matchup_quotes (
		run_id        UUID NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		season        INT NOT NULL,
		week          INT NOT NULL,
		home_team_id  TEXT NOT NULL,
		away_team_id  TEXT NOT NULL,
		home_win_prob DOUBLE PRECISION NOT NULL,
		away_win_prob DOUBLE PRECISION NOT NULL,
		home_moneyline INT NOT NULL,
		away_moneyline INT NOT NULL,
		total_line    DOUBLE PRECISION,
		over_price    INT,
		under_price   INT,
		tie_trials    INT NOT NULL,
		PRIMARY KEY (run_id, home_team_id, away_team_id)
	)`,
	`CREATE TABLE IF NOT EXISTS market_facts (
		run_id      UUID NOT NULL REFERENCES simulation_runs(id) ON DELETE CASCADE,
		season      INT NOT NULL,
		week        INT NOT NULL,
		kind        TEXT NOT NULL,
		team_id     TEXT NOT NULL,
		probability DOUBLE PRECISION NOT NULL,
		moneyline   INT NOT NULL,
		PRIMARY KEY (run_id, kind, team_id)
	)`,
}

// Initialize creates a database connection pool and ensures the schema exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	// Create connection pool
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureSchema applies the application schema to the connected database
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
