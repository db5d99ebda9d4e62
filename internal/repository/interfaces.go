package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/leaguebook/internal/models"
)

// RunRepository defines the interface for simulation run persistence
type RunRepository interface {
	// PublishRun stores a completed run and makes it the current run for its
	// season and week in a single transaction. Any previously current run for
	// that week is removed with all of its rows.
	PublishRun(ctx context.Context, run *models.SimulationRun, outcomes []*models.TeamOutcome, quotes []*models.MatchupQuote, facts []*models.MarketFact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error)
	GetCurrent(ctx context.Context, season, week int) (*models.SimulationRun, error)
	GetOutcomes(ctx context.Context, runID uuid.UUID) ([]*models.TeamOutcome, error)
	GetQuotes(ctx context.Context, runID uuid.UUID) ([]*models.MatchupQuote, error)
	GetFacts(ctx context.Context, runID uuid.UUID) ([]*models.MarketFact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProjectionRepository defines the interface for player projection data access
type ProjectionRepository interface {
	Upsert(ctx context.Context, projection *models.PlayerProjection) error
	UpsertBatch(ctx context.Context, projections []*models.PlayerProjection) error
	GetWeek(ctx context.Context, season, week int) ([]*models.PlayerProjection, error)
	GetByPlayer(ctx context.Context, playerID string, season, week int) (*models.PlayerProjection, error)
}

// RosterRepository defines the interface for roster and matchup data access
type RosterRepository interface {
	UpsertRoster(ctx context.Context, roster *models.Roster, season, week int) error
	GetRosters(ctx context.Context, season, week int) ([]*models.Roster, error)
	GetMatchups(ctx context.Context, season, week int) ([]models.Matchup, error)
	UpsertMatchup(ctx context.Context, matchup models.Matchup) error
}
