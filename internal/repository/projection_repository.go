package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/models"
)

// PostgresProjectionRepository implements ProjectionRepository for PostgreSQL
type PostgresProjectionRepository struct {
	db *database.DB
}

// NewPostgresProjectionRepository creates a new projection repository
func NewPostgresProjectionRepository(db *database.DB) ProjectionRepository {
	return &PostgresProjectionRepository{db: db}
}

const projectionUpsert = `
	INSERT INTO projections (player_id, name, position, season, week, mean, stddev, stats, fetched_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (player_id, season, week) DO UPDATE SET
		name = EXCLUDED.name,
		position = EXCLUDED.position,
		mean = EXCLUDED.mean,
		stddev = EXCLUDED.stddev,
		stats = EXCLUDED.stats,
		fetched_at = EXCLUDED.fetched_at
`

// Upsert inserts or replaces a single player projection
func (p *PostgresProjectionRepository) Upsert(ctx context.Context, projection *models.PlayerProjection) error {
	_, err := p.db.GetPool().Exec(ctx, projectionUpsert,
		projection.PlayerID, projection.Name, projection.Position, projection.Season,
		projection.Week, projection.Mean, projection.StdDev, projection.Stats, projection.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert projection: %w", err)
	}

	return nil
}

// UpsertBatch inserts or replaces multiple projections in one transaction
func (p *PostgresProjectionRepository) UpsertBatch(ctx context.Context, projections []*models.PlayerProjection) error {
	if len(projections) == 0 {
		return nil
	}

	return p.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, projection := range projections {
			_, err := tx.Exec(ctx, projectionUpsert,
				projection.PlayerID, projection.Name, projection.Position, projection.Season,
				projection.Week, projection.Mean, projection.StdDev, projection.Stats, projection.FetchedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert projection for %s: %w", projection.PlayerID, err)
			}
		}
		return nil
	})
}

// GetWeek retrieves all projections for a season and week
func (p *PostgresProjectionRepository) GetWeek(ctx context.Context, season, week int) ([]*models.PlayerProjection, error) {
	query := `
		SELECT player_id, name, position, season, week, mean, stddev, stats, fetched_at
		FROM projections
		WHERE season = $1 AND week = $2
		ORDER BY player_id ASC
	`

	rows, err := p.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query projections: %w", err)
	}
	defer rows.Close()

	var projections []*models.PlayerProjection
	for rows.Next() {
		projection := &models.PlayerProjection{}
		err := rows.Scan(
			&projection.PlayerID, &projection.Name, &projection.Position, &projection.Season,
			&projection.Week, &projection.Mean, &projection.StdDev, &projection.Stats, &projection.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan projection: %w", err)
		}
		projections = append(projections, projection)
	}

	return projections, rows.Err()
}

// GetByPlayer retrieves a single player's projection for a season and week
func (p *PostgresProjectionRepository) GetByPlayer(ctx context.Context, playerID string, season, week int) (*models.PlayerProjection, error) {
	query := `
		SELECT player_id, name, position, season, week, mean, stddev, stats, fetched_at
		FROM projections
		WHERE player_id = $1 AND season = $2 AND week = $3
	`

	projection := &models.PlayerProjection{}
	err := p.db.GetPool().QueryRow(ctx, query, playerID, season, week).Scan(
		&projection.PlayerID, &projection.Name, &projection.Position, &projection.Season,
		&projection.Week, &projection.Mean, &projection.StdDev, &projection.Stats, &projection.FetchedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get projection: %w", err)
	}

	return projection, nil
}
