package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/leaguebook/internal/database"
	"github.com/yourusername/leaguebook/internal/models"
)

// PostgresRosterRepository implements RosterRepository for PostgreSQL
type PostgresRosterRepository struct {
	db *database.DB
}

// NewPostgresRosterRepository creates a new roster repository
func NewPostgresRosterRepository(db *database.DB) RosterRepository {
	return &PostgresRosterRepository{db: db}
}

// UpsertRoster replaces a team's roster membership for a week
func (r *PostgresRosterRepository) UpsertRoster(ctx context.Context, roster *models.Roster, season, week int) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO rosters (team_id, team_name, owner)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (team_id) DO UPDATE SET team_name = EXCLUDED.team_name, owner = EXCLUDED.owner`,
			roster.TeamID, roster.TeamName, roster.Owner,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert roster: %w", err)
		}

		_, err = tx.Exec(ctx,
			`DELETE FROM roster_players WHERE team_id = $1 AND season = $2 AND week = $3`,
			roster.TeamID, season, week,
		)
		if err != nil {
			return fmt.Errorf("failed to clear roster players: %w", err)
		}

		for _, player := range roster.Players {
			_, err := tx.Exec(ctx,
				`INSERT INTO roster_players (team_id, player_id, season, week)
				 VALUES ($1, $2, $3, $4)`,
				roster.TeamID, player.PlayerID, season, week,
			)
			if err != nil {
				return fmt.Errorf("failed to insert roster player %s: %w", player.PlayerID, err)
			}
		}

		return nil
	})
}

// GetRosters retrieves all rosters for a week with their player projections
func (r *PostgresRosterRepository) GetRosters(ctx context.Context, season, week int) ([]*models.Roster, error) {
	query := `
		SELECT ro.team_id, ro.team_name, ro.owner,
		       p.player_id, p.name, p.position, p.season, p.week, p.mean, p.stddev, p.stats, p.fetched_at
		FROM rosters ro
		JOIN roster_players rp ON rp.team_id = ro.team_id AND rp.season = $1 AND rp.week = $2
		JOIN projections p ON p.player_id = rp.player_id AND p.season = rp.season AND p.week = rp.week
		ORDER BY ro.team_id ASC, p.player_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query rosters: %w", err)
	}
	defer rows.Close()

	byTeam := make(map[string]*models.Roster)
	var order []string
	for rows.Next() {
		var teamID, teamName, owner string
		projection := models.PlayerProjection{}
		err := rows.Scan(
			&teamID, &teamName, &owner,
			&projection.PlayerID, &projection.Name, &projection.Position, &projection.Season,
			&projection.Week, &projection.Mean, &projection.StdDev, &projection.Stats, &projection.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}

		roster, ok := byTeam[teamID]
		if !ok {
			roster = &models.Roster{TeamID: teamID, TeamName: teamName, Owner: owner}
			byTeam[teamID] = roster
			order = append(order, teamID)
		}
		roster.Players = append(roster.Players, projection)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rosters := make([]*models.Roster, 0, len(order))
	for _, teamID := range order {
		rosters = append(rosters, byTeam[teamID])
	}

	return rosters, nil
}

// GetMatchups retrieves the matchup schedule for a week
func (r *PostgresRosterRepository) GetMatchups(ctx context.Context, season, week int) ([]models.Matchup, error) {
	query := `
		SELECT season, week, home_team_id, away_team_id
		FROM matchups
		WHERE season = $1 AND week = $2
		ORDER BY home_team_id ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season, week)
	if err != nil {
		return nil, fmt.Errorf("failed to query matchups: %w", err)
	}
	defer rows.Close()

	var matchups []models.Matchup
	for rows.Next() {
		m := models.Matchup{}
		err := rows.Scan(&m.Season, &m.Week, &m.HomeTeamID, &m.AwayTeamID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan matchup: %w", err)
		}
		matchups = append(matchups, m)
	}

	return matchups, rows.Err()
}

// UpsertMatchup inserts a matchup if it does not already exist
func (r *PostgresRosterRepository) UpsertMatchup(ctx context.Context, matchup models.Matchup) error {
	_, err := r.db.GetPool().Exec(ctx,
		`INSERT INTO matchups (season, week, home_team_id, away_team_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT DO NOTHING`,
		matchup.Season, matchup.Week, matchup.HomeTeamID, matchup.AwayTeamID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert matchup: %w", err)
	}

	return nil
}
