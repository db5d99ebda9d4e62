package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/leaguebook/internal/models"
)

// recordingRosterRepository records upserts for assertions.
type recordingRosterRepository struct {
	rosters  []*models.Roster
	matchups []models.Matchup
}

func (r *recordingRosterRepository) UpsertRoster(ctx context.Context, roster *models.Roster, season, week int) error {
	r.rosters = append(r.rosters, roster)
	return nil
}

func (r *recordingRosterRepository) GetRosters(ctx context.Context, season, week int) ([]*models.Roster, error) {
	return r.rosters, nil
}

func (r *recordingRosterRepository) GetMatchups(ctx context.Context, season, week int) ([]models.Matchup, error) {
	return r.matchups, nil
}

func (r *recordingRosterRepository) UpsertMatchup(ctx context.Context, matchup models.Matchup) error {
	r.matchups = append(r.matchups, matchup)
	return nil
}

type recordingProjectionRepository struct {
	projections []*models.PlayerProjection
}

func (r *recordingProjectionRepository) Upsert(ctx context.Context, projection *models.PlayerProjection) error {
	r.projections = append(r.projections, projection)
	return nil
}

func (r *recordingProjectionRepository) UpsertBatch(ctx context.Context, projections []*models.PlayerProjection) error {
	r.projections = append(r.projections, projections...)
	return nil
}

func (r *recordingProjectionRepository) GetWeek(ctx context.Context, season, week int) ([]*models.PlayerProjection, error) {
	return r.projections, nil
}

func (r *recordingProjectionRepository) GetByPlayer(ctx context.Context, playerID string, season, week int) (*models.PlayerProjection, error) {
	return nil, models.ErrNotFound
}

func importLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeWeekFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const validWeekFile = `{
	"season": 2025,
	"week": 3,
	"rosters": [
		{
			"team_id": "team-a",
			"team_name": "Team A",
			"owner": "alice",
			"players": [
				{"player_id": "qb-1", "name": "QB One", "position": "QB", "mean": 18.5, "stddev": 5.0},
				{"player_id": "rb-1", "name": "RB One", "position": "RB", "mean": 12.0}
			]
		},
		{
			"team_id": "team-b",
			"team_name": "Team B",
			"owner": "bob",
			"players": [
				{"player_id": "qb-2", "name": "QB Two", "position": "QB", "mean": 16.0}
			]
		}
	],
	"matchups": [
		{"home_team_id": "team-a", "away_team_id": "team-b"}
	]
}`

// TestImportFile checks the happy path: rosters, projections and matchups
// all land in the repositories stamped with the file's season and week.
func TestImportFile(t *testing.T) {
	rosterRepo := &recordingRosterRepository{}
	projRepo := &recordingProjectionRepository{}
	svc := NewImportService(projRepo, rosterRepo, NewImportValidator(importLogger()), importLogger(), 100)

	metrics, err := svc.ImportFile(context.Background(), writeWeekFile(t, validWeekFile))
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.ImportedRosters)
	assert.Equal(t, 3, metrics.ImportedPlayers)
	assert.Equal(t, 1, metrics.ImportedMatchups)
	assert.Zero(t, metrics.ValidationErrors)
	assert.Zero(t, metrics.Errors)

	require.Len(t, projRepo.projections, 3)
	for _, p := range projRepo.projections {
		assert.Equal(t, 2025, p.Season)
		assert.Equal(t, 3, p.Week)
		assert.False(t, p.FetchedAt.IsZero())
	}

	require.Len(t, rosterRepo.matchups, 1)
	assert.Equal(t, 2025, rosterRepo.matchups[0].Season)
	assert.Equal(t, 3, rosterRepo.matchups[0].Week)
}

// TestImportFileSkipsInvalidRoster checks a bad roster is skipped without
// aborting the rest, and matchups touching it are dropped too.
func TestImportFileSkipsInvalidRoster(t *testing.T) {
	const file = `{
		"season": 2025,
		"week": 3,
		"rosters": [
			{
				"team_id": "team-a",
				"players": [
					{"player_id": "qb-1", "position": "QB", "mean": 18.5}
				]
			},
			{
				"team_id": "team-b",
				"players": [
					{"player_id": "bad-1", "position": "XX", "mean": 10.0}
				]
			}
		],
		"matchups": [
			{"home_team_id": "team-a", "away_team_id": "team-b"}
		]
	}`

	rosterRepo := &recordingRosterRepository{}
	projRepo := &recordingProjectionRepository{}
	svc := NewImportService(projRepo, rosterRepo, NewImportValidator(importLogger()), importLogger(), 100)

	metrics, err := svc.ImportFile(context.Background(), writeWeekFile(t, file))
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.ImportedRosters)
	assert.Equal(t, 0, metrics.ImportedMatchups)
	assert.Equal(t, 2, metrics.ValidationErrors)
	require.Len(t, rosterRepo.rosters, 1)
	assert.Equal(t, "team-a", rosterRepo.rosters[0].TeamID)
}

// TestImportFileMatchupConflict checks a team in two matchups fails the import.
func TestImportFileMatchupConflict(t *testing.T) {
	const file = `{
		"season": 2025,
		"week": 3,
		"rosters": [
			{"team_id": "team-a", "players": [{"player_id": "p1", "position": "QB", "mean": 10}]},
			{"team_id": "team-b", "players": [{"player_id": "p2", "position": "QB", "mean": 10}]},
			{"team_id": "team-c", "players": [{"player_id": "p3", "position": "QB", "mean": 10}]}
		],
		"matchups": [
			{"home_team_id": "team-a", "away_team_id": "team-b"},
			{"home_team_id": "team-b", "away_team_id": "team-c"}
		]
	}`

	svc := NewImportService(&recordingProjectionRepository{}, &recordingRosterRepository{}, NewImportValidator(importLogger()), importLogger(), 100)

	_, err := svc.ImportFile(context.Background(), writeWeekFile(t, file))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matchup conflict")
}

// TestImportFileRejectsMalformed covers unreadable and structurally empty files.
func TestImportFileRejectsMalformed(t *testing.T) {
	svc := NewImportService(&recordingProjectionRepository{}, &recordingRosterRepository{}, NewImportValidator(importLogger()), importLogger(), 100)

	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = svc.ImportFile(context.Background(), writeWeekFile(t, "not json"))
	require.Error(t, err)

	_, err = svc.ImportFile(context.Background(), writeWeekFile(t, `{"season": 2025, "week": 3, "rosters": []}`))
	require.Error(t, err)

	_, err = svc.ImportFile(context.Background(), writeWeekFile(t, `{"season": 0, "week": 3, "rosters": [{"team_id": "a"}]}`))
	require.Error(t, err)
}

// TestValidateProjection exercises the projection field checks.
func TestValidateProjection(t *testing.T) {
	v := NewImportValidator(importLogger())
	sd := -1.0

	tests := []struct {
		name string
		proj models.PlayerProjection
		want int
	}{
		{"valid", models.PlayerProjection{PlayerID: "p1", Position: models.PositionQB, Season: 2025, Week: 3, Mean: 18}, 0},
		{"missing player id", models.PlayerProjection{Position: models.PositionQB, Season: 2025, Week: 3}, 1},
		{"unknown position", models.PlayerProjection{PlayerID: "p1", Position: "XX", Season: 2025, Week: 3}, 1},
		{"negative mean", models.PlayerProjection{PlayerID: "p1", Position: models.PositionQB, Season: 2025, Week: 3, Mean: -2}, 1},
		{"implausible mean", models.PlayerProjection{PlayerID: "p1", Position: models.PositionQB, Season: 2025, Week: 3, Mean: 400}, 1},
		{"negative stddev", models.PlayerProjection{PlayerID: "p1", Position: models.PositionQB, Season: 2025, Week: 3, Mean: 10, StdDev: &sd}, 1},
		{"week out of range", models.PlayerProjection{PlayerID: "p1", Position: models.PositionQB, Season: 2025, Week: 23, Mean: 10}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, v.ValidateProjection(&tt.proj), tt.want)
		})
	}
}

// TestValidateMatchup exercises matchup checks against the imported team set.
func TestValidateMatchup(t *testing.T) {
	v := NewImportValidator(importLogger())
	teams := map[string]bool{"team-a": true, "team-b": true}

	assert.Empty(t, v.ValidateMatchup(models.Matchup{HomeTeamID: "team-a", AwayTeamID: "team-b"}, teams))
	assert.NotEmpty(t, v.ValidateMatchup(models.Matchup{HomeTeamID: "team-a", AwayTeamID: "team-a"}, teams))
	assert.NotEmpty(t, v.ValidateMatchup(models.Matchup{HomeTeamID: "team-a", AwayTeamID: "team-z"}, teams))
	assert.NotEmpty(t, v.ValidateMatchup(models.Matchup{}, teams))
}
