package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/leaguebook/internal/logger"
	"github.com/yourusername/leaguebook/internal/models"
	"github.com/yourusername/leaguebook/internal/repository"
)

// WeekFile is the on-disk format for one week of league data: every
// team's roster with player projections, and the week's matchup pairings.
type WeekFile struct {
	Season   int              `json:"season"`
	Week     int              `json:"week"`
	Rosters  []models.Roster  `json:"rosters"`
	Matchups []models.Matchup `json:"matchups"`
}

// ImportService handles the week data import workflow
type ImportService struct {
	projectionRepo repository.ProjectionRepository
	rosterRepo     repository.RosterRepository
	validator      *ImportValidator
	metrics        *ImportMetrics
	log            *logrus.Logger
	auditLog       *logger.ImportLogger
	batchSize      int
}

// NewImportService creates a new import service
func NewImportService(
	projectionRepo repository.ProjectionRepository,
	rosterRepo repository.RosterRepository,
	validator *ImportValidator,
	log *logrus.Logger,
	batchSize int,
) *ImportService {
	if batchSize <= 0 {
		batchSize = 100
	}

	return &ImportService{
		projectionRepo: projectionRepo,
		rosterRepo:     rosterRepo,
		validator:      validator,
		metrics:        NewImportMetrics(),
		log:            log,
		auditLog:       logger.NewImportLogger(log),
		batchSize:      batchSize,
	}
}

// ImportFile reads, validates and persists a week file. Invalid rosters and
// matchups are skipped and counted; a malformed file or structural conflict
// fails the whole import.
func (s *ImportService) ImportFile(ctx context.Context, path string) (*ImportMetrics, error) {
	s.metrics.Reset()
	startTime := time.Now()

	week, err := s.readFile(path)
	if err != nil {
		s.metrics.RecordError()
		return s.metrics, err
	}

	s.auditLog.LogImportStarted(path, week.Season, week.Week, len(week.Rosters), len(week.Matchups))

	if err := s.validator.ValidateMatchupUniqueness(week.Matchups); err != nil {
		s.metrics.RecordError()
		return s.metrics, fmt.Errorf("matchup conflict: %w", err)
	}

	teams := make(map[string]bool, len(week.Rosters))
	s.metrics.TotalRosters = len(week.Rosters)

	for i := range week.Rosters {
		roster := &week.Rosters[i]
		if err := s.importRoster(ctx, roster, week.Season, week.Week); err != nil {
			s.auditLog.LogRosterSkipped(roster.TeamID, err)
			continue
		}
		s.auditLog.LogRosterImported(roster.TeamID, len(roster.Players))
		teams[roster.TeamID] = true
	}

	for _, matchup := range week.Matchups {
		matchup.Season = week.Season
		matchup.Week = week.Week

		if validationErrors := s.validator.ValidateMatchup(matchup, teams); len(validationErrors) > 0 {
			s.metrics.RecordValidationError()
			s.auditLog.LogMatchupSkipped(matchup.HomeTeamID, matchup.AwayTeamID, validationErrors)
			continue
		}

		if err := s.rosterRepo.UpsertMatchup(ctx, matchup); err != nil {
			s.metrics.RecordError()
			s.log.WithError(err).Warn("Failed to persist matchup")
			continue
		}
		s.metrics.RecordMatchup()
	}

	s.metrics.Duration = time.Since(startTime)
	s.auditLog.LogImportCompleted(
		s.metrics.ImportedRosters,
		s.metrics.ImportedPlayers,
		s.metrics.ImportedMatchups,
		s.metrics.ValidationErrors,
		s.metrics.Errors,
		s.metrics.Duration,
	)

	return s.metrics, nil
}

// importRoster validates and persists one roster and its player projections
func (s *ImportService) importRoster(ctx context.Context, roster *models.Roster, season, week int) error {
	now := time.Now().UTC()
	for i := range roster.Players {
		p := &roster.Players[i]
		if p.Season == 0 {
			p.Season = season
		}
		if p.Week == 0 {
			p.Week = week
		}
		if p.FetchedAt.IsZero() {
			p.FetchedAt = now
		}
	}

	if validationErrors := s.validator.ValidateRoster(roster); len(validationErrors) > 0 {
		s.metrics.RecordValidationError()
		return fmt.Errorf("roster validation failed: %v", validationErrors)
	}

	for i := range roster.Players {
		if validationErrors := s.validator.ValidateProjection(&roster.Players[i]); len(validationErrors) > 0 {
			s.metrics.RecordValidationError()
			return fmt.Errorf("projection validation failed for %s: %v", roster.Players[i].PlayerID, validationErrors)
		}
	}

	if err := s.rosterRepo.UpsertRoster(ctx, roster, season, week); err != nil {
		s.metrics.RecordError()
		return fmt.Errorf("failed to persist roster: %w", err)
	}

	projections := make([]*models.PlayerProjection, 0, len(roster.Players))
	for i := range roster.Players {
		projections = append(projections, &roster.Players[i])
	}
	for i := 0; i < len(projections); i += s.batchSize {
		end := i + s.batchSize
		if end > len(projections) {
			end = len(projections)
		}
		if err := s.projectionRepo.UpsertBatch(ctx, projections[i:end]); err != nil {
			s.metrics.RecordError()
			return fmt.Errorf("failed to persist projections: %w", err)
		}
	}

	s.metrics.RecordRoster()
	s.metrics.RecordPlayers(len(roster.Players))
	return nil
}

// readFile parses and structurally checks a week file
func (s *ImportService) readFile(path string) (*WeekFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read week file: %w", err)
	}

	var week WeekFile
	if err := json.Unmarshal(data, &week); err != nil {
		return nil, fmt.Errorf("failed to parse week file: %w", err)
	}

	if week.Season <= 0 || week.Week <= 0 {
		return nil, fmt.Errorf("week file must declare a positive season and week, got season %d week %d", week.Season, week.Week)
	}
	if len(week.Rosters) == 0 {
		return nil, fmt.Errorf("week file contains no rosters")
	}

	return &week, nil
}

// GetMetrics returns current import metrics
func (s *ImportService) GetMetrics() *ImportMetrics {
	return s.metrics
}
