// Package logger provides audit logging for data imports.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ImportLogger provides a dedicated audit trail for week data imports.
type ImportLogger struct {
	*logrus.Entry
}

// NewImportLogger creates a new import logger.
func NewImportLogger(baseLogger *logrus.Logger) *ImportLogger {
	return &ImportLogger{
		Entry: baseLogger.WithField("component", "import"),
	}
}

// LogImportStarted logs the start of a week file import.
func (il *ImportLogger) LogImportStarted(path string, season, week, rosters, matchups int) {
	il.WithFields(logrus.Fields{
		"path":     path,
		"season":   season,
		"week":     week,
		"rosters":  rosters,
		"matchups": matchups,
	}).Info("Week import started")
}

// LogRosterImported logs one persisted roster.
func (il *ImportLogger) LogRosterImported(teamID string, players int) {
	il.WithFields(logrus.Fields{
		"team_id": teamID,
		"players": players,
	}).Debug("Roster imported")
}

// LogRosterSkipped logs a roster rejected by validation.
func (il *ImportLogger) LogRosterSkipped(teamID string, reason error) {
	il.WithFields(logrus.Fields{
		"team_id": teamID,
		"reason":  reason.Error(),
	}).Warn("Roster skipped")
}

// LogMatchupSkipped logs a matchup rejected by validation.
func (il *ImportLogger) LogMatchupSkipped(homeTeamID, awayTeamID string, reasons []string) {
	il.WithFields(logrus.Fields{
		"home_team_id": homeTeamID,
		"away_team_id": awayTeamID,
		"reasons":      reasons,
	}).Warn("Matchup skipped")
}

// LogImportCompleted logs the final tallies of an import.
func (il *ImportLogger) LogImportCompleted(rosters, players, matchups, validationErrors, errors int, duration time.Duration) {
	il.WithFields(logrus.Fields{
		"rosters":           rosters,
		"players":           players,
		"matchups":          matchups,
		"validation_errors": validationErrors,
		"errors":            errors,
		"duration_ms":       duration.Milliseconds(),
	}).Info("Week import completed")
}
