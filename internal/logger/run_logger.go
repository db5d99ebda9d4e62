// Package logger provides run-specific logging.
package logger

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunLogger provides dedicated logging for simulation run lifecycle events.
type RunLogger struct {
	*logrus.Entry
}

// NewRunLogger creates a new run logger.
func NewRunLogger(baseLogger *logrus.Logger) *RunLogger {
	return &RunLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogRunStarted logs the start of a simulation run. The run ID is minted by
// the engine, so it is not known yet at this point.
func (rl *RunLogger) LogRunStarted(season, week, trials int, seed int64, workers int) {
	rl.WithFields(logrus.Fields{
		"season":  season,
		"week":    week,
		"trials":  trials,
		"seed":    seed,
		"workers": workers,
	}).Info("Simulation run started")
}

// LogRunCompleted logs a completed simulation run.
func (rl *RunLogger) LogRunCompleted(runID uuid.UUID, season, week, teams, quotes int, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"run_id":      runID.String(),
		"season":      season,
		"week":        week,
		"teams":       teams,
		"quotes":      quotes,
		"duration_ms": durationMs,
	}).Info("Simulation run completed")
}

// LogRunFailed logs a failed simulation run.
func (rl *RunLogger) LogRunFailed(season, week int, err error) {
	rl.WithFields(logrus.Fields{
		"season": season,
		"week":   week,
		"error":  err.Error(),
	}).Error("Simulation run failed")
}

// LogRunReplaced logs replacement of a previously published run.
func (rl *RunLogger) LogRunReplaced(oldRunID, newRunID uuid.UUID, season, week int) {
	rl.WithFields(logrus.Fields{
		"old_run_id": oldRunID.String(),
		"new_run_id": newRunID.String(),
		"season":     season,
		"week":       week,
	}).Info("Previous run replaced")
}

// LogQuotesPublished logs publication of a run's quotes.
func (rl *RunLogger) LogQuotesPublished(runID uuid.UUID, season, week, quotes, facts int) {
	rl.WithFields(logrus.Fields{
		"run_id": runID.String(),
		"season": season,
		"week":   week,
		"quotes": quotes,
		"facts":  facts,
	}).Info("Quotes published")
}

// LogUnderfilledLineup logs a lineup that could not fill every slot.
func (rl *RunLogger) LogUnderfilledLineup(runID uuid.UUID, teamID string, unfilledSlots []string) {
	rl.WithFields(logrus.Fields{
		"run_id":         runID.String(),
		"team_id":        teamID,
		"unfilled_slots": unfilledSlots,
	}).Warn("Lineup resolved with unfilled slots")
}
