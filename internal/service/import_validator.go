package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/leaguebook/internal/models"
)

// maxPlausibleMean guards against obviously broken projection feeds; no
// fantasy player projects anywhere near this in a single week.
const maxPlausibleMean = 150

// ImportValidator validates roster and projection data before persistence
type ImportValidator struct {
	logger *logrus.Logger
}

// NewImportValidator creates a new import validator
func NewImportValidator(logger *logrus.Logger) *ImportValidator {
	return &ImportValidator{logger: logger}
}

// ValidateProjection validates projection data for required fields and constraints
func (v *ImportValidator) ValidateProjection(proj *models.PlayerProjection) []string {
	var errors []string

	if proj.PlayerID == "" {
		errors = append(errors, "player_id is required")
	}

	if !models.KnownPosition(proj.Position) {
		errors = append(errors, fmt.Sprintf("unknown position %q", proj.Position))
	}

	if proj.Season <= 0 {
		errors = append(errors, fmt.Sprintf("season must be positive, got %d", proj.Season))
	}

	if proj.Week < 1 || proj.Week > 22 {
		errors = append(errors, fmt.Sprintf("week out of range (1-22), got %d", proj.Week))
	}

	if proj.Mean < 0 {
		errors = append(errors, fmt.Sprintf("mean cannot be negative, got %.2f", proj.Mean))
	}

	if proj.Mean > maxPlausibleMean {
		errors = append(errors, fmt.Sprintf("mean implausibly high, got %.2f", proj.Mean))
	}

	if proj.StdDev != nil && *proj.StdDev < 0 {
		errors = append(errors, fmt.Sprintf("stddev cannot be negative, got %.2f", *proj.StdDev))
	}

	return errors
}

// ValidateRoster validates roster data for required fields and constraints
func (v *ImportValidator) ValidateRoster(roster *models.Roster) []string {
	var errors []string

	if roster.TeamID == "" {
		errors = append(errors, "team_id is required")
	}

	if len(roster.Players) == 0 {
		errors = append(errors, "roster has no players")
	}

	seen := make(map[string]bool, len(roster.Players))
	for _, p := range roster.Players {
		if seen[p.PlayerID] {
			errors = append(errors, fmt.Sprintf("duplicate player %s", p.PlayerID))
		}
		seen[p.PlayerID] = true
	}

	return errors
}

// ValidateMatchup validates a matchup against the set of imported team IDs
func (v *ImportValidator) ValidateMatchup(matchup models.Matchup, teams map[string]bool) []string {
	var errors []string

	if matchup.HomeTeamID == "" || matchup.AwayTeamID == "" {
		errors = append(errors, "both home_team_id and away_team_id are required")
	}

	if matchup.HomeTeamID == matchup.AwayTeamID {
		errors = append(errors, fmt.Sprintf("team %s cannot play itself", matchup.HomeTeamID))
	}

	if matchup.HomeTeamID != "" && !teams[matchup.HomeTeamID] {
		errors = append(errors, fmt.Sprintf("home team %s has no roster in the file", matchup.HomeTeamID))
	}

	if matchup.AwayTeamID != "" && !teams[matchup.AwayTeamID] {
		errors = append(errors, fmt.Sprintf("away team %s has no roster in the file", matchup.AwayTeamID))
	}

	return errors
}

// ValidateMatchupUniqueness checks no team appears in more than one matchup
func (v *ImportValidator) ValidateMatchupUniqueness(matchups []models.Matchup) error {
	seen := make(map[string]bool, len(matchups)*2)
	for _, m := range matchups {
		if seen[m.HomeTeamID] {
			return fmt.Errorf("team %s appears in more than one matchup", m.HomeTeamID)
		}
		if seen[m.AwayTeamID] {
			return fmt.Errorf("team %s appears in more than one matchup", m.AwayTeamID)
		}
		seen[m.HomeTeamID] = true
		seen[m.AwayTeamID] = true
	}
	return nil
}
