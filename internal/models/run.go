package models

import (
	"time"

	"github.com/google/uuid"
)

// SimulationRun identifies one complete simulation execution for a week.
// A rerun for the same (season, week) replaces the prior run's derived
// records; only one run per week is ever current.
type SimulationRun struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Season    int       `db:"season" json:"season"`
	Week      int       `db:"week" json:"week"`
	Trials    int       `db:"trials" json:"trials"`
	Seed      int64     `db:"seed" json:"seed"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PercentileTable holds the score percentiles reported per team.
type PercentileTable struct {
	P10 float64 `db:"p10" json:"p10"`
	P25 float64 `db:"p25" json:"p25"`
	P50 float64 `db:"p50" json:"p50"`
	P75 float64 `db:"p75" json:"p75"`
	P90 float64 `db:"p90" json:"p90"`
}

// TeamOutcome is the compacted per-team summary of a completed run's trial
// totals. It is read-only once the run completes.
type TeamOutcome struct {
	RunID         uuid.UUID       `db:"run_id" json:"run_id"`
	TeamID        string          `db:"team_id" json:"team_id"`
	TeamName      string          `db:"team_name" json:"team_name"`
	Mean          float64         `db:"mean" json:"mean"`
	Variance      float64         `db:"variance" json:"variance"`
	StdDev        float64         `db:"stddev" json:"stddev"`
	Percentiles   PercentileTable `json:"percentiles"`
	UnfilledSlots []string        `db:"unfilled_slots" json:"unfilled_slots,omitempty"`
}
