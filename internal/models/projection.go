package models

import "time"

// Position represents an NFL fantasy position
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// KnownPosition reports whether the position is one the engine scores.
func KnownPosition(p Position) bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF:
		return true
	}
	return false
}

// PlayerProjection represents a point projection for one player in one week.
// It is an immutable input snapshot; the engine never writes back to it.
type PlayerProjection struct {
	PlayerID  string             `db:"player_id" json:"player_id" validate:"required"`
	Name      string             `db:"name" json:"name"`
	Position  Position           `db:"position" json:"position" validate:"required"`
	Season    int                `db:"season" json:"season" validate:"required,gt=0"`
	Week      int                `db:"week" json:"week" validate:"required,gt=0"`
	Mean      float64            `db:"mean" json:"mean"`
	StdDev    *float64           `db:"stddev" json:"stddev"` // nil when the source supplied no variance estimate
	Stats     map[string]float64 `db:"stats" json:"stats,omitempty"`
	FetchedAt time.Time          `db:"fetched_at" json:"fetched_at"`
}

// HasVariance reports whether the projection carries an explicit variance estimate.
// A present-but-zero standard deviation is a deliberate degenerate distribution,
// distinct from an absent estimate.
func (p *PlayerProjection) HasVariance() bool {
	return p.StdDev != nil
}

// Variance returns the projection variance, or 0 when no estimate is present.
func (p *PlayerProjection) Variance() float64 {
	if p.StdDev == nil {
		return 0
	}
	return *p.StdDev * *p.StdDev
}
