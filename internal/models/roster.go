package models

// SlotRule defines one starting slot in a league's lineup template:
// the slot name, the positions eligible to fill it, and how many of it exist.
type SlotRule struct {
	Name     string     `mapstructure:"name" json:"name" validate:"required"`
	Eligible []Position `mapstructure:"eligible" json:"eligible" validate:"required,min=1"`
	Count    int        `mapstructure:"count" json:"count" validate:"required,gt=0"`
}

// IsFlex reports whether the slot accepts more than one position.
func (r SlotRule) IsFlex() bool {
	return len(r.Eligible) > 1
}

// Accepts reports whether a position is eligible for the slot.
func (r SlotRule) Accepts(pos Position) bool {
	for _, p := range r.Eligible {
		if p == pos {
			return true
		}
	}
	return false
}

// SlotTemplate is the ordered list of starting slots for a league.
// Players not assigned to any slot are bench and do not score.
type SlotTemplate []SlotRule

// TotalSlots returns the number of starting positions the template requires.
func (t SlotTemplate) TotalSlots() int {
	total := 0
	for _, r := range t {
		total += r.Count
	}
	return total
}

// Roster represents one fantasy team's full player list for a week.
type Roster struct {
	TeamID   string             `db:"team_id" json:"team_id" validate:"required"`
	TeamName string             `db:"team_name" json:"team_name"`
	Owner    string             `db:"owner" json:"owner"`
	Players  []PlayerProjection `json:"players"`
}

// SlotAssignment maps one starting slot instance to the player filling it.
// Player is nil when the roster had no remaining eligible player for the slot.
type SlotAssignment struct {
	Slot   string            `json:"slot"`
	Player *PlayerProjection `json:"player,omitempty"`
}

// Filled reports whether the slot has a player assigned.
func (a SlotAssignment) Filled() bool {
	return a.Player != nil
}

// Lineup is the resolved starting lineup for one team. Bench players are
// excluded from scoring. UnfilledSlots lists slot names the roster could not
// fill; an underfilled lineup still simulates over the starters it has.
type Lineup struct {
	TeamID        string             `json:"team_id"`
	TeamName      string             `json:"team_name"`
	Starters      []SlotAssignment   `json:"starters"`
	Bench         []PlayerProjection `json:"bench"`
	UnfilledSlots []string           `json:"unfilled_slots,omitempty"`
}

// Underfilled reports whether any required slot is missing a player.
func (l *Lineup) Underfilled() bool {
	return len(l.UnfilledSlots) > 0
}

// ActiveStarters returns the assignments that actually carry a player,
// in template order.
func (l *Lineup) ActiveStarters() []SlotAssignment {
	active := make([]SlotAssignment, 0, len(l.Starters))
	for _, a := range l.Starters {
		if a.Filled() {
			active = append(active, a)
		}
	}
	return active
}

// Matchup pairs two opposing teams for a scoring week.
type Matchup struct {
	Season     int    `db:"season" json:"season"`
	Week       int    `db:"week" json:"week"`
	HomeTeamID string `db:"home_team_id" json:"home_team_id" validate:"required"`
	AwayTeamID string `db:"away_team_id" json:"away_team_id" validate:"required"`
}
