package engine

import (
	"fmt"
	"sort"

	"github.com/yourusername/leaguebook/internal/models"
)

// ResolveLineup determines which roster players start for the week under a
// slot template. Slots with a single eligible position are filled before
// FLEX-type slots, greedily by highest projected mean, and assigned players
// leave the pool so nobody is double-counted. Resolution is deterministic:
// identical input always yields identical assignment (projected-mean ties
// break on player ID).
//
// A slot with no remaining eligible player is left explicitly empty and
// recorded in UnfilledSlots; the team still simulates over the starters it
// has.
func ResolveLineup(roster models.Roster, template models.SlotTemplate) (models.Lineup, error) {
	if template.TotalSlots() == 0 {
		return models.Lineup{}, fmt.Errorf("slot template for team %s has zero total slots", roster.TeamID)
	}

	pool := make([]models.PlayerProjection, len(roster.Players))
	copy(pool, roster.Players)
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Mean != pool[j].Mean {
			return pool[i].Mean > pool[j].Mean
		}
		return pool[i].PlayerID < pool[j].PlayerID
	})

	lineup := models.Lineup{
		TeamID:   roster.TeamID,
		TeamName: roster.TeamName,
		Starters: make([]models.SlotAssignment, 0, template.TotalSlots()),
	}

	assigned := make(map[string]bool, len(pool))

	// Two passes over the template: dedicated slots first, FLEX second,
	// so a FLEX never steals a player a dedicated slot needs.
	for _, flexPass := range []bool{false, true} {
		for _, rule := range template {
			if rule.IsFlex() != flexPass {
				continue
			}
			for n := 0; n < rule.Count; n++ {
				player := takeBest(pool, assigned, rule)
				if player == nil {
					lineup.UnfilledSlots = append(lineup.UnfilledSlots, rule.Name)
				}
				lineup.Starters = append(lineup.Starters, models.SlotAssignment{Slot: rule.Name, Player: player})
			}
		}
	}

	orderStarters(&lineup, template)

	for _, p := range pool {
		if !assigned[p.PlayerID] {
			lineup.Bench = append(lineup.Bench, p)
		}
	}

	return lineup, nil
}

// takeBest removes and returns the highest-projected unassigned player
// eligible for the rule, or nil when none remains.
func takeBest(pool []models.PlayerProjection, assigned map[string]bool, rule models.SlotRule) *models.PlayerProjection {
	for i := range pool {
		if assigned[pool[i].PlayerID] {
			continue
		}
		if !rule.Accepts(pool[i].Position) {
			continue
		}
		assigned[pool[i].PlayerID] = true
		player := pool[i]
		return &player
	}
	return nil
}

// orderStarters rewrites the starter list into template order, since the
// two-pass fill appends FLEX assignments after all dedicated slots.
func orderStarters(lineup *models.Lineup, template models.SlotTemplate) {
	bySlot := make(map[string][]models.SlotAssignment)
	for _, a := range lineup.Starters {
		bySlot[a.Slot] = append(bySlot[a.Slot], a)
	}
	ordered := make([]models.SlotAssignment, 0, len(lineup.Starters))
	for _, rule := range template {
		ordered = append(ordered, bySlot[rule.Name]...)
	}
	lineup.Starters = ordered
}
