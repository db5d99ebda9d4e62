package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/leaguebook/internal/models"
)

func testTemplate() models.SlotTemplate {
	return models.SlotTemplate{
		{Name: "QB", Eligible: []models.Position{models.PositionQB}, Count: 1},
		{Name: "RB", Eligible: []models.Position{models.PositionRB}, Count: 2},
		{Name: "WR", Eligible: []models.Position{models.PositionWR}, Count: 2},
		{Name: "TE", Eligible: []models.Position{models.PositionTE}, Count: 1},
		{Name: "FLEX", Eligible: []models.Position{models.PositionRB, models.PositionWR, models.PositionTE}, Count: 1},
	}
}

func player(id string, pos models.Position, mean float64) models.PlayerProjection {
	return models.PlayerProjection{PlayerID: id, Name: id, Position: pos, Season: 2025, Week: 8, Mean: mean}
}

func TestResolveLineupGreedyByMean(t *testing.T) {
	roster := models.Roster{
		TeamID: "t1",
		Players: []models.PlayerProjection{
			player("qb1", models.PositionQB, 18),
			player("qb2", models.PositionQB, 21),
			player("rb1", models.PositionRB, 14),
			player("rb2", models.PositionRB, 12),
			player("rb3", models.PositionRB, 9),
			player("wr1", models.PositionWR, 15),
			player("wr2", models.PositionWR, 11),
			player("wr3", models.PositionWR, 10),
			player("te1", models.PositionTE, 8),
		},
	}

	lineup, err := ResolveLineup(roster, testTemplate())
	require.NoError(t, err)
	require.Len(t, lineup.Starters, 7)
	assert.False(t, lineup.Underfilled())

	byID := func(i int) string { return lineup.Starters[i].Player.PlayerID }
	assert.Equal(t, "qb2", byID(0))
	assert.Equal(t, "rb1", byID(1))
	assert.Equal(t, "rb2", byID(2))
	assert.Equal(t, "wr1", byID(3))
	assert.Equal(t, "wr2", byID(4))
	assert.Equal(t, "te1", byID(5))
	// FLEX gets the best leftover flex-eligible player.
	assert.Equal(t, "FLEX", lineup.Starters[6].Slot)
	assert.Equal(t, "wr3", byID(6))

	// qb1 and rb3 ride the bench.
	benchIDs := make([]string, 0, len(lineup.Bench))
	for _, p := range lineup.Bench {
		benchIDs = append(benchIDs, p.PlayerID)
	}
	assert.ElementsMatch(t, []string{"qb1", "rb3"}, benchIDs)
}

func TestResolveLineupNoDoubleCounting(t *testing.T) {
	roster := models.Roster{
		TeamID: "t1",
		Players: []models.PlayerProjection{
			player("rb1", models.PositionRB, 20),
			player("rb2", models.PositionRB, 18),
			player("rb3", models.PositionRB, 16),
		},
	}
	template := models.SlotTemplate{
		{Name: "RB", Eligible: []models.Position{models.PositionRB}, Count: 2},
		{Name: "FLEX", Eligible: []models.Position{models.PositionRB, models.PositionWR}, Count: 1},
	}

	lineup, err := ResolveLineup(roster, template)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, a := range lineup.Starters {
		require.True(t, a.Filled())
		assert.False(t, seen[a.Player.PlayerID], "player %s assigned twice", a.Player.PlayerID)
		seen[a.Player.PlayerID] = true
	}
}

func TestResolveLineupUnderfillFlaggedNotFatal(t *testing.T) {
	roster := models.Roster{
		TeamID: "t1",
		Players: []models.PlayerProjection{
			player("qb1", models.PositionQB, 18),
			player("rb1", models.PositionRB, 14),
		},
	}

	lineup, err := ResolveLineup(roster, testTemplate())
	require.NoError(t, err)
	assert.True(t, lineup.Underfilled())
	assert.Contains(t, lineup.UnfilledSlots, "WR")
	assert.Contains(t, lineup.UnfilledSlots, "TE")
	assert.Len(t, lineup.ActiveStarters(), 2)
}

func TestResolveLineupDeterministic(t *testing.T) {
	roster := models.Roster{
		TeamID: "t1",
		Players: []models.PlayerProjection{
			// Equal means: tie must break on player ID, every time.
			player("wr_b", models.PositionWR, 12),
			player("wr_a", models.PositionWR, 12),
			player("wr_c", models.PositionWR, 12),
			player("qb1", models.PositionQB, 20),
			player("rb1", models.PositionRB, 10),
			player("rb2", models.PositionRB, 10),
			player("te1", models.PositionTE, 6),
		},
	}

	first, err := ResolveLineup(roster, testTemplate())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := ResolveLineup(roster, testTemplate())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolveLineupRejectsEmptyTemplate(t *testing.T) {
	_, err := ResolveLineup(models.Roster{TeamID: "t1"}, models.SlotTemplate{})
	require.Error(t, err)
}
