package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeStatistics(t *testing.T) {
	tt := TeamTrials{TeamID: "a", Totals: []float64{10, 20, 30, 40, 50}}
	summary := Summarize(tt)

	assert.InDelta(t, 30.0, summary.Mean, 1e-9)
	assert.InDelta(t, 200.0, summary.Variance, 1e-9)
	assert.Equal(t, 30.0, summary.Percentiles.P50)
	assert.Equal(t, 10.0, summary.Percentiles.P10)
	assert.Equal(t, 40.0, summary.Percentiles.P90)
}

func TestWinProbabilitySumsToOneExactly(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := make([]float64, 9973)
	b := make([]float64, 9973)
	for i := range a {
		a[i] = rng.Float64() * 150
		b[i] = rng.Float64() * 150
	}

	pa, pb, _, err := WinProbability(a, b)
	require.NoError(t, err)
	assert.Equal(t, 1.0, pa+pb, "win probabilities must sum to exactly 1")
}

func TestWinProbabilityTiesSplitEvenly(t *testing.T) {
	// Every trial is a tie: each side gets exactly half.
	a := []float64{10, 10, 10, 10}
	b := []float64{10, 10, 10, 10}

	pa, pb, ties, err := WinProbability(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pa)
	assert.Equal(t, 0.5, pb)
	assert.Equal(t, 4, ties)
}

func TestWinProbabilityMixed(t *testing.T) {
	a := []float64{20, 10, 15, 15}
	b := []float64{10, 20, 15, 15}

	pa, pb, ties, err := WinProbability(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pa)
	assert.Equal(t, 0.5, pb)
	assert.Equal(t, 2, ties)
}

func TestWinProbabilityRejectsMismatchedArrays(t *testing.T) {
	_, _, _, err := WinProbability([]float64{1, 2}, []float64{1})
	require.Error(t, err)
}

func TestMarketProbabilitiesSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	teams := make([]TeamTrials, 4)
	for i := range teams {
		totals := make([]float64, 2000)
		for t := range totals {
			totals[t] = rng.Float64() * 150
		}
		teams[i] = TeamTrials{TeamID: string(rune('a' + i)), Totals: totals}
	}

	highest, lowest, err := MarketProbabilities(teams)
	require.NoError(t, err)

	sumHigh, sumLow := 0.0, 0.0
	for _, p := range highest {
		sumHigh += p
	}
	for _, p := range lowest {
		sumLow += p
	}
	assert.InDelta(t, 1.0, sumHigh, 1e-9)
	assert.InDelta(t, 1.0, sumLow, 1e-9)
}

func TestMarketProbabilitiesSplitExtremeTies(t *testing.T) {
	teams := []TeamTrials{
		{TeamID: "a", Totals: []float64{10, 10}},
		{TeamID: "b", Totals: []float64{10, 10}},
	}

	highest, lowest, err := MarketProbabilities(teams)
	require.NoError(t, err)
	assert.Equal(t, 0.5, highest["a"])
	assert.Equal(t, 0.5, highest["b"])
	assert.Equal(t, 0.5, lowest["a"])
	assert.Equal(t, 0.5, lowest["b"])
}

func TestClampProbability(t *testing.T) {
	trials := 1000
	eps := 1.0 / 2000.0

	assert.Equal(t, eps, ClampProbability(0, trials))
	assert.Equal(t, 1-eps, ClampProbability(1, trials))
	assert.Equal(t, 0.5, ClampProbability(0.5, trials))

	clamped := ClampProbability(1, trials)
	assert.Greater(t, clamped, 0.0)
	assert.Less(t, clamped, 1.0)
}

func TestCombinedTotals(t *testing.T) {
	combined := CombinedTotals([]float64{10, 20}, []float64{5, 7})
	assert.Equal(t, []float64{15, 27}, combined)
}
