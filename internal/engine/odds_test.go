package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneylinePriceFavoriteAndUnderdog(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want int
	}{
		{"even money", 0.5, -100},
		{"60% favorite", 0.6, -150},
		{"40% underdog", 0.4, 150},
		{"25% underdog", 0.25, 300},
		{"two-thirds favorite", 2.0 / 3.0, -200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoneylinePrice(tt.p, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneylinePriceSign(t *testing.T) {
	fav, err := MoneylinePrice(0.8, 0)
	require.NoError(t, err)
	assert.Negative(t, fav)

	dog, err := MoneylinePrice(0.2, 0)
	require.NoError(t, err)
	assert.Positive(t, dog)
}

func TestMoneylinePriceRejectsDegenerateProbability(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.5} {
		_, err := MoneylinePrice(p, 0)
		assert.Error(t, err, "p=%f", p)
	}
}

func TestMoneylinePriceFiniteUnderExtremeClampAndVig(t *testing.T) {
	// A clamped near-1 probability with margin applied must still price.
	p := ClampProbability(1, 1000)
	price, err := MoneylinePrice(p, 0.05)
	require.NoError(t, err)
	assert.Negative(t, price)
}

func TestPriceRoundTripRecoversProbability(t *testing.T) {
	vig := 0.045
	for _, p := range []float64{0.05, 0.2, 0.35, 0.5, 0.62, 0.8, 0.93} {
		price, err := MoneylinePrice(p, vig)
		require.NoError(t, err)

		implied, err := ImpliedProbability(price)
		require.NoError(t, err)

		recovered, err := RemoveMargin(implied, vig)
		require.NoError(t, err)

		// Integer price rounding bounds the error near even odds.
		assert.InDelta(t, p, recovered, 2e-3, "p=%f price=%d", p, price)
	}
}

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		price int
		want  float64
	}{
		{-100, 0.5},
		{-150, 0.6},
		{150, 0.4},
		{-200, 2.0 / 3.0},
		{300, 0.25},
	}
	for _, tt := range tests {
		got, err := ImpliedProbability(tt.price)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "price=%d", tt.price)
	}

	_, err := ImpliedProbability(0)
	assert.Error(t, err)
}

func TestVigInflatesImpliedProbabilities(t *testing.T) {
	vig := 0.05
	home, err := MoneylinePrice(0.55, vig)
	require.NoError(t, err)
	away, err := MoneylinePrice(0.45, vig)
	require.NoError(t, err)

	ih, err := ImpliedProbability(home)
	require.NoError(t, err)
	ia, err := ImpliedProbability(away)
	require.NoError(t, err)

	assert.InDelta(t, 1+vig, ih+ia, 3e-3, "two-sided implied probabilities should sum to 1+vig")
}

func TestTotalLineRoundsToHalfPoint(t *testing.T) {
	combined := []float64{200.1, 210.4, 220.9, 231.7, 240.2}
	line := TotalLine(combined, 0.5)
	assert.Equal(t, 221.0, line)

	half := TotalLine([]float64{100.3}, 0.5)
	assert.Equal(t, 100.5, half)
}

func TestOverUnderPrices(t *testing.T) {
	combined := make([]float64, 1000)
	for i := range combined {
		combined[i] = float64(100 + i%100) // uniform over [100,199]
	}
	line := 149.5

	over, under, err := OverUnderPrices(combined, line, 0)
	require.NoError(t, err)

	// Exactly half the mass on each side of a half-point line.
	assert.Equal(t, -100, over)
	assert.Equal(t, -100, under)
}

func TestOverUnderPricesSplitLineTies(t *testing.T) {
	combined := []float64{140, 150, 160, 150}
	over, under, err := OverUnderPrices(combined, 150, 0)
	require.NoError(t, err)

	// 1 over + half of 2 ties = 0.5 both ways.
	assert.Equal(t, -100, over)
	assert.Equal(t, -100, under)
}

func TestOddsConfigValidate(t *testing.T) {
	assert.NoError(t, OddsConfig{Vig: 0.045, TotalPercentile: 0.5}.Validate())
	assert.Error(t, OddsConfig{Vig: -0.1, TotalPercentile: 0.5}.Validate())
	assert.Error(t, OddsConfig{Vig: 0.05, TotalPercentile: 0}.Validate())
	assert.Error(t, OddsConfig{Vig: 0.05, TotalPercentile: 1}.Validate())
}
