package engine

import (
	"fmt"
	"math"
)

// maxImplied caps the margin-inflated probability below 1 so the price
// formula stays finite even when a clamped near-1 probability meets a
// large configured margin.
const maxImplied = 1 - 1e-6

// OddsConfig configures probability-to-price conversion.
type OddsConfig struct {
	// Vig is the house margin m: the two sides of a market are priced so
	// their implied probabilities sum to 1+m.
	Vig float64
	// TotalPercentile selects which percentile of the combined score
	// distribution becomes the over/under line. 0.5 is the median.
	TotalPercentile float64
}

// Validate checks odds configuration bounds.
func (c OddsConfig) Validate() error {
	if c.Vig < 0 {
		return fmt.Errorf("vig must be >= 0, got %f", c.Vig)
	}
	if c.TotalPercentile <= 0 || c.TotalPercentile >= 1 {
		return fmt.Errorf("total percentile must be in (0,1), got %f", c.TotalPercentile)
	}
	return nil
}

// MoneylinePrice converts a fair probability p in (0,1) to an American-odds
// price with the margin applied. The margin inflates the implied
// probability (p' = p·(1+m)); favorites (p' >= 0.5) get a negative price
// −100·p'/(1−p'), underdogs a positive price 100·(1−p')/p'. Prices round
// to the nearest integer.
func MoneylinePrice(p, vig float64) (int, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("probability must be in (0,1), got %f", p)
	}
	if vig < 0 {
		return 0, fmt.Errorf("vig must be >= 0, got %f", vig)
	}

	implied := p * (1 + vig)
	if implied > maxImplied {
		implied = maxImplied
	}

	var price float64
	if implied >= 0.5 {
		price = -100 * implied / (1 - implied)
	} else {
		price = 100 * (1 - implied) / implied
	}
	return int(math.Round(price)), nil
}

// ImpliedProbability converts an American-odds price back to the implied
// probability it quotes, margin included.
func ImpliedProbability(price int) (float64, error) {
	if price == 0 {
		return 0, fmt.Errorf("invalid price: cannot be 0")
	}
	if price < 0 {
		abs := float64(-price)
		return abs / (abs + 100), nil
	}
	return 100 / (float64(price) + 100), nil
}

// RemoveMargin strips the configured margin from an implied probability,
// recovering the fair probability within rounding tolerance.
func RemoveMargin(implied, vig float64) (float64, error) {
	if vig < 0 {
		return 0, fmt.Errorf("vig must be >= 0, got %f", vig)
	}
	return implied / (1 + vig), nil
}

// TotalLine derives an over/under line from a combined score distribution:
// the configured percentile rounded to the nearest half point. Half-point
// lines keep most trials off the line itself.
func TotalLine(combined []float64, percentile float64) float64 {
	raw := Percentile(combined, percentile)
	return math.Round(raw*2) / 2
}

// OverUnderPrices prices the over and the under of a total line from trial
// totals. Trials landing exactly on the line are split evenly between the
// sides; both probabilities are clamped before conversion and the margin
// is applied symmetrically.
func OverUnderPrices(combined []float64, line, vig float64) (overPrice, underPrice int, err error) {
	if len(combined) == 0 {
		return 0, 0, fmt.Errorf("no combined totals")
	}
	overs, ties := 0, 0
	for _, v := range combined {
		switch {
		case v > line:
			overs++
		case v == line:
			ties++
		}
	}
	trials := len(combined)
	pOver := (float64(overs) + float64(ties)/2) / float64(trials)
	pOver = ClampProbability(pOver, trials)
	pUnder := ClampProbability(1-pOver, trials)

	overPrice, err = MoneylinePrice(pOver, vig)
	if err != nil {
		return 0, 0, err
	}
	underPrice, err = MoneylinePrice(pUnder, vig)
	if err != nil {
		return 0, 0, err
	}
	return overPrice, underPrice, nil
}
