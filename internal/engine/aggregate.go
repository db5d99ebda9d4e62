package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/leaguebook/internal/models"
)

// TeamSummary reduces one team's trial totals to summary statistics.
type TeamSummary struct {
	TeamID      string
	TeamName    string
	Mean        float64
	Variance    float64
	StdDev      float64
	Percentiles models.PercentileTable
}

// Summarize computes mean, variance, and the percentile table for one
// team's trial totals.
func Summarize(tt TeamTrials) TeamSummary {
	mean, variance := meanVariance(tt.Totals)
	sorted := append([]float64{}, tt.Totals...)
	sort.Float64s(sorted)

	return TeamSummary{
		TeamID:   tt.TeamID,
		TeamName: tt.TeamName,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Percentiles: models.PercentileTable{
			P10: percentileSorted(sorted, 0.10),
			P25: percentileSorted(sorted, 0.25),
			P50: percentileSorted(sorted, 0.50),
			P75: percentileSorted(sorted, 0.75),
			P90: percentileSorted(sorted, 0.90),
		},
	}
}

// WinProbability computes the win probability for each side of a matchup
// from paired trial totals. Exact ties are split evenly, never discarded,
// so pa + pb is always exactly 1. Returned probabilities are unclamped.
func WinProbability(a, b []float64) (pa, pb float64, ties int, err error) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, 0, 0, fmt.Errorf("mismatched trial arrays: %d vs %d", len(a), len(b))
	}
	wins := 0
	for t := range a {
		switch {
		case a[t] > b[t]:
			wins++
		case a[t] == b[t]:
			ties++
		}
	}
	pa = (float64(wins) + float64(ties)/2) / float64(len(a))
	pb = 1 - pa
	return pa, pb, ties, nil
}

// MarketProbabilities computes, for every team, the probability of posting
// the week's highest and lowest total. For each trial index the extreme is
// found across all teams simultaneously; a k-way tie on the extreme credits
// each tied team 1/k. Each map therefore sums to 1 across teams.
func MarketProbabilities(teams []TeamTrials) (highest, lowest map[string]float64, err error) {
	if len(teams) == 0 {
		return nil, nil, fmt.Errorf("no trial data")
	}
	trials := len(teams[0].Totals)
	for _, tt := range teams {
		if len(tt.Totals) != trials {
			return nil, nil, fmt.Errorf("team %s has %d trials, expected %d", tt.TeamID, len(tt.Totals), trials)
		}
	}

	highest = make(map[string]float64, len(teams))
	lowest = make(map[string]float64, len(teams))

	for t := 0; t < trials; t++ {
		maxVal := teams[0].Totals[t]
		minVal := maxVal
		for _, tt := range teams[1:] {
			v := tt.Totals[t]
			if v > maxVal {
				maxVal = v
			}
			if v < minVal {
				minVal = v
			}
		}

		var maxTied, minTied []string
		for _, tt := range teams {
			v := tt.Totals[t]
			if v == maxVal {
				maxTied = append(maxTied, tt.TeamID)
			}
			if v == minVal {
				minTied = append(minTied, tt.TeamID)
			}
		}
		for _, id := range maxTied {
			highest[id] += 1.0 / float64(len(maxTied))
		}
		for _, id := range minTied {
			lowest[id] += 1.0 / float64(len(minTied))
		}
	}

	scale := 1.0 / float64(trials)
	for id := range highest {
		highest[id] *= scale
	}
	for id := range lowest {
		lowest[id] *= scale
	}
	return highest, lowest, nil
}

// ClampProbability pulls a probability into the open interval (0,1) so
// price conversion never divides by zero. The margin is half a trial's
// worth of probability mass, preserving near-certain signal.
func ClampProbability(p float64, trials int) float64 {
	eps := 1.0 / (2.0 * float64(trials))
	if p < eps {
		return eps
	}
	if p > 1-eps {
		return 1 - eps
	}
	return p
}

// CombinedTotals sums paired trial totals for a matchup, for total-points
// markets.
func CombinedTotals(a, b []float64) []float64 {
	combined := make([]float64, len(a))
	for t := range a {
		combined[t] = a[t] + b[t]
	}
	return combined
}

// Percentile returns the p-quantile of values without assuming they are
// sorted.
func Percentile(values []float64, p float64) float64 {
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func meanVariance(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, variance
}
