// Package engine implements the weekly fantasy simulation core: player
// score distributions, lineup resolution, Monte Carlo trials, aggregation,
// and probability-to-price conversion.
package engine

import (
	"fmt"
	"math/rand"

	"github.com/yourusername/leaguebook/internal/models"
)

// Distribution is the sampling contract for one player: a pure function
// from a random draw to a point total. Recreated fresh each run, never
// mutated.
type Distribution struct {
	mean   float64
	stddev float64
}

// Mean returns the distribution mean before clamping.
func (d Distribution) Mean() float64 {
	return d.mean
}

// StdDev returns the distribution standard deviation.
func (d Distribution) StdDev() float64 {
	return d.stddev
}

// Sample draws one score. A degenerate distribution (stddev 0) always
// returns the mean. Negative draws are clamped to zero after sampling;
// the clamp slightly inflates the realized mean for high-variance,
// low-mean players and is kept for reproducibility with prior runs.
func (d Distribution) Sample(rng *rand.Rand) float64 {
	if d.stddev == 0 {
		return d.mean
	}
	score := rng.NormFloat64()*d.stddev + d.mean
	if score < 0 {
		return 0
	}
	return score
}

// DistributionBuilder converts player projections into sampling-ready
// distributions. When a projection carries no variance estimate, a default
// standard deviation is derived as DefaultCV times the projected mean so
// that missing variance never silently collapses the simulation into a
// deterministic projection.
type DistributionBuilder struct {
	// DefaultCV is the coefficient of variation applied to the mean when
	// no variance estimate is supplied.
	DefaultCV float64
	// MeanFloor is the lowest projected mean accepted, normally 0.
	MeanFloor float64
}

// NewDistributionBuilder creates a builder with the given defaults.
func NewDistributionBuilder(defaultCV, meanFloor float64) DistributionBuilder {
	return DistributionBuilder{DefaultCV: defaultCV, MeanFloor: meanFloor}
}

// Build validates a projection and returns its sampling distribution.
func (b DistributionBuilder) Build(proj models.PlayerProjection) (Distribution, error) {
	if proj.Mean < b.MeanFloor {
		return Distribution{}, fmt.Errorf("projection %s: mean %.2f below floor %.2f", proj.PlayerID, proj.Mean, b.MeanFloor)
	}
	if proj.StdDev != nil && *proj.StdDev < 0 {
		return Distribution{}, fmt.Errorf("projection %s: negative stddev %.2f", proj.PlayerID, *proj.StdDev)
	}

	stddev := 0.0
	if proj.StdDev != nil {
		stddev = *proj.StdDev
	} else {
		stddev = b.DefaultCV * proj.Mean
	}

	return Distribution{mean: proj.Mean, stddev: stddev}, nil
}
