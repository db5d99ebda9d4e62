package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/yourusername/leaguebook/internal/models"
)

// trialChunkSize is the number of trials drawn from one sub-seeded RNG.
// Chunk boundaries are fixed by trial index, not by worker, so the result
// is bit-identical for any worker count.
const trialChunkSize = 2048

// TeamTrials holds the raw trial totals for one team. Totals[t] is the
// team's score in trial t.
type TeamTrials struct {
	TeamID   string
	TeamName string
	Totals   []float64
}

// TrialConfig configures one Monte Carlo pass.
type TrialConfig struct {
	Trials  int
	Seed    int64
	Workers int
}

// RunTrials draws cfg.Trials independent trials over the given lineups.
// Within a trial every starter is sampled exactly once and all draws are
// independent across players, teams, and trials; no correlation between
// players (injury, game script) is modeled. That independence is a stated
// simplification of this engine.
//
// Trials are partitioned into fixed chunks; each chunk gets a sub-seed
// derived from the run seed and is written into a disjoint index range of
// the output arrays, so workers never share mutable state and results
// merge deterministically.
func RunTrials(ctx context.Context, lineups []models.Lineup, builder DistributionBuilder, cfg TrialConfig) ([]TeamTrials, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	if len(lineups) == 0 {
		return nil, fmt.Errorf("no lineups to simulate")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	// Distributions are built once up front; a build failure is an input
	// validation error and aborts before any sampling.
	starterDists := make([][]Distribution, len(lineups))
	for i, lineup := range lineups {
		active := lineup.ActiveStarters()
		dists := make([]Distribution, 0, len(active))
		for _, a := range active {
			d, err := builder.Build(*a.Player)
			if err != nil {
				return nil, fmt.Errorf("team %s: %w", lineup.TeamID, err)
			}
			dists = append(dists, d)
		}
		starterDists[i] = dists
	}

	results := make([]TeamTrials, len(lineups))
	for i, lineup := range lineups {
		results[i] = TeamTrials{
			TeamID:   lineup.TeamID,
			TeamName: lineup.TeamName,
			Totals:   make([]float64, cfg.Trials),
		}
	}

	chunks := (cfg.Trials + trialChunkSize - 1) / trialChunkSize
	chunkCh := make(chan int, chunks)
	for c := 0; c < chunks; c++ {
		chunkCh <- c
	}
	close(chunkCh)

	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range chunkCh {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				default:
				}
				runChunk(c, cfg.Trials, starterDists, results, cfg.Seed)
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return nil, err
	default:
	}

	return results, nil
}

// runChunk samples trials [c*trialChunkSize, end) with the chunk's own RNG.
// Each chunk writes only its own index range, so concurrent chunks never
// touch the same elements.
func runChunk(c, trials int, starterDists [][]Distribution, results []TeamTrials, seed int64) {
	start := c * trialChunkSize
	end := start + trialChunkSize
	if end > trials {
		end = trials
	}

	rng := rand.New(rand.NewSource(chunkSeed(seed, c)))
	for t := start; t < end; t++ {
		for i, dists := range starterDists {
			total := 0.0
			for _, d := range dists {
				total += d.Sample(rng)
			}
			results[i].Totals[t] = total
		}
	}
}

// chunkSeed derives a sub-seed for one chunk from the run seed using a
// splitmix64 finalizer, keeping per-chunk streams decorrelated.
func chunkSeed(seed int64, chunk int) int64 {
	x := uint64(seed) + (uint64(chunk)+1)*0x9e3779b97f4a7c15
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
