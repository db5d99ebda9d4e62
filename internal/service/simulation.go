package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/leaguebook/internal/engine"
	"github.com/yourusername/leaguebook/internal/logger"
	"github.com/yourusername/leaguebook/internal/metrics"
	"github.com/yourusername/leaguebook/internal/models"
	"github.com/yourusername/leaguebook/internal/repository"
)

// RunParams describes one requested simulation run. Zero values fall back
// to the service defaults.
type RunParams struct {
	Season  int
	Week    int
	Trials  int
	Seed    int64
	Workers int
}

// Defaults are the fallback run settings taken from configuration.
type Defaults struct {
	Trials  int
	Seed    int64
	Workers int
}

// SimulationService coordinates a full run: load inputs, simulate, publish.
// At most one run per week may be in flight at a time.
type SimulationService struct {
	engine   *engine.Engine
	repos    *repository.Repositories
	template models.SlotTemplate
	defaults Defaults
	log      *logrus.Logger
	runLog   *logger.RunLogger
	cache    *QuoteCache

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSimulationService creates a new simulation service.
func NewSimulationService(
	eng *engine.Engine,
	repos *repository.Repositories,
	template models.SlotTemplate,
	defaults Defaults,
	log *logrus.Logger,
	cacheTTL time.Duration,
) (*SimulationService, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if len(template) == 0 {
		return nil, fmt.Errorf("slot template is required")
	}

	return &SimulationService{
		engine:   eng,
		repos:    repos,
		template: template,
		defaults: defaults,
		log:      log,
		runLog:   logger.NewRunLogger(log),
		cache:    NewQuoteCache(cacheTTL),
		inFlight: make(map[string]bool),
	}, nil
}

// RunWeek simulates a week and publishes the result as the week's current
// run. Returns ErrRunInFlight when a run for the same week is already
// executing; other weeks are unaffected.
func (s *SimulationService) RunWeek(ctx context.Context, params RunParams) (*engine.RunResult, error) {
	key := weekKey(params.Season, params.Week)

	s.mu.Lock()
	if s.inFlight[key] {
		s.mu.Unlock()
		metrics.RecordRunConflict()
		metrics.RecordSimulationRun("conflict")
		return nil, models.ErrRunInFlight
	}
	s.inFlight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	result, err := s.runAndPublish(ctx, params)
	if err != nil {
		metrics.RecordSimulationRun("failure")
		s.runLog.LogRunFailed(params.Season, params.Week, err)
		return nil, err
	}

	metrics.RecordSimulationRun("success")
	return result, nil
}

func (s *SimulationService) runAndPublish(ctx context.Context, params RunParams) (*engine.RunResult, error) {
	start := time.Now()

	trials := params.Trials
	if trials == 0 {
		trials = s.defaults.Trials
	}
	workers := params.Workers
	if workers == 0 {
		workers = s.defaults.Workers
	}
	seed := params.Seed
	if seed == 0 {
		seed = s.defaults.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rosters, err := s.repos.Roster.GetRosters(ctx, params.Season, params.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to load rosters: %w", err)
	}
	if len(rosters) == 0 {
		return nil, fmt.Errorf("no rosters found for season %d week %d", params.Season, params.Week)
	}

	matchups, err := s.repos.Roster.GetMatchups(ctx, params.Season, params.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to load matchups: %w", err)
	}

	input := engine.RunInput{
		Season:   params.Season,
		Week:     params.Week,
		Trials:   trials,
		Seed:     seed,
		Workers:  workers,
		Template: s.template,
		Matchups: matchups,
	}
	input.Rosters = make([]models.Roster, len(rosters))
	for i, r := range rosters {
		input.Rosters[i] = *r
	}

	// Remember what we are about to replace so the swap can be logged
	previous, err := s.repos.Run.GetCurrent(ctx, params.Season, params.Week)
	if err != nil && err != models.ErrNoCurrentRun {
		return nil, fmt.Errorf("failed to check current run: %w", err)
	}

	s.runLog.LogRunStarted(params.Season, params.Week, trials, seed, workers)

	result, err := s.engine.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	for _, lineup := range result.Lineups {
		if lineup.Underfilled() {
			metrics.RecordUnderfilledLineup()
			s.runLog.LogUnderfilledLineup(result.Run.ID, lineup.TeamID, lineup.UnfilledSlots)
		}
	}

	outcomes := make([]*models.TeamOutcome, len(result.Outcomes))
	for i := range result.Outcomes {
		outcomes[i] = &result.Outcomes[i]
	}
	quotes := make([]*models.MatchupQuote, len(result.Quotes))
	for i := range result.Quotes {
		quotes[i] = &result.Quotes[i]
	}
	facts := make([]*models.MarketFact, len(result.Facts))
	for i := range result.Facts {
		facts[i] = &result.Facts[i]
	}

	publishStart := time.Now()
	if err := s.repos.Run.PublishRun(ctx, &result.Run, outcomes, quotes, facts); err != nil {
		return nil, fmt.Errorf("failed to publish run: %w", err)
	}
	metrics.RecordPublishDuration(time.Since(publishStart).Seconds())

	if previous != nil {
		s.runLog.LogRunReplaced(previous.ID, result.Run.ID, params.Season, params.Week)
	}

	s.cache.Invalidate(params.Season, params.Week)

	durationMs := float64(time.Since(start).Microseconds()) / 1000.0
	metrics.RecordSimulationDuration(time.Since(start).Seconds())
	metrics.RecordQuotesPublished(len(quotes), len(facts))
	metrics.UpdateCurrentRun(
		strconv.Itoa(params.Season), strconv.Itoa(params.Week),
		float64(result.Run.Trials), 0,
	)
	s.runLog.LogRunCompleted(result.Run.ID, params.Season, params.Week, len(outcomes), len(quotes), durationMs)
	s.runLog.LogQuotesPublished(result.Run.ID, params.Season, params.Week, len(quotes), len(facts))

	return result, nil
}

// CurrentRun returns the week's current run, its outcomes, quotes and facts.
// Reads are served from cache when a fresh snapshot exists.
func (s *SimulationService) CurrentRun(ctx context.Context, season, week int) (*models.SimulationRun, []*models.TeamOutcome, []*models.MatchupQuote, []*models.MarketFact, error) {
	if snapshot := s.cache.Get(season, week); snapshot != nil {
		return snapshot.Run, snapshot.Outcomes, snapshot.Quotes, snapshot.Facts, nil
	}

	run, err := s.repos.Run.GetCurrent(ctx, season, week)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	outcomes, err := s.repos.Run.GetOutcomes(ctx, run.ID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	quotes, err := s.repos.Run.GetQuotes(ctx, run.ID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	facts, err := s.repos.Run.GetFacts(ctx, run.ID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	s.cache.Set(season, week, &weekSnapshot{
		Run:      run,
		Outcomes: outcomes,
		Quotes:   quotes,
		Facts:    facts,
	})

	return run, outcomes, quotes, facts, nil
}

// CurrentQuotes returns the matchup quotes of the week's current run.
func (s *SimulationService) CurrentQuotes(ctx context.Context, season, week int) ([]*models.MatchupQuote, error) {
	_, _, quotes, _, err := s.CurrentRun(ctx, season, week)
	return quotes, err
}

// CacheStats exposes cache hit statistics for diagnostics.
func (s *SimulationService) CacheStats() (hits, misses uint64, ratio float64) {
	return s.cache.Stats()
}
