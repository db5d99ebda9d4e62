package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/leaguebook/internal/models"
)

// Engine runs complete weekly simulations: lineup resolution, trials,
// aggregation, and pricing. It performs no I/O; persistence of results is
// the caller's concern.
type Engine struct {
	builder DistributionBuilder
	odds    OddsConfig
	logger  *logrus.Logger
}

// NewEngine creates a simulation engine.
func NewEngine(builder DistributionBuilder, odds OddsConfig, logger *logrus.Logger) (*Engine, error) {
	if err := odds.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{builder: builder, odds: odds, logger: logger}, nil
}

// RunInput is everything one simulation run needs. Rosters and matchups
// are read-only snapshots supplied by the caller.
type RunInput struct {
	Season   int
	Week     int
	Trials   int
	Seed     int64
	Workers  int
	Template models.SlotTemplate
	Rosters  []models.Roster
	Matchups []models.Matchup
}

// RunResult is the complete output of one run. Derived records become
// stale the moment a newer run for the same week is published.
type RunResult struct {
	Run      models.SimulationRun
	Lineups  []models.Lineup
	Trials   []TeamTrials
	Outcomes []models.TeamOutcome
	Quotes   []models.MatchupQuote
	Facts    []models.MarketFact
}

// Run executes one complete simulation. Input validation failures are
// fatal and occur before any sampling; roster underfill is not fatal and
// is flagged on the team's outcome.
func (e *Engine) Run(ctx context.Context, input RunInput) (*RunResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	started := time.Now()
	run := models.SimulationRun{
		ID:        uuid.New(),
		Season:    input.Season,
		Week:      input.Week,
		Trials:    input.Trials,
		Seed:      input.Seed,
		CreatedAt: started.UTC(),
	}

	e.logger.WithFields(logrus.Fields{
		"run_id": run.ID,
		"season": input.Season,
		"week":   input.Week,
		"trials": input.Trials,
		"seed":   input.Seed,
	}).Info("Starting simulation run")

	lineups := make([]models.Lineup, 0, len(input.Rosters))
	for _, roster := range input.Rosters {
		lineup, err := ResolveLineup(roster, input.Template)
		if err != nil {
			return nil, err
		}
		if lineup.Underfilled() {
			e.logger.WithFields(logrus.Fields{
				"team_id": lineup.TeamID,
				"slots":   lineup.UnfilledSlots,
			}).Warn("Roster underfill: scoring over resolved starters only")
		}
		lineups = append(lineups, lineup)
	}

	trials, err := RunTrials(ctx, lineups, e.builder, TrialConfig{
		Trials:  input.Trials,
		Seed:    input.Seed,
		Workers: input.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("trial engine: %w", err)
	}

	byTeam := make(map[string]TeamTrials, len(trials))
	for _, tt := range trials {
		byTeam[tt.TeamID] = tt
	}

	outcomes := e.summarize(run, lineups, trials)
	quotes, err := e.priceMatchups(run, input, byTeam)
	if err != nil {
		return nil, err
	}
	facts, err := e.priceMarketFacts(run, input, trials)
	if err != nil {
		return nil, err
	}

	e.logger.WithFields(logrus.Fields{
		"run_id":   run.ID,
		"teams":    len(outcomes),
		"matchups": len(quotes),
		"duration": time.Since(started),
	}).Info("Simulation run completed")

	return &RunResult{
		Run:      run,
		Lineups:  lineups,
		Trials:   trials,
		Outcomes: outcomes,
		Quotes:   quotes,
		Facts:    facts,
	}, nil
}

func (e *Engine) summarize(run models.SimulationRun, lineups []models.Lineup, trials []TeamTrials) []models.TeamOutcome {
	unfilled := make(map[string][]string, len(lineups))
	for _, l := range lineups {
		unfilled[l.TeamID] = l.UnfilledSlots
	}

	outcomes := make([]models.TeamOutcome, 0, len(trials))
	for _, tt := range trials {
		summary := Summarize(tt)
		outcomes = append(outcomes, models.TeamOutcome{
			RunID:         run.ID,
			TeamID:        summary.TeamID,
			TeamName:      summary.TeamName,
			Mean:          summary.Mean,
			Variance:      summary.Variance,
			StdDev:        summary.StdDev,
			Percentiles:   summary.Percentiles,
			UnfilledSlots: unfilled[summary.TeamID],
		})
	}
	return outcomes
}

func (e *Engine) priceMatchups(run models.SimulationRun, input RunInput, byTeam map[string]TeamTrials) ([]models.MatchupQuote, error) {
	quotes := make([]models.MatchupQuote, 0, len(input.Matchups))
	for _, m := range input.Matchups {
		home, ok := byTeam[m.HomeTeamID]
		if !ok {
			return nil, fmt.Errorf("matchup references unknown team %s", m.HomeTeamID)
		}
		away, ok := byTeam[m.AwayTeamID]
		if !ok {
			return nil, fmt.Errorf("matchup references unknown team %s", m.AwayTeamID)
		}

		pHome, pAway, ties, err := WinProbability(home.Totals, away.Totals)
		if err != nil {
			return nil, err
		}
		pHome = ClampProbability(pHome, input.Trials)
		pAway = ClampProbability(pAway, input.Trials)

		homeML, err := MoneylinePrice(pHome, e.odds.Vig)
		if err != nil {
			return nil, err
		}
		awayML, err := MoneylinePrice(pAway, e.odds.Vig)
		if err != nil {
			return nil, err
		}

		combined := CombinedTotals(home.Totals, away.Totals)
		line := TotalLine(combined, e.odds.TotalPercentile)
		overPrice, underPrice, err := OverUnderPrices(combined, line, e.odds.Vig)
		if err != nil {
			return nil, err
		}

		quotes = append(quotes, models.MatchupQuote{
			RunID:         run.ID,
			Season:        input.Season,
			Week:          input.Week,
			HomeTeamID:    m.HomeTeamID,
			AwayTeamID:    m.AwayTeamID,
			HomeWinProb:   pHome,
			AwayWinProb:   pAway,
			HomeMoneyline: homeML,
			AwayMoneyline: awayML,
			TotalLine:     &line,
			OverPrice:     &overPrice,
			UnderPrice:    &underPrice,
			TieTrials:     ties,
		})
	}
	return quotes, nil
}

func (e *Engine) priceMarketFacts(run models.SimulationRun, input RunInput, trials []TeamTrials) ([]models.MarketFact, error) {
	highest, lowest, err := MarketProbabilities(trials)
	if err != nil {
		return nil, err
	}

	facts := make([]models.MarketFact, 0, 2*len(trials))
	for _, spec := range []struct {
		kind  models.MarketFactKind
		probs map[string]float64
	}{
		{models.MarketFactHighestScorer, highest},
		{models.MarketFactLowestScorer, lowest},
	} {
		// Iterate in team order for deterministic output.
		for _, tt := range trials {
			p := ClampProbability(spec.probs[tt.TeamID], input.Trials)
			ml, err := MoneylinePrice(p, e.odds.Vig)
			if err != nil {
				return nil, err
			}
			facts = append(facts, models.MarketFact{
				RunID:       run.ID,
				Season:      input.Season,
				Week:        input.Week,
				Kind:        spec.kind,
				TeamID:      tt.TeamID,
				Probability: p,
				Moneyline:   ml,
			})
		}
	}
	return facts, nil
}

// validateInput rejects invalid run parameters before any sampling, naming
// the offending field.
func validateInput(input RunInput) error {
	if input.Season <= 0 {
		return fmt.Errorf("invalid run input: season must be positive, got %d", input.Season)
	}
	if input.Week <= 0 {
		return fmt.Errorf("invalid run input: week must be positive, got %d", input.Week)
	}
	if input.Trials <= 0 {
		return fmt.Errorf("invalid run input: trials must be positive, got %d", input.Trials)
	}
	if input.Template.TotalSlots() == 0 {
		return fmt.Errorf("invalid run input: slot template has zero total slots")
	}
	if len(input.Rosters) < 2 {
		return fmt.Errorf("invalid run input: need at least 2 rosters, got %d", len(input.Rosters))
	}
	for _, roster := range input.Rosters {
		for _, p := range roster.Players {
			if p.StdDev != nil && *p.StdDev < 0 {
				return fmt.Errorf("invalid run input: player %s has negative stddev %.2f", p.PlayerID, *p.StdDev)
			}
		}
	}
	return nil
}
