// Package metrics provides the centralized Prometheus metrics registry for the simulation service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leaguebook",
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs by status",
	}, []string{"status"})
	QuotesPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaguebook",
		Name:      "quotes_published_total",
		Help:      "Total number of matchup quotes published",
	})
	MarketFactsPublishedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaguebook",
		Name:      "market_facts_published_total",
		Help:      "Total number of market facts published",
	})
	UnderfilledLineupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaguebook",
		Name:      "underfilled_lineups_total",
		Help:      "Total number of lineups resolved with unfilled slots",
	})
	RunConflictsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "leaguebook",
		Name:      "run_conflicts_total",
		Help:      "Total number of run requests rejected because a run was already in flight",
	})
)

// Gauge metrics
var (
	CurrentRunTrials = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "leaguebook",
		Name:      "current_run_trials",
		Help:      "Trial count of the current run for each week",
	}, []string{"season", "week"})
	CurrentRunAgeSeconds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "leaguebook",
		Name:      "current_run_age_seconds",
		Help:      "Age of the current run for each week in seconds",
	}, []string{"season", "week"})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "leaguebook",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of simulation runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 300},
	})
	PublishDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "leaguebook",
		Name:      "publish_duration_seconds",
		Help:      "Duration of run publication transactions in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(QuotesPublishedTotal)
		registry.MustRegister(MarketFactsPublishedTotal)
		registry.MustRegister(UnderfilledLineupsTotal)
		registry.MustRegister(RunConflictsTotal)

		// Register gauge metrics
		registry.MustRegister(CurrentRunTrials)
		registry.MustRegister(CurrentRunAgeSeconds)

		// Register histogram metrics
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(PublishDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulationRun records a simulation run event.
// status should be one of: "success", "failure", "conflict"
func RecordSimulationRun(status string) {
	SimulationRunsTotal.WithLabelValues(status).Inc()
}

// RecordSimulationDuration records a simulation run's duration.
func RecordSimulationDuration(durationSeconds float64) {
	SimulationDuration.Observe(durationSeconds)
}

// RecordPublishDuration records the duration of a publish transaction.
func RecordPublishDuration(durationSeconds float64) {
	PublishDuration.Observe(durationSeconds)
}

// RecordQuotesPublished records published quotes and facts.
func RecordQuotesPublished(quotes, facts int) {
	QuotesPublishedTotal.Add(float64(quotes))
	MarketFactsPublishedTotal.Add(float64(facts))
}

// RecordUnderfilledLineup records a lineup with unfilled slots.
func RecordUnderfilledLineup() {
	UnderfilledLineupsTotal.Inc()
}

// RecordRunConflict records a rejected concurrent run request.
func RecordRunConflict() {
	RunConflictsTotal.Inc()
}

// UpdateCurrentRun updates the gauges describing the current run for a week.
func UpdateCurrentRun(season, week string, trials float64, ageSeconds float64) {
	CurrentRunTrials.WithLabelValues(season, week).Set(trials)
	CurrentRunAgeSeconds.WithLabelValues(season, week).Set(ageSeconds)
}
