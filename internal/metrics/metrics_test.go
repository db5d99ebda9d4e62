package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordSimulationRun(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		status string
	}{
		{
			name:   "successful run",
			status: "success",
		},
		{
			name:   "failed run",
			status: "failure",
		},
		{
			name:   "conflicting run",
			status: "conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordSimulationRun(tt.status)
			})
		})
	}
}

func TestRecordSimulationDuration(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSimulationDuration(1.25)
	})
}

func TestRecordQuotesPublished(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordQuotesPublished(5, 20)
	})

	assert.NotPanics(t, func() {
		RecordQuotesPublished(0, 0)
	})
}

func TestUpdateCurrentRun(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name   string
		trials float64
		age    float64
	}{
		{
			name:   "fresh run",
			trials: 10000,
			age:    0,
		},
		{
			name:   "aged run",
			trials: 50000,
			age:    86400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateCurrentRun("2025", "7", tt.trials, tt.age)
			})
		})
	}
}

func TestRecordUnderfilledLineup(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordUnderfilledLineup()
	})
}

func TestRecordRunConflict(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordRunConflict()
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func BenchmarkRecordSimulationRun(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordSimulationRun("success")
	}
}

func BenchmarkRecordQuotesPublished(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordQuotesPublished(5, 20)
	}
}
