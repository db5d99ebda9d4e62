package service

import (
	"fmt"
	"sync"
	"time"
)

// ImportMetrics tracks statistics about a week import
type ImportMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	TotalRosters     int
	ImportedRosters  int
	ImportedPlayers  int
	ImportedMatchups int
	ValidationErrors int
	Errors           int
}

// NewImportMetrics creates a new metrics tracker
func NewImportMetrics() *ImportMetrics {
	return &ImportMetrics{
		StartTime: time.Now(),
	}
}

// Reset resets all metrics
func (m *ImportMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.TotalRosters = 0
	m.ImportedRosters = 0
	m.ImportedPlayers = 0
	m.ImportedMatchups = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// RecordRoster increments imported roster count
func (m *ImportMetrics) RecordRoster() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportedRosters++
}

// RecordPlayers adds to the imported player count
func (m *ImportMetrics) RecordPlayers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportedPlayers += n
}

// RecordMatchup increments imported matchup count
func (m *ImportMetrics) RecordMatchup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportedMatchups++
}

// RecordError increments error count
func (m *ImportMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// RecordValidationError increments validation error count
func (m *ImportMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// String returns a formatted string representation of metrics
func (m *ImportMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.TotalRosters > 0 {
		successRate = float64(m.ImportedRosters) / float64(m.TotalRosters) * 100
	}

	return fmt.Sprintf(
		"ImportMetrics{Rosters=%d/%d (%.1f%%), Players=%d, Matchups=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.ImportedRosters,
		m.TotalRosters,
		successRate,
		m.ImportedPlayers,
		m.ImportedMatchups,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
