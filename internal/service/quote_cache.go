// Package service orchestrates simulation runs and published-quote reads.
package service

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/leaguebook/internal/models"
)

// weekSnapshot bundles everything published for one week's current run.
type weekSnapshot struct {
	Run      *models.SimulationRun
	Outcomes []*models.TeamOutcome
	Quotes   []*models.MatchupQuote
	Facts    []*models.MarketFact
}

// QuoteCache provides in-memory caching of current-run reads, keyed by week.
// Entries are invalidated whenever a new run for the week is published, so a
// TTL miss only ever costs a database round trip, never staleness.
type QuoteCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewQuoteCache creates a new quote cache with the given TTL.
func NewQuoteCache(ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func weekKey(season, week int) string {
	return fmt.Sprintf("%d:%d", season, week)
}

// Get retrieves a cached snapshot for a week.
func (qc *QuoteCache) Get(season, week int) *weekSnapshot {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	if value, found := qc.cache.Get(weekKey(season, week)); found {
		qc.hitCount++
		if snapshot, ok := value.(*weekSnapshot); ok {
			return snapshot
		}
	}

	qc.missCount++
	return nil
}

// Set stores a snapshot for a week.
func (qc *QuoteCache) Set(season, week int, snapshot *weekSnapshot) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.cache.Set(weekKey(season, week), snapshot, qc.ttl)
}

// Invalidate removes the cached snapshot for a week.
func (qc *QuoteCache) Invalidate(season, week int) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.cache.Delete(weekKey(season, week))
}

// Clear flushes the entire cache.
func (qc *QuoteCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	qc.cache.Flush()
	qc.hitCount = 0
	qc.missCount = 0
}

// Stats returns cache hit statistics.
func (qc *QuoteCache) Stats() (hits, misses uint64, ratio float64) {
	qc.mu.RLock()
	defer qc.mu.RUnlock()

	hits = qc.hitCount
	misses = qc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}
