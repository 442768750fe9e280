package api

import (
	"sync"
	"time"
)

// StatsSnapshot is a point-in-time copy of generation totals.
type StatsSnapshot struct {
	Generated int    `json:"generated"`
	Failed    int    `json:"failed"`
	Pages     int    `json:"pages"`
	Uptime    string `json:"uptime"`
}

// StatsTracker accumulates generation totals for the service lifetime.
// Safe for concurrent use by handlers.
type StatsTracker struct {
	mu        sync.Mutex
	generated int
	failed    int
	pages     int
	started   time.Time
}

// NewStatsTracker creates a tracker with the clock started.
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{started: time.Now()}
}

// RecordSuccess counts one successful generation and its pages.
func (t *StatsTracker) RecordSuccess(pages int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.generated++
	t.pages += pages
}

// RecordFailure counts one failed generation.
func (t *StatsTracker) RecordFailure() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failed++
}

// Snapshot returns the current totals.
func (t *StatsTracker) Snapshot() StatsSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return StatsSnapshot{
		Generated: t.generated,
		Failed:    t.failed,
		Pages:     t.pages,
		Uptime:    time.Since(t.started).Round(time.Second).String(),
	}
}
