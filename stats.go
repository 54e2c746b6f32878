package ssdb

import "sync/atomic"

// SessionStats contains statistics about session operations.
// All fields are safe for concurrent access.
//
// For Prometheus integration, expose these as:
//   - Counters: Gets, Sets, Deletes, HashGets, HashSets, HashDeletes, Incrs, Errors
//   - Counter: GetHits (derive hit rate as GetHits/Gets)
type SessionStats struct {
	Gets        uint64 // Total Get operations
	Sets        uint64 // Total Set operations
	Deletes     uint64 // Total Delete operations
	HashGets    uint64 // Total HGet operations
	HashSets    uint64 // Total HSet operations
	HashDeletes uint64 // Total HDelete operations
	Incrs       uint64 // Total Incr operations
	GetHits     uint64 // Get/HGet operations that found the key
	Errors      uint64 // Total errors across all operations
}

// sessionStatsCollector provides internal methods for updating stats.
// Not exported - the session updates its own stats.
type sessionStatsCollector struct {
	stats *SessionStats
}

func newSessionStatsCollector() *sessionStatsCollector {
	return &sessionStatsCollector{
		stats: &SessionStats{},
	}
}

func (c *sessionStatsCollector) recordGet(found bool) {
	atomic.AddUint64(&c.stats.Gets, 1)
	if found {
		atomic.AddUint64(&c.stats.GetHits, 1)
	}
}

func (c *sessionStatsCollector) recordSet() {
	atomic.AddUint64(&c.stats.Sets, 1)
}

func (c *sessionStatsCollector) recordDelete() {
	atomic.AddUint64(&c.stats.Deletes, 1)
}

func (c *sessionStatsCollector) recordHashGet(found bool) {
	atomic.AddUint64(&c.stats.HashGets, 1)
	if found {
		atomic.AddUint64(&c.stats.GetHits, 1)
	}
}

func (c *sessionStatsCollector) recordHashSet() {
	atomic.AddUint64(&c.stats.HashSets, 1)
}

func (c *sessionStatsCollector) recordHashDelete() {
	atomic.AddUint64(&c.stats.HashDeletes, 1)
}

func (c *sessionStatsCollector) recordIncr() {
	atomic.AddUint64(&c.stats.Incrs, 1)
}

func (c *sessionStatsCollector) recordError() {
	atomic.AddUint64(&c.stats.Errors, 1)
}

func (c *sessionStatsCollector) snapshot() SessionStats {
	return SessionStats{
		Gets:        atomic.LoadUint64(&c.stats.Gets),
		Sets:        atomic.LoadUint64(&c.stats.Sets),
		Deletes:     atomic.LoadUint64(&c.stats.Deletes),
		HashGets:    atomic.LoadUint64(&c.stats.HashGets),
		HashSets:    atomic.LoadUint64(&c.stats.HashSets),
		HashDeletes: atomic.LoadUint64(&c.stats.HashDeletes),
		Incrs:       atomic.LoadUint64(&c.stats.Incrs),
		GetHits:     atomic.LoadUint64(&c.stats.GetHits),
		Errors:      atomic.LoadUint64(&c.stats.Errors),
	}
}

// Stats returns a snapshot of session statistics.
func (s *Session) Stats() SessionStats {
	return s.stats.snapshot()
}
