package cachestore

import (
	"sync/atomic"
	"time"
)

// Stats tracks a group's cache hit/miss/write counters, grounded on the
// teacher's CacheStats (dot5enko-simple-column-db/manager/cache/stats.go)
// but widened from a single per-entry Reads counter into whole-store
// atomics, since C10's cache is shared by every worker in a group rather
// than owned by the entry that last touched it.
type Stats struct {
	Created time.Time

	Hits   atomic.Uint64
	Misses atomic.Uint64
	Writes atomic.Uint64
}

// NewStats returns a Stats stamped with the current time.
func NewStats() *Stats {
	return &Stats{Created: time.Now()}
}
