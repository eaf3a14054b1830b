package partcache

import "github.com/flowgraph/fabric/cachestore"

// Group is a NUMA shard (spec.md §3 "Thread-group"): a set of workers
// pinned to the same node sharing a single cache instance, created
// exactly once per group under Worker.ThreadInit's initialization
// barrier.
type Group struct {
	ID        int
	WorkerIDs []int
	Cache     *cachestore.Store
}
