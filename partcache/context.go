// Package partcache implements the partitioned cache worker (C10): a
// per-NUMA-node sharded cache front-end where each worker owns a partition
// of the cache, requests are hashed and forwarded to the owning partition
// via bounded in-memory queues, and replies are routed back to the
// originating worker. Grounded directly on
// _examples/original_source/part_global_cached_private.cpp, translated
// from raw pthreads/numa calls and process-wide statics into an explicit
// Context passed to every Worker, per spec.md §9's "Process-wide state"
// redesign advisory.
package partcache

import "sync"

// Config carries the knobs needed to construct a partitioned cache
// (fabric.Config's partitioned-cache fields), grounded on the constructor
// parameters part_global_cached_private::part_global_cached_private took
// directly (num_groups, cache_size, entry_size) rather than a file/env
// loader — spec.md §6 says "CLI/config: none at the core layer", and the
// original took constructor parameters only.
type Config struct {
	NumGroups       int
	WorkersPerGroup int
	BlockSize       uint32
	BufSize         int
	ReqQueueCap     int
	ReplyQueueCap   int
	TestProbe       bool
}

// Context is the explicit dependency-injection replacement for the
// original's process-wide statics (groups, init_mutex, wait_mutex, cond,
// num_finish_init): every worker holds a pointer to the same Context
// instead of reading package-level globals.
type Context struct {
	cfg Config

	groups  []*Group
	workers []*Worker

	mu            sync.Mutex
	cond          *sync.Cond
	numFinishInit int
}

// NewContext constructs every group and worker up front (workers are not
// started until ThreadInit/Run is called on each).
func NewContext(cfg Config) *Context {
	ctx := &Context{cfg: cfg}
	ctx.cond = sync.NewCond(&ctx.mu)

	ctx.groups = make([]*Group, cfg.NumGroups)
	for g := 0; g < cfg.NumGroups; g++ {
		ctx.groups[g] = &Group{ID: g}
	}

	id := 0
	for g := 0; g < cfg.NumGroups; g++ {
		for i := 0; i < cfg.WorkersPerGroup; i++ {
			w := newWorker(ctx, id, g, i)
			ctx.workers = append(ctx.workers, w)
			ctx.groups[g].WorkerIDs = append(ctx.groups[g].WorkerIDs, id)
			id++
		}
	}
	return ctx
}

// TotalWorkers is nthreads in the original.
func (c *Context) TotalWorkers() int { return len(c.workers) }

// Worker returns the worker with the given global id.
func (c *Context) Worker(id int) *Worker { return c.workers[id] }

// Group returns the group with the given id.
func (c *Context) Group(id int) *Group { return c.groups[id] }

// NumGroups is num_groups in the original.
func (c *Context) NumGroups() int { return len(c.groups) }

// Workers returns every worker in the context, in id order, used to start
// and clean up the whole fleet.
func (c *Context) Workers() []*Worker { return c.workers }
