package partcache

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/flowgraph/fabric/bulkqueue"
	"github.com/flowgraph/fabric/cachestore"
	"github.com/flowgraph/fabric/workerpool"
)

// Worker is one partitioned-cache worker (spec.md §3 "Worker"): a
// request/reply pair of bounded ring buffers, per-peer staging buffers
// for outbound requests and replies, and counters the cleanup/termination
// protocol and the rest of the fleet can see.
type Worker struct {
	ID       int
	GroupID  int
	intraIdx int

	ctx *Context

	ReqQueue   *bulkqueue.Ring[bulkqueue.Request]
	ReplyQueue *bulkqueue.Ring[bulkqueue.Reply]

	bufPool *bulkqueue.BufferPool

	pendingOutReqs    [][]bulkqueue.Request // indexed by target group id
	pendingOutReplies [][]bulkqueue.Reply   // indexed by origin worker id

	rng *rand.Rand

	remoteSends       atomic.Uint64
	processedRequests atomic.Uint64
	finishedThreads   atomic.Int64

	initialized bool
}

func newWorker(ctx *Context, id, groupID, intraIdx int) *Worker {
	return &Worker{ID: id, GroupID: groupID, intraIdx: intraIdx, ctx: ctx}
}

// ThreadInit is the initialization barrier (§4.7): each worker binds to
// its NUMA node, allocates its own queues and per-peer staging buffers,
// then — under the Context's lock — creates its group's shared cache iff
// not yet created, and waits until every worker in the Context has
// reached this point, grounded directly on
// part_global_cached_private::thread_init.
func (w *Worker) ThreadInit() {
	if err := workerpool.BindToNode(int32(w.GroupID)); err != nil {
		slog.Warn("numa bind failed", "worker_id", w.ID, "group", w.GroupID, "err", err)
	}

	w.ReqQueue = bulkqueue.NewRing[bulkqueue.Request](w.ctx.cfg.ReqQueueCap)
	w.ReplyQueue = bulkqueue.NewRing[bulkqueue.Reply](w.ctx.cfg.ReplyQueueCap)
	w.bufPool = bulkqueue.NewBufferPool(w.ctx.cfg.ReplyQueueCap, int(w.ctx.cfg.BlockSize))

	w.pendingOutReqs = make([][]bulkqueue.Request, w.ctx.NumGroups())
	for i := range w.pendingOutReqs {
		w.pendingOutReqs[i] = make([]bulkqueue.Request, 0, w.ctx.cfg.BufSize)
	}
	w.pendingOutReplies = make([][]bulkqueue.Reply, w.ctx.TotalWorkers())
	for i := range w.pendingOutReplies {
		w.pendingOutReplies[i] = make([]bulkqueue.Reply, 0, w.ctx.cfg.BufSize)
	}

	// A per-worker rand.Rand, not the global math/rand source, so Send's
	// random peer pick for remote dispatch never contends a shared lock
	// across cache workers (SPEC_FULL.md §4).
	w.rng = rand.New(rand.NewSource(time.Now().UnixNano() + int64(w.ID)))

	ctx := w.ctx
	ctx.mu.Lock()
	group := ctx.groups[w.GroupID]
	if group.Cache == nil {
		group.Cache = cachestore.NewStore(ctx.cfg.BlockSize, ctx.cfg.TestProbe)
	}
	ctx.numFinishInit++
	if ctx.numFinishInit == ctx.TotalWorkers() {
		ctx.cond.Broadcast()
	}
	for ctx.numFinishInit < ctx.TotalWorkers() {
		ctx.cond.Wait()
	}
	ctx.mu.Unlock()

	w.initialized = true
	slog.Info("cache worker initialized", "worker_id", w.ID, "group", w.GroupID)
}

// RemoteSends is the original's remote_reads counter: how many requests
// this worker has routed to a non-local group.
func (w *Worker) RemoteSends() uint64 { return w.remoteSends.Load() }

// ProcessedRequests is the original's processed_requests counter.
func (w *Worker) ProcessedRequests() uint64 { return w.processedRequests.Load() }
