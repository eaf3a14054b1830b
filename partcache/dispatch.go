package partcache

import (
	"log/slog"

	"github.com/flowgraph/fabric/bulkqueue"
)

// HashRequest maps a request to the group that owns it. The hash_req
// implementation is not present in the retrieval pack's excerpt of
// part_global_cached_private.cpp (only its call site and contract are);
// this implementation hashes on block index (offset / BlockSize) modulo
// the group count, the same offset-partitioning cachestore itself uses,
// so a request always lands on the group whose cache can actually serve
// it without a cross-group forward. Recorded as an open design decision
// in DESIGN.md.
func (ctx *Context) HashRequest(req bulkqueue.Request) int {
	idx := req.Offset / uint64(ctx.cfg.BlockSize)
	return int(idx % uint64(len(ctx.groups)))
}

// Send dispatches reqs to node nodeID, round-robining across that group's
// workers starting from this worker's own intra-group index when the
// target is local, or a random intra-group index when remote — grounded
// directly on part_global_cached_private::send. It returns the slice of
// requests that could not be placed because every peer's queue was full.
func (w *Worker) Send(nodeID int, reqs []bulkqueue.Request) []bulkqueue.Request {
	group := w.ctx.groups[nodeID]
	if nodeID != w.GroupID {
		w.remoteSends.Add(uint64(len(reqs)))
	}

	var base int
	if nodeID == w.GroupID {
		base = w.intraIdx
	} else {
		base = w.rng.Intn(len(group.WorkerIDs))
	}

	remaining := reqs
	for i := 0; len(remaining) > 0 && i < len(group.WorkerIDs); i++ {
		peer := w.ctx.Worker(group.WorkerIDs[(base+i)%len(group.WorkerIDs)])
		if peer == nil || peer.ReqQueue == nil {
			continue
		}
		// is_full is a pre-check only; a concurrent Fetch on the peer's
		// side may race it, same caveat as the original.
		if !peer.ReqQueue.IsFull() {
			n := peer.ReqQueue.Add(remaining)
			remaining = remaining[n:]
		}
	}
	return remaining
}

// DistributeReqs hashes each request to its owning group, batching into
// per-group staging buffers up to BufSize before calling Send, and
// memmoving any residual to the front of the buffer after an incomplete
// Send — grounded directly on
// part_global_cached_private::distribute_reqs. A staging buffer that is
// already full when a new request arrives is logged and dropped (§7
// QueueOverflow), matching the shipped drop-not-rehash behavior §9 leaves
// open.
func (w *Worker) DistributeReqs(reqs []bulkqueue.Request) {
	for _, req := range reqs {
		g := w.ctx.HashRequest(req)
		buf := w.pendingOutReqs[g]
		if len(buf) == w.ctx.cfg.BufSize {
			slog.Warn("request staging buffer full, dropping request", "worker_id", w.ID, "group", g)
			continue
		}
		buf = append(buf, req)
		if len(buf) == w.ctx.cfg.BufSize {
			remaining := w.Send(g, buf)
			buf = append(buf[:0], remaining...)
		}
		w.pendingOutReqs[g] = buf
	}
	for g, buf := range w.pendingOutReqs {
		if len(buf) == 0 {
			continue
		}
		remaining := w.Send(g, buf)
		w.pendingOutReqs[g] = append(buf[:0], remaining...)
	}
}
