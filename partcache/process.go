package partcache

import (
	"fmt"

	"github.com/flowgraph/fabric/bulkqueue"
	"github.com/flowgraph/fabric/cachestore"
)

// ProcessRequests drains this worker's own request queue (up to max
// records, BufSize at a time), services each through its group's shared
// cache, and routes the resulting replies back with Reply — grounded
// directly on part_global_cached_private::process_requests. Each
// request's access error (if any) is carried as Reply.Status/Success (§7
// AccessError), never as a Go error crossing the queue.
func (w *Worker) ProcessRequests(max int) int {
	processed := 0
	group := w.ctx.groups[w.GroupID]

	for !w.ReqQueue.IsEmpty() && processed < max {
		reqs := make([]bulkqueue.Request, w.ctx.cfg.BufSize)
		n := w.ReqQueue.Fetch(reqs)
		if n == 0 {
			break
		}
		reqs = reqs[:n]

		replies := make([]bulkqueue.Reply, n)
		for i, req := range reqs {
			_, err := group.Cache.Access(req.Buffer, req.Offset, req.Size, cachestore.Method(req.Method))
			replies[i] = bulkqueue.Reply{
				Offset:   req.Offset,
				Size:     req.Size,
				Method:   req.Method,
				Buffer:   req.Buffer,
				Status:   statusOf(err),
				Success:  err == nil,
				Origin:   req.Origin,
				BufID:    req.BufID,
				FromPool: req.FromPool,
			}
		}
		processed += n
		w.Reply(reqs, replies)
	}
	w.processedRequests.Add(uint64(processed))
	return processed
}

func statusOf(err error) int32 {
	if err == nil {
		return 0
	}
	return -1
}

// ProcessReplies drains this worker's own reply queue (up to max records,
// BufSize at a time), asserting §8's integrity probe on successful READ
// replies when the Context was built with TestProbe, then returns each
// reply's buffer to this worker's pool if it was drawn from one —
// grounded directly on
// part_global_cached_private::process_replies/process_reply. It returns
// the number of records drained (the original's process_replies return
// value, summed by Access into num_recv).
func (w *Worker) ProcessReplies(max int) int {
	processed := 0
	for !w.ReplyQueue.IsEmpty() && processed < max {
		out := make([]bulkqueue.Reply, w.ctx.cfg.BufSize)
		n := w.ReplyQueue.Fetch(out)
		if n == 0 {
			break
		}
		out = out[:n]

		for _, rep := range out {
			if rep.Success && rep.Method == bulkqueue.READ && w.ctx.cfg.TestProbe {
				checkIntegrity(rep)
			}
			if rep.FromPool {
				w.bufPool.Return(rep.BufID)
			}
		}
		processed += n
	}
	return processed
}

// checkIntegrity enforces §8 testable property 8: every successful READ
// reply's buffer's first 8 bytes equal offset/8. A mismatch is an
// InvariantBreach (§7): fail fast.
func checkIntegrity(rep bulkqueue.Reply) {
	if len(rep.Buffer) < 8 {
		panic("partcache: reply buffer shorter than the integrity probe's 8 bytes")
	}
	var got uint64
	for i := 7; i >= 0; i-- {
		got = got<<8 | uint64(rep.Buffer[i])
	}
	if want := rep.Offset / 8; got != want {
		panic(fmt.Sprintf("partcache: integrity probe mismatch at offset %d: got %d want %d", rep.Offset, got, want))
	}
}
