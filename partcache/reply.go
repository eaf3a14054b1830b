package partcache

import (
	"log/slog"

	"github.com/flowgraph/fabric/bulkqueue"
)

// Reply routes each reply back to the worker that issued its originating
// request, batching into per-origin staging buffers up to BufSize before
// bulk-pushing to that worker's reply queue — grounded directly on
// part_global_cached_private::reply. A staging buffer already full when a
// new reply arrives is logged and dropped, matching the request side's
// §7 QueueOverflow policy.
func (w *Worker) Reply(requests []bulkqueue.Request, replies []bulkqueue.Reply) {
	for i, rep := range replies {
		origin := requests[i].Origin
		buf := w.pendingOutReplies[origin]
		if len(buf) == w.ctx.cfg.BufSize {
			slog.Warn("reply staging buffer full, dropping reply", "worker_id", w.ID, "origin", origin)
			continue
		}
		buf = append(buf, rep)
		w.pendingOutReplies[origin] = buf
		if len(buf) == w.ctx.cfg.BufSize {
			w.flushReplies(origin)
		}
	}
	for origin, buf := range w.pendingOutReplies {
		if len(buf) > 0 {
			w.flushReplies(origin)
		}
	}
}

func (w *Worker) flushReplies(origin int) {
	buf := w.pendingOutReplies[origin]
	peer := w.ctx.Worker(origin)
	n := peer.ReplyQueue.Add(buf)
	w.pendingOutReplies[origin] = append(buf[:0], buf[n:]...)
}
