package partcache

import "log/slog"

// Cleanup is the termination-detection protocol (§4.7, §8 property 7): this
// worker first atomically increments every worker's finishedThreads
// counter (itself included), then spins, draining up to 200 requests and
// 200 replies per pass, until its own request and reply queues are empty
// and its own finishedThreads counter has reached TotalWorkers —
// grounded directly on part_global_cached_private::cleanup. The spin is
// intentional (§9 design note): the termination flag doubles as the
// quiescence probe, so every worker keeps servicing peers' in-flight
// traffic until the whole fleet has agreed to stop.
func (w *Worker) Cleanup() {
	for _, peer := range w.ctx.Workers() {
		peer.finishedThreads.Add(1)
	}

	for !w.ReqQueue.IsEmpty() || !w.ReplyQueue.IsEmpty() || w.finishedThreads.Load() < int64(w.ctx.TotalWorkers()) {
		w.ProcessRequests(200)
		w.ProcessReplies(200)
	}

	// Mirrors the original's end-of-cleanup
	// "thread %d processed %ld requests" log line, folding in the group
	// cache's resident block count so an operator can see both how busy
	// this worker was and how much of its group's address space is cached.
	group := w.ctx.groups[w.GroupID]
	slog.Info("cache worker stopped",
		"worker_id", w.ID,
		"processed_requests", w.ProcessedRequests(),
		"remote_sends", w.RemoteSends(),
		"cached_blocks", len(group.Cache.CachedBlocks()),
	)
}
