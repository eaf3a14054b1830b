package partcache

import "github.com/flowgraph/fabric/bulkqueue"

// Access is the public cached-access entry point (spec.md §4.7, §6): it
// stamps every request with this worker as Origin, distributes them to
// their owning groups, then alternates processing this worker's own
// inbound request/reply queues — processing up to 2n requests and 4n
// replies per pass, "to help load balancing" — until its own buffer pool
// has a free slot again, grounded directly on
// part_global_cached_private::access. Requests that want a buffer drawn
// from this worker's pool rather than supplying their own should leave
// Buffer nil and FromPool true; Access fills Buffer from the pool before
// distributing.
func (w *Worker) Access(reqs []bulkqueue.Request, method bulkqueue.Method) int {
	for i := range reqs {
		reqs[i].Method = method
		reqs[i].Origin = w.ID
		if reqs[i].FromPool && reqs[i].Buffer == nil {
			buf, id := w.bufPool.Get()
			reqs[i].Buffer = buf
			reqs[i].BufID = id
		}
	}

	w.DistributeReqs(reqs)

	n := len(reqs)
	numRecv := 0
	w.ProcessRequests(n * 2)
	numRecv += w.ProcessReplies(n * 4)
	for w.bufPool.IsFull() {
		w.ProcessRequests(n * 2)
		numRecv += w.ProcessReplies(n * 4)
	}
	return numRecv
}
