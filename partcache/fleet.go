package partcache

import "sync"

// Run starts one goroutine per worker in the Context: each runs
// ThreadInit (crossing the initialization barrier with its peers), then
// work, then Cleanup (the termination-detection protocol), mirroring the
// original's one-pthread-per-worker lifecycle without requiring every
// caller to hand-roll it. Run blocks until every worker has completed
// Cleanup.
func (c *Context) Run(work func(w *Worker)) {
	var wg sync.WaitGroup
	for _, w := range c.workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.ThreadInit()
			work(w)
			w.Cleanup()
		}(w)
	}
	wg.Wait()
}
