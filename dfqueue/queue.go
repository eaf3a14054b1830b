// Package dfqueue implements the bounded data-frame queue (C7): a
// multi-producer, single-consumer queue of completed frames with
// broadcast-before-wait signaling on both the full and empty sides.
// Grounded directly on data_frame_set in
// _examples/original_source/matrix/data_io.cpp, translated from
// pthread_mutex/pthread_cond pairs to sync.Mutex/sync.Cond.
package dfqueue

import (
	"sync"

	"github.com/flowgraph/fabric/frame"
)

// Queue is a bounded MPSC queue of *frame.Frame. Capacity is fixed at
// construction (spec.md §4.4: cap = workers * 3).
type Queue struct {
	mu   sync.Mutex
	full *sync.Cond // producers wait here when the queue is at capacity
	empt *sync.Cond // the consumer waits here when the queue is empty

	frames []*frame.Frame
	cap    int
	closed bool

	waitingForFetch bool
	waitingForAdd   bool
}

// New constructs a queue with the given fixed capacity.
func New(capacity int) *Queue {
	q := &Queue{cap: capacity}
	q.full = sync.NewCond(&q.mu)
	q.empt = sync.NewCond(&q.mu)
	return q
}

// Push adds a frame, blocking while the queue is at capacity. Before
// suspending it signals the consumer, guaranteeing liveness if the
// consumer is already waiting in DrainAll.
func (q *Queue) Push(f *frame.Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) >= q.cap {
		if q.waitingForFetch {
			q.empt.Signal()
		}
		q.waitingForAdd = true
		q.full.Wait()
		q.waitingForAdd = false
	}
	q.frames = append(q.frames, f)
	q.empt.Signal()
}

// DrainAll blocks while the queue is empty, broadcast-waking any waiting
// producers first, then atomically removes and returns every queued
// frame, resetting the count to zero. Once CloseProducers has been called
// (driver has reached pool quiescence — no further Push will ever occur)
// DrainAll returns immediately, empty or not, instead of blocking forever:
// the original's data_frame_set has no such signal and relies on there
// always being an in-flight task left to wake the final fetch, which is
// only true if every submitted task outlives the driver's last
// opportunistic drain. CloseProducers removes that race without changing
// behavior for any call made before producers are known finished.
func (q *Queue) DrainAll() []*frame.Frame {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.frames) == 0 && !q.closed {
		if q.waitingForAdd {
			q.full.Broadcast()
		}
		q.waitingForFetch = true
		q.empt.Wait()
		q.waitingForFetch = false
	}
	out := q.frames
	q.frames = nil
	q.full.Broadcast()
	return out
}

// CloseProducers marks that no further Push call will occur, unblocking
// any pending or future DrainAll call once the queue is empty.
func (q *Queue) CloseProducers() {
	q.mu.Lock()
	q.closed = true
	q.empt.Broadcast()
	q.mu.Unlock()
}

// Count returns the number of frames currently queued.
func (q *Queue) Count() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return uint64(len(q.frames))
}
