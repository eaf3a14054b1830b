package bulkqueue

import (
	"runtime"
	"sync/atomic"
)

// SpinLock is a busy-wait mutex, the Go translation of the original's
// pthread_spin_lock/pthread_spin_unlock pair guarding bulk_queue<T>'s
// add/fetch in part_global_cached_private.cpp. Held intervals here are a
// fixed-size copy loop (§4.6), short enough that spinning beats parking a
// goroutine.
type SpinLock struct {
	state atomic.Bool
}

func (l *SpinLock) Lock() {
	for !l.state.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *SpinLock) Unlock() {
	l.state.Store(false)
}
