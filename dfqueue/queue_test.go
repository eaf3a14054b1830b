package dfqueue

import (
	"testing"
	"time"

	"github.com/flowgraph/fabric/frame"
)

func TestPushThenDrainAllReturnsAll(t *testing.T) {
	q := New(4)
	q.Push(frame.New())
	q.Push(frame.New())

	got := q.DrainAll()
	if len(got) != 2 {
		t.Fatalf("DrainAll() returned %d frames, want 2", len(got))
	}
	if q.Count() != 0 {
		t.Fatalf("Count() after drain = %d, want 0", q.Count())
	}
}

func TestPushBlocksAtCapacityUntilDrain(t *testing.T) {
	q := New(2)
	q.Push(frame.New())
	q.Push(frame.New())

	pushed := make(chan struct{})
	go func() {
		q.Push(frame.New()) // should block until DrainAll frees capacity
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatalf("Push returned before queue had free capacity")
	case <-time.After(20 * time.Millisecond):
	}

	q.DrainAll()

	select {
	case <-pushed:
	case <-time.After(time.Second):
		t.Fatalf("blocked Push never unblocked after DrainAll")
	}
}

func TestDrainAllBlocksUntilPush(t *testing.T) {
	q := New(4)

	drained := make(chan []*frame.Frame)
	go func() {
		drained <- q.DrainAll()
	}()

	select {
	case <-drained:
		t.Fatalf("DrainAll returned before any Push")
	case <-time.After(20 * time.Millisecond):
	}

	q.Push(frame.New())

	select {
	case got := <-drained:
		if len(got) != 1 {
			t.Fatalf("DrainAll() = %d frames, want 1", len(got))
		}
	case <-time.After(time.Second):
		t.Fatalf("DrainAll never unblocked after Push")
	}
}

func TestCloseProducersUnblocksEmptyDrain(t *testing.T) {
	q := New(4)

	drained := make(chan []*frame.Frame)
	go func() {
		drained <- q.DrainAll()
	}()

	select {
	case <-drained:
		t.Fatalf("DrainAll returned before close")
	case <-time.After(20 * time.Millisecond):
	}

	q.CloseProducers()

	select {
	case got := <-drained:
		if len(got) != 0 {
			t.Fatalf("DrainAll() after close = %d frames, want 0", len(got))
		}
	case <-time.After(time.Second):
		t.Fatalf("DrainAll never unblocked after CloseProducers")
	}
}

func TestIdempotentDrainAfterClose(t *testing.T) {
	q := New(4)
	q.Push(frame.New())
	q.CloseProducers()

	first := q.DrainAll()
	if len(first) != 1 {
		t.Fatalf("first DrainAll() = %d frames, want 1", len(first))
	}
	second := q.DrainAll()
	if len(second) != 0 {
		t.Fatalf("second DrainAll() = %d frames, want 0", len(second))
	}
}

func TestQueueBoundNeverExceedsCapacity(t *testing.T) {
	const capacity = 3
	q := New(capacity)
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			q.Push(frame.New())
		}
		close(done)
	}()

	for i := 0; i < 20; {
		if c := q.Count(); c > capacity {
			t.Fatalf("Count() = %d exceeds cap %d", c, capacity)
		}
		got := q.DrainAll()
		i += len(got)
	}
	<-done
}
