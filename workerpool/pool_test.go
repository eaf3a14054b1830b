package workerpool

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSubmitRunsEveryTask(t *testing.T) {
	p := New(2, 2)
	defer p.Close()

	var done atomic.Int64
	const n = 200
	for i := 0; i < n; i++ {
		node := ANY
		if i%2 == 0 {
			node = int32(i % 2)
		}
		p.Submit(node, TaskFunc(func() {
			done.Add(1)
		}))
	}
	p.WaitForQuiescence()

	if got := done.Load(); got != n {
		t.Fatalf("done = %d, want %d", got, n)
	}
	if got := p.Pending(); got != 0 {
		t.Fatalf("Pending() = %d, want 0", got)
	}
}

func TestWaitForQuiescenceUnblocksAfterDrain(t *testing.T) {
	p := New(1, 1)
	defer p.Close()

	start := make(chan struct{})
	finished := make(chan struct{})
	p.Submit(ANY, TaskFunc(func() {
		<-start
	}))

	go func() {
		p.WaitForQuiescence()
		close(finished)
	}()

	select {
	case <-finished:
		t.Fatalf("WaitForQuiescence returned before task completed")
	case <-time.After(20 * time.Millisecond):
	}

	close(start)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatalf("WaitForQuiescence never returned")
	}
}

func TestLeastLoadedNodeReturnsANode(t *testing.T) {
	p := New(3, 1)
	defer p.Close()

	block := make(chan struct{})
	for _, g := range p.nodes {
		for _, w := range g {
			p.pending.Add(1)
			w.queue <- TaskFunc(func() { <-block })
		}
	}

	// Every node's single worker is handed a blocking task. Once each has
	// dequeued it, every node's queue load is 0 and leastLoadedNode, which
	// breaks ties toward the lowest node index, returns the same node on
	// every call; this only checks that it returns a node at all.
	seen := map[int32]bool{}
	for i := 0; i < 3; i++ {
		node := p.leastLoadedNode()
		seen[node] = true
	}
	close(block)
	p.WaitForQuiescence()

	if len(seen) == 0 {
		t.Fatalf("leastLoadedNode never returned a node")
	}
}
