package cachestore

import (
	"fmt"
	"sync"
	"testing"
)

func TestWriteThenReadRoundTrip(t *testing.T) {
	s := NewStore(4096, false)

	payload := make([]byte, 64)
	for i := range payload {
		payload[i] = byte(i)
	}

	if n, err := s.Access(payload, 0, uint32(len(payload)), WRITE); err != nil || n != len(payload) {
		t.Fatalf("write: n=%d err=%v", n, err)
	}

	out := make([]byte, 64)
	n, err := s.Access(out, 0, uint32(len(out)), READ)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != len(out) {
		t.Fatalf("read n = %d, want %d", n, len(out))
	}
	for i := range out {
		if out[i] != payload[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], payload[i])
		}
	}
	if s.Stats.Writes.Load() != 1 || s.Stats.Hits.Load() != 1 {
		t.Fatalf("stats = writes:%d hits:%d, want 1,1", s.Stats.Writes.Load(), s.Stats.Hits.Load())
	}
}

func TestReadMissSynthesizesIntegrityPattern(t *testing.T) {
	s := NewStore(4096, true)

	out := make([]byte, 64)
	offset := uint64(8192)
	if _, err := s.Access(out, offset, uint32(len(out)), READ); err != nil {
		t.Fatalf("read: %v", err)
	}
	var got uint64
	for i := 7; i >= 0; i-- {
		got = got<<8 | uint64(out[i])
	}
	if want := offset / 8; got != want {
		t.Fatalf("integrity pattern = %d, want %d", got, want)
	}
	if s.Stats.Misses.Load() != 1 {
		t.Fatalf("misses = %d, want 1", s.Stats.Misses.Load())
	}
}

func TestReadHitReusesHotCopy(t *testing.T) {
	s := NewStore(4096, true)
	out := make([]byte, 32)

	if _, err := s.Access(out, 0, uint32(len(out)), READ); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := s.Access(out, 0, uint32(len(out)), READ); err != nil {
		t.Fatalf("second read: %v", err)
	}
	if s.Stats.Misses.Load() != 1 {
		t.Fatalf("misses = %d, want 1 (second read should hit)", s.Stats.Misses.Load())
	}
	if s.Stats.Hits.Load() != 1 {
		t.Fatalf("hits = %d, want 1", s.Stats.Hits.Load())
	}
}

// TestConcurrentReadsOfSameBlockAllPassIntegrity is a same-group,
// same-block slice of scenario S6: many workers racing to read the same
// block must all see a fully-populated hot copy, never a short one from a
// reader observing p.hot before its Data/Items writes are visible.
func TestConcurrentReadsOfSameBlockAllPassIntegrity(t *testing.T) {
	s := NewStore(4096, true)
	offset := uint64(4096)

	const readers = 32
	var wg sync.WaitGroup
	errs := make([]error, readers)
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := make([]byte, 64)
			n, err := s.Access(out, offset, uint32(len(out)), READ)
			if err != nil {
				errs[i] = err
				return
			}
			if n != len(out) {
				errs[i] = fmt.Errorf("short read: got %d want %d", n, len(out))
				return
			}
			var got uint64
			for b := 7; b >= 0; b-- {
				got = got<<8 | uint64(out[b])
			}
			if want := offset / 8; got != want {
				errs[i] = fmt.Errorf("integrity pattern = %d, want %d", got, want)
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("reader %d: %v", i, err)
		}
	}
}
