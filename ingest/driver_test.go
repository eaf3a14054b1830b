package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/flowgraph/fabric/frame"
	"github.com/flowgraph/fabric/lineparser"
	"github.com/flowgraph/fabric/workerpool"
)

// TestReadLinesEmptyFile is scenario S1 (§8): an empty file must ingest to
// a zero-row, correctly-schemad frame, not hang. Before CloseProducers was
// added to ReadLines this deadlocked in dfqueue.Queue.DrainAll, since
// src.Eof() is true immediately and no producer ever pushes a frame.
func TestReadLinesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	pool := workerpool.New(1, 2)
	defer pool.Close()

	done := make(chan struct{})
	var result *frame.Frame
	var readErr error
	go func() {
		defer close(done)
		result, readErr = ReadLines(pool, path, lineparser.EdgeParser{}, true)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ReadLines(empty file) deadlocked")
	}

	if readErr != nil {
		t.Fatalf("ReadLines: %v", readErr)
	}
	if result.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", result.Len())
	}
	if result.NumCols() != 2 {
		t.Fatalf("NumCols() = %d, want 2", result.NumCols())
	}
}

func TestReadLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("1 2\n3 4\n5 6\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	pool := workerpool.New(1, 2)
	defer pool.Close()

	result, err := ReadLines(pool, path, lineparser.EdgeParser{}, true)
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if result.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", result.Len())
	}
}
