package vector

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/flowgraph/fabric/bits"
	"github.com/flowgraph/fabric/diskio"
	"github.com/flowgraph/fabric/scalar"
)

// spillWatermark is the in-memory element count above which a Tiered store
// flushes all but its newest spillWatermark/2 elements to its backing
// file, keeping the live working
// set bounded regardless of how large the ingested result frame grows.
const spillWatermark = 1 << 20

// tieredSpill is the disk-backed half of a Tiered Store. It is created
// lazily (no file is opened until the watermark is first crossed), in the
// style of the teacher's SlabManager loading slab contents on first touch
// rather than at construction (manager/meta/slab_manager.go).
type tieredSpill struct {
	mu          sync.Mutex
	path        string
	file        *diskio.File
	spilledRows uint64
}

func newTieredSpill(name string) *tieredSpill {
	return &tieredSpill{
		path: filepath.Join(os.TempDir(), fmt.Sprintf("fabric-%s-%p.spill", name, &name)),
	}
}

func (t *tieredSpill) ensureOpen() error {
	if t.file != nil {
		return nil
	}
	f := diskio.New(t.path)
	if err := f.Open(false); err != nil {
		return fmt.Errorf("vector: opening spill file %s: %w", t.path, err)
	}
	t.file = f
	return nil
}

// maybeSpill writes everything beyond the most recent spillWatermark/2
// elements of s to disk and drops them from memory.
func (t *tieredSpill) maybeSpill(s *Store) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := s.lenLocked()
	if n <= spillWatermark {
		return nil
	}
	keep := spillWatermark / 2
	cut := n - keep

	if err := t.ensureOpen(); err != nil {
		return err
	}
	w := bits.NewWriter(t.file.Writer())
	if err := writeRange(w, s, 0, cut); err != nil {
		return fmt.Errorf("vector: spilling %s: %w", s.name, err)
	}
	dropLocked(s, cut)
	t.spilledRows += uint64(cut)
	return nil
}

func (t *tieredSpill) close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	os.Remove(t.path)
	return err
}

// writeRange appends s's elements in [from, to) to w.
func writeRange(w *bits.Writer, s *Store, from, to int) error {
	switch s.typ {
	case scalar.I8:
		for _, v := range s.i8[from:to] {
			if err := w.WriteI8(v); err != nil {
				return err
			}
		}
	case scalar.I16:
		for _, v := range s.i16[from:to] {
			if err := w.WriteI16(v); err != nil {
				return err
			}
		}
	case scalar.I32:
		for _, v := range s.i32[from:to] {
			if err := w.WriteI32(v); err != nil {
				return err
			}
		}
	case scalar.I64:
		for _, v := range s.i64[from:to] {
			if err := w.WriteI64(v); err != nil {
				return err
			}
		}
	case scalar.F32:
		for _, v := range s.f32[from:to] {
			if err := w.WriteF32(v); err != nil {
				return err
			}
		}
	case scalar.F64:
		for _, v := range s.f64[from:to] {
			if err := w.WriteF64(v); err != nil {
				return err
			}
		}
	case scalar.BOOL:
		for _, v := range s.boolv[from:to] {
			if err := w.WriteBool(v); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("vector: unknown type %s", s.typ)
	}
	return nil
}

// dropLocked removes the first n elements of s's in-memory backing,
// shifting the remainder to the front. Caller already holds s.mu via the
// Append() path that invoked maybeSpill.
func dropLocked(s *Store, n int) {
	switch s.typ {
	case scalar.I8:
		s.i8 = append(s.i8[:0], s.i8[n:]...)
	case scalar.I16:
		s.i16 = append(s.i16[:0], s.i16[n:]...)
	case scalar.I32:
		s.i32 = append(s.i32[:0], s.i32[n:]...)
	case scalar.I64:
		s.i64 = append(s.i64[:0], s.i64[n:]...)
	case scalar.F32:
		s.f32 = append(s.f32[:0], s.f32[n:]...)
	case scalar.F64:
		s.f64 = append(s.f64[:0], s.f64[n:]...)
	case scalar.BOOL:
		s.boolv = append(s.boolv[:0], s.boolv[n:]...)
	}
}
