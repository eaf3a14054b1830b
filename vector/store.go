// Package vector implements the column vector store (C2): an append-only
// typed column with local (single-NUMA) and tiered (possibly disk-backed)
// variants. The typed-union dispatch below is grounded on the teacher's
// switch-over-FieldType pattern (dot5enko-simple-column-db/schema) and its
// generic RuntimeBlockData[T] (dot5enko-simple-column-db/block), adapted
// from a single-type generic store into one store that owns whichever
// typed slice matches its declared scalar.Type.
package vector

import (
	"fmt"
	"sync"

	"github.com/flowgraph/fabric/scalar"
)

// Backing names where a Store's elements physically live.
type Backing uint8

const (
	Local Backing = iota
	Tiered
)

// ANY means "no NUMA node preference", matching spec.md's numa_node: i32 | ANY.
const ANY int32 = -1

// Store is a typed, append-only column. All elements share Type(); Len()
// is monotonic non-decreasing; capacity always covers Len()*Type().Width().
type Store struct {
	name     string
	typ      scalar.Type
	numaNode int32
	backing  Backing

	mu sync.RWMutex

	i8    []int8
	i16   []int16
	i32   []int32
	i64   []int64
	f32   []float32
	f64   []float64
	boolv []bool

	tiered *tieredSpill
}

// New creates an empty Store of the given name/type/backing, with capacity
// pre-allocated for the given number of elements (0 is valid: grown on
// demand for a durable result column, pre-sized for a parser staging
// column).
func New(name string, typ scalar.Type, capacity int, backing Backing, numaNode int32) *Store {
	s := &Store{name: name, typ: typ, backing: backing, numaNode: numaNode}
	switch typ {
	case scalar.I8:
		s.i8 = make([]int8, 0, capacity)
	case scalar.I16:
		s.i16 = make([]int16, 0, capacity)
	case scalar.I32:
		s.i32 = make([]int32, 0, capacity)
	case scalar.I64:
		s.i64 = make([]int64, 0, capacity)
	case scalar.F32:
		s.f32 = make([]float32, 0, capacity)
	case scalar.F64:
		s.f64 = make([]float64, 0, capacity)
	case scalar.BOOL:
		s.boolv = make([]bool, 0, capacity)
	default:
		panic("vector: unknown type " + typ.String())
	}
	if backing == Tiered {
		s.tiered = newTieredSpill(name)
	}
	return s
}

func (s *Store) Name() string        { return s.name }
func (s *Store) Type() scalar.Type   { return s.typ }
func (s *Store) NumaNode() int32     { return s.numaNode }
func (s *Store) Backing() Backing    { return s.backing }

// Len returns the number of elements currently held in memory. For a
// Tiered store whose oldest elements have been spilled, this is the
// in-memory remainder; TotalLen reports the logical length across memory
// and disk.
func (s *Store) Len() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(s.lenLocked())
}

func (s *Store) lenLocked() int {
	switch s.typ {
	case scalar.I8:
		return len(s.i8)
	case scalar.I16:
		return len(s.i16)
	case scalar.I32:
		return len(s.i32)
	case scalar.I64:
		return len(s.i64)
	case scalar.F32:
		return len(s.f32)
	case scalar.F64:
		return len(s.f64)
	case scalar.BOOL:
		return len(s.boolv)
	default:
		panic("vector: unknown type " + s.typ.String())
	}
}

// TotalLen is Len() plus whatever has already been spilled to disk by a
// Tiered store.
func (s *Store) TotalLen() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := uint64(s.lenLocked())
	if s.tiered != nil {
		total += s.tiered.spilledRows
	}
	return total
}

// SetInt writes an integer element at index i during staged fill, growing
// the column to i+1 elements first if it is shorter (callers pre-size
// staging stores to lines.len() so this normally stays within capacity).
func (s *Store) SetInt(i int, v int64) {
	switch s.typ {
	case scalar.I8:
		s.i8 = growInto(s.i8, i+1)
		s.i8[i] = int8(v)
	case scalar.I16:
		s.i16 = growInto(s.i16, i+1)
		s.i16[i] = int16(v)
	case scalar.I32:
		s.i32 = growInto(s.i32, i+1)
		s.i32[i] = int32(v)
	case scalar.I64:
		s.i64 = growInto(s.i64, i+1)
		s.i64[i] = v
	case scalar.BOOL:
		s.boolv = growInto(s.boolv, i+1)
		s.boolv[i] = v != 0
	default:
		panic("vector: SetInt on non-integer column " + s.typ.String())
	}
}

// SetFloat writes a floating-point element at index i during staged fill.
func (s *Store) SetFloat(i int, v float64) {
	switch s.typ {
	case scalar.F32:
		s.f32 = growInto(s.f32, i+1)
		s.f32[i] = float32(v)
	case scalar.F64:
		s.f64 = growInto(s.f64, i+1)
		s.f64[i] = v
	default:
		panic("vector: SetFloat on non-float column " + s.typ.String())
	}
}

func growInto[T any](s []T, n int) []T {
	if n <= len(s) {
		return s
	}
	if n <= cap(s) {
		return s[:n]
	}
	grown := make([]T, n)
	copy(grown, s)
	return grown
}

// Truncate cuts the in-memory tail back to n elements, used by a parser
// after building a staging column of lines.len() capacity to drop the
// slots reserved for rejected lines.
func (s *Store) Truncate(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.typ {
	case scalar.I8:
		s.i8 = s.i8[:n]
	case scalar.I16:
		s.i16 = s.i16[:n]
	case scalar.I32:
		s.i32 = s.i32[:n]
	case scalar.I64:
		s.i64 = s.i64[:n]
	case scalar.F32:
		s.f32 = s.f32[:n]
	case scalar.F64:
		s.f64 = s.f64[:n]
	case scalar.BOOL:
		s.boolv = s.boolv[:n]
	default:
		panic("vector: unknown type " + s.typ.String())
	}
}

// Append concatenates other's elements onto the end of s. other.Type()
// must equal s.Type(). For a Tiered store this may trigger a spill of the
// oldest elements to the backing file once the in-memory watermark is
// exceeded.
func (s *Store) Append(other *Store) error {
	if other.typ != s.typ {
		return fmt.Errorf("vector: type mismatch appending %s into %s", other.typ, s.typ)
	}

	other.mu.RLock()
	defer other.mu.RUnlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.typ {
	case scalar.I8:
		s.i8 = append(s.i8, other.i8...)
	case scalar.I16:
		s.i16 = append(s.i16, other.i16...)
	case scalar.I32:
		s.i32 = append(s.i32, other.i32...)
	case scalar.I64:
		s.i64 = append(s.i64, other.i64...)
	case scalar.F32:
		s.f32 = append(s.f32, other.f32...)
	case scalar.F64:
		s.f64 = append(s.f64, other.f64...)
	case scalar.BOOL:
		s.boolv = append(s.boolv, other.boolv...)
	default:
		return fmt.Errorf("vector: unknown type %s", s.typ)
	}

	if s.tiered != nil {
		return s.tiered.maybeSpill(s)
	}
	return nil
}

// IntAt / FloatAt read back an in-memory element, used by tests and by the
// demo driver's edge printout.
func (s *Store) IntAt(i int) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.typ {
	case scalar.I8:
		return int64(s.i8[i])
	case scalar.I16:
		return int64(s.i16[i])
	case scalar.I32:
		return int64(s.i32[i])
	case scalar.I64:
		return s.i64[i]
	case scalar.BOOL:
		if s.boolv[i] {
			return 1
		}
		return 0
	default:
		panic("vector: IntAt on non-integer column " + s.typ.String())
	}
}

func (s *Store) FloatAt(i int) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.typ {
	case scalar.F32:
		return float64(s.f32[i])
	case scalar.F64:
		return s.f64[i]
	default:
		panic("vector: FloatAt on non-float column " + s.typ.String())
	}
}

// Close releases any resources held by a Tiered store's spill file.
func (s *Store) Close() error {
	if s.tiered != nil {
		return s.tiered.close()
	}
	return nil
}
