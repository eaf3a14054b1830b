// Package frame implements the data frame (C3): a named ordered
// collection of column vectors supporting bulk append. Grounded on the
// teacher's Schema/SchemaColumn shape (dot5enko-simple-column-db
// schema/schema.go, schema/field.go) and its Manager holding a map of
// named schemas (dot5enko-simple-column-db/manager/manager.go), adapted
// from disk-backed slab schemas to purely in-memory ingestion frames.
package frame

import (
	"fmt"
	"sync"

	"github.com/flowgraph/fabric/scalar"
	"github.com/flowgraph/fabric/vector"
)

// ColumnSchema is one (name, type) pair in a frame's schema.
type ColumnSchema struct {
	Name string
	Type scalar.Type
}

// Frame is an ordered set of named typed columns. The schema (ordered
// (name, type) list) is built by AddVec calls, one column each; Append
// requires every appended frame to match it. All columns share Len() once
// a mutation completes.
type Frame struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*vector.Store
	schema []ColumnSchema
}

func New() *Frame {
	return &Frame{byName: make(map[string]*vector.Store)}
}

// AddVec appends a named column to the frame's schema. The name must be
// unique; each call extends the schema (ordered (name, type) list) by one
// column, and frames later passed to Append must match the resulting
// schema exactly.
func (f *Frame) AddVec(name string, col *vector.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.byName[name]; exists {
		return fmt.Errorf("frame: duplicate column name %q", name)
	}
	f.order = append(f.order, name)
	f.byName[name] = col
	f.schema = append(f.schema, ColumnSchema{Name: name, Type: col.Type()})
	return nil
}

// GetVecByIndex returns the column at the given ordinal position.
func (f *Frame) GetVecByIndex(i int) *vector.Store {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byName[f.order[i]]
}

// GetVec returns the column with the given name, or nil if absent.
func (f *Frame) GetVec(name string) *vector.Store {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.byName[name]
}

// Schema returns the frame's ordered (name, type) list.
func (f *Frame) Schema() []ColumnSchema {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]ColumnSchema, len(f.schema))
	copy(out, f.schema)
	return out
}

// NumCols returns the number of columns.
func (f *Frame) NumCols() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.order)
}

// Len returns the frame's row count (the shared column length). A frame
// with no columns has length 0.
func (f *Frame) Len() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.order) == 0 {
		return 0
	}
	return f.byName[f.order[0]].TotalLen()
}

// schemaEquals reports whether a and b are the same ordered (name, type)
// list, without taking either frame's lock (callers hold them already).
func schemaEquals(a, b []ColumnSchema) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Append concatenates the columns of one or more matching-schema frames
// onto f, column by column, matching spec.md's data_frame::append. Every
// frame in others must carry the identical ordered (name, type) schema as
// f (f's own schema is seeded from the first frame if f is still empty).
func (f *Frame) Append(others ...*Frame) error {
	for _, other := range others {
		if err := f.appendOne(other); err != nil {
			return err
		}
	}
	return nil
}

func (f *Frame) appendOne(other *Frame) error {
	other.mu.RLock()
	otherSchema := make([]ColumnSchema, len(other.schema))
	copy(otherSchema, other.schema)
	otherOrder := make([]string, len(other.order))
	copy(otherOrder, other.order)
	other.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.order) == 0 {
		for _, name := range otherOrder {
			col := other.byName[name]
			fresh := vector.New(name, col.Type(), 0, col.Backing(), col.NumaNode())
			f.order = append(f.order, name)
			f.byName[name] = fresh
			f.schema = append(f.schema, ColumnSchema{Name: name, Type: col.Type()})
		}
	} else if !schemaEquals(f.schema, otherSchema) {
		return fmt.Errorf("frame: schema mismatch appending frame: %v vs %v", f.schema, otherSchema)
	}

	for _, name := range f.order {
		if err := f.byName[name].Append(other.byName[name]); err != nil {
			return fmt.Errorf("frame: appending column %q: %w", name, err)
		}
	}
	return nil
}

// Close releases any tiered backing resources held by this frame's columns.
func (f *Frame) Close() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var firstErr error
	for _, name := range f.order {
		if err := f.byName[name].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
