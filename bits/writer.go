// Package bits provides fixed-width little-endian encode/decode helpers,
// trimmed from the teacher's BitWriter/BitsReader (dot5enko-simple-column-db
// bits/writer.go, bits/reader.go) down to the element widths the tiered
// column vector's disk spill needs (int8/16/32/64, float32/64, bool), and
// dropping the unsafe-reinterpret helper the original carried for its
// on-disk slab header format, which is out of scope here.
package bits

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer appends fixed-width scalars to an underlying io.Writer through a
// small reusable scratch buffer, the same shape as the teacher's
// buffer-backed encoder but sized to one element instead of a whole
// growable page.
type Writer struct {
	w       io.Writer
	scratch [8]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteI8(v int8) error {
	w.scratch[0] = byte(v)
	_, err := w.w.Write(w.scratch[:1])
	return err
}

func (w *Writer) WriteBool(v bool) error {
	if v {
		w.scratch[0] = 1
	} else {
		w.scratch[0] = 0
	}
	_, err := w.w.Write(w.scratch[:1])
	return err
}

func (w *Writer) WriteI16(v int16) error {
	binary.LittleEndian.PutUint16(w.scratch[:2], uint16(v))
	_, err := w.w.Write(w.scratch[:2])
	return err
}

func (w *Writer) WriteI32(v int32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], uint32(v))
	_, err := w.w.Write(w.scratch[:4])
	return err
}

func (w *Writer) WriteI64(v int64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], uint64(v))
	_, err := w.w.Write(w.scratch[:8])
	return err
}

func (w *Writer) WriteF32(v float32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], math.Float32bits(v))
	_, err := w.w.Write(w.scratch[:4])
	return err
}

func (w *Writer) WriteF64(v float64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], math.Float64bits(v))
	_, err := w.w.Write(w.scratch[:8])
	return err
}

