package bits

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

var ErrShortRead = errors.New("bits: short read")

// Reader mirrors Writer: fixed-width little-endian decode through a small
// reusable scratch buffer.
type Reader struct {
	r       io.Reader
	scratch [8]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) readFull(n int) error {
	_, err := io.ReadFull(r.r, r.scratch[:n])
	if err == io.ErrUnexpectedEOF {
		return ErrShortRead
	}
	return err
}

func (r *Reader) ReadI8() (int8, error) {
	if err := r.readFull(1); err != nil {
		return 0, err
	}
	return int8(r.scratch[0]), nil
}

func (r *Reader) ReadBool() (bool, error) {
	if err := r.readFull(1); err != nil {
		return false, err
	}
	return r.scratch[0] != 0, nil
}

func (r *Reader) ReadI16() (int16, error) {
	if err := r.readFull(2); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(r.scratch[:2])), nil
}

func (r *Reader) ReadI32() (int32, error) {
	if err := r.readFull(4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.scratch[:4])), nil
}

func (r *Reader) ReadI64() (int64, error) {
	if err := r.readFull(8); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(r.scratch[:8])), nil
}

func (r *Reader) ReadF32() (float32, error) {
	if err := r.readFull(4); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(r.scratch[:4])), nil
}

func (r *Reader) ReadF64() (float64, error) {
	if err := r.readFull(8); err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(r.scratch[:8])), nil
}
