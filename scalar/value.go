package scalar

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Value is an immutable (T, raw[W(T)]) pair, the generic scalar holder
// named in spec.md §1 as a dependency rather than a core design concern:
// a thin wrapper around {raw_bytes, size, set_raw}.
type Value struct {
	typ Type
	raw [8]byte
}

// NewValue constructs a zero Value of the given type.
func NewValue(t Type) Value {
	return Value{typ: t}
}

// Type returns the scalar's type tag.
func (v Value) Type() Type {
	return v.typ
}

// Raw returns the value's raw byte representation, exactly W(T) bytes.
func (v Value) Raw() []byte {
	return v.raw[:v.typ.Width()]
}

// SetRaw overwrites the value's bytes. It succeeds iff len(b) == W(T).
func (v *Value) SetRaw(b []byte) error {
	w := v.typ.Width()
	if len(b) != w {
		return fmt.Errorf("scalar: set_raw expects %d bytes for %s, got %d", w, v.typ, len(b))
	}
	copy(v.raw[:w], b)
	return nil
}

func FromInt64(t Type, n int64) Value {
	v := NewValue(t)
	switch t {
	case I8:
		v.raw[0] = byte(int8(n))
	case I16:
		binary.LittleEndian.PutUint16(v.raw[:2], uint16(int16(n)))
	case I32:
		binary.LittleEndian.PutUint32(v.raw[:4], uint32(int32(n)))
	case I64:
		binary.LittleEndian.PutUint64(v.raw[:8], uint64(n))
	case BOOL:
		if n != 0 {
			v.raw[0] = 1
		}
	default:
		panic("scalar: FromInt64 on non-integer type " + t.String())
	}
	return v
}

func FromFloat64(t Type, f float64) Value {
	v := NewValue(t)
	switch t {
	case F32:
		binary.LittleEndian.PutUint32(v.raw[:4], math.Float32bits(float32(f)))
	case F64:
		binary.LittleEndian.PutUint64(v.raw[:8], math.Float64bits(f))
	default:
		panic("scalar: FromFloat64 on non-float type " + t.String())
	}
	return v
}

func (v Value) Int64() int64 {
	switch v.typ {
	case I8:
		return int64(int8(v.raw[0]))
	case I16:
		return int64(int16(binary.LittleEndian.Uint16(v.raw[:2])))
	case I32:
		return int64(int32(binary.LittleEndian.Uint32(v.raw[:4])))
	case I64:
		return int64(binary.LittleEndian.Uint64(v.raw[:8]))
	case BOOL:
		if v.raw[0] != 0 {
			return 1
		}
		return 0
	default:
		panic("scalar: Int64 on non-integer type " + v.typ.String())
	}
}

func (v Value) Float64() float64 {
	switch v.typ {
	case F32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(v.raw[:4])))
	case F64:
		return math.Float64frombits(binary.LittleEndian.Uint64(v.raw[:8]))
	default:
		panic("scalar: Float64 on non-float type " + v.typ.String())
	}
}
