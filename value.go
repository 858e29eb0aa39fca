package cells

import (
	"fmt"
	"math"
	"strconv"

	"github.com/s22s/erased-cells/errs"
)

// CellValue is a scalar of one of the ten supported encodings, tagged with
// its CellType.
//
// The value is stored as raw 64-bit content: integers as (sign-extended)
// two's complement, floats as their IEEE-754 bit pattern. Every encoding is
// therefore held exactly, with no partial or lossy state. CellValue has copy
// semantics and is immutable; arithmetic produces new values.
type CellValue struct {
	ct   CellType
	bits uint64
}

// NewCellValue binds a native primitive to its encoding's tag. It never
// converts; the tag is derived statically from T.
func NewCellValue[T Encoding](value T) CellValue {
	switch v := any(value).(type) {
	case uint8:
		return CellValue{ct: UInt8, bits: uint64(v)}
	case uint16:
		return CellValue{ct: UInt16, bits: uint64(v)}
	case uint32:
		return CellValue{ct: UInt32, bits: uint64(v)}
	case uint64:
		return CellValue{ct: UInt64, bits: v}
	case int8:
		return CellValue{ct: Int8, bits: uint64(int64(v))}
	case int16:
		return CellValue{ct: Int16, bits: uint64(int64(v))}
	case int32:
		return CellValue{ct: Int32, bits: uint64(int64(v))}
	case int64:
		return CellValue{ct: Int64, bits: uint64(v)}
	case float32:
		return CellValue{ct: Float32, bits: uint64(math.Float32bits(v))}
	case float64:
		return CellValue{ct: Float64, bits: math.Float64bits(v)}
	default:
		panic("cells: unsupported encoding")
	}
}

// CellType returns the encoding tag of the value.
func (v CellValue) CellType() CellType {
	return v.ct
}

// Uint64 returns the value widened to uint64. Signed and floating content is
// converted with Go conversion semantics; negative values wrap.
func (v CellValue) Uint64() uint64 {
	switch v.ct {
	case UInt8, UInt16, UInt32, UInt64:
		return v.bits
	case Int8, Int16, Int32, Int64:
		return uint64(int64(v.bits))
	case Float32:
		return uint64(math.Float32frombits(uint32(v.bits)))
	default:
		return uint64(math.Float64frombits(v.bits))
	}
}

// Int64 returns the value widened to int64.
func (v CellValue) Int64() int64 {
	switch v.ct {
	case UInt8, UInt16, UInt32, UInt64:
		return int64(v.bits)
	case Int8, Int16, Int32, Int64:
		return int64(v.bits)
	case Float32:
		return int64(math.Float32frombits(uint32(v.bits)))
	default:
		return int64(math.Float64frombits(v.bits))
	}
}

// Float64 returns the value widened to float64. Integers above 2^53 lose
// precision, as with any float64 conversion.
func (v CellValue) Float64() float64 {
	switch v.ct {
	case UInt8, UInt16, UInt32, UInt64:
		return float64(v.bits)
	case Int8, Int16, Int32, Int64:
		return float64(int64(v.bits))
	case Float32:
		return float64(math.Float32frombits(uint32(v.bits)))
	default:
		return math.Float64frombits(v.bits)
	}
}

// Convert returns v re-encoded as ct.
//
// Conversion is only permitted toward an equal or wider encoding; a wrapped
// errs.ErrNarrowing is returned when ct cannot losslessly absorb v's
// encoding.
func (v CellValue) Convert(ct CellType) (CellValue, error) {
	if !v.ct.CanFitInto(ct) {
		return CellValue{}, fmt.Errorf("%w: from %s to %s", errs.ErrNarrowing, v.ct, ct)
	}

	return v.convertUnchecked(ct), nil
}

// convertUnchecked re-encodes v as ct assuming CanFitInto already holds.
func (v CellValue) convertUnchecked(ct CellType) CellValue {
	if ct == v.ct {
		return v
	}

	switch {
	case ct == Float32:
		return CellValue{ct: Float32, bits: uint64(math.Float32bits(float32(v.Float64())))}
	case ct == Float64:
		return CellValue{ct: Float64, bits: math.Float64bits(v.Float64())}
	case ct.IsSigned():
		return CellValue{ct: ct, bits: uint64(v.Int64())}
	default:
		return CellValue{ct: ct, bits: v.Uint64()}
	}
}

// Get extracts the value as a native T.
//
// Equivalent to converting v to T's cell type and unboxing, with the same
// narrowing failure mode as Convert.
func Get[T Encoding](v CellValue) (T, error) {
	cv, err := v.Convert(CellTypeOf[T]())
	if err != nil {
		var zero T
		return zero, err
	}

	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(cv.bits)
	case *uint16:
		*p = uint16(cv.bits)
	case *uint32:
		*p = uint32(cv.bits)
	case *uint64:
		*p = cv.bits
	case *int8:
		*p = int8(cv.bits)
	case *int16:
		*p = int16(cv.bits)
	case *int32:
		*p = int32(cv.bits)
	case *int64:
		*p = int64(cv.bits)
	case *float32:
		*p = math.Float32frombits(uint32(cv.bits))
	case *float64:
		*p = math.Float64frombits(cv.bits)
	}

	return out, nil
}

// MustGet is Get for values statically known to fit, panicking otherwise.
func MustGet[T Encoding](v CellValue) T {
	out, err := Get[T](v)
	if err != nil {
		panic(err)
	}

	return out
}

// Unify converts v and other to their unified cell type (see CellType.Union)
// and returns both. Every binary operation applies Unify before acting.
func (v CellValue) Unify(other CellValue) (CellValue, CellValue) {
	ct := v.ct.Union(other.ct)

	// Union guarantees both conversions are widening.
	return v.convertUnchecked(ct), other.convertUnchecked(ct)
}

// String renders the value as "<number>" in its native precision.
func (v CellValue) String() string {
	switch v.ct {
	case UInt8, UInt16, UInt32, UInt64:
		return strconv.FormatUint(v.bits, 10)
	case Int8, Int16, Int32, Int64:
		return strconv.FormatInt(int64(v.bits), 10)
	case Float32:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 32)
	default:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	}
}
