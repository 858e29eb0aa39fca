package cells

import (
	"fmt"
	"iter"
	"math"

	"github.com/s22s/erased-cells/errs"
)

// CellType is the runtime discriminator selecting which primitive numeric
// encoding a CellValue or CellBuffer holds.
//
// The set is closed: exactly ten encodings are supported, and the declaration
// order below defines the ordinal order used as a tie-break when comparing
// buffers of different types.
type CellType uint8

const (
	UInt8 CellType = iota
	UInt16
	UInt32
	UInt64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
)

// cellTypeCount is the number of supported encodings.
const cellTypeCount = 10

// CellTypes returns an iterator over all supported cell types in ordinal
// order.
func CellTypes() iter.Seq[CellType] {
	return func(yield func(CellType) bool) {
		for ct := UInt8; ct < cellTypeCount; ct++ {
			if !yield(ct) {
				return
			}
		}
	}
}

// Size returns the width of the encoding in bytes.
func (ct CellType) Size() int {
	switch ct {
	case UInt8, Int8:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case UInt64, Int64, Float64:
		return 8
	default:
		panic("cells: unsupported cell type")
	}
}

// IsInteger reports whether the encoding is an integral type.
func (ct CellType) IsInteger() bool {
	switch ct {
	case Float32, Float64:
		return false
	default:
		return true
	}
}

// IsSigned reports whether the encoding can represent negative values.
func (ct CellType) IsSigned() bool {
	switch ct {
	case UInt8, UInt16, UInt32, UInt64:
		return false
	default:
		return true
	}
}

// Min returns the smallest value representable in the encoding.
func (ct CellType) Min() CellValue {
	switch ct {
	case UInt8, UInt16, UInt32, UInt64:
		return CellValue{ct: ct, bits: 0}
	case Int8:
		return NewCellValue(int8(math.MinInt8))
	case Int16:
		return NewCellValue(int16(math.MinInt16))
	case Int32:
		return NewCellValue(int32(math.MinInt32))
	case Int64:
		return NewCellValue(int64(math.MinInt64))
	case Float32:
		return NewCellValue(float32(-math.MaxFloat32))
	case Float64:
		return NewCellValue(float64(-math.MaxFloat64))
	default:
		panic("cells: unsupported cell type")
	}
}

// Max returns the largest value representable in the encoding.
func (ct CellType) Max() CellValue {
	switch ct {
	case UInt8:
		return CellValue{ct: ct, bits: math.MaxUint8}
	case UInt16:
		return CellValue{ct: ct, bits: math.MaxUint16}
	case UInt32:
		return CellValue{ct: ct, bits: math.MaxUint32}
	case UInt64:
		return CellValue{ct: ct, bits: math.MaxUint64}
	case Int8:
		return CellValue{ct: ct, bits: math.MaxInt8}
	case Int16:
		return CellValue{ct: ct, bits: math.MaxInt16}
	case Int32:
		return CellValue{ct: ct, bits: math.MaxInt32}
	case Int64:
		return CellValue{ct: ct, bits: math.MaxInt64}
	case Float32:
		return CellValue{ct: ct, bits: uint64(math.Float32bits(math.MaxFloat32))}
	case Float64:
		return CellValue{ct: ct, bits: math.Float64bits(math.MaxFloat64)}
	default:
		panic("cells: unsupported cell type")
	}
}

// Union selects the smallest encoding able to represent every value of both
// ct and other without precision loss.
//
// Union is commutative and idempotent, and the result is never narrower than
// either operand. Mixing integral and floating encodings, or signed and
// unsigned integers, widens the result beyond the larger operand: an
// integral type needs roughly twice the byte width to be absorbed by a float
// (IEEE-754 mantissa limits), and an unsigned type needs headroom to become
// signed without overflow. Anything requiring more than 8 bytes resolves to
// Float64.
func (ct CellType) Union(other CellType) CellType {
	if ct == other {
		return ct
	}

	var size int
	switch {
	case ct.IsInteger() != other.IsInteger():
		flt, intg := ct, other
		if !intg.IsInteger() {
			flt, intg = other, ct
		}
		size = max(flt.Size(), 2*intg.Size())
	case ct.IsSigned() != other.IsSigned():
		s, u := ct, other
		if !s.IsSigned() {
			s, u = other, ct
		}
		size = max(s.Size(), 2*u.Size())
	default:
		size = max(ct.Size(), other.Size())
	}

	signed := ct.IsSigned() || other.IsSigned()
	integer := ct.IsInteger() && other.IsInteger()

	return cellTypeFor(size, signed, integer)
}

// cellTypeFor maps a (byte width, signedness, integrality) requirement onto
// one of the ten encodings. Widths above 8 bytes, and non-integral widths
// above 4 bytes, resolve to Float64.
func cellTypeFor(size int, signed, integer bool) CellType {
	if !integer {
		if size <= 4 {
			return Float32
		}

		return Float64
	}

	if size > 8 {
		// No integer encoding is wide enough; fall back to Float64.
		return Float64
	}

	if signed {
		switch {
		case size <= 1:
			return Int8
		case size <= 2:
			return Int16
		case size <= 4:
			return Int32
		default:
			return Int64
		}
	}

	switch {
	case size <= 1:
		return UInt8
	case size <= 2:
		return UInt16
	case size <= 4:
		return UInt32
	default:
		return UInt64
	}
}

// CanFitInto reports whether every value of ct is exactly representable in
// dst. It is the narrowing guard used before any lossy conversion.
func (ct CellType) CanFitInto(dst CellType) bool {
	return ct.Union(dst) == dst
}

// String returns the canonical name of the encoding, e.g. "UInt8" or
// "Float64".
func (ct CellType) String() string {
	switch ct {
	case UInt8:
		return "UInt8"
	case UInt16:
		return "UInt16"
	case UInt32:
		return "UInt32"
	case UInt64:
		return "UInt64"
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	default:
		return "Unknown"
	}
}

// ParseCellType parses the canonical name of an encoding, the inverse of
// CellType.String.
func ParseCellType(s string) (CellType, error) {
	for ct := range CellTypes() {
		if ct.String() == s {
			return ct, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCellType, s)
}
