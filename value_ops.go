package cells

import (
	"cmp"
	"math"
)

// Binary arithmetic unifies both operands, performs the operation in
// float64, and re-boxes the result into the unified encoding. The float64
// intermediate is deliberate: it fixes the rounding of division and makes
// the overflow behavior of mixed-sign operations uniform. When the unified
// encoding is integral the intermediate is truncated toward zero and clamped
// to the encoding's range.

// Add returns v + other in the unified encoding.
func (v CellValue) Add(other CellValue) CellValue {
	return v.apply(other, func(a, b float64) float64 { return a + b })
}

// Sub returns v - other in the unified encoding.
func (v CellValue) Sub(other CellValue) CellValue {
	return v.apply(other, func(a, b float64) float64 { return a - b })
}

// Mul returns v * other in the unified encoding.
func (v CellValue) Mul(other CellValue) CellValue {
	return v.apply(other, func(a, b float64) float64 { return a * b })
}

// Div returns v / other in the unified encoding. Division by zero follows
// float64 semantics before re-boxing (Inf or NaN intermediates clamp to the
// integral range, with NaN mapping to zero).
func (v CellValue) Div(other CellValue) CellValue {
	return v.apply(other, func(a, b float64) float64 { return a / b })
}

func (v CellValue) apply(other CellValue, op func(a, b float64) float64) CellValue {
	l, r := v.Unify(other)

	return rebox(l.ct, op(l.Float64(), r.Float64()))
}

// Neg returns the arithmetic negation of v. Unsigned encodings are promoted
// to the signed encoding one step wider before negating (UInt64, having no
// wider integer, promotes to Float64).
func (v CellValue) Neg() CellValue {
	target := v.ct
	switch v.ct {
	case UInt8:
		target = Int16
	case UInt16:
		target = Int32
	case UInt32:
		target = Int64
	case UInt64:
		target = Float64
	}

	return rebox(target, -v.Float64())
}

// rebox converts a float64 intermediate back into the encoding ct. For
// integral encodings the value is truncated toward zero and clamped to the
// encoding's range; NaN maps to zero. Go leaves out-of-range float-to-int
// conversion unspecified, so the clamp is required for portability.
func rebox(ct CellType, x float64) CellValue {
	switch ct {
	case Float32:
		return NewCellValue(float32(x))
	case Float64:
		return NewCellValue(x)
	}

	if math.IsNaN(x) {
		return CellValue{ct: ct, bits: 0}
	}

	x = math.Trunc(x)
	// The boundary comparisons are inclusive: the float64 rendering of an
	// 8-byte integer limit rounds outward, and converting such a value back
	// would overflow.
	if lo := ct.Min().Float64(); x <= lo {
		return ct.Min()
	}
	if hi := ct.Max().Float64(); x >= hi {
		return ct.Max()
	}

	if ct.IsSigned() {
		return CellValue{ct: ct, bits: uint64(int64(x))}
	}

	return CellValue{ct: ct, bits: uint64(x)}
}

// Cmp compares v and other after unifying them, returning -1, 0 or 1.
//
// The order is total for every encoding: floating-point comparison uses the
// IEEE-754 total-order predicate, so NaN is ordered (above +Inf) rather than
// unordered, keeping sorting and equality lawful.
func (v CellValue) Cmp(other CellValue) int {
	l, r := v.Unify(other)
	switch {
	case l.ct == Float32:
		return totalOrder32(math.Float32frombits(uint32(l.bits)), math.Float32frombits(uint32(r.bits)))
	case l.ct == Float64:
		return totalOrder64(math.Float64frombits(l.bits), math.Float64frombits(r.bits))
	case l.ct.IsSigned():
		return cmp.Compare(int64(l.bits), int64(r.bits))
	default:
		return cmp.Compare(l.bits, r.bits)
	}
}

// Equal reports whether v and other unify to the same value.
func (v CellValue) Equal(other CellValue) bool {
	return v.Cmp(other) == 0
}

// Less reports whether v orders before other.
func (v CellValue) Less(other CellValue) bool {
	return v.Cmp(other) < 0
}

// MinValue returns the smaller of v and other under the total order.
func (v CellValue) MinValue(other CellValue) CellValue {
	if v.Cmp(other) <= 0 {
		return v
	}

	return other
}

// MaxValue returns the larger of v and other under the total order.
func (v CellValue) MaxValue(other CellValue) CellValue {
	if v.Cmp(other) >= 0 {
		return v
	}

	return other
}

// totalOrder64 implements the IEEE-754 totalOrder predicate for float64:
// -NaN < -Inf < negatives < -0 < +0 < positives < +Inf < +NaN.
func totalOrder64(a, b float64) int {
	l := int64(math.Float64bits(a))
	r := int64(math.Float64bits(b))

	// Flip the ordering of the magnitude bits for negative values so the
	// raw integer comparison matches numeric order.
	l ^= int64(uint64(l>>63) >> 1)
	r ^= int64(uint64(r>>63) >> 1)

	return cmp.Compare(l, r)
}

// totalOrder32 is totalOrder64 for float32.
func totalOrder32(a, b float32) int {
	l := int32(math.Float32bits(a))
	r := int32(math.Float32bits(b))

	l ^= int32(uint32(l>>31) >> 1)
	r ^= int32(uint32(r>>31) >> 1)

	return cmp.Compare(l, r)
}
