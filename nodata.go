package cells

import "math"

type noDataKind uint8

const (
	noDataNone noDataKind = iota
	noDataDefault
	noDataValue
)

// NoData describes how invalid cells of encoding T map to an in-band
// sentinel value. It is a stateless policy, used in two directions: deriving
// a validity mask from a raw slice (cells equal to the sentinel are
// invalid), and substituting the sentinel at invalid positions when a masked
// buffer is materialized back into a plain slice.
//
// The three policies are:
//
//   - NoDataNone: no sentinel exists; invalid cells are dropped from
//     consideration and never substituted
//   - NoDataDefault: the encoding's canonical sentinel (the type minimum for
//     integer encodings, NaN for floats)
//   - NoDataValue: a caller-supplied sentinel
type NoData[T Encoding] struct {
	kind  noDataKind
	value T
}

// NoDataNone returns the policy with no sentinel value.
func NoDataNone[T Encoding]() NoData[T] {
	return NoData[T]{kind: noDataNone}
}

// NoDataDefault returns the policy using the encoding's canonical sentinel.
func NoDataDefault[T Encoding]() NoData[T] {
	return NoData[T]{kind: noDataDefault}
}

// NoDataValue returns the policy using the given sentinel.
func NoDataValue[T Encoding](value T) NoData[T] {
	return NoData[T]{kind: noDataValue, value: value}
}

// Value returns the sentinel value, if the policy has one.
func (nd NoData[T]) Value() (T, bool) {
	switch nd.kind {
	case noDataNone:
		var zero T
		return zero, false
	case noDataValue:
		return nd.value, true
	default:
		return defaultSentinel[T](), true
	}
}

// defaultSentinel returns the canonical no-data value for T: the type
// minimum for integer encodings, NaN for floats.
func defaultSentinel[T Encoding]() T {
	ct := CellTypeOf[T]()
	if !ct.IsInteger() {
		var out T
		switch p := any(&out).(type) {
		case *float32:
			*p = float32(math.NaN())
		case *float64:
			*p = math.NaN()
		}

		return out
	}

	// The minimum of T always round-trips through its own cell type.
	return MustGet[T](ct.Min())
}

// Matches reports whether value equals the policy's sentinel. A policy
// without a sentinel matches nothing. NaN sentinels match NaN cells even
// though IEEE equality would not.
func (nd NoData[T]) Matches(value CellValue) bool {
	sentinel, ok := nd.Value()
	if !ok {
		return false
	}

	sv := NewCellValue(sentinel)
	if isNaNValue(sv) {
		return isNaNValue(value)
	}

	return sv.Equal(value)
}

func isNaNValue(v CellValue) bool {
	return !v.CellType().IsInteger() && math.IsNaN(v.Float64())
}
