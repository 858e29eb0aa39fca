package cells

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s22s/erased-cells/errs"
)

// TestNewCellValueRoundTrip verifies boxing and unboxing every encoding.
func TestNewCellValueRoundTrip(t *testing.T) {
	t.Run("uint8", func(t *testing.T) {
		v := NewCellValue(uint8(200))
		require.Equal(t, UInt8, v.CellType())
		require.Equal(t, uint8(200), MustGet[uint8](v))
	})
	t.Run("uint64", func(t *testing.T) {
		v := NewCellValue(uint64(math.MaxUint64))
		require.Equal(t, UInt64, v.CellType())
		require.Equal(t, uint64(math.MaxUint64), MustGet[uint64](v))
	})
	t.Run("int8", func(t *testing.T) {
		v := NewCellValue(int8(-128))
		require.Equal(t, Int8, v.CellType())
		require.Equal(t, int8(-128), MustGet[int8](v))
	})
	t.Run("int64", func(t *testing.T) {
		v := NewCellValue(int64(math.MinInt64))
		require.Equal(t, Int64, v.CellType())
		require.Equal(t, int64(math.MinInt64), MustGet[int64](v))
	})
	t.Run("float32", func(t *testing.T) {
		v := NewCellValue(float32(1.5))
		require.Equal(t, Float32, v.CellType())
		require.Equal(t, float32(1.5), MustGet[float32](v))
	})
	t.Run("float64", func(t *testing.T) {
		v := NewCellValue(3.141592653589793)
		require.Equal(t, Float64, v.CellType())
		require.Equal(t, 3.141592653589793, MustGet[float64](v))
	})
}

// TestConvertWidening verifies conversions toward wider encodings preserve
// the value exactly.
func TestConvertWidening(t *testing.T) {
	v := NewCellValue(uint8(43))

	conv, err := v.Convert(Int16)
	require.NoError(t, err)
	require.Equal(t, Int16, conv.CellType())
	require.Equal(t, int64(43), conv.Int64())

	conv, err = v.Convert(Float64)
	require.NoError(t, err)
	require.Equal(t, 43.0, conv.Float64())

	neg := NewCellValue(int8(-7))
	conv, err = neg.Convert(Int64)
	require.NoError(t, err)
	require.Equal(t, int64(-7), conv.Int64())
}

// TestConvertNarrowingFails verifies conversions toward narrower encodings
// are rejected regardless of the held value.
func TestConvertNarrowingFails(t *testing.T) {
	_, err := NewCellValue(3.14).Convert(Int64)
	require.ErrorIs(t, err, errs.ErrNarrowing)

	// Even a value that would fit is rejected; the guard is type-level.
	_, err = NewCellValue(int16(5)).Convert(UInt8)
	require.ErrorIs(t, err, errs.ErrNarrowing)

	_, err = Get[uint8](NewCellValue(3.0))
	require.ErrorIs(t, err, errs.ErrNarrowing)
}

// TestArithmeticUnifies verifies binary operations produce results in the
// unified encoding.
func TestArithmeticUnifies(t *testing.T) {
	sum := NewCellValue(uint8(5)).Add(NewCellValue(float32(0.5)))
	require.Equal(t, Float32, sum.CellType())
	require.Equal(t, 5.5, sum.Float64())

	diff := NewCellValue(uint8(5)).Sub(NewCellValue(int8(10)))
	require.Equal(t, Int16, diff.CellType())
	require.Equal(t, int64(-5), diff.Int64())

	prod := NewCellValue(uint16(300)).Mul(NewCellValue(uint16(3)))
	require.Equal(t, UInt16, prod.CellType())
	require.Equal(t, uint64(900), prod.Uint64())
}

// TestIntegerDivisionTruncates verifies integral division goes through the
// float64 intermediate and truncates toward zero.
func TestIntegerDivisionTruncates(t *testing.T) {
	q := NewCellValue(uint8(7)).Div(NewCellValue(uint8(2)))
	require.Equal(t, UInt8, q.CellType())
	require.Equal(t, uint64(3), q.Uint64())

	q = NewCellValue(int16(-7)).Div(NewCellValue(int16(2)))
	require.Equal(t, Int16, q.CellType())
	require.Equal(t, int64(-3), q.Int64())
}

// TestArithmeticClamping verifies out-of-range integral intermediates clamp
// to the encoding bounds.
func TestArithmeticClamping(t *testing.T) {
	// 200 + 100 overflows UInt8 and clamps to its maximum.
	sum := NewCellValue(uint8(200)).Add(NewCellValue(uint8(100)))
	require.Equal(t, UInt8, sum.CellType())
	require.Equal(t, uint64(255), sum.Uint64())

	// 5 / 0 is +Inf in the intermediate; it clamps to the maximum.
	q := NewCellValue(uint8(5)).Div(NewCellValue(uint8(0)))
	require.Equal(t, uint64(255), q.Uint64())

	// 0 / 0 is NaN in the intermediate; it maps to zero.
	q = NewCellValue(uint8(0)).Div(NewCellValue(uint8(0)))
	require.Equal(t, uint64(0), q.Uint64())

	// Underflow clamps to the minimum.
	diff := NewCellValue(int8(-100)).Sub(NewCellValue(int8(100)))
	require.Equal(t, int64(-128), diff.Int64())
}

// TestNegPromotion verifies negation promotes unsigned encodings to a signed
// encoding wide enough for the result.
func TestNegPromotion(t *testing.T) {
	tests := []struct {
		name string
		v    CellValue
		ct   CellType
		want float64
	}{
		{"uint8", NewCellValue(uint8(5)), Int16, -5},
		{"uint16", NewCellValue(uint16(40000)), Int32, -40000},
		{"uint32", NewCellValue(uint32(3000000000)), Int64, -3000000000},
		{"uint64", NewCellValue(uint64(1)), Float64, -1},
		{"int32", NewCellValue(int32(-7)), Int32, 7},
		{"float32", NewCellValue(float32(2.5)), Float32, -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Neg()
			require.Equal(t, tt.ct, got.CellType())
			require.Equal(t, tt.want, got.Float64())
		})
	}
}

// TestCmpTotalOrder verifies the comparison is total for floating values,
// including NaN and signed zero.
func TestCmpTotalOrder(t *testing.T) {
	nan := NewCellValue(math.NaN())
	inf := NewCellValue(math.Inf(1))

	require.Equal(t, 1, nan.Cmp(inf))
	require.Equal(t, 0, nan.Cmp(nan))
	require.Equal(t, -1, NewCellValue(math.Inf(-1)).Cmp(NewCellValue(-math.MaxFloat64)))

	// Negative zero orders strictly before positive zero.
	require.Equal(t, -1, NewCellValue(math.Copysign(0, -1)).Cmp(NewCellValue(0.0)))

	// The float32 path behaves the same way.
	nan32 := NewCellValue(float32(math.NaN()))
	require.Equal(t, 1, nan32.Cmp(NewCellValue(float32(math.Inf(1)))))
}

// TestCmpCrossType verifies comparisons unify their operands first.
func TestCmpCrossType(t *testing.T) {
	require.True(t, NewCellValue(uint8(5)).Equal(NewCellValue(5.0)))
	require.True(t, NewCellValue(int8(-1)).Less(NewCellValue(uint8(0))))
	require.True(t, NewCellValue(uint64(10)).Less(NewCellValue(float32(10.5))))

	lo := NewCellValue(int16(-3))
	hi := NewCellValue(uint8(3))
	require.Equal(t, lo, lo.MinValue(hi))
	require.Equal(t, hi, lo.MaxValue(hi))
}

// TestValueString verifies rendering in native precision.
func TestValueString(t *testing.T) {
	require.Equal(t, "200", NewCellValue(uint8(200)).String())
	require.Equal(t, "-42", NewCellValue(int32(-42)).String())
	require.Equal(t, "1.5", NewCellValue(float32(1.5)).String())
	require.Equal(t, "3.25", NewCellValue(3.25).String())
}
