package cells

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCellTypeAttributes verifies size, integrality and signedness for every
// encoding.
func TestCellTypeAttributes(t *testing.T) {
	tests := []struct {
		ct      CellType
		size    int
		integer bool
		signed  bool
	}{
		{UInt8, 1, true, false},
		{UInt16, 2, true, false},
		{UInt32, 4, true, false},
		{UInt64, 8, true, false},
		{Int8, 1, true, true},
		{Int16, 2, true, true},
		{Int32, 4, true, true},
		{Int64, 8, true, true},
		{Float32, 4, false, true},
		{Float64, 8, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.ct.String(), func(t *testing.T) {
			require.Equal(t, tt.size, tt.ct.Size())
			require.Equal(t, tt.integer, tt.ct.IsInteger())
			require.Equal(t, tt.signed, tt.ct.IsSigned())
		})
	}
}

// TestCellTypesIteratesAll verifies the iterator yields all ten encodings in
// ordinal order.
func TestCellTypesIteratesAll(t *testing.T) {
	var got []CellType
	for ct := range CellTypes() {
		got = append(got, ct)
	}

	require.Equal(t, []CellType{
		UInt8, UInt16, UInt32, UInt64,
		Int8, Int16, Int32, Int64,
		Float32, Float64,
	}, got)
}

// TestUnionSpecificPairs verifies the union of representative type pairs.
func TestUnionSpecificPairs(t *testing.T) {
	tests := []struct {
		a, b, want CellType
	}{
		{UInt8, UInt8, UInt8},
		{UInt8, UInt16, UInt16},
		{UInt8, Int8, Int16},
		{UInt8, Int16, Int16},
		{UInt16, Int16, Int32},
		{UInt32, Int32, Int64},
		{UInt64, Int64, Float64},
		{Int8, Int64, Int64},
		{UInt8, Float32, Float32},
		{UInt16, Float32, Float32},
		{UInt32, Float32, Float64},
		{UInt64, Float32, Float64},
		{Int64, Float64, Float64},
		{Float32, Float64, Float64},
		{UInt8, Float64, Float64},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"_"+tt.b.String(), func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Union(tt.b))
		})
	}
}

// TestUnionProperties verifies commutativity, idempotence and the widening
// guarantee over the full type grid.
func TestUnionProperties(t *testing.T) {
	for a := range CellTypes() {
		for b := range CellTypes() {
			u := a.Union(b)

			require.Equal(t, u, b.Union(a), "union of %s and %s is not commutative", a, b)
			require.Equal(t, u, u.Union(u), "union of %s and %s is not idempotent", a, b)

			// Both operands must fit into the union, and the union must
			// absorb itself.
			require.True(t, a.CanFitInto(u), "%s does not fit into %s", a, u)
			require.True(t, b.CanFitInto(u), "%s does not fit into %s", b, u)
			require.GreaterOrEqual(t, u.Size(), a.Size())
			require.GreaterOrEqual(t, u.Size(), b.Size())
		}
	}
}

// TestCanFitInto verifies the narrowing guard in both directions.
func TestCanFitInto(t *testing.T) {
	require.True(t, UInt8.CanFitInto(Int16))
	require.True(t, Int16.CanFitInto(Float32))
	require.True(t, UInt32.CanFitInto(Float64))
	require.True(t, Float32.CanFitInto(Float64))

	require.False(t, Int16.CanFitInto(UInt8))
	require.False(t, Float64.CanFitInto(Float32))
	require.False(t, Float64.CanFitInto(Int64))
	require.False(t, Int8.CanFitInto(UInt64))
	require.False(t, Int64.CanFitInto(Float32))
}

// TestMinMaxBounds verifies the representable extremes for a sample of
// encodings.
func TestMinMaxBounds(t *testing.T) {
	require.Equal(t, uint64(0), UInt8.Min().Uint64())
	require.Equal(t, uint64(255), UInt8.Max().Uint64())
	require.Equal(t, int64(-128), Int8.Min().Int64())
	require.Equal(t, int64(-32768), Int16.Min().Int64())
	require.Equal(t, int64(32767), Int16.Max().Int64())
	require.Equal(t, int64(math.MinInt32), Int32.Min().Int64())
	require.Equal(t, int64(-9223372036854775808), Int64.Min().Int64())
	require.Equal(t, int64(9223372036854775807), Int64.Max().Int64())
	require.Equal(t, uint64(18446744073709551615), UInt64.Max().Uint64())

	// Float bounds are the finite extremes, not infinities.
	require.False(t, math.IsInf(Float64.Max().Float64(), 1))
	require.Equal(t, math.MaxFloat64, Float64.Max().Float64())
	require.Equal(t, float64(-math.MaxFloat32), Float32.Min().Float64())

	for ct := range CellTypes() {
		require.Equal(t, ct, ct.Min().CellType())
		require.Equal(t, ct, ct.Max().CellType())
		require.True(t, ct.Min().Less(ct.Max()))
	}
}

// TestCellTypeStringParse verifies String and ParseCellType are inverses.
func TestCellTypeStringParse(t *testing.T) {
	for ct := range CellTypes() {
		parsed, err := ParseCellType(ct.String())
		require.NoError(t, err)
		require.Equal(t, ct, parsed)
	}

	_, err := ParseCellType("Complex64")
	require.Error(t, err)
	require.ErrorContains(t, err, "Complex64")
}
