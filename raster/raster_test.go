package raster

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/s22s/erased-cells/errs"

	cells "github.com/s22s/erased-cells"
)

// memBand is an in-memory Band backed by a native slice, standing in for a
// raster driver.
type memBand struct {
	dt     DataType
	nodata *float64
	block  any
}

func (b *memBand) DataType() DataType { return b.dt }

func (b *memBand) NoDataValue() (float64, bool) {
	if b.nodata == nil {
		return 0, false
	}

	return *b.nodata, true
}

func (b *memBand) ReadBlock() (any, error) { return b.block, nil }

func (b *memBand) WriteBlock(data any) error {
	b.block = data

	return nil
}

func ptr(v float64) *float64 { return &v }

// TestDataTypeMapping verifies the data type and cell type mappings are
// inverses over the supported codes.
func TestDataTypeMapping(t *testing.T) {
	tests := []struct {
		dt DataType
		ct cells.CellType
	}{
		{Byte, cells.UInt8},
		{UInt16, cells.UInt16},
		{Int16, cells.Int16},
		{UInt32, cells.UInt32},
		{Int32, cells.Int32},
		{Float32, cells.Float32},
		{Float64, cells.Float64},
		{UInt64, cells.UInt64},
		{Int64, cells.Int64},
		{Int8, cells.Int8},
	}

	for _, tt := range tests {
		t.Run(tt.dt.String(), func(t *testing.T) {
			ct, err := CellTypeOf(tt.dt)
			require.NoError(t, err)
			require.Equal(t, tt.ct, ct)
			require.Equal(t, tt.dt, DataTypeOf(tt.ct))
		})
	}
}

// TestCellTypeOfUnsupported verifies complex and unknown codes are
// rejected.
func TestCellTypeOfUnsupported(t *testing.T) {
	for _, dt := range []DataType{Unknown, 8, 9, 10, 11, 15} {
		_, err := CellTypeOf(dt)
		require.ErrorIs(t, err, errs.ErrUnsupportedCellType)
	}
}

// TestNoDataFor verifies no-data policy derivation from a driver value.
func TestNoDataFor(t *testing.T) {
	// No value means no sentinel.
	nd, err := NoDataFor[uint8](nil)
	require.NoError(t, err)
	_, ok := nd.Value()
	require.False(t, ok)

	// An exactly representable value becomes the sentinel.
	nd8, err := NoDataFor[uint8](ptr(255))
	require.NoError(t, err)
	v, ok := nd8.Value()
	require.True(t, ok)
	require.Equal(t, uint8(255), v)

	ndf, err := NoDataFor[float32](ptr(-9999))
	require.NoError(t, err)
	f, _ := ndf.Value()
	require.Equal(t, float32(-9999), f)

	// NaN is representable in float encodings only.
	nanPolicy, err := NoDataFor[float64](ptr(math.NaN()))
	require.NoError(t, err)
	s, _ := nanPolicy.Value()
	require.True(t, math.IsNaN(s))
}

// TestNoDataForRejectsUnrepresentable verifies sentinels that cannot
// round-trip are refused.
func TestNoDataForRejectsUnrepresentable(t *testing.T) {
	_, err := NoDataFor[uint8](ptr(256))
	require.ErrorIs(t, err, errs.ErrNarrowing)

	_, err = NoDataFor[uint8](ptr(-1))
	require.ErrorIs(t, err, errs.ErrNarrowing)

	_, err = NoDataFor[int16](ptr(1.5))
	require.ErrorIs(t, err, errs.ErrNarrowing)

	_, err = NoDataFor[int32](ptr(math.NaN()))
	require.ErrorIs(t, err, errs.ErrNarrowing)

	// A float64 that float32 cannot hold exactly.
	_, err = NoDataFor[float32](ptr(1e300))
	require.ErrorIs(t, err, errs.ErrNarrowing)
}

// TestReadBand verifies plain reads ignore the no-data value.
func TestReadBand(t *testing.T) {
	band := &memBand{dt: UInt16, nodata: ptr(0), block: []uint16{0, 10, 20}}

	buf, err := ReadBand(band)
	require.NoError(t, err)
	require.Equal(t, cells.UInt16, buf.CellType())
	require.Equal(t, 3, buf.Len())
	require.Equal(t, uint64(0), buf.Get(0).Uint64())
}

// TestReadBandMasked verifies the no-data value drives the mask.
func TestReadBandMasked(t *testing.T) {
	band := &memBand{dt: UInt16, nodata: ptr(0), block: []uint16{0, 10, 0, 20}}

	m, err := ReadBandMasked(band)
	require.NoError(t, err)
	require.Equal(t, []bool{false, true, false, true}, m.Mask().Bools())

	// Without a no-data value everything is valid.
	band.nodata = nil
	m, err = ReadBandMasked(band)
	require.NoError(t, err)
	require.True(t, m.Mask().All(true))
}

// TestReadBandWrongBlockType verifies a driver block that contradicts its
// data type is rejected.
func TestReadBandWrongBlockType(t *testing.T) {
	band := &memBand{dt: UInt16, block: []float64{1, 2}}

	_, err := ReadBand(band)
	require.ErrorIs(t, err, errs.ErrInvalidPayload)
}

// TestWriteBand verifies writes convert into the band's sample type.
func TestWriteBand(t *testing.T) {
	band := &memBand{dt: Float64}

	require.NoError(t, WriteBand(band, cells.FromSlice([]uint8{1, 2, 3})))
	require.Equal(t, []float64{1, 2, 3}, band.block)

	// Narrowing into the band type fails.
	narrow := &memBand{dt: Byte}
	err := WriteBand(narrow, cells.FromSlice([]float64{1.5}))
	require.ErrorIs(t, err, errs.ErrNarrowing)
}

// TestWriteBandMasked verifies invalid cells are materialized as the band's
// no-data value.
func TestWriteBandMasked(t *testing.T) {
	band := &memBand{dt: Int32, nodata: ptr(-999)}

	m := cells.NewMaskedCellBuffer(
		cells.FromSlice([]int32{5, 6, 7}),
		cells.NewMask([]bool{true, false, true}),
	)
	require.NoError(t, WriteBandMasked(band, m))
	require.Equal(t, []int32{5, -999, 7}, band.block)
}

// TestBandRoundTripThroughArithmetic reads two bands, computes a normalized
// difference and writes the result back.
func TestBandRoundTripThroughArithmetic(t *testing.T) {
	nir := &memBand{dt: UInt16, nodata: ptr(0), block: []uint16{800, 0, 900}}
	red := &memBand{dt: UInt16, nodata: ptr(0), block: []uint16{600, 500, 300}}

	nirBuf, err := ReadBandMasked(nir)
	require.NoError(t, err)
	redBuf, err := ReadBandMasked(red)
	require.NoError(t, err)

	nir64, err := nirBuf.Convert(cells.Float64)
	require.NoError(t, err)
	red64, err := redBuf.Convert(cells.Float64)
	require.NoError(t, err)

	ndvi := nir64.Sub(red64).Div(nir64.Add(red64))

	out := &memBand{dt: Float64, nodata: ptr(-9999)}
	require.NoError(t, WriteBandMasked(out, ndvi))

	written, ok := out.block.([]float64)
	require.True(t, ok)
	require.InDelta(t, 200.0/1400.0, written[0], 1e-12)
	require.Equal(t, -9999.0, written[1])
	require.InDelta(t, 600.0/1200.0, written[2], 1e-12)
}

// TestReadBandDriverError verifies driver failures propagate.
func TestReadBandDriverError(t *testing.T) {
	band := &failBand{dt: Byte}

	_, err := ReadBand(band)
	require.ErrorIs(t, err, errReadFailed)

	_, err = ReadBandMasked(band)
	require.ErrorIs(t, err, errReadFailed)
}

var errReadFailed = errors.New("read failed")

type failBand struct {
	dt DataType
}

func (b *failBand) DataType() DataType           { return b.dt }
func (b *failBand) NoDataValue() (float64, bool) { return 0, false }
func (b *failBand) ReadBlock() (any, error)      { return nil, errReadFailed }
func (b *failBand) WriteBlock(any) error         { return nil }
