// Package raster bridges cell buffers to raster band I/O.
//
// Raster drivers describe band samples with a small numeric data-type code
// and an optional floating-point no-data value. This package maps those
// driver-level descriptions onto cell types and no-data policies, and reads
// or writes whole bands as cell buffers.
package raster

import (
	"fmt"
	"math"

	"github.com/s22s/erased-cells/errs"

	cells "github.com/s22s/erased-cells"
)

// DataType identifies a band sample encoding. The codes follow the GDAL
// numbering so drivers can pass their native type codes through unchanged.
type DataType uint8

const (
	Unknown DataType = 0
	Byte    DataType = 1
	UInt16  DataType = 2
	Int16   DataType = 3
	UInt32  DataType = 4
	Int32   DataType = 5
	Float32 DataType = 6
	Float64 DataType = 7
	// Codes 8 through 11 are complex sample types, which have no cell type
	// representation.
	UInt64 DataType = 12
	Int64  DataType = 13
	Int8   DataType = 14
)

// String returns the GDAL-style name of the data type.
func (dt DataType) String() string {
	switch dt {
	case Byte:
		return "Byte"
	case UInt16:
		return "UInt16"
	case Int16:
		return "Int16"
	case UInt32:
		return "UInt32"
	case Int32:
		return "Int32"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case UInt64:
		return "UInt64"
	case Int64:
		return "Int64"
	case Int8:
		return "Int8"
	default:
		return "Unknown"
	}
}

// CellTypeOf maps a band data type to its cell type. Complex and unknown
// codes return a wrapped errs.ErrUnsupportedCellType.
func CellTypeOf(dt DataType) (cells.CellType, error) {
	switch dt {
	case Byte:
		return cells.UInt8, nil
	case UInt16:
		return cells.UInt16, nil
	case Int16:
		return cells.Int16, nil
	case UInt32:
		return cells.UInt32, nil
	case Int32:
		return cells.Int32, nil
	case Float32:
		return cells.Float32, nil
	case Float64:
		return cells.Float64, nil
	case UInt64:
		return cells.UInt64, nil
	case Int64:
		return cells.Int64, nil
	case Int8:
		return cells.Int8, nil
	default:
		return 0, fmt.Errorf("%w: band data type %s (%d)", errs.ErrUnsupportedCellType, dt, uint8(dt))
	}
}

// DataTypeOf maps a cell type to its band data type. Every cell type has a
// data type code.
func DataTypeOf(ct cells.CellType) DataType {
	switch ct {
	case cells.UInt8:
		return Byte
	case cells.UInt16:
		return UInt16
	case cells.Int16:
		return Int16
	case cells.UInt32:
		return UInt32
	case cells.Int32:
		return Int32
	case cells.Float32:
		return Float32
	case cells.Float64:
		return Float64
	case cells.UInt64:
		return UInt64
	case cells.Int64:
		return Int64
	default:
		return Int8
	}
}

// NoDataFor derives a no-data policy from a driver's optional no-data value.
// A nil value yields the NoDataNone policy. A non-nil value must be exactly
// representable in T; otherwise a wrapped errs.ErrNarrowing is returned,
// since a sentinel that cannot round-trip through the band's encoding would
// silently match the wrong cells.
func NoDataFor[T cells.Encoding](nodata *float64) (cells.NoData[T], error) {
	if nodata == nil {
		return cells.NoDataNone[T](), nil
	}

	sentinel, ok := exactCast[T](*nodata)
	if !ok {
		return cells.NoData[T]{}, fmt.Errorf("%w: no-data value %v is not representable as %s",
			errs.ErrNarrowing, *nodata, cells.CellTypeOf[T]())
	}

	return cells.NoDataValue(sentinel), nil
}

// exactCast converts value to T, reporting whether the conversion preserves
// it exactly. NaN is representable in the float encodings only.
func exactCast[T cells.Encoding](value float64) (T, bool) {
	var out T
	switch p := any(&out).(type) {
	case *float64:
		*p = value
		return out, true
	case *float32:
		*p = float32(value)
		return out, math.IsNaN(value) || float64(*p) == value
	}

	if math.IsNaN(value) || value != math.Trunc(value) {
		return out, false
	}

	// Convert and verify the round trip; an out-of-range conversion cannot
	// reproduce the original value.
	var back float64
	switch p := any(&out).(type) {
	case *uint8:
		*p = uint8(value)
		back = float64(*p)
	case *uint16:
		*p = uint16(value)
		back = float64(*p)
	case *uint32:
		*p = uint32(value)
		back = float64(*p)
	case *uint64:
		*p = uint64(value)
		back = float64(*p)
	case *int8:
		*p = int8(value)
		back = float64(*p)
	case *int16:
		*p = int16(value)
		back = float64(*p)
	case *int32:
		*p = int32(value)
		back = float64(*p)
	case *int64:
		*p = int64(value)
		back = float64(*p)
	}

	return out, back == value
}
