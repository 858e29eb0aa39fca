package raster

import (
	"fmt"

	"github.com/s22s/erased-cells/errs"

	cells "github.com/s22s/erased-cells"
)

// Band is the surface a raster driver exposes for one band's samples.
//
// ReadBlock returns the band content as a native slice of the sample type
// announced by DataType, e.g. []uint8 for Byte. WriteBlock accepts the same.
// NoDataValue reports the band's no-data value, if one is set.
type Band interface {
	DataType() DataType
	NoDataValue() (float64, bool)
	ReadBlock() (any, error)
	WriteBlock(data any) error
}

// ReadBand reads the whole band as a cell buffer.
//
// Any no-data value on the band is ignored; every cell is taken at face
// value. Use ReadBandMasked to derive a validity mask instead.
func ReadBand(b Band) (*cells.CellBuffer, error) {
	ct, err := CellTypeOf(b.DataType())
	if err != nil {
		return nil, err
	}

	data, err := b.ReadBlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read band block: %w", err)
	}

	switch ct {
	case cells.UInt8:
		return bufferFrom[uint8](data)
	case cells.UInt16:
		return bufferFrom[uint16](data)
	case cells.UInt32:
		return bufferFrom[uint32](data)
	case cells.UInt64:
		return bufferFrom[uint64](data)
	case cells.Int8:
		return bufferFrom[int8](data)
	case cells.Int16:
		return bufferFrom[int16](data)
	case cells.Int32:
		return bufferFrom[int32](data)
	case cells.Int64:
		return bufferFrom[int64](data)
	case cells.Float32:
		return bufferFrom[float32](data)
	default:
		return bufferFrom[float64](data)
	}
}

// ReadBandMasked reads the whole band as a masked cell buffer, marking
// invalid every cell that matches the band's no-data value. A band without a
// no-data value yields an all-valid mask.
func ReadBandMasked(b Band) (*cells.MaskedCellBuffer, error) {
	ct, err := CellTypeOf(b.DataType())
	if err != nil {
		return nil, err
	}

	data, err := b.ReadBlock()
	if err != nil {
		return nil, fmt.Errorf("failed to read band block: %w", err)
	}

	var nodata *float64
	if nd, ok := b.NoDataValue(); ok {
		nodata = &nd
	}

	switch ct {
	case cells.UInt8:
		return maskedFrom[uint8](data, nodata)
	case cells.UInt16:
		return maskedFrom[uint16](data, nodata)
	case cells.UInt32:
		return maskedFrom[uint32](data, nodata)
	case cells.UInt64:
		return maskedFrom[uint64](data, nodata)
	case cells.Int8:
		return maskedFrom[int8](data, nodata)
	case cells.Int16:
		return maskedFrom[int16](data, nodata)
	case cells.Int32:
		return maskedFrom[int32](data, nodata)
	case cells.Int64:
		return maskedFrom[int64](data, nodata)
	case cells.Float32:
		return maskedFrom[float32](data, nodata)
	default:
		return maskedFrom[float64](data, nodata)
	}
}

// WriteBand writes a cell buffer to the band, converting it to the band's
// sample type first. Converting to a narrower encoding fails with the usual
// wrapped errs.ErrNarrowing.
func WriteBand(b Band, buf *cells.CellBuffer) error {
	ct, err := CellTypeOf(b.DataType())
	if err != nil {
		return err
	}

	conv, err := buf.Convert(ct)
	if err != nil {
		return err
	}

	switch ct {
	case cells.UInt8:
		return writeBlock[uint8](b, conv)
	case cells.UInt16:
		return writeBlock[uint16](b, conv)
	case cells.UInt32:
		return writeBlock[uint32](b, conv)
	case cells.UInt64:
		return writeBlock[uint64](b, conv)
	case cells.Int8:
		return writeBlock[int8](b, conv)
	case cells.Int16:
		return writeBlock[int16](b, conv)
	case cells.Int32:
		return writeBlock[int32](b, conv)
	case cells.Int64:
		return writeBlock[int64](b, conv)
	case cells.Float32:
		return writeBlock[float32](b, conv)
	default:
		return writeBlock[float64](b, conv)
	}
}

// WriteBandMasked writes a masked cell buffer to the band, substituting the
// band's no-data value at invalid positions. Writing a buffer with invalid
// cells to a band without a no-data value loses the mask.
func WriteBandMasked(b Band, m *cells.MaskedCellBuffer) error {
	ct, err := CellTypeOf(b.DataType())
	if err != nil {
		return err
	}

	conv, err := m.Convert(ct)
	if err != nil {
		return err
	}

	var nodata *float64
	if nd, ok := b.NoDataValue(); ok {
		nodata = &nd
	}

	switch ct {
	case cells.UInt8:
		return writeMaskedBlock[uint8](b, conv, nodata)
	case cells.UInt16:
		return writeMaskedBlock[uint16](b, conv, nodata)
	case cells.UInt32:
		return writeMaskedBlock[uint32](b, conv, nodata)
	case cells.UInt64:
		return writeMaskedBlock[uint64](b, conv, nodata)
	case cells.Int8:
		return writeMaskedBlock[int8](b, conv, nodata)
	case cells.Int16:
		return writeMaskedBlock[int16](b, conv, nodata)
	case cells.Int32:
		return writeMaskedBlock[int32](b, conv, nodata)
	case cells.Int64:
		return writeMaskedBlock[int64](b, conv, nodata)
	case cells.Float32:
		return writeMaskedBlock[float32](b, conv, nodata)
	default:
		return writeMaskedBlock[float64](b, conv, nodata)
	}
}

func bufferFrom[T cells.Encoding](data any) (*cells.CellBuffer, error) {
	s, err := blockSlice[T](data)
	if err != nil {
		return nil, err
	}

	return cells.FromSlice(s), nil
}

func maskedFrom[T cells.Encoding](data any, nodata *float64) (*cells.MaskedCellBuffer, error) {
	s, err := blockSlice[T](data)
	if err != nil {
		return nil, err
	}

	policy, err := NoDataFor[T](nodata)
	if err != nil {
		return nil, err
	}

	return cells.FromSliceWithNoData(s, policy), nil
}

func writeBlock[T cells.Encoding](b Band, buf *cells.CellBuffer) error {
	s, err := cells.ToSlice[T](buf)
	if err != nil {
		return err
	}

	if err := b.WriteBlock(s); err != nil {
		return fmt.Errorf("failed to write band block: %w", err)
	}

	return nil
}

func writeMaskedBlock[T cells.Encoding](b Band, m *cells.MaskedCellBuffer, nodata *float64) error {
	policy, err := NoDataFor[T](nodata)
	if err != nil {
		return err
	}

	s, err := cells.ToSliceWithNoData(m, policy)
	if err != nil {
		return err
	}

	if err := b.WriteBlock(s); err != nil {
		return fmt.Errorf("failed to write band block: %w", err)
	}

	return nil
}

// blockSlice asserts a driver block to the sample type its data type
// announced.
func blockSlice[T cells.Encoding](data any) ([]T, error) {
	s, ok := data.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: band block is %T, want []%s",
			errs.ErrInvalidPayload, data, cells.CellTypeOf[T]())
	}

	return s, nil
}
