// Package cells provides storage, conversion and arithmetic over numeric
// values and buffers whose element encoding is not known until runtime.
//
// It is built for workloads - raster processing being the primary one - where
// data arrives as flat arrays of one of ten primitive encodings (unsigned and
// signed integers of 1, 2, 4 and 8 bytes, plus 32- and 64-bit floats) and the
// concrete encoding is only discovered when the data is read. The package
// normalizes those encodings behind three tagged types:
//
//   - CellType: the closed enumeration of supported encodings
//   - CellValue: a single scalar stored with its CellType tag
//   - CellBuffer: a homogeneous slice of one encoding
//
// On top of the buffer layer, MaskedCellBuffer couples a CellBuffer with a
// per-cell validity Mask so that invalid ("no-data") cells propagate through
// arithmetic, and NoData describes how invalid cells map to an in-band
// sentinel value when a plain slice must be produced.
//
// # Type promotion
//
// Every two-operand operation first unifies its operands to the smallest
// CellType that can represent both value spaces without precision loss (see
// CellType.Union). Arithmetic is then performed in float64 and the result is
// re-boxed into the unified encoding. Conversions toward a narrower encoding
// are refused with a wrapped errs.ErrNarrowing.
//
// # Basic Usage
//
// Computing a normalized difference of two masked bands:
//
//	nir := cells.FromSliceWithNoData(nirPixels, cells.NoDataValue(uint16(0)))
//	red := cells.FromSliceWithNoData(redPixels, cells.NoDataValue(uint16(0)))
//
//	// Convert up front; a uint16 difference would clamp at zero.
//	nir64, _ := nir.Convert(cells.Float64)
//	red64, _ := red.Convert(cells.Float64)
//
//	// (nir - red) / (nir + red); cells invalid in either band stay invalid.
//	ndvi := nir64.Sub(red64).Div(nir64.Add(red64))
//
//	lo, hi := ndvi.MinMax() // invalid cells never influence the result
//	out, _ := cells.ToSliceWithNoData(ndvi, cells.NoDataDefault[float64]())
//
// Buffers and masked buffers have value semantics: operations allocate fresh
// results and never alias their operands. Instances are safe for concurrent
// readers; concurrent mutation requires external synchronization.
//
// # Package Structure
//
//   - codec: compact binary encode/decode of buffers and masks
//   - compress: payload compression used by codec (S2, LZ4, Zstd)
//   - endian: byte-order engines shared with codec
//   - raster: the type-mapping contract for external raster band I/O
//   - errs: sentinel errors shared by all packages
package cells
