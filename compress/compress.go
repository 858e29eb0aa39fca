// Package compress provides the payload compression codecs used by the
// erased-cells binary format.
//
// Cell payloads are flat arrays of fixed-width numeric values, typically a
// raster band of tens of thousands to millions of cells. Integer imagery
// compresses extremely well with the fast codecs (S2, LZ4); Zstd trades
// speed for ratio and suits archival storage. All codecs operate on whole
// payloads ([]byte in, []byte out) and are safe for concurrent use.
package compress

import (
	"fmt"

	"github.com/s22s/erased-cells/errs"
)

// Type identifies a compression codec in the encoded format's flag byte.
type Type uint8

const (
	None Type = 0x1 // no compression
	Zstd Type = 0x2 // Zstandard
	S2   Type = 0x3 // S2 (Snappy-compatible)
	LZ4  Type = 0x4 // LZ4 block format
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a complete cell payload.
//
// The returned slice is newly allocated and owned by the caller; the input
// is never modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload previously produced by the matching
// Compressor. Corrupted or mismatched input returns an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given type, or a wrapped
// errs.ErrInvalidCompressionType for an unrecognized code.
func NewCodec(t Type) (Codec, error) {
	switch t {
	case None:
		return NewNoOpCodec(), nil
	case Zstd:
		return NewZstdCodec(), nil
	case S2:
		return NewS2Codec(), nil
	case LZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompressionType, uint8(t))
	}
}
