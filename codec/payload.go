package codec

import (
	"fmt"
	"unsafe"

	"github.com/s22s/erased-cells/endian"
	"github.com/s22s/erased-cells/errs"
	"github.com/s22s/erased-cells/internal/pool"

	cells "github.com/s22s/erased-cells"
)

// appendPayload renders values into bb in the engine's byte order.
//
// When the engine matches the host's byte order the slice content is block
// copied through a byte view of the backing array; otherwise each element is
// appended through the engine. The byte view is sound because the Encoding
// constraint only admits fixed-width primitive types.
func appendPayload[T cells.Encoding](bb *pool.ByteBuffer, engine endian.EndianEngine, values []T) {
	if len(values) == 0 {
		return
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	if elemSize == 1 || endian.IsNative(engine) {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*elemSize)
		bb.MustWrite(raw)

		return
	}

	for i := range values {
		p := unsafe.Pointer(&values[i])
		switch elemSize {
		case 2:
			bb.B = engine.AppendUint16(bb.B, *(*uint16)(p))
		case 4:
			bb.B = engine.AppendUint32(bb.B, *(*uint32)(p))
		default:
			bb.B = engine.AppendUint64(bb.B, *(*uint64)(p))
		}
	}
}

// readPayload decodes count values of type T from data, the inverse of
// appendPayload. The payload length must match count exactly.
func readPayload[T cells.Encoding](data []byte, engine endian.EndianEngine, count int) ([]T, error) {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))

	// Bound count before multiplying: a hostile count would wrap
	// count*elemSize around to match a small payload.
	if count < 0 || count > len(data)/elemSize || len(data) != count*elemSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d cells of %d bytes",
			errs.ErrInvalidPayload, len(data), count, elemSize)
	}

	out := make([]T, count)
	if count == 0 {
		return out, nil
	}

	if elemSize == 1 || endian.IsNative(engine) {
		raw := unsafe.Slice((*byte)(unsafe.Pointer(&out[0])), len(data))
		copy(raw, data)

		return out, nil
	}

	for i := range out {
		p := unsafe.Pointer(&out[i])
		switch elemSize {
		case 2:
			*(*uint16)(p) = engine.Uint16(data[i*2:])
		case 4:
			*(*uint32)(p) = engine.Uint32(data[i*4:])
		default:
			*(*uint64)(p) = engine.Uint64(data[i*8:])
		}
	}

	return out, nil
}

// appendBufferPayload dispatches appendPayload over the buffer's cell type.
func appendBufferPayload(bb *pool.ByteBuffer, engine endian.EndianEngine, b *cells.CellBuffer) {
	switch b.CellType() {
	case cells.UInt8:
		appendPayload(bb, engine, mustSlice[uint8](b))
	case cells.UInt16:
		appendPayload(bb, engine, mustSlice[uint16](b))
	case cells.UInt32:
		appendPayload(bb, engine, mustSlice[uint32](b))
	case cells.UInt64:
		appendPayload(bb, engine, mustSlice[uint64](b))
	case cells.Int8:
		appendPayload(bb, engine, mustSlice[int8](b))
	case cells.Int16:
		appendPayload(bb, engine, mustSlice[int16](b))
	case cells.Int32:
		appendPayload(bb, engine, mustSlice[int32](b))
	case cells.Int64:
		appendPayload(bb, engine, mustSlice[int64](b))
	case cells.Float32:
		appendPayload(bb, engine, mustSlice[float32](b))
	default:
		appendPayload(bb, engine, mustSlice[float64](b))
	}
}

// readBufferPayload dispatches readPayload over ct and wraps the result as a
// CellBuffer.
func readBufferPayload(data []byte, engine endian.EndianEngine, ct cells.CellType, count int) (*cells.CellBuffer, error) {
	switch ct {
	case cells.UInt8:
		return wrapSlice[uint8](data, engine, count)
	case cells.UInt16:
		return wrapSlice[uint16](data, engine, count)
	case cells.UInt32:
		return wrapSlice[uint32](data, engine, count)
	case cells.UInt64:
		return wrapSlice[uint64](data, engine, count)
	case cells.Int8:
		return wrapSlice[int8](data, engine, count)
	case cells.Int16:
		return wrapSlice[int16](data, engine, count)
	case cells.Int32:
		return wrapSlice[int32](data, engine, count)
	case cells.Int64:
		return wrapSlice[int64](data, engine, count)
	case cells.Float32:
		return wrapSlice[float32](data, engine, count)
	default:
		return wrapSlice[float64](data, engine, count)
	}
}

func wrapSlice[T cells.Encoding](data []byte, engine endian.EndianEngine, count int) (*cells.CellBuffer, error) {
	values, err := readPayload[T](data, engine, count)
	if err != nil {
		return nil, err
	}

	return cells.FromSlice(values), nil
}

// mustSlice views the buffer's backing slice; the tag always matches
// because the caller dispatched on the buffer's own cell type.
func mustSlice[T cells.Encoding](b *cells.CellBuffer) []T {
	s, err := cells.ToSlice[T](b)
	if err != nil {
		panic(err)
	}

	return s
}

// packMask packs validity bits eight to a byte, LSB first.
func packMask(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << (i % 8)
		}
	}

	return out
}

// unpackMask restores count validity bits from packed bytes.
func unpackMask(data []byte, count int) ([]bool, error) {
	if count < 0 || len(data) != (count+7)/8 {
		return nil, fmt.Errorf("%w: mask is %d bytes, want %d", errs.ErrInvalidPayload, len(data), (count+7)/8)
	}

	out := make([]bool, count)
	for i := range out {
		out[i] = data[i/8]&(1<<(i%8)) != 0
	}

	return out, nil
}
