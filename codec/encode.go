package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/s22s/erased-cells/compress"
	"github.com/s22s/erased-cells/internal/pool"

	cells "github.com/s22s/erased-cells"
)

// EncodeBuffer renders a cell buffer into the binary format.
func EncodeBuffer(b *cells.CellBuffer, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	out := pool.GetBuffer()
	defer pool.PutBuffer(out)

	appendHeader(out, kindBuffer, cfg, byte(b.CellType()), b.Len())
	if err := appendBufferSection(out, cfg, b); err != nil {
		return nil, err
	}

	return seal(out), nil
}

// EncodeMask renders a standalone validity mask into the binary format.
// Masks are always stored as packed bits and are never compressed.
func EncodeMask(m *cells.Mask, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	out := pool.GetBuffer()
	defer pool.PutBuffer(out)

	appendHeader(out, kindMask, cfg, 0, m.Len())
	appendMaskSection(out, m)

	return seal(out), nil
}

// EncodeMasked renders a masked cell buffer: a buffer section followed by a
// mask section.
func EncodeMasked(m *cells.MaskedCellBuffer, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)

	out := pool.GetBuffer()
	defer pool.PutBuffer(out)

	appendHeader(out, kindMasked, cfg, byte(m.CellType()), m.Len())
	if err := appendBufferSection(out, cfg, m.Buffer()); err != nil {
		return nil, err
	}
	appendMaskSection(out, m.Mask())

	return seal(out), nil
}

func appendHeader(out *pool.ByteBuffer, kind byte, cfg config, celltype byte, count int) {
	out.B = binary.LittleEndian.AppendUint16(out.B, magic)
	out.B = append(out.B, version, kind, cfg.flag(), celltype)
	out.B = binary.AppendUvarint(out.B, uint64(count))
}

func appendBufferSection(out *pool.ByteBuffer, cfg config, b *cells.CellBuffer) error {
	raw := pool.GetBuffer()
	defer pool.PutBuffer(raw)

	appendBufferPayload(raw, cfg.engine, b)

	codec, err := compress.NewCodec(cfg.compression)
	if err != nil {
		return err
	}

	payload, err := codec.Compress(raw.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress cell payload: %w", err)
	}

	out.B = binary.AppendUvarint(out.B, uint64(len(payload)))
	out.MustWrite(payload)

	return nil
}

func appendMaskSection(out *pool.ByteBuffer, m *cells.Mask) {
	packed := packMask(m.Bools())
	out.B = binary.AppendUvarint(out.B, uint64(len(packed)))
	out.MustWrite(packed)
}

// seal appends the xxHash64 trailer and copies the result out of the pooled
// buffer.
func seal(out *pool.ByteBuffer) []byte {
	sum := xxhash.Sum64(out.Bytes())
	out.B = binary.LittleEndian.AppendUint64(out.B, sum)

	result := make([]byte, out.Len())
	copy(result, out.Bytes())

	return result
}
