package codec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/s22s/erased-cells/compress"
	"github.com/s22s/erased-cells/endian"
	"github.com/s22s/erased-cells/errs"

	cells "github.com/s22s/erased-cells"
)

// header carries the decoded fixed prefix and the offset where sections
// begin.
type header struct {
	kind   byte
	engine endian.EndianEngine
	codec  compress.Codec
	ct     cells.CellType
	count  int
	offset int
}

// DecodeBuffer restores a cell buffer encoded by EncodeBuffer.
func DecodeBuffer(data []byte) (*cells.CellBuffer, error) {
	h, err := decodeHeader(data, kindBuffer)
	if err != nil {
		return nil, err
	}

	buf, next, err := decodeBufferSection(data, h)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(data, next); err != nil {
		return nil, err
	}

	return buf, nil
}

// DecodeMask restores a standalone mask encoded by EncodeMask.
func DecodeMask(data []byte) (*cells.Mask, error) {
	h, err := decodeHeader(data, kindMask)
	if err != nil {
		return nil, err
	}

	mask, next, err := decodeMaskSection(data, h.offset, h.count)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(data, next); err != nil {
		return nil, err
	}

	return mask, nil
}

// DecodeMasked restores a masked cell buffer encoded by EncodeMasked.
func DecodeMasked(data []byte) (*cells.MaskedCellBuffer, error) {
	h, err := decodeHeader(data, kindMasked)
	if err != nil {
		return nil, err
	}

	buf, next, err := decodeBufferSection(data, h)
	if err != nil {
		return nil, err
	}
	mask, next, err := decodeMaskSection(data, next, h.count)
	if err != nil {
		return nil, err
	}
	if err := expectEnd(data, next); err != nil {
		return nil, err
	}

	return cells.NewMaskedCellBuffer(buf, mask), nil
}

func decodeHeader(data []byte, wantKind byte) (header, error) {
	var h header

	if len(data) < headerSize+checksumSize {
		return h, fmt.Errorf("%w: %d bytes is too short", errs.ErrInvalidPayload, len(data))
	}

	// Verify the trailer before trusting any field.
	body := data[:len(data)-checksumSize]
	want := binary.LittleEndian.Uint64(data[len(data)-checksumSize:])
	if got := xxhash.Sum64(body); got != want {
		return h, fmt.Errorf("%w: computed 0x%016x, stored 0x%016x", errs.ErrChecksumMismatch, got, want)
	}

	if m := binary.LittleEndian.Uint16(data); m != magic {
		return h, fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagic, m)
	}
	if v := data[2]; v != version {
		return h, fmt.Errorf("%w: unsupported version 0x%02x", errs.ErrInvalidPayload, v)
	}

	h.kind = data[3]
	if h.kind != wantKind {
		return h, fmt.Errorf("%w: kind 0x%02x, want 0x%02x", errs.ErrInvalidPayload, h.kind, wantKind)
	}

	flag := data[4]
	h.engine = endian.Little()
	if flag&flagBigEndian != 0 {
		h.engine = endian.Big()
	}

	codec, err := compress.NewCodec(compress.Type(flag & flagCompressionMask))
	if err != nil {
		return h, err
	}
	h.codec = codec

	ct := data[5]
	if h.kind != kindMask {
		if ct >= byte(cellTypeLimit) {
			return h, fmt.Errorf("%w: cell type code 0x%02x", errs.ErrUnknownCellType, ct)
		}
		h.ct = cells.CellType(ct)
	}

	count, n := binary.Uvarint(body[headerSize:])
	if n <= 0 {
		return h, fmt.Errorf("%w: malformed cell count", errs.ErrInvalidPayload)
	}
	if count > math.MaxInt {
		return h, fmt.Errorf("%w: cell count %d out of range", errs.ErrInvalidPayload, count)
	}
	h.count = int(count)
	h.offset = headerSize + n

	return h, nil
}

// cellTypeLimit is the first invalid cell type code.
const cellTypeLimit = cells.Float64 + 1

func decodeBufferSection(data []byte, h header) (*cells.CellBuffer, int, error) {
	payload, next, err := section(data, h.offset)
	if err != nil {
		return nil, 0, err
	}

	raw, err := h.codec.Decompress(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decompress cell payload: %w", err)
	}

	buf, err := readBufferPayload(raw, h.engine, h.ct, h.count)
	if err != nil {
		return nil, 0, err
	}

	return buf, next, nil
}

func decodeMaskSection(data []byte, offset, count int) (*cells.Mask, int, error) {
	packed, next, err := section(data, offset)
	if err != nil {
		return nil, 0, err
	}

	bits, err := unpackMask(packed, count)
	if err != nil {
		return nil, 0, err
	}

	return cells.NewMask(bits), next, nil
}

// section reads a uvarint-length-prefixed byte section starting at offset,
// returning the section content and the offset just past it.
func section(data []byte, offset int) ([]byte, int, error) {
	body := data[:len(data)-checksumSize]
	if offset >= len(body) {
		return nil, 0, fmt.Errorf("%w: truncated section", errs.ErrInvalidPayload)
	}

	size, n := binary.Uvarint(body[offset:])
	if n <= 0 {
		return nil, 0, fmt.Errorf("%w: malformed section length", errs.ErrInvalidPayload)
	}

	// Compare in uint64 before converting: a hostile length near 2^64 would
	// otherwise wrap the slice bound negative.
	start := offset + n
	if size > uint64(len(body)-start) {
		return nil, 0, fmt.Errorf("%w: section of %d bytes exceeds payload", errs.ErrInvalidPayload, size)
	}
	end := start + int(size)

	return body[start:end], end, nil
}

func expectEnd(data []byte, offset int) error {
	if offset != len(data)-checksumSize {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidPayload, len(data)-checksumSize-offset)
	}

	return nil
}
