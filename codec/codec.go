// Package codec implements the compact binary encoding of cell buffers,
// masks and masked buffers.
//
// The format is a mechanical, field-preserving rendering of the in-memory
// types:
//
//	[magic:2][version:1][kind:1][flag:1][celltype:1][count:uvarint]
//	[sections...][checksum:8]
//
// A buffer section is a uvarint byte length followed by the cell payload:
// the native fixed-width values in the configured byte order, optionally
// compressed. A mask section is a uvarint byte length followed by the
// validity bits packed eight to a byte, LSB first. The trailing checksum is
// the xxHash64 of everything before it, stored little-endian.
//
// The flag byte carries the compression type in its low nibble and the
// payload byte order in bit 4 (set = big-endian). Headers and section
// lengths are byte-order neutral.
package codec

import (
	"github.com/s22s/erased-cells/compress"
	"github.com/s22s/erased-cells/endian"
)

const (
	// magic marks encoded cell data; stored as two fixed bytes 0x11 0xCE.
	magic uint16 = 0xCE11

	// version is the current format version.
	version byte = 0x1

	// headerSize is the fixed-size prefix before the count uvarint.
	headerSize = 6

	// checksumSize is the xxHash64 trailer length.
	checksumSize = 8
)

// Section kinds.
const (
	kindBuffer byte = 0x1
	kindMask   byte = 0x2
	kindMasked byte = 0x3
)

// Flag byte layout.
const (
	flagCompressionMask byte = 0x0F
	flagBigEndian       byte = 0x10
)

type config struct {
	engine      endian.EndianEngine
	compression compress.Type
}

// Option configures an encode operation.
type Option func(*config)

// WithCompression selects the payload compression codec. The default is
// compress.None.
func WithCompression(t compress.Type) Option {
	return func(c *config) {
		c.compression = t
	}
}

// WithLittleEndian encodes payloads little-endian (the default).
func WithLittleEndian() Option {
	return func(c *config) {
		c.engine = endian.Little()
	}
}

// WithBigEndian encodes payloads big-endian, for interoperability with
// big-endian consumers.
func WithBigEndian() Option {
	return func(c *config) {
		c.engine = endian.Big()
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		engine:      endian.Little(),
		compression: compress.None,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func (c config) flag() byte {
	f := byte(c.compression) & flagCompressionMask
	if c.engine == endian.Big() {
		f |= flagBigEndian
	}

	return f
}
