package compress

// ZstdCodec compresses payloads with Zstandard. It favors compression ratio
// over speed and suits archival storage of cell data.
//
// Two implementations back this type: a cgo binding to libzstd when cgo is
// available, and a pure-Go fallback otherwise. Both produce interchangeable
// streams.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}
