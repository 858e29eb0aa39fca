// Package endian provides byte-order utilities for the erased-cells binary
// codec.
//
// It combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single EndianEngine interface, and exposes a probe
// for the host's native byte order. The codec uses the probe to decide when
// a payload can be block-copied instead of element-encoded.
//
// All functions are safe for concurrent use; the returned engines are
// immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine is the combination of binary.ByteOrder and
// binary.AppendByteOrder. It is satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine, the default for encoded cell
// payloads.
func Little() EndianEngine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() EndianEngine {
	return binary.BigEndian
}

// Native probes the host's byte order using a fixed integer value.
func Native() binary.ByteOrder {
	// 0x0100 is 256. A little-endian host stores the LSB (0x00) first, a
	// big-endian host the MSB (0x01).
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittle reports whether the host is little-endian.
func IsNativeLittle() bool {
	return Native() == binary.LittleEndian
}

// IsNative reports whether engine matches the host's byte order.
func IsNative(engine EndianEngine) bool {
	return engine == Native()
}
