// Package pool provides pooled byte buffers for the codec's encode path.
package pool

import "sync"

const (
	// CodecBufferDefaultSize is the initial capacity of a pooled buffer,
	// enough for a 4K-cell float64 payload without growth.
	CodecBufferDefaultSize = 32 * 1024

	// CodecBufferMaxThreshold caps the capacity of buffers returned to the
	// pool; anything larger is released to the garbage collector so one
	// oversized encode does not pin memory forever.
	CodecBufferMaxThreshold = 1024 * 1024
)

// ByteBuffer is a growable byte slice with explicit length control, shared
// between encode passes through a sync.Pool.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the current length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Reset empties the buffer while retaining its allocation.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data, growing the buffer as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)

	return nil
}

// ExtendOrGrow lengthens the buffer by n bytes, reallocating if the
// capacity is insufficient, and leaves the new bytes uninitialized for the
// caller to fill.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	curLen := len(bb.B)
	if cap(bb.B)-curLen >= n {
		bb.B = bb.B[:curLen+n]
		return
	}

	grown := make([]byte, curLen+n, max(2*cap(bb.B), curLen+n))
	copy(grown, bb.B)
	bb.B = grown
}

var bufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(CodecBufferDefaultSize)
	},
}

// GetBuffer retrieves an empty buffer from the pool.
func GetBuffer() *ByteBuffer {
	bb, _ := bufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutBuffer returns a buffer to the pool, dropping oversized ones.
func PutBuffer(bb *ByteBuffer) {
	if bb == nil || bb.Cap() > CodecBufferMaxThreshold {
		return
	}
	bufferPool.Put(bb)
}
