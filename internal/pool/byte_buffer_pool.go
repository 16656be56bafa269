package pool

import "sync"

const (
	// FrameBufferDefaultSize is the initial capacity of pooled snapshot frame buffers.
	FrameBufferDefaultSize = 1024 * 16 // 16KiB
	// FrameBufferMaxThreshold is the largest buffer the pool keeps; bigger ones are dropped.
	FrameBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is an append-only byte buffer used while building snapshot frames.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the buffer is returned to the pool.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Grow ensures room for n more bytes without reallocation.
// Small buffers grow by FrameBufferDefaultSize, large ones by a quarter of their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := FrameBufferDefaultSize
	if cap(bb.B) > 4*FrameBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < n {
		growBy = n
	}

	buf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(buf, bb.B)
	bb.B = buf
}

// Write appends data. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

var frameBufferPool = sync.Pool{
	New: func() any { return NewByteBuffer(FrameBufferDefaultSize) },
}

// GetFrameBuffer retrieves an empty ByteBuffer from the pool.
func GetFrameBuffer() *ByteBuffer {
	bb, _ := frameBufferPool.Get().(*ByteBuffer)
	return bb
}

// PutFrameBuffer returns bb to the pool. Oversized buffers are discarded.
func PutFrameBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > FrameBufferMaxThreshold {
		return
	}
	bb.Reset()
	frameBufferPool.Put(bb)
}
