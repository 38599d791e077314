// Package pool recycles scratch buffers between calls.
package pool

import "sync"

// Default sizes for the file buffer pool.
const (
	FileBufferDefaultSize  = 16 << 10
	FileBufferMaxThreshold = 1 << 20
)

// ByteBuffer is a growable byte slice that implements io.Writer.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates an empty buffer with the given capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffered bytes. The slice is only valid until the next Reset.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends data. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool hands out ByteBuffers and drops ones that grew past maxThreshold
// so one oversized file does not pin its memory for the life of the process.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with capacity defaultSize.
// A maxThreshold of zero keeps every buffer.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get returns an empty buffer.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns bb to the pool. Nil and oversized buffers are discarded.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var fileBufferPool = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)

// GetFileBuffer returns a buffer from the shared file pool.
func GetFileBuffer() *ByteBuffer {
	return fileBufferPool.Get()
}

// PutFileBuffer returns bb to the shared file pool.
func PutFileBuffer(bb *ByteBuffer) {
	fileBufferPool.Put(bb)
}
