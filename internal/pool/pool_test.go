package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	bb := NewByteBuffer(8)
	require.Zero(t, bb.Len())
	require.Equal(t, 8, cap(bb.B))

	n, err := bb.Write([]byte("samples:"))
	require.NoError(t, err)
	require.Equal(t, 8, n)
	_, _ = bb.Write([]byte(" []\n"))
	require.Equal(t, "samples: []\n", string(bb.Bytes()))
	require.Equal(t, 12, bb.Len())

	capBefore := cap(bb.B)
	bb.Reset()
	assert.Zero(t, bb.Len())
	assert.Equal(t, capBefore, cap(bb.B))
}

func TestByteBufferPool(t *testing.T) {
	t.Run("buffers come back empty", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		bb := p.Get()
		_, _ = bb.Write([]byte("dirty"))
		p.Put(bb)

		again := p.Get()
		require.Zero(t, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(16, 32)
		bb := p.Get()
		_, _ = bb.Write(make([]byte, 100))
		p.Put(bb)

		again := p.Get()
		require.NotSame(t, bb, again)
		require.LessOrEqual(t, cap(again.B), 32)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(16, 0)
		p.Put(nil)
		require.NotNil(t, p.Get())
	})

	t.Run("shared file pool", func(t *testing.T) {
		bb := GetFileBuffer()
		require.NotNil(t, bb)
		require.Zero(t, bb.Len())
		PutFileBuffer(bb)
	})
}

func TestGetFloat64Slice(t *testing.T) {
	s, release := GetFloat64Slice(5)
	require.Len(t, s, 5)
	for i := range s {
		s[i] = float64(i)
	}
	release()

	bigger, release := GetFloat64Slice(100)
	require.Len(t, bigger, 100)
	release()

	empty, release := GetFloat64Slice(0)
	require.Empty(t, empty)
	release()
}

func TestPoolsConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for range 100 {
				s, release := GetFloat64Slice(n + 1)
				s[n] = 1
				release()

				bb := GetFileBuffer()
				_, _ = bb.Write([]byte{byte(n)})
				PutFileBuffer(bb)
			}
		}(i)
	}
	wg.Wait()
}

func BenchmarkFileBuffer(b *testing.B) {
	payload := make([]byte, 4096)
	for b.Loop() {
		bb := GetFileBuffer()
		_, _ = bb.Write(payload)
		PutFileBuffer(bb)
	}
}
