package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Compressor writes the S2 stream format, which is a superset of the Snappy framing
// format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return writeAll(data, func(w io.Writer) io.WriteCloser {
		return s2.NewWriter(w, s2.WriterConcurrency(1))
	})
}

// Decompress decodes an S2 or Snappy stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readAllLimited(s2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
