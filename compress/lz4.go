package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

// LZ4Compressor writes the LZ4 frame format.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as one LZ4 frame with a content checksum.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var applyErr error
	out, err := writeAll(data, func(w io.Writer) io.WriteCloser {
		zw := lz4.NewWriter(w)
		applyErr = zw.Apply(lz4.ChecksumOption(true), lz4.ConcurrencyOption(1))

		return zw
	})
	if applyErr != nil {
		return nil, applyErr
	}

	return out, err
}

// Decompress decodes an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readAllLimited(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}
