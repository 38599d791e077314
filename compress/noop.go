package compress

// NoOpCompressor passes data through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data as is.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data as is, subject to MaxDecompressedSize.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return data, nil
}
