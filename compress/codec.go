package compress

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxDecompressedSize bounds the output of every Decompress call.
const MaxDecompressedSize = 64 << 20

// ErrTooLarge is returned when decompressed data would exceed MaxDecompressedSize.
var ErrTooLarge = errors.New("decompressed data exceeds size limit")

// Compressor compresses a complete payload.
type Compressor interface {
	// Compress returns a newly allocated framed copy of data. The input is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress returns the original payload or an error if data is corrupt or was
	// produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// Type identifies a compression algorithm.
type Type uint8

const (
	None Type = iota
	Zstd
	S2
	LZ4
)

var typeExt = map[Type]string{
	None: "",
	Zstd: ".zst",
	S2:   ".s2",
	LZ4:  ".lz4",
}

// String returns the algorithm name.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Ext returns the file extension of the algorithm, empty for None.
func (t Type) Ext() string {
	return typeExt[t]
}

// TypeForPath selects the algorithm from the last extension of path.
// Unknown extensions map to None.
func TypeForPath(path string) Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".s2", ".sz":
		return S2
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// CreateCodec returns the codec for t.
func CreateCodec(t Type) (Codec, error) {
	switch t {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid compression: %s", t)
	}
}
