// Package compress reads and writes compressed survey files.
//
// Every codec produces the standard framed format of its algorithm, so a file written
// here opens with the matching command-line tool (zstd, s2c/s2d, lz4) and vice versa.
// The codec is chosen from the file extension:
//
//	codec, err := compress.CreateCodec(compress.TypeForPath("site-7.yaml.zst"))
//	data, err := codec.Decompress(raw)
//
// Decompression is capped at MaxDecompressedSize to guard against corrupt or hostile
// input.
package compress
