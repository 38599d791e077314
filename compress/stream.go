package compress

import (
	"bytes"
	"io"

	"github.com/arloliu/eprcalc/internal/pool"
)

// readAllLimited drains r, failing with ErrTooLarge past MaxDecompressedSize.
func readAllLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return out, nil
}

// writeAll runs data through the writer produced by wrap and returns a copy of the
// framed bytes.
func writeAll(data []byte, wrap func(io.Writer) io.WriteCloser) ([]byte, error) {
	bb := pool.GetFileBuffer()
	defer pool.PutFileBuffer(bb)

	w := wrap(bb)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return bytes.Clone(bb.Bytes()), nil
}
