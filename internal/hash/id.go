// Package hash computes stable 64-bit fingerprints with xxHash64.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint accumulates float, bool and string fields into one xxHash64 digest.
//
// Floats are hashed by their IEEE-754 bit pattern, so -0 and +0 differ and every
// NaN payload hashes as written.
type Fingerprint struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewFingerprint returns an empty fingerprint.
func NewFingerprint() *Fingerprint {
	return &Fingerprint{d: xxhash.New()}
}

// Float adds v.
func (f *Fingerprint) Float(v float64) *Fingerprint {
	binary.LittleEndian.PutUint64(f.buf[:], math.Float64bits(v))
	_, _ = f.d.Write(f.buf[:])

	return f
}

// Bool adds b as a single byte.
func (f *Fingerprint) Bool(b bool) *Fingerprint {
	var v byte
	if b {
		v = 1
	}
	f.buf[0] = v
	_, _ = f.d.Write(f.buf[:1])

	return f
}

// String adds s prefixed with its length so adjacent strings cannot alias.
func (f *Fingerprint) String(s string) *Fingerprint {
	binary.LittleEndian.PutUint64(f.buf[:], uint64(len(s)))
	_, _ = f.d.Write(f.buf[:])
	_, _ = f.d.WriteString(s)

	return f
}

// Sum64 returns the digest of everything added so far.
func (f *Fingerprint) Sum64() uint64 {
	return f.d.Sum64()
}
