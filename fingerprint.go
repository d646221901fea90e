package flare

import (
	"encoding/binary"
	"fmt"
	"hash"
	"hash/fnv"
	"math"
)

// Fingerprint is a 128-bit digest of a task's inputs, used as the
// memoization cache key. Two fingerprints are equal if and only if every
// input field that feeds a task's output hashed to the same bits — floats
// are fed by their raw IEEE-754 bit pattern, never a decimal rendering, so
// that two inputs differing only in the last bit of a mantissa are treated
// as distinct (per the cache's bit-exact comparison requirement).
type Fingerprint struct {
	Hi, Lo uint64
}

// String renders the fingerprint as a fixed-width hex string, suitable as a
// singleflight key or log field.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f.Hi, f.Lo)
}

// IsZero reports whether the fingerprint is the zero value, which
// FingerprintBuilder never produces (FNV-1a's offset basis is non-zero) and
// which callers can therefore use as an "unset" sentinel.
func (f Fingerprint) IsZero() bool {
	return f.Hi == 0 && f.Lo == 0
}

// FingerprintBuilder accumulates a canonical byte encoding of a task's
// inputs and folds it into a Fingerprint on Sum. It wraps a single FNV-1a
// 128 hash; Sum splits its 16-byte digest into Hi (first 8 bytes) and Lo
// (last 8 bytes).
type FingerprintBuilder struct {
	h hash.Hash
}

// NewFingerprintBuilder returns a builder ready to accumulate input bytes.
func NewFingerprintBuilder() *FingerprintBuilder {
	return &FingerprintBuilder{h: fnv.New128a()}
}

// WriteString feeds a string field into the fingerprint.
func (b *FingerprintBuilder) WriteString(s string) *FingerprintBuilder {
	_, _ = b.h.Write([]byte(s))
	b.h.Write([]byte{0}) // delimiter so "ab","c" != "a","bc"
	return b
}

// WriteFloat64 feeds a float64 field by its raw IEEE-754 bits.
func (b *FingerprintBuilder) WriteFloat64(v float64) *FingerprintBuilder {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
	b.h.Write(buf[:])
	return b
}

// WriteFloat64Slice feeds a slice of float64 fields in order.
func (b *FingerprintBuilder) WriteFloat64Slice(vs []float64) *FingerprintBuilder {
	for _, v := range vs {
		b.WriteFloat64(v)
	}
	return b
}

// WriteInt64 feeds an integer field.
func (b *FingerprintBuilder) WriteInt64(v int64) *FingerprintBuilder {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.h.Write(buf[:])
	return b
}

// WriteBool feeds a boolean field.
func (b *FingerprintBuilder) WriteBool(v bool) *FingerprintBuilder {
	if v {
		b.h.Write([]byte{1})
	} else {
		b.h.Write([]byte{0})
	}
	return b
}

// WriteBytes feeds a raw byte field, such as a decoded image's pixel buffer.
func (b *FingerprintBuilder) WriteBytes(p []byte) *FingerprintBuilder {
	b.h.Write(p)
	return b
}

// Sum finalizes the accumulated input stream into a Fingerprint.
func (b *FingerprintBuilder) Sum() Fingerprint {
	sum := b.h.Sum(nil) // 16 bytes
	return Fingerprint{
		Hi: binary.BigEndian.Uint64(sum[0:8]),
		Lo: binary.BigEndian.Uint64(sum[8:16]),
	}
}
