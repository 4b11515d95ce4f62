// Package imagehash implements perceptual image hashing: fixed-length binary
// fingerprints such that visually similar images produce hashes with a small
// Hamming distance. It provides average, difference, perceptual (DCT), wavelet
// (Haar), color and crop-resistant hash algorithms over a shared immutable
// ImageHash value type with a hex codec.
//
// All algorithms resample with the Lanczos filter so that hashes computed by
// different code paths stay reproducible.
package imagehash

import (
	"strings"

	"github.com/pkg/errors"
)

// Error definitions
var (
	ErrHashLengthMismatch = errors.New("hash lengths do not match")
	ErrInvalidHashSize    = errors.New("hash size must be at least 2")
	ErrInvalidConfig      = errors.New("invalid hash configuration")
	ErrUnsupportedMode    = errors.New("unsupported wavelet mode")
)

const hexDigits = "0123456789abcdef"

// ImageHash is an ordered bit vector of fixed length. It is immutable after
// construction and therefore safe to share between goroutines.
type ImageHash struct {
	bits []bool
}

// New creates an ImageHash from a bit vector. The bits are copied, so the
// caller may reuse the slice. An empty vector is rejected.
func New(bits []bool) (*ImageHash, error) {
	if len(bits) == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "hash must contain at least one bit")
	}
	b := make([]bool, len(bits))
	copy(b, bits)
	return &ImageHash{bits: b}, nil
}

// FromHex decodes a hex string into an ImageHash of exactly bitCount bits.
// The string must be ceil(bitCount/4) digits long; each digit holds four bits,
// most significant first. Pad bits in the final nibble are discarded.
func FromHex(s string, bitCount int) (*ImageHash, error) {
	if bitCount <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "bit count must be positive, got %d", bitCount)
	}
	want := (bitCount + 3) / 4
	if len(s) != want {
		return nil, errors.Wrapf(ErrHashLengthMismatch,
			"hex string %q holds %d bits, expected %d bits (%d digits)", s, len(s)*4, bitCount, want)
	}

	bits := make([]bool, 0, want*4)
	for i := 0; i < len(s); i++ {
		nibble := strings.IndexByte(hexDigits, lowerHex(s[i]))
		if nibble < 0 {
			return nil, errors.Wrapf(ErrInvalidConfig, "invalid hex digit %q at position %d", s[i], i)
		}
		for shift := 3; shift >= 0; shift-- {
			bits = append(bits, nibble>>uint(shift)&1 == 1)
		}
	}
	return &ImageHash{bits: bits[:bitCount]}, nil
}

func lowerHex(c byte) byte {
	if c >= 'A' && c <= 'F' {
		return c + ('a' - 'A')
	}
	return c
}

// BitCount returns the number of bits in the hash.
func (h *ImageHash) BitCount() int {
	return len(h.bits)
}

// Bit reports whether bit i is set.
func (h *ImageHash) Bit(i int) bool {
	return h.bits[i]
}

// Hex encodes the hash as a lowercase hex string of ceil(BitCount/4) digits,
// four bits per digit, most significant bit first. A partial final nibble is
// zero-padded on the right.
func (h *ImageHash) Hex() string {
	var sb strings.Builder
	sb.Grow((len(h.bits) + 3) / 4)
	for i := 0; i < len(h.bits); i += 4 {
		var nibble byte
		for j := 0; j < 4; j++ {
			nibble <<= 1
			if i+j < len(h.bits) && h.bits[i+j] {
				nibble |= 1
			}
		}
		sb.WriteByte(hexDigits[nibble])
	}
	return sb.String()
}

// Distance returns the Hamming distance between two hashes. Hashes of unequal
// length cannot be compared and yield ErrHashLengthMismatch.
func (h *ImageHash) Distance(other *ImageHash) (int, error) {
	if len(h.bits) != len(other.bits) {
		return 0, errors.Wrapf(ErrHashLengthMismatch, "%d vs %d", len(h.bits), len(other.bits))
	}
	distance := 0
	for i := range h.bits {
		if h.bits[i] != other.bits[i] {
			distance++
		}
	}
	return distance, nil
}

// Equal reports whether two hashes have the same length and identical bits.
// Unlike Distance it is total: hashes of different lengths are simply unequal.
func (h *ImageHash) Equal(other *ImageHash) bool {
	if len(h.bits) != len(other.bits) {
		return false
	}
	d, _ := h.Distance(other)
	return d == 0
}

// Similarity expresses the closeness of two equal-length hashes as a
// percentage, 100 meaning identical.
func Similarity(a, b *ImageHash) (float64, error) {
	dist, err := a.Distance(b)
	if err != nil {
		return 0, err
	}
	return 100.0 - float64(dist)/float64(a.BitCount())*100.0, nil
}
