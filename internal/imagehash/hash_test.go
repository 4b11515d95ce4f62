package imagehash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashHexCodec(t *testing.T) {
	t.Run("KnownVector", func(t *testing.T) {
		bits := []bool{
			true, false, true, false,
			true, true, false, false,
			false, true, false, true,
			false, false, true, true,
		}
		h, err := New(bits)
		assert.NoError(t, err)
		assert.Equal(t, "ac53", h.Hex())

		decoded, err := FromHex("ac53", 16)
		assert.NoError(t, err)
		assert.True(t, h.Equal(decoded))
		for i, b := range bits {
			assert.Equal(t, b, decoded.Bit(i), "bit %d", i)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		vectors := [][]bool{
			{true, true},
			{false, false, false, true, true},
			{true, false, false, false, false, false, false, false, true},
		}
		for _, bits := range vectors {
			h, err := New(bits)
			assert.NoError(t, err)
			decoded, err := FromHex(h.Hex(), h.BitCount())
			assert.NoError(t, err)
			assert.True(t, h.Equal(decoded), "round trip of %q", h.Hex())
		}
	})

	t.Run("PartialNibblePadding", func(t *testing.T) {
		// Five bits pack into two digits; the last three bits of the second
		// nibble are zero padding.
		h, err := New([]bool{true, true, true, true, true})
		assert.NoError(t, err)
		assert.Equal(t, "f8", h.Hex())
	})

	t.Run("UppercaseAccepted", func(t *testing.T) {
		lower, err := FromHex("ac53", 16)
		assert.NoError(t, err)
		upper, err := FromHex("AC53", 16)
		assert.NoError(t, err)
		assert.True(t, lower.Equal(upper))
	})

	t.Run("RejectsLengthMismatch", func(t *testing.T) {
		_, err := FromHex("ac53", 20)
		assert.ErrorIs(t, err, ErrHashLengthMismatch)

		_, err = FromHex("ac5", 16)
		assert.ErrorIs(t, err, ErrHashLengthMismatch)
	})

	t.Run("RejectsInvalidDigit", func(t *testing.T) {
		_, err := FromHex("zc53", 16)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("RejectsEmptyVector", func(t *testing.T) {
		_, err := New(nil)
		assert.Error(t, err)
	})
}

func TestHashImmutability(t *testing.T) {
	bits := []bool{true, false, true, false}
	h, err := New(bits)
	assert.NoError(t, err)

	bits[0] = false
	assert.True(t, h.Bit(0), "constructor must copy the caller's slice")
}

func TestHashDistance(t *testing.T) {
	mustHash := func(bits ...bool) *ImageHash {
		h, err := New(bits)
		assert.NoError(t, err)
		return h
	}

	a := mustHash(true, false, true, false)
	b := mustHash(true, true, false, false)
	c := mustHash(false, false, false, true)

	t.Run("Identity", func(t *testing.T) {
		d, err := a.Distance(a)
		assert.NoError(t, err)
		assert.Equal(t, 0, d)
	})

	t.Run("Symmetry", func(t *testing.T) {
		ab, err := a.Distance(b)
		assert.NoError(t, err)
		ba, err := b.Distance(a)
		assert.NoError(t, err)
		assert.Equal(t, ab, ba)
	})

	t.Run("TriangleInequality", func(t *testing.T) {
		ab, _ := a.Distance(b)
		ac, _ := a.Distance(c)
		cb, _ := c.Distance(b)
		assert.LessOrEqual(t, ab, ac+cb)
	})

	t.Run("LengthMismatchFails", func(t *testing.T) {
		short := mustHash(true, false)
		_, err := a.Distance(short)
		assert.ErrorIs(t, err, ErrHashLengthMismatch)
	})

	t.Run("EqualityConsistency", func(t *testing.T) {
		same := mustHash(true, false, true, false)
		d, err := a.Distance(same)
		assert.NoError(t, err)
		assert.Equal(t, 0, d)
		assert.True(t, a.Equal(same))

		d, err = a.Distance(b)
		assert.NoError(t, err)
		assert.NotZero(t, d)
		assert.False(t, a.Equal(b))
	})

	t.Run("EqualityIsTotalAcrossLengths", func(t *testing.T) {
		short := mustHash(true, false)
		assert.False(t, a.Equal(short))
	})

	t.Run("Similarity", func(t *testing.T) {
		s, err := Similarity(a, b)
		assert.NoError(t, err)
		assert.InDelta(t, 50.0, s, 1e-9)

		_, err = Similarity(a, mustHash(true))
		assert.ErrorIs(t, err, ErrHashLengthMismatch)
	})
}

func TestStatisticsPanicOnEmptyInput(t *testing.T) {
	assert.Panics(t, func() { mean(nil) })
	assert.Panics(t, func() { median(nil) })
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 3.0, median([]float64{5, 1, 3}))
	assert.Equal(t, 2.5, median([]float64{4, 1, 2, 3}))
}
