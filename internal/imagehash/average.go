package imagehash

import (
	"image"

	"github.com/pkg/errors"
)

// DefaultHashSize is the side length of the bit grid used when a caller has no
// reason to pick another. An 8×8 grid gives a 64-bit hash.
const DefaultHashSize = 8

// AverageHash computes the average hash: the image is reduced to a
// hashSize×hashSize grayscale grid and each bit records whether the pixel is
// at or above the mean intensity. Produces hashSize² bits.
func AverageHash(img image.Image, hashSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}

	samples := graySamples(img, hashSize, hashSize)
	avg := mean(samples)

	bits := make([]bool, len(samples))
	for i, v := range samples {
		bits[i] = v >= avg
	}
	return New(bits)
}
