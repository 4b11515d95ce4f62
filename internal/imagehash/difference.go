package imagehash

import (
	"image"

	"github.com/pkg/errors"
)

// DifferenceHash computes the horizontal gradient hash: the image is reduced
// to a (hashSize+1)×hashSize grayscale grid and the bit for (x, y) records
// whether the pixel is darker than its right neighbour. Produces hashSize²
// bits.
func DifferenceHash(img image.Image, hashSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}

	w := hashSize + 1
	samples := graySamples(img, w, hashSize)

	bits := make([]bool, 0, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			bits = append(bits, samples[y*w+x] < samples[y*w+x+1])
		}
	}
	return New(bits)
}

// DifferenceHashVertical is the vertical variant of DifferenceHash: the image
// is reduced to hashSize×(hashSize+1) and the bit for (x, y) records whether
// the pixel is darker than the one below it. Produces hashSize² bits.
func DifferenceHashVertical(img image.Image, hashSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}

	samples := graySamples(img, hashSize, hashSize+1)

	bits := make([]bool, 0, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			bits = append(bits, samples[y*hashSize+x] < samples[(y+1)*hashSize+x])
		}
	}
	return New(bits)
}
