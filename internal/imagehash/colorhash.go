package imagehash

import (
	"image"

	"github.com/pkg/errors"
)

// ColorHash computes a per-channel median hash. The image is resized to
// hashSize×hashSize without grayscale conversion; each of the R, G and B
// channels is thresholded against its own median and the three bit blocks are
// concatenated in R, G, B order. Produces 3·hashSize² bits.
func ColorHash(img image.Image, hashSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}

	r, g, b := rgbSamples(img, hashSize, hashSize)

	bits := make([]bool, 0, 3*hashSize*hashSize)
	for _, channel := range [][]float64{r, g, b} {
		med := median(channel)
		for _, v := range channel {
			bits = append(bits, v >= med)
		}
	}
	return New(bits)
}
