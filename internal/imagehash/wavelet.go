package imagehash

import (
	"image"

	"github.com/pkg/errors"
)

const (
	// WaveletModeHaar is the only supported wavelet; the mode parameter exists
	// so that callers state their assumption explicitly.
	WaveletModeHaar = "haar"

	// DefaultWaveletScale is the working-grid multiplier of WaveletHash.
	DefaultWaveletScale = 4
)

// WaveletHash computes the Haar wavelet hash. The image is reduced to a
// (hashSize·scale)² grayscale grid and decomposed one Haar level at a time,
// halving the working size until it equals hashSize; the remaining
// low-frequency band is thresholded against its median. scale must be a power
// of two so the decomposition lands exactly on the hash grid. Produces
// hashSize² bits.
func WaveletHash(img image.Image, hashSize, scale int, mode string) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}
	if mode != WaveletModeHaar {
		return nil, errors.Wrapf(ErrUnsupportedMode, "%q", mode)
	}
	if scale < 1 || scale&(scale-1) != 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "wavelet scale must be a power of two, got %d", scale)
	}

	size := hashSize * scale
	m := grayMatrix(img, size, size)
	for cur := size; cur > hashSize; cur /= 2 {
		haarLevel(m, cur)
	}

	// After full decomposition the low-frequency band occupies the top-left
	// hashSize×hashSize region.
	vals := make([]float64, 0, hashSize*hashSize)
	for y := 0; y < hashSize; y++ {
		for x := 0; x < hashSize; x++ {
			vals = append(vals, m[y][x])
		}
	}
	med := median(vals)

	bits := make([]bool, len(vals))
	for i, v := range vals {
		bits[i] = v >= med
	}
	return New(bits)
}

// haarLevel applies one level of the 2D Haar decomposition in place over the
// top-left n×n working region: pairwise averages pack into the first half of
// each row, pairwise half-differences into the second half; rows first, then
// columns.
func haarLevel(m [][]float64, n int) {
	half := n / 2
	tmp := make([]float64, n)

	for y := 0; y < n; y++ {
		for x := 0; x < half; x++ {
			a, b := m[y][2*x], m[y][2*x+1]
			tmp[x] = (a + b) / 2
			tmp[half+x] = (a - b) / 2
		}
		copy(m[y][:n], tmp)
	}

	for x := 0; x < n; x++ {
		for y := 0; y < half; y++ {
			a, b := m[2*y][x], m[2*y+1][x]
			tmp[y] = (a + b) / 2
			tmp[half+y] = (a - b) / 2
		}
		for y := 0; y < n; y++ {
			m[y][x] = tmp[y]
		}
	}
}
