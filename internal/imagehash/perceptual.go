package imagehash

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

// DefaultFreqFactor is the frequency oversampling factor of PerceptionHash:
// the DCT runs on a grid freqFactor times larger than the hash grid so that
// the retained block holds only the lowest spatial frequencies.
const DefaultFreqFactor = 4

// PerceptionHash computes the DCT-based perceptual hash. The image is reduced
// to a (hashSize·freqFactor)² grayscale grid, transformed with a type-II 2D
// DCT, and the top-left hashSize×hashSize block of coefficients (the coarse
// image structure) is thresholded against its median. The DC coefficient is
// excluded from the median and its bit pinned to zero so that overall
// brightness does not dominate the hash. Produces hashSize² bits.
func PerceptionHash(img image.Image, hashSize, freqFactor int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}
	if freqFactor < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "frequency factor must be at least 1, got %d", freqFactor)
	}

	size := hashSize * freqFactor
	coeffs := dct2(grayMatrix(img, size, size))

	block := make([]float64, 0, hashSize*hashSize-1)
	for v := 0; v < hashSize; v++ {
		for u := 0; u < hashSize; u++ {
			if u == 0 && v == 0 {
				continue
			}
			block = append(block, coeffs[v][u])
		}
	}
	med := median(block)

	bits := make([]bool, hashSize*hashSize)
	for v := 0; v < hashSize; v++ {
		for u := 0; u < hashSize; u++ {
			if u == 0 && v == 0 {
				continue
			}
			bits[v*hashSize+u] = coeffs[v][u] > med
		}
	}
	return New(bits)
}

// dct2 applies the separable type-II 2D DCT to a square matrix:
// D[v][u] = α(u)·α(v)/4 · ΣxΣy m[y][x]·cos((2x+1)uπ/2n)·cos((2y+1)vπ/2n).
// The input is not modified. Direct summation is fine at hash grid sizes.
func dct2(m [][]float64) [][]float64 {
	n := len(m)

	rows := make([][]float64, n)
	for y := 0; y < n; y++ {
		rows[y] = dct1(m[y])
	}

	out := make([][]float64, n)
	col := make([]float64, n)
	for y := range out {
		out[y] = make([]float64, n)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y][x]
		}
		transformed := dct1(col)
		for y := 0; y < n; y++ {
			out[y][x] = transformed[y] / 4
		}
	}
	return out
}

// dct1 is the 1D type-II DCT with α(0)=1/√2, α(u>0)=1.
func dct1(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	for u := 0; u < n; u++ {
		var sum float64
		for x := 0; x < n; x++ {
			sum += in[x] * math.Cos(float64(2*x+1)*float64(u)*math.Pi/float64(2*n))
		}
		if u == 0 {
			sum /= math.Sqrt2
		}
		out[u] = sum
	}
	return out
}
