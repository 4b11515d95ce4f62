package imagehash

import (
	"image"

	"github.com/disintegration/imaging"
)

// graySamples resizes the image to w×h with the Lanczos filter, converts it to
// grayscale and returns the luma of every pixel in row-major order (y outer,
// x inner), each value in [0,255].
func graySamples(img image.Image, w, h int) []float64 {
	gray := imaging.Grayscale(imaging.Resize(img, w, h, imaging.Lanczos))
	samples := make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Grayscale output has R == G == B.
			samples = append(samples, float64(gray.NRGBAAt(x, y).R))
		}
	}
	return samples
}

// grayMatrix is graySamples reshaped into rows, for the 2D transforms.
func grayMatrix(img image.Image, w, h int) [][]float64 {
	samples := graySamples(img, w, h)
	m := make([][]float64, h)
	for y := 0; y < h; y++ {
		m[y] = samples[y*w : (y+1)*w]
	}
	return m
}

// rgbSamples resizes the image to w×h without grayscale conversion and returns
// the red, green and blue channels as three separate row-major sequences.
func rgbSamples(img image.Image, w, h int) (r, g, b []float64) {
	resized := imaging.Resize(img, w, h, imaging.Lanczos)
	r = make([]float64, 0, w*h)
	g = make([]float64, 0, w*h)
	b = make([]float64, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := resized.NRGBAAt(x, y)
			r = append(r, float64(c.R))
			g = append(g, float64(c.G))
			b = append(b, float64(c.B))
		}
	}
	return r, g, b
}
