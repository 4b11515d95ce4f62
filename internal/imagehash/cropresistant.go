package imagehash

import (
	"image"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

const (
	// DefaultGridSize is the cell grid used by CropResistantHash.
	DefaultGridSize = 2

	// DefaultAnchorCount and DefaultWindowSize parametrize FeaturePointHash.
	DefaultAnchorCount = 4
	DefaultWindowSize  = 32
)

// CropResistantHash partitions the image into a gridSize×gridSize grid of
// equal cells (integer-divided; trailing remainder pixels are dropped) and
// concatenates the perceptual hash of every cell in row-major order. Because
// each cell is hashed independently, cropping that removes whole cells leaves
// the remaining cell hashes intact. Produces gridSize²·hashSize² bits.
func CropResistantHash(img image.Image, hashSize, gridSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}
	if gridSize < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "grid size must be at least 1, got %d", gridSize)
	}
	bounds := img.Bounds()
	if bounds.Dx() < gridSize || bounds.Dy() < gridSize {
		return nil, errors.Wrapf(ErrInvalidConfig,
			"image %dx%d is smaller than the %dx%d cell grid", bounds.Dx(), bounds.Dy(), gridSize, gridSize)
	}

	cellW := bounds.Dx() / gridSize
	cellH := bounds.Dy() / gridSize

	bits := make([]bool, 0, gridSize*gridSize*hashSize*hashSize)
	for gy := 0; gy < gridSize; gy++ {
		for gx := 0; gx < gridSize; gx++ {
			rect := image.Rect(
				bounds.Min.X+gx*cellW,
				bounds.Min.Y+gy*cellH,
				bounds.Min.X+(gx+1)*cellW,
				bounds.Min.Y+(gy+1)*cellH,
			)
			cell, err := PerceptionHash(imaging.Crop(img, rect), hashSize, DefaultFreqFactor)
			if err != nil {
				return nil, err
			}
			bits = append(bits, cell.bits...)
		}
	}
	return New(bits)
}

// FeaturePointHash is the best-effort feature-point variant of the
// crop-resistant hash. High-contrast windows are located with a simplified
// 3×3 Sobel gradient filter, ranked by summed response, and the top `anchors`
// windows are each perceptual-hashed and concatenated. The detector is a
// heuristic, not production-grade feature detection: the guarantee is a stable
// hash of anchors·hashSize² bits for identical input, not strong crop
// discrimination.
func FeaturePointHash(img image.Image, hashSize, anchors, windowSize int) (*ImageHash, error) {
	if hashSize < 2 {
		return nil, errors.Wrapf(ErrInvalidHashSize, "got %d", hashSize)
	}
	if anchors < 1 {
		return nil, errors.Wrapf(ErrInvalidConfig, "anchor count must be at least 1, got %d", anchors)
	}
	if windowSize < 4 {
		return nil, errors.Wrapf(ErrInvalidConfig, "window size must be at least 4, got %d", windowSize)
	}

	gray := imaging.Grayscale(img)
	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()
	if w < 3 || h < 3 {
		return nil, errors.Wrapf(ErrInvalidConfig, "image %dx%d is too small for edge filtering", w, h)
	}

	// Windows never extend past the image edge, so anchors need no further
	// clamping.
	if windowSize > w {
		windowSize = w
	}
	if windowSize > h {
		windowSize = h
	}

	energy := sobelMagnitude(gray, w, h)
	ranked := rankWindows(energy, w, h, windowSize)

	selected := make([]window, 0, anchors)
	for _, win := range ranked {
		if len(selected) == anchors {
			break
		}
		if !overlapsAny(win, selected, windowSize) {
			selected = append(selected, win)
		}
	}
	// Small images may not hold enough disjoint windows; fall back to the
	// next-best overlapping ones so the bit length stays stable.
	for i := 0; len(selected) < anchors; i++ {
		selected = append(selected, ranked[i%len(ranked)])
	}

	bits := make([]bool, 0, anchors*hashSize*hashSize)
	for _, win := range selected {
		rect := image.Rect(win.x, win.y, win.x+windowSize, win.y+windowSize)
		cell, err := PerceptionHash(imaging.Crop(gray, rect), hashSize, DefaultFreqFactor)
		if err != nil {
			return nil, err
		}
		bits = append(bits, cell.bits...)
	}
	return New(bits)
}

type window struct {
	x, y   int
	energy float64
}

// sobelMagnitude runs a 3×3 Sobel filter over the grayscale image and returns
// the gradient magnitude per pixel, row-major. Border pixels are left at zero.
func sobelMagnitude(gray *image.NRGBA, w, h int) []float64 {
	luma := func(x, y int) float64 {
		return float64(gray.NRGBAAt(x, y).R)
	}

	mag := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := luma(x+1, y-1) + 2*luma(x+1, y) + luma(x+1, y+1) -
				luma(x-1, y-1) - 2*luma(x-1, y) - luma(x-1, y+1)
			gy := luma(x-1, y+1) + 2*luma(x, y+1) + luma(x+1, y+1) -
				luma(x-1, y-1) - 2*luma(x, y-1) - luma(x+1, y-1)
			mag[y*w+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return mag
}

// rankWindows slides a windowSize square over the energy map at half-window
// stride and returns the candidate positions sorted by summed response,
// descending. The sort is stable so equal-energy windows keep scan order.
func rankWindows(energy []float64, w, h, windowSize int) []window {
	stride := windowSize / 2
	if stride < 1 {
		stride = 1
	}

	var candidates []window
	for y := 0; ; y += stride {
		if y+windowSize > h {
			y = h - windowSize
		}
		for x := 0; ; x += stride {
			if x+windowSize > w {
				x = w - windowSize
			}
			var sum float64
			for wy := y; wy < y+windowSize; wy++ {
				for wx := x; wx < x+windowSize; wx++ {
					sum += energy[wy*w+wx]
				}
			}
			candidates = append(candidates, window{x: x, y: y, energy: sum})
			if x == w-windowSize {
				break
			}
		}
		if y == h-windowSize {
			break
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].energy > candidates[j].energy
	})
	return candidates
}

func overlapsAny(win window, selected []window, windowSize int) bool {
	r := image.Rect(win.x, win.y, win.x+windowSize, win.y+windowSize)
	for _, s := range selected {
		if r.Overlaps(image.Rect(s.x, s.y, s.x+windowSize, s.y+windowSize)) {
			return true
		}
	}
	return false
}
