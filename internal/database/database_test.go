package database

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func TestAddAndFindMatch(t *testing.T) {
	db := NewImageDatabase()

	hash, err := db.AddImage(patternImage(0), "pattern.png")
	assert.NoError(t, err)
	assert.Len(t, hash, 16) // 64 bits = 16 hex digits

	t.Run("ExactUploadMatches", func(t *testing.T) {
		result := db.FindMatch(patternImage(0), 85.0)
		assert.True(t, result.Matched)
		assert.Equal(t, "pattern.png", result.Filename)
		assert.InDelta(t, 100.0, result.Similarity, 1e-9)
	})

	t.Run("CachedLookupIsStable", func(t *testing.T) {
		first := db.FindMatch(patternImage(0), 85.0)
		second := db.FindMatch(patternImage(0), 85.0)
		assert.Equal(t, first, second)
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		_, err := db.AddImage(patternImage(0), "copy.png")
		assert.ErrorContains(t, err, "already exists")
	})

	t.Run("UnrelatedImageBelowThreshold", func(t *testing.T) {
		result := db.FindMatch(patternImage(3), 99.0)
		assert.False(t, result.Matched)
	})
}

func TestListImages(t *testing.T) {
	db := NewImageDatabase()
	_, err := db.AddImage(patternImage(0), "a.png")
	assert.NoError(t, err)
	_, err = db.AddImage(patternImage(3), "b.png")
	assert.NoError(t, err)

	images := db.ListImages()
	assert.Len(t, images, 2)
	assert.Equal(t, 2, db.Count())
	for _, info := range images {
		assert.NotEmpty(t, info.Filename)
		assert.Len(t, info.Hash, 16)
		assert.Equal(t, 64, info.BitCount)
		assert.Empty(t, info.Thumbnail, "thumbnails are not exposed in listings")
	}
}

func TestLoadImages(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, imaging.Save(patternImage(0), filepath.Join(dir, "one.png")))
	assert.NoError(t, imaging.Save(patternImage(3), filepath.Join(dir, "two.png")))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0644))

	db := NewImageDatabase()
	assert.NoError(t, db.LoadImages(dir))
	assert.Equal(t, 2, db.Count())
}

func TestLoadImagesMissingDir(t *testing.T) {
	db := NewImageDatabase()
	assert.Error(t, db.LoadImages("./does-not-exist"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("photo.jpg"))
	assert.True(t, IsImageFile("PHOTO.PNG"))
	assert.False(t, IsImageFile("document.pdf"))
}

func TestGenerateThumbnail(t *testing.T) {
	assert.NotEmpty(t, GenerateThumbnail(patternImage(0)))
}

// patternImage builds a deterministic pseudo-random image; different seeds
// give structurally unrelated pictures.
func patternImage(seed uint32) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	state := seed*2654435761 + 1
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			state = state*1664525 + 1013904223
			v := uint8(state >> 24)
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}
