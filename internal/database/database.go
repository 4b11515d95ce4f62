// Package database provides an in-memory index of reference images keyed by
// their perceptual hash, with parallel directory loading and best-match
// lookup.
package database

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"pixhash/internal/imagehash"
)

const (
	// MatchHashSize is the grid used for the index hash; 8×8 perceptual
	// hashes give 64 bits, enough to rank matches.
	MatchHashSize = 8

	thumbnailWidth = 100
	loadWorkers    = 4
)

// SupportedImageFormats is a map of supported image file extensions.
var SupportedImageFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile checks if the file extension is a supported image format.
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedImageFormats[ext]
}

// ImageInfo represents metadata about an image in the database.
type ImageInfo struct {
	Filename  string    `json:"filename"`
	Hash      string    `json:"hash"`
	BitCount  int       `json:"bit_count"`
	AddedAt   time.Time `json:"added_at"`
	Thumbnail string    `json:"thumbnail,omitempty"`
}

// MatchResult is the outcome of a FindMatch lookup.
type MatchResult struct {
	Matched    bool
	Filename   string
	Similarity float64
}

// ImageDatabase manages a collection of images and their perceptual hashes.
type ImageDatabase struct {
	images  map[string]ImageInfo            // keyed by hex hash
	decoded map[string]*imagehash.ImageHash // same keys, pre-decoded
	mutex   sync.RWMutex
	matches *cache.Cache // recent FindMatch results keyed by upload hash
}

// NewImageDatabase creates a new image database.
func NewImageDatabase() *ImageDatabase {
	return &ImageDatabase{
		images:  make(map[string]ImageInfo),
		decoded: make(map[string]*imagehash.ImageHash),
		matches: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// LoadImages loads all images from the specified directory into the database.
func (db *ImageDatabase) LoadImages(imageDir string) error {
	if _, err := os.Stat(imageDir); os.IsNotExist(err) {
		return fmt.Errorf("images directory does not exist: %s", imageDir)
	}

	files, err := os.ReadDir(imageDir)
	if err != nil {
		return fmt.Errorf("could not read directory: %s", err)
	}

	// Process files in parallel with a limit on concurrent operations
	var wg sync.WaitGroup
	threadLimit := make(chan struct{}, loadWorkers)

	for _, file := range files {
		if file.IsDir() || !IsImageFile(file.Name()) {
			continue
		}

		wg.Add(1)
		threadLimit <- struct{}{}

		go func(fileName string) {
			defer wg.Done()
			defer func() { <-threadLimit }()

			path := filepath.Join(imageDir, fileName)
			img, err := imaging.Open(path)
			if err != nil {
				log.Printf("Could not open file %s: %v", path, err)
				return
			}

			if _, err := db.AddImage(img, fileName); err != nil {
				log.Printf("Could not index %s: %v", path, err)
				return
			}
			log.Printf("Loaded image: %s", fileName)
		}(file.Name())
	}

	wg.Wait()
	log.Printf("Loaded %d images into the database", db.Count())
	return nil
}

// AddImage adds a new image to the database. The returned string is the hex
// form of its perceptual hash.
func (db *ImageDatabase) AddImage(img image.Image, filename string) (string, error) {
	hash, err := imagehash.PerceptionHash(img, MatchHashSize, imagehash.DefaultFreqFactor)
	if err != nil {
		return "", errors.Wrap(err, "could not hash image")
	}
	hex := hash.Hex()
	thumbnail := GenerateThumbnail(img)

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if existing, ok := db.images[hex]; ok {
		return "", errors.New("image already exists in database as: " + existing.Filename)
	}

	db.images[hex] = ImageInfo{
		Filename:  filename,
		Hash:      hex,
		BitCount:  hash.BitCount(),
		AddedAt:   time.Now(),
		Thumbnail: thumbnail,
	}
	db.decoded[hex] = hash

	// Cached match results may point at a now-suboptimal entry.
	db.matches.Flush()

	return hex, nil
}

// FindMatch searches for the reference image closest to img and reports
// whether its similarity reaches the threshold (a percentage). Repeated
// lookups of an identical upload are served from the match cache.
func (db *ImageDatabase) FindMatch(img image.Image, similarityThreshold float64) MatchResult {
	uploaded, err := imagehash.PerceptionHash(img, MatchHashSize, imagehash.DefaultFreqFactor)
	if err != nil {
		log.Printf("Could not hash uploaded image: %v", err)
		return MatchResult{}
	}

	best := db.bestMatch(uploaded)
	best.Matched = best.Similarity >= similarityThreshold

	log.Printf("Best match: %s, similarity: %.2f%%, threshold: %.2f%%",
		best.Filename, best.Similarity, similarityThreshold)
	return best
}

func (db *ImageDatabase) bestMatch(uploaded *imagehash.ImageHash) MatchResult {
	key := uploaded.Hex()
	if cached, ok := db.matches.Get(key); ok {
		return cached.(MatchResult)
	}

	db.mutex.RLock()
	defer db.mutex.RUnlock()

	var best MatchResult
	for hex, hash := range db.decoded {
		similarity, err := imagehash.Similarity(uploaded, hash)
		if err != nil {
			continue
		}
		if similarity > best.Similarity {
			best.Similarity = similarity
			best.Filename = db.images[hex].Filename
		}
	}

	db.matches.Set(key, best, cache.DefaultExpiration)
	return best
}

// ListImages returns a list of all images in the database.
func (db *ImageDatabase) ListImages() []ImageInfo {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	images := make([]ImageInfo, 0, len(db.images))
	for _, info := range db.images {
		images = append(images, ImageInfo{
			Filename: info.Filename,
			Hash:     info.Hash,
			BitCount: info.BitCount,
			AddedAt:  info.AddedAt,
		})
	}
	return images
}

// Count returns the number of indexed images.
func (db *ImageDatabase) Count() int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return len(db.images)
}

// GenerateThumbnail creates a base64 encoded JPEG thumbnail. Thumbnails are a
// presentation detail, so they use a separate resampler from the hash path.
func GenerateThumbnail(img image.Image) string {
	thumbnail := resize.Resize(thumbnailWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}
