package handler

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"

	"pixhash/internal/database"
	"pixhash/internal/imagehash"
)

const maxUploadBytes = 10 << 20

// Handler carries the dependencies of the HTTP endpoints.
type Handler struct {
	DB *database.ImageDatabase
}

// HashResponse is returned by the /hash endpoint.
type HashResponse struct {
	Algorithm        string `json:"algorithm"`
	Hash             string `json:"hash"`
	BitCount         int    `json:"bit_count"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// CompareResponse is returned by the /compare endpoint.
type CompareResponse struct {
	Distance   int     `json:"distance"`
	Similarity float64 `json:"similarity"`
	BitCount   int     `json:"bit_count"`
}

// RecognizeResponse is returned by the /recognize endpoint.
type RecognizeResponse struct {
	Result           string  `json:"result"`
	Similarity       float64 `json:"similarity"`
	MatchedImage     string  `json:"matched_image,omitempty"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
}

// @Summary Hash image
// @Description Compute a perceptual hash of the uploaded image
// @Tags Hashing
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to hash"
// @Param algorithm formData string false "average | difference | difference-vertical | perception | wavelet | color | crop-resistant | feature-point (default perception)"
// @Param hash_size formData int false "Hash grid side length (default 8)"
// @Success 200 {object} HashResponse
// @Failure 400 {object} map[string]string
// @Router /hash [post]
func (h *Handler) HashHandler(c *gin.Context) {
	startTime := time.Now()

	img, ok := h.uploadedImage(c)
	if !ok {
		return
	}

	algorithm := c.DefaultPostForm("algorithm", "perception")
	hashSize := imagehash.DefaultHashSize
	if sizeStr := c.PostForm("hash_size"); sizeStr != "" {
		parsed, err := strconv.Atoi(sizeStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hash_size must be an integer"})
			return
		}
		hashSize = parsed
	}

	hash, err := computeHash(img, algorithm, hashSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, HashResponse{
		Algorithm:        algorithm,
		Hash:             hash.Hex(),
		BitCount:         hash.BitCount(),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

func computeHash(img image.Image, algorithm string, hashSize int) (*imagehash.ImageHash, error) {
	switch algorithm {
	case "average":
		return imagehash.AverageHash(img, hashSize)
	case "difference":
		return imagehash.DifferenceHash(img, hashSize)
	case "difference-vertical":
		return imagehash.DifferenceHashVertical(img, hashSize)
	case "perception":
		return imagehash.PerceptionHash(img, hashSize, imagehash.DefaultFreqFactor)
	case "wavelet":
		return imagehash.WaveletHash(img, hashSize, imagehash.DefaultWaveletScale, imagehash.WaveletModeHaar)
	case "color":
		return imagehash.ColorHash(img, hashSize)
	case "crop-resistant":
		return imagehash.CropResistantHash(img, hashSize, imagehash.DefaultGridSize)
	case "feature-point":
		return imagehash.FeaturePointHash(img, hashSize, imagehash.DefaultAnchorCount, imagehash.DefaultWindowSize)
	default:
		return nil, fmt.Errorf("unknown algorithm: %q", algorithm)
	}
}

// @Summary Compare hashes
// @Description Hamming distance between two hex-encoded hashes of equal bit length
// @Tags Hashing
// @Accept multipart/form-data
// @Produce json
// @Param hash_a formData string true "First hex hash"
// @Param hash_b formData string true "Second hex hash"
// @Param bits formData int true "Bit length of both hashes"
// @Success 200 {object} CompareResponse
// @Failure 400 {object} map[string]string
// @Router /compare [post]
func (h *Handler) CompareHandler(c *gin.Context) {
	bits, err := strconv.Atoi(c.PostForm("bits"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bits must be an integer"})
		return
	}

	a, err := imagehash.FromHex(c.PostForm("hash_a"), bits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := imagehash.FromHex(c.PostForm("hash_b"), bits)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distance, err := a.Distance(b)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	similarity, _ := imagehash.Similarity(a, b)

	c.JSON(http.StatusOK, CompareResponse{
		Distance:   distance,
		Similarity: similarity,
		BitCount:   bits,
	})
}

// @Summary Recognize image
// @Description Compare uploaded image against the reference database
// @Tags Image Recognition
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image to check"
// @Param threshold formData number false "Similarity threshold (0-100, default 85)"
// @Success 200 {object} RecognizeResponse
// @Failure 400 {object} map[string]string
// @Router /recognize [post]
func (h *Handler) RecognizeHandler(c *gin.Context) {
	startTime := time.Now()

	img, ok := h.uploadedImage(c)
	if !ok {
		return
	}

	var similarityThreshold float64 = 85.0
	if thresholdStr := c.DefaultPostForm("threshold", ""); thresholdStr != "" {
		parsed, err := strconv.ParseFloat(thresholdStr, 64)
		if err == nil && parsed >= 0 && parsed <= 100 {
			similarityThreshold = parsed
		}
	}

	match := h.DB.FindMatch(img, similarityThreshold)

	response := RecognizeResponse{
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		Similarity:       match.Similarity,
	}
	if match.Matched {
		response.Result = "OK"
		response.MatchedImage = match.Filename
	} else {
		response.Result = "NOT OK"
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Add new image
// @Description Add reference image to the database
// @Tags Image Database Management
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file to upload"
// @Param name formData string false "Custom image name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /admin/add [post]
func (h *Handler) AddImageHandler(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file found"})
		return
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}
	if !database.IsImageFile(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file format. Please upload a valid image."})
		return
	}

	filename := header.Filename
	if customName := c.PostForm("name"); customName != "" {
		filename = customName
	}

	img, ok := decodeUpload(c, file)
	if !ok {
		return
	}

	hash, err := h.DB.AddImage(img, filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Image added successfully",
		"filename": filename,
		"hash":     hash,
	})
}

// @Summary List images
// @Description List all reference images in the database
// @Tags Image Database Management
// @Produce json
// @Success 200 {array} database.ImageInfo
// @Router /admin/list [get]
func (h *Handler) ListImagesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.DB.ListImages())
}

// @Summary Hello
// @Description hello
// @Tags Image Database Management
// @Success 200 {object} string
// @Router /admin/hello [get]
func (h *Handler) Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Hello, world",
	})
}

// uploadedImage pulls the "image" form file, enforces the size cap and
// decodes it. On failure it writes the error response itself.
func (h *Handler) uploadedImage(c *gin.Context) (image.Image, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file found"})
		return nil, false
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return nil, false
	}

	return decodeUpload(c, file)
}

func decodeUpload(c *gin.Context, file io.Reader) (image.Image, bool) {
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not read file"})
		return nil, false
	}

	img, err := imaging.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format"})
		return nil, false
	}
	return img, true
}
