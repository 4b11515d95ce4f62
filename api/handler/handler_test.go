package handler_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pixhash/api/handler"
	"pixhash/internal/database"
)

func newHandler() *handler.Handler {
	return &handler.Handler{DB: database.NewImageDatabase()}
}

func TestHashHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("DefaultAlgorithm", func(t *testing.T) {
		h := newHandler()
		resp := postImage(t, h.HashHandler, createTestImage(), nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var body handler.HashResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "perception", body.Algorithm)
		assert.Equal(t, 64, body.BitCount)
		assert.Len(t, body.Hash, 16)
	})

	t.Run("ColorAlgorithm", func(t *testing.T) {
		h := newHandler()
		resp := postImage(t, h.HashHandler, createTestImage(), map[string]string{"algorithm": "color"})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body handler.HashResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 192, body.BitCount)
	})

	t.Run("RejectsBadHashSize", func(t *testing.T) {
		h := newHandler()
		resp := postImage(t, h.HashHandler, createTestImage(), map[string]string{"hash_size": "1"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("RejectsUnknownAlgorithm", func(t *testing.T) {
		h := newHandler()
		resp := postImage(t, h.HashHandler, createTestImage(), map[string]string{"algorithm": "md5"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("RejectsNonImagePayload", func(t *testing.T) {
		h := newHandler()

		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("image", "fake.png")
		part.Write([]byte("not an image"))
		writer.Close()

		resp := doRequest(h.HashHandler, body, writer.FormDataContentType())
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "Invalid image format")
	})
}

func TestCompareHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	post := func(fields map[string]string) *httptest.ResponseRecorder {
		h := newHandler()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range fields {
			writer.WriteField(k, v)
		}
		writer.Close()
		return doRequest(h.CompareHandler, body, writer.FormDataContentType())
	}

	t.Run("IdenticalHashes", func(t *testing.T) {
		resp := post(map[string]string{"hash_a": "ac53", "hash_b": "ac53", "bits": "16"})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body handler.CompareResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 0, body.Distance)
		assert.InDelta(t, 100.0, body.Similarity, 1e-9)
	})

	t.Run("DifferentHashes", func(t *testing.T) {
		resp := post(map[string]string{"hash_a": "ac53", "hash_b": "ac52", "bits": "16"})
		assert.Equal(t, http.StatusOK, resp.Code)

		var body handler.CompareResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Distance)
	})

	t.Run("LengthMismatchRejected", func(t *testing.T) {
		resp := post(map[string]string{"hash_a": "ac5", "hash_b": "ac53", "bits": "16"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("MissingBitsRejected", func(t *testing.T) {
		resp := post(map[string]string{"hash_a": "ac53", "hash_b": "ac53"})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestAddAndRecognize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newHandler()

	resp := postImage(t, h.AddImageHandler, createTestImage(), map[string]string{"name": "reference.png"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Image added successfully")

	t.Run("DuplicateRejected", func(t *testing.T) {
		resp := postImage(t, h.AddImageHandler, createTestImage(), nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "already exists")
	})

	t.Run("RecognizeSameImage", func(t *testing.T) {
		resp := postImage(t, h.RecognizeHandler, createTestImage(), nil)
		assert.Equal(t, http.StatusOK, resp.Code)

		var body handler.RecognizeResponse
		assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
		assert.Equal(t, "OK", body.Result)
		assert.Equal(t, "reference.png", body.MatchedImage)
	})

	t.Run("ListContainsReference", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(recorder)
		ctx.Request = httptest.NewRequest("GET", "/admin/list", nil)
		h.ListImagesHandler(ctx)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "reference.png")
	})
}

// Helpers

func postImage(t *testing.T, handle gin.HandlerFunc, img image.Image, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "test.png")
	assert.NoError(t, err)
	assert.NoError(t, imaging.Encode(part, img, imaging.PNG))
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()

	return doRequest(handle, body, writer.FormDataContentType())
}

func doRequest(handle gin.HandlerFunc, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", contentType)

	recorder := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(recorder)
	ctx.Request = req
	handle(ctx)
	return recorder
}

func createTestImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / 99),
				G: uint8(y * 255 / 99),
				B: uint8((x + y) * 255 / 198),
				A: 255,
			})
		}
	}
	return img
}
