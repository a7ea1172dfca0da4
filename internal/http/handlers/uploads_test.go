package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/media"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func uploadsRouter(t *testing.T, maxBytes int64) (*gin.Engine, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	store, err := media.NewStore(dir, maxBytes)

	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	h := NewUploadsHandler(store)

	router := gin.New()
	router.POST("/api/uploads/single", h.UploadImage)
	router.POST("/api/uploads/multiple", h.UploadImages)
	router.GET("/api/uploads", h.ListUploads)
	router.DELETE("/api/uploads/:filename", h.DeleteUpload)
	return router, dir
}

func multipartBody(t *testing.T, field string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, content := range files {
		part, err := writer.CreateFormFile(field, name)

		if err != nil {
			t.Fatalf("create form file: %v", err)
		}

		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func dirEntryCount(t *testing.T, dir string) int {
	t.Helper()

	entries, err := os.ReadDir(dir)

	if err != nil {
		t.Fatalf("read dir: %v", err)
	}

	return len(entries)
}

func TestUploadImage(t *testing.T) {
	router, dir := uploadsRouter(t, 1<<20)

	body, contentType := multipartBody(t, "image", map[string][]byte{"photo.png": pngBytes})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/single", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	if got := dirEntryCount(t, dir); got != 1 {
		t.Fatalf("files on disk = %d, want 1", got)
	}
}

func TestUploadImageRejectsNonImage(t *testing.T) {
	router, dir := uploadsRouter(t, 1<<20)

	body, contentType := multipartBody(t, "image", map[string][]byte{
		"payload.png": []byte("#!/bin/sh\necho pwned\n"),
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/single", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnsupportedMediaType)
	}

	// rejected content must never touch the disk
	if got := dirEntryCount(t, dir); got != 0 {
		t.Fatalf("files on disk = %d, want 0", got)
	}
}

func TestUploadImageMissingField(t *testing.T) {
	router, _ := uploadsRouter(t, 1<<20)

	body, contentType := multipartBody(t, "wrongfield", map[string][]byte{"photo.png": pngBytes})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/single", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadImages(t *testing.T) {
	router, dir := uploadsRouter(t, 1<<20)

	body, contentType := multipartBody(t, "images", map[string][]byte{
		"a.png": pngBytes,
		"b.png": pngBytes,
		"c.png": pngBytes,
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/multiple", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}

	if got := dirEntryCount(t, dir); got != 3 {
		t.Fatalf("files on disk = %d, want 3", got)
	}
}

func TestUploadImagesTooMany(t *testing.T) {
	router, dir := uploadsRouter(t, 1<<20)

	files := map[string][]byte{}
	for i := 0; i < 11; i++ {
		files[string(rune('a'+i))+".png"] = pngBytes
	}

	body, contentType := multipartBody(t, "images", files)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/uploads/multiple", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	if got := dirEntryCount(t, dir); got != 0 {
		t.Fatalf("files on disk = %d, want 0", got)
	}
}

func TestDeleteUploadTraversalBlocked(t *testing.T) {
	router, _ := uploadsRouter(t, 1<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/..%2F..%2Fetc%2Fpasswd", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 400 or 404", rec.Code)
	}
}

func TestDeleteUploadNotFound(t *testing.T) {
	router, _ := uploadsRouter(t, 1<<20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/uploads/nope.png", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
