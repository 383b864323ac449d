package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-manager/internal/api/middleware"
	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

type stubImageStore struct {
	uploaded *ports.UploadedImage
	err      error
	folder   string
}

func (s *stubImageStore) Upload(ctx context.Context, data []byte, folder string) (*ports.UploadedImage, error) {
	s.folder = folder
	return s.uploaded, s.err
}

// pngBytes is a minimal payload carrying the PNG magic number.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 16)...)

func newUploadContext(t *testing.T, field string, payload []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, &domain.User{ID: "user_1", Role: domain.RoleUser})
	return c, rec
}

func TestUploadHandler_Success(t *testing.T) {
	store := &stubImageStore{
		uploaded: &ports.UploadedImage{
			URL:      "https://cdn.example.com/task_manager/photo.png",
			PublicID: "task_manager/photo",
			Format:   "png",
		},
	}
	h := NewUploadHandler(store, "task_manager")

	c, rec := newUploadContext(t, "image", pngBytes)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if store.folder != "task_manager" {
		t.Fatalf("expected configured folder, got %q", store.folder)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	data := resp["data"].(map[string]any)
	if data["url"] != "https://cdn.example.com/task_manager/photo.png" {
		t.Fatalf("unexpected payload: %+v", data)
	}
}

func TestUploadHandler_MissingFile(t *testing.T) {
	h := NewUploadHandler(&stubImageStore{}, "task_manager")

	c, _ := newUploadContext(t, "attachment", pngBytes)

	err := h.Upload(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUploadHandler_RejectsNonImage(t *testing.T) {
	h := NewUploadHandler(&stubImageStore{}, "task_manager")

	c, _ := newUploadContext(t, "image", []byte("#!/bin/sh\nrm -rf ~\n"))

	err := h.Upload(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "unsupported image type" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}
