package products

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func newUploadRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/admin/products/{id:[0-9]+}/image", h.UploadImage).Methods("POST")
	return router
}

func multipartImage(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), size)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func uploadImage(t *testing.T, router *mux.Router, path, filename string, size int) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartImage(t, filename, size)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadImage(t *testing.T) {
	repo := newFakeProductRepo()
	h := NewHandler(repo, newFakeCache(), t.TempDir(), testLogger())
	router := newUploadRouter(h)

	do(t, newTestRouter(h), http.MethodPost, "/api/admin/products", validProductBody())

	rec := uploadImage(t, router, "/api/admin/products/1/image", "pepper.jpg", 1024)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if repo.products[1].ImageURL == "" {
		t.Error("product image_url was not updated")
	}
}

func TestUploadImageTooLarge(t *testing.T) {
	repo := newFakeProductRepo()
	h := NewHandler(repo, newFakeCache(), t.TempDir(), testLogger())
	router := newUploadRouter(h)

	do(t, newTestRouter(h), http.MethodPost, "/api/admin/products", validProductBody())

	rec := uploadImage(t, router, "/api/admin/products/1/image", "pepper.jpg", maxImageSize+1)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if repo.products[1].ImageURL != "" {
		t.Error("image_url was set despite oversized upload")
	}
}

func TestUploadImageUnsupportedFormat(t *testing.T) {
	repo := newFakeProductRepo()
	h := NewHandler(repo, newFakeCache(), t.TempDir(), testLogger())
	router := newUploadRouter(h)

	do(t, newTestRouter(h), http.MethodPost, "/api/admin/products", validProductBody())

	rec := uploadImage(t, router, "/api/admin/products/1/image", "pepper.exe", 1024)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUploadImageProductNotFound(t *testing.T) {
	h := NewHandler(newFakeProductRepo(), newFakeCache(), t.TempDir(), testLogger())
	router := newUploadRouter(h)

	rec := uploadImage(t, router, "/api/admin/products/42/image", "pepper.jpg", 1024)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
