package products

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/repository"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadImage saves a product image under the configured upload
// directory and points the product's image_url at it. Files are served
// by the static /images/ route.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	// ParseMultipartForm's argument is only a memory threshold; the
	// MaxBytesReader is what actually caps the upload size.
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.RespondError(w, http.StatusRequestEntityTooLarge, "Image exceeds the 10MB limit")
			return
		}
		httpx.RespondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		httpx.RespondError(w, http.StatusBadRequest, "Unsupported image format")
		return
	}

	if err := os.MkdirAll(h.imageDir, 0o755); err != nil {
		h.logger.WithError(err).Error("Failed to create image directory")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(h.imageDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create image file")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		h.logger.WithError(err).Error("Failed to write image file")
		os.Remove(path)
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	imageURL := fmt.Sprintf("/images/%s", filename)
	if err := h.repo.UpdateImageURL(r.Context(), id, imageURL); err != nil {
		os.Remove(path)
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to update product image URL")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	h.invalidateCache(r)
	h.logger.WithFields(logrus.Fields{
		"product_id": id,
		"image_url":  imageURL,
	}).Info("Product image uploaded")

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"image_url": imageURL,
	})
}
