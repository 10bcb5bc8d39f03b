package products

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/repository"
	"github.com/jmkang/pepper-shop/pkg/models"
)

type Handler struct {
	repo     repository.ProductRepository
	cache    Cache
	validate *validator.Validate
	logger   *logrus.Logger
	imageDir string
}

func NewHandler(repo repository.ProductRepository, cache Cache, imageDir string, logger *logrus.Logger) *Handler {
	return &Handler{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
		imageDir: imageDir,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if data, err := h.cache.Get(r.Context(), listCacheKey()); err == nil {
			var products []*models.Product
			if json.Unmarshal(data, &products) == nil {
				httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
					"success":  true,
					"products": products,
					"count":    len(products),
				})
				return
			}
		}
	}

	products, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list products")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), listCacheKey(), products); err != nil {
			h.logger.WithError(err).Warn("Failed to cache product list")
		}
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": products,
		"count":    len(products),
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if h.cache != nil {
		if data, err := h.cache.Get(r.Context(), productCacheKey(id)); err == nil {
			var product models.Product
			if json.Unmarshal(data, &product) == nil {
				httpx.RespondJSON(w, http.StatusOK, &product)
				return
			}
		}
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get product")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to get product")
		return
	}

	if h.cache != nil {
		if err := h.cache.Set(r.Context(), productCacheKey(id), product); err != nil {
			h.logger.WithError(err).Warn("Failed to cache product")
		}
	}

	httpx.RespondJSON(w, http.StatusOK, product)
}

type ProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" validate:"min=0"`
	Category     string `json:"category" validate:"required"`
	Weight       string `json:"weight"`
	Stock        int    `json:"stock" validate:"min=0"`
	Details      string `json:"details"`
	ShippingInfo string `json:"shipping_info"`
	Origin       string `json:"origin"`
	Storage      string `json:"storage"`
	ImageURL     string `json:"image_url"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product := req.toModel()
	if err := h.repo.Create(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.WithError(err).Error("Failed to create product")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	h.invalidateCache(r)
	h.logger.WithFields(logrus.Fields{
		"product_id": product.ID,
		"name":       product.Name,
	}).Info("Product created")

	httpx.RespondJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	product := req.toModel()
	product.ID = id
	if err := h.repo.Update(r.Context(), product); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, repository.ErrInvalidInput):
			httpx.RespondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.WithError(err).Error("Failed to update product")
			httpx.RespondError(w, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	h.invalidateCache(r)
	httpx.RespondJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.WithError(err).Error("Failed to delete product")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	h.invalidateCache(r)
	h.logger.WithField("product_id", id).Info("Product deleted")

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (*ProductRequest, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Missing or invalid product fields")
		return nil, false
	}
	if !models.ValidCategory(req.Category) {
		httpx.RespondError(w, http.StatusBadRequest, "Unknown product category")
		return nil, false
	}
	return &req, true
}

func (req *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Weight:       req.Weight,
		Stock:        req.Stock,
		Details:      req.Details,
		ShippingInfo: req.ShippingInfo,
		Origin:       req.Origin,
		Storage:      req.Storage,
		ImageURL:     req.ImageURL,
	}
}

func (h *Handler) invalidateCache(r *http.Request) {
	if h.cache == nil {
		return
	}
	if err := h.cache.DeleteByPrefix(r.Context(), cacheKeyPrefix); err != nil {
		h.logger.WithError(err).Warn("Failed to invalidate product cache")
	}
}
