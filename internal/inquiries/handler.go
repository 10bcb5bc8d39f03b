package inquiries

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
	repo     repository.InquiryRepository
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewHandler(repo repository.InquiryRepository, logger *logrus.Logger) *Handler {
	return &Handler{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

type CreateInquiryRequest struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" validate:"omitempty,email"`
}

func (h *Handler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req CreateInquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Missing or invalid inquiry fields")
		return
	}

	inquiry := &models.Inquiry{
		Title:        req.Title,
		Content:      req.Content,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
	}

	if err := h.repo.Create(r.Context(), inquiry); err != nil {
		h.logger.WithError(err).Error("Failed to create inquiry")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"inquiry_id": inquiry.ID,
		"title":      inquiry.Title,
	}).Info("Inquiry created")

	httpx.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"inquiry": inquiry,
	})
}

func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list inquiries")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to list inquiries")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

func (h *Handler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid inquiry id")
		return
	}

	inquiry, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get inquiry")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to get inquiry")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, inquiry)
}

type respondRequest struct {
	Response string `json:"response"`
}

func (h *Handler) RespondToInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid inquiry id")
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Response == "" {
		httpx.RespondError(w, http.StatusBadRequest, "Response is required")
		return
	}

	if err := h.repo.Respond(r.Context(), id, req.Response); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		h.logger.WithError(err).Error("Failed to respond to inquiry")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to respond to inquiry")
		return
	}

	h.logger.WithField("inquiry_id", id).Info("Inquiry answered")

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  models.InquiryStatusAnswered,
	})
}
