// Package notifications exposes the direct SMS-send endpoint. It does
// one synchronous gateway call with no retry; the queued pipeline in
// internal/notifier is what order intake uses.
package notifications

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/notifier"
	"github.com/jmkang/pepper-shop/internal/sms"
)

type Handler struct {
	gateway  notifier.SMSGateway
	validate *validator.Validate
	logger   *logrus.Logger
}

func NewHandler(gateway notifier.SMSGateway, logger *logrus.Logger) *Handler {
	return &Handler{
		gateway:  gateway,
		validate: validator.New(),
		logger:   logger,
	}
}

type SendRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode notification request")
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Phone number and message are required")
		return
	}

	to := sms.NormalizePhoneNumber(req.PhoneNumber)

	result, err := h.gateway.Send(r.Context(), to, req.Message)
	if err != nil {
		h.logger.WithError(err).Error("Failed to send SMS")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to send message")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message_id": result.MessageID,
		"status":     result.Status,
	})
}
