package orders

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/events"
	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/repository"
	"github.com/jmkang/pepper-shop/pkg/models"
)

// NotificationPublisher queues the confirmation SMS for delivery by
// the notifier worker. Publish failure never fails the order.
type NotificationPublisher interface {
	PublishNotificationRequested(event events.NotificationRequested) error
}

type WebSocketHub interface {
	Broadcast(messageType string, data interface{}, source string)
}

type Handler struct {
	repo      repository.OrderRepository
	publisher NotificationPublisher
	validate  *validator.Validate
	logger    *logrus.Logger
	wsHub     WebSocketHub
}

func NewHandler(repo repository.OrderRepository, publisher NotificationPublisher, logger *logrus.Logger) *Handler {
	return &Handler{
		repo:      repo,
		publisher: publisher,
		validate:  validator.New(),
		logger:    logger,
	}
}

func (h *Handler) SetWebSocketHub(hub WebSocketHub) {
	h.wsHub = hub
}

type CreateOrderRequest struct {
	CustomerName        string             `json:"customer_name" validate:"required"`
	PhoneNumber         string             `json:"phone_number" validate:"required"`
	Email               string             `json:"email" validate:"omitempty,email"`
	Address             string             `json:"address" validate:"required"`
	AddressDetail       string             `json:"address_detail"`
	Zipcode             string             `json:"zipcode"`
	Items               []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	SpecialInstructions string             `json:"special_instructions"`
}

type OrderItemRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,min=1"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity" validate:"required,min=1"`
	Price       int64  `json:"price" validate:"min=0"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithError(err).Error("Failed to decode order request")
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.WithError(err).Warn("Order request failed validation")
		httpx.RespondError(w, http.StatusBadRequest, "Missing or invalid order fields")
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, models.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.Price,
		})
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:         GenerateOrderNumber(now),
		CustomerName:        req.CustomerName,
		PhoneNumber:         req.PhoneNumber,
		Email:               req.Email,
		Address:             req.Address,
		AddressDetail:       req.AddressDetail,
		Zipcode:             req.Zipcode,
		Items:               items,
		TotalPrice:          TotalPrice(items),
		ShippingFee:         ShippingFee,
		Status:              string(StatusReceived),
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           now,
	}

	err := h.repo.Create(r.Context(), order)
	if errors.Is(err, repository.ErrConflict) {
		// Random suffix collided with an existing order number. One
		// regeneration is enough at this volume.
		order.OrderNumber = GenerateOrderNumber(now)
		err = h.repo.Create(r.Context(), order)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to save order")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to process order")
		return
	}

	// Best-effort notification: the order stands even if the SMS can
	// never be queued.
	notification := "queued"
	event := events.NotificationRequested{
		OrderNumber: order.OrderNumber,
		PhoneNumber: order.PhoneNumber,
		Message:     ConfirmationMessage(order.CustomerName, order.OrderNumber),
		RequestedAt: now,
	}
	if err := h.publisher.PublishNotificationRequested(event); err != nil {
		h.logger.WithError(err).WithField("order_number", order.OrderNumber).
			Error("Failed to queue confirmation SMS")
		notification = "failed"
	}

	if h.wsHub != nil {
		h.wsHub.Broadcast("order_created", order, "storefront")
	}

	h.logger.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"total_price":  order.TotalPrice,
		"items_count":  len(order.Items),
		"notification": notification,
	}).Info("Order created successfully")

	httpx.RespondJSON(w, http.StatusCreated, models.OrderResponse{
		Success: true,
		Order: &models.OrderSummary{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			TotalPrice:  order.TotalPrice,
			ShippingFee: order.ShippingFee,
			AmountDue:   order.TotalPrice + order.ShippingFee,
			CreatedAt:   order.CreatedAt,
		},
		Notification: notification,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderNumber := mux.Vars(r)["orderNumber"]

	order, err := h.repo.GetByOrderNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get order")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.List(r.Context(), 0)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list orders")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
		"count":   len(orders),
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !ValidStatus(req.Status) {
		httpx.RespondError(w, http.StatusBadRequest, "Unknown order status")
		return
	}

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.WithError(err).Error("Failed to get order")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to get order")
		return
	}

	if !CanTransition(Status(order.Status), Status(req.Status)) {
		httpx.RespondError(w, http.StatusConflict, "Illegal status transition")
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.logger.WithError(err).Error("Failed to update order status")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     order.Status,
		"to":       req.Status,
	}).Info("Order status updated")

	if h.wsHub != nil {
		h.wsHub.Broadcast("order_status_changed", map[string]interface{}{
			"order_id":     id,
			"order_number": order.OrderNumber,
			"from":         order.Status,
			"to":           req.Status,
		}, "storefront")
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  req.Status,
	})
}
