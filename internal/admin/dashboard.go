// Package admin aggregates the numbers the console home page shows.
package admin

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/internal/repository"
)

type DashboardHandler struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	inquiries repository.InquiryRepository
	logger    *logrus.Logger
}

func NewDashboardHandler(orders repository.OrderRepository, products repository.ProductRepository, inquiries repository.InquiryRepository, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{
		orders:    orders,
		products:  products,
		inquiries: inquiries,
		logger:    logger,
	}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	orderCounts, err := h.orders.CountByStatus(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to count orders")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	productCount, err := h.products.Count(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to count products")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	waitingInquiries, err := h.inquiries.CountWaiting(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to count inquiries")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	recentOrders, err := h.orders.List(r.Context(), 5)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load recent orders")
		httpx.RespondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"orders_by_status":  orderCounts,
		"product_count":     productCount,
		"waiting_inquiries": waitingInquiries,
		"recent_orders":     recentOrders,
	})
}
