package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	reviews service.ReviewService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, reviews service.ReviewService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		reviews: reviews,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders/checkout.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	order, err := h.service.Checkout(r.Context(), caller, req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	filter := model.OrderFilter{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.OrderStatus(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "Invalid status parameter.", h.logger)
			return
		}
		filter.Status = &status
	}

	orders, err := h.service.List(r.Context(), caller, filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathID(w, r, model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), caller, id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if !caller.CanManageOrders() {
		handleError(w, model.ErrForbidden, h.logger)
		return
	}

	id, ok := pathID(w, r, model.ErrOrderNotFound, h.logger)
	if !ok {
		return
	}

	var req model.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	msg, err := h.service.UpdateStatus(r.Context(), caller, id, req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.DetailResponse{Detail: msg})
}

// CreateReview handles POST /api/orders/reviews.
func (h *OrderHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	review, err := h.reviews.Create(r.Context(), caller, req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, review)
}
