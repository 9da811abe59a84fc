package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles the caller's active cart.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), caller)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	item, err := h.service.AddItem(r.Context(), caller, req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PATCH /api/cart/items/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathID(w, r, model.ErrCartItemNotFound, h.logger)
	if !ok {
		return
	}

	var req model.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), caller, id, req.Quantity)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	id, ok := pathID(w, r, model.ErrCartItemNotFound, h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveItem(r.Context(), caller, id); err != nil {
		handleError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Clear handles POST /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), caller); err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.DetailResponse{Detail: "Cart cleared."})
}
