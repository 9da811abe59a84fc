package handler

import (
	"net/http"

	"shopfront/internal/model"
	"shopfront/internal/service"

	"github.com/rs/zerolog"
)

// AddressHandler handles the caller's address book.
type AddressHandler struct {
	service service.AddressService
	logger  zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(service service.AddressService, logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		logger:  logger.With().Str("handler", "address").Logger(),
	}
}

// List handles GET /api/addresses.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	addresses, err := h.service.List(r.Context(), caller)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	if addresses == nil {
		addresses = []model.Address{}
	}

	writeJSON(w, http.StatusOK, addresses)
}

// Create handles POST /api/addresses.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	address, err := h.service.Create(r.Context(), caller, req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, address)
}
