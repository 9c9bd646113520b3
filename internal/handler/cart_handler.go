package handler

import (
	"net/http"

	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests.
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
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.Get(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	view, err := h.service.AddItem(r.Context(), session, req.ProductID, *req.Price, req.Name, req.Image)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// SetQuantity handles PUT /api/cart/items/{productID}.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	productID, ok := productIDParam(w, r, h.logger)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	view, err := h.service.SetQuantity(r.Context(), session, productID, *req.Quantity)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/items/{productID}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	productID, ok := productIDParam(w, r, h.logger)
	if !ok {
		return
	}

	view, err := h.service.RemoveItem(r.Context(), session, productID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), session); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
