package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles the checkout wizard HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Get handles GET /api/checkout.
func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	selections, err := h.service.Get(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, selections)
}

// SetStep handles PUT /api/checkout/step.
func (h *CheckoutHandler) SetStep(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req SetStepRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	selections, err := h.service.SetStep(r.Context(), session, model.Step(*req.Step))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, selections)
}

// SetAddress handles PUT /api/checkout/address.
func (h *CheckoutHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req ShippingAddressRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	selections, err := h.service.SetShippingAddress(r.Context(), session, req.toModel())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, selections)
}

// SetShipping handles PUT /api/checkout/shipping.
func (h *CheckoutHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req SelectMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	selections, err := h.service.SetShippingMethod(r.Context(), session, req.MethodID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, selections)
}

// SetPayment handles PUT /api/checkout/payment.
func (h *CheckoutHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	var req SelectMethodRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	selections, err := h.service.SetPaymentMethod(r.Context(), session, req.MethodID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, selections)
}

// Reset handles DELETE /api/checkout.
func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Reset(r.Context(), session); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Summary handles GET /api/checkout/summary.
func (h *CheckoutHandler) Summary(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), session)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// Complete handles POST /api/checkout/complete.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionID(w, r, h.logger)
	if !ok {
		return
	}

	user, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	order, err := h.service.Complete(r.Context(), session, user)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, model.NewOrderResponse(order))
}
