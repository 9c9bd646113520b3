package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order history and order status requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// List handles GET /api/orders[?status=].
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := userID(w, r, h.logger)
	if !ok {
		return
	}

	var status *model.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := model.OrderStatus(raw)
		status = &s
	}

	orders, err := h.service.GetOrdersForUser(r.Context(), user, status)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp := make([]*model.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = model.NewOrderResponse(&orders[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetByID handles GET /api/orders/{id}. Orders of other users are reported
// as not found.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, model.NewOrderResponse(order))
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	order, ok := h.ownedOrder(w, r)
	if !ok {
		return
	}

	cancelled, err := h.service.CancelOrder(r.Context(), order.ID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if cancelled == nil {
		h.notFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, model.NewOrderResponse(cancelled))
}

// UpdateStatus handles PUT /api/orders/{id}/status. It is an operator
// action and is not scoped to a user.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	var (
		order *model.Order
		err   error
	)
	if req.TrackingNumber != nil {
		order, err = h.service.UpdateStatusWithTracking(r.Context(), id, model.OrderStatus(req.Status), *req.TrackingNumber)
	} else {
		order, err = h.service.UpdateStatus(r.Context(), id, model.OrderStatus(req.Status))
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if order == nil {
		h.notFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, model.NewOrderResponse(order))
}

// SetTracking handles PUT /api/orders/{id}/tracking. The status is left as
// it is.
func (h *OrderHandler) SetTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r, h.logger)
	if !ok {
		return
	}

	var req SetTrackingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	order, err := h.service.SetTrackingNumber(r.Context(), id, req.TrackingNumber)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if order == nil {
		h.notFound(w, r)
		return
	}

	writeJSON(w, http.StatusOK, model.NewOrderResponse(order))
}

// ownedOrder loads the order named in the path and checks it belongs to
// the calling user.
func (h *OrderHandler) ownedOrder(w http.ResponseWriter, r *http.Request) (*model.Order, bool) {
	user, ok := userID(w, r, h.logger)
	if !ok {
		return nil, false
	}

	id, ok := orderIDParam(w, r, h.logger)
	if !ok {
		return nil, false
	}

	order, err := h.service.GetOrderByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return nil, false
	}

	if order == nil || order.UserID != user {
		h.notFoundID(w, r, id)
		return nil, false
	}

	return order, true
}

func (h *OrderHandler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, model.ErrCodeOrderNotFound, "order not found", h.logger)
}

func (h *OrderHandler) notFoundID(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	h.logger.Debug().Str("order_id", id.String()).Msg("order not found for user")
	h.notFound(w, r)
}
