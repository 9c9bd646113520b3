// Package order contains the rules for placing orders and moving them
// through their lifecycle.
package order

import "storefront/internal/model"

// transitions lists the forward moves allowed for each status. Cancelled
// and delivered are terminal.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:    {model.OrderStatusDelivered},
}

var lifecycle = []model.OrderStatus{
	model.OrderStatusPending,
	model.OrderStatusProcessing,
	model.OrderStatusShipped,
	model.OrderStatusDelivered,
	model.OrderStatusCancelled,
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanCancel reports whether an order in status may still be cancelled.
// Only orders that have not left the warehouse can be.
func CanCancel(status model.OrderStatus) bool {
	return CanTransition(status, model.OrderStatusCancelled)
}

// CancellableStatuses lists, in lifecycle order, the statuses from which an
// order may be cancelled.
func CancellableStatuses() []model.OrderStatus {
	var out []model.OrderStatus
	for _, status := range lifecycle {
		if CanCancel(status) {
			out = append(out, status)
		}
	}
	return out
}

// IsTerminal reports whether no further transition exists from status.
func IsTerminal(status model.OrderStatus) bool {
	return len(transitions[status]) == 0
}
