package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// CartService manages the per-session shopping cart.
type CartService interface {
	// Get returns the deduplicated cart view for a session.
	Get(ctx context.Context, sessionID string) (*model.CartView, error)

	// AddItem adds one unit of a product, merging with an existing line.
	AddItem(ctx context.Context, sessionID string, productID, price int64, name, image string) (*model.CartView, error)

	// RemoveItem deletes a product line. Absent products are ignored.
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.CartView, error)

	// SetQuantity replaces a line's quantity. Quantities below 1 and absent
	// products leave the cart unchanged.
	SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartView, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) error
}

// CheckoutService drives the three-step checkout wizard.
type CheckoutService interface {
	// Get returns the current wizard state.
	Get(ctx context.Context, sessionID string) (*model.CheckoutSelections, error)

	// SetStep moves the wizard cursor. Steps may be visited in any order.
	SetStep(ctx context.Context, sessionID string, step model.Step) (*model.CheckoutSelections, error)

	// SetShippingAddress stores the recipient address.
	SetShippingAddress(ctx context.Context, sessionID string, address model.ShippingAddress) (*model.CheckoutSelections, error)

	// SetShippingMethod selects a shipping method from the catalog by ID.
	SetShippingMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error)

	// SetPaymentMethod selects a payment method from the catalog by ID.
	SetPaymentMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error)

	// Reset drops every selection and returns to the address step.
	Reset(ctx context.Context, sessionID string) error

	// Summary prices the current cart with the selected shipping method.
	Summary(ctx context.Context, sessionID string) (*model.CheckoutSummary, error)

	// Complete places an order from the cart and selections, then clears the
	// cart and resets the wizard.
	Complete(ctx context.Context, sessionID, userID string) (*model.Order, error)
}

// OrderService manages the order ledger.
type OrderService interface {
	// CreateOrder freezes a new pending order and returns it.
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error)

	// UpdateStatus overwrites an order's status. Returns nil, nil if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// UpdateStatusWithTracking overwrites the status and stores the tracking
	// number in one write. A blank tracking number is rejected before
	// anything is stored. Returns nil, nil if the order does not exist.
	UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber string) (*model.Order, error)

	// CancelOrder cancels a pending or processing order. The status check
	// and the write happen atomically in the repository.
	CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// SetTrackingNumber records the courier tracking number on an order.
	SetTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) (*model.Order, error)

	// GetOrdersForUser lists a user's orders, most recent first.
	GetOrdersForUser(ctx context.Context, userID string, status *model.OrderStatus) ([]model.Order, error)

	// GetOrderByID retrieves an order. Returns nil, nil if it does not exist.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
}
