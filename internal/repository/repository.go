package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order ledger storage.
type OrderRepository interface {
	// Create stores an order and its items atomically.
	Create(ctx context.Context, order *model.Order) error

	// UpdateStatus overwrites the status of an order. When trackingNumber is
	// non-nil it is stored as well. Returns false if the order does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber *string, updatedAt time.Time) (bool, error)

	// TransitionStatus sets the status to `to` only if the stored status is
	// one of from. Returns false if the order does not exist or is in
	// another status.
	TransitionStatus(ctx context.Context, id uuid.UUID, from []model.OrderStatus, to model.OrderStatus, updatedAt time.Time) (bool, error)

	// SetTrackingNumber stores the tracking number and leaves the status as
	// it is. Returns false if the order does not exist.
	SetTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string, updatedAt time.Time) (bool, error)

	// GetByID retrieves an order with its items. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByUser returns the user's orders, most recent first. A non-nil
	// status restricts the result to that status.
	ListByUser(ctx context.Context, userID string, status *model.OrderStatus) ([]model.Order, error)
}
