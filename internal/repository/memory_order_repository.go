package repository

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memoryOrderRepository keeps the ledger in process memory.
type memoryOrderRepository struct {
	mu      sync.RWMutex
	orders  map[uuid.UUID]*model.Order
	numbers map[string]uuid.UUID
	logger  zerolog.Logger
}

// NewMemoryOrderRepository creates an empty in-memory order repository.
func NewMemoryOrderRepository(logger zerolog.Logger) OrderRepository {
	return &memoryOrderRepository{
		orders:  make(map[uuid.UUID]*model.Order),
		numbers: make(map[string]uuid.UUID),
		logger:  logger.With().Str("repository", "order_memory").Logger(),
	}
}

func (r *memoryOrderRepository) Create(ctx context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("failed to create order: duplicate id %s", order.ID)
	}
	if _, exists := r.numbers[order.OrderNumber]; exists {
		return fmt.Errorf("failed to create order: duplicate order number %s", order.OrderNumber)
	}

	r.orders[order.ID] = cloneOrder(order)
	r.numbers[order.OrderNumber] = order.ID

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("order_number", order.OrderNumber).
		Msg("order created successfully")

	return nil
}

func (r *memoryOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber *string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return false, nil
	}

	order.Status = status
	if trackingNumber != nil {
		tn := *trackingNumber
		order.TrackingNumber = &tn
	}
	order.UpdatedAt = updatedAt

	return true, nil
}

func (r *memoryOrderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from []model.OrderStatus, to model.OrderStatus, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok || !slices.Contains(from, order.Status) {
		return false, nil
	}

	order.Status = to
	order.UpdatedAt = updatedAt

	return true, nil
}

func (r *memoryOrderRepository) SetTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string, updatedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return false, nil
	}

	order.TrackingNumber = &trackingNumber
	order.UpdatedAt = updatedAt

	return true, nil
}

func (r *memoryOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *memoryOrderRepository) ListByUser(ctx context.Context, userID string, status *model.OrderStatus) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.Order, 0)
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if status != nil && order.Status != *status {
			continue
		}
		orders = append(orders, *cloneOrder(order))
	}

	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return bytes.Compare(orders[i].ID[:], orders[j].ID[:]) > 0
	})

	return orders, nil
}

func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Items = make([]model.OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	if o.TrackingNumber != nil {
		tn := *o.TrackingNumber
		c.TrackingNumber = &tn
	}
	return &c
}
