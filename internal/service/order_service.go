package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/order"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	numbers   *order.NumberGenerator
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	numbers *order.NumberGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		numbers:   numbers,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder validates the request, freezes the order and stores it.
func (s *orderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	if err := order.Validate(req); err != nil {
		s.logger.Warn().Err(err).Msg("invalid order request")
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate order id: %w", err)
	}

	o, err := order.New(req, id, s.numbers.Next(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.metrics.OrderCreated(o.Total)

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("order_number", o.OrderNumber).
		Str("user_id", o.UserID).
		Int64("total", o.Total).
		Int("item_count", len(o.Items)).
		Msg("order created successfully")

	return o, nil
}

// UpdateStatus overwrites the status without checking the transition.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	o, err := s.update(ctx, id, status, nil)
	if err != nil || o == nil {
		return nil, err
	}

	s.metrics.StatusChanged(string(status))
	return o, nil
}

// UpdateStatusWithTracking validates both values, then stores them together.
func (s *orderService) UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber string) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, model.ErrMissingTracking
	}

	o, err := s.update(ctx, id, status, &trackingNumber)
	if err != nil || o == nil {
		return nil, err
	}

	s.metrics.StatusChanged(string(status))
	return o, nil
}

// CancelOrder moves a pending or processing order to cancelled. The move is
// conditional on the stored status, so a concurrent change wins over it.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.GetOrderByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}

	if !order.CanCancel(o.Status) {
		return nil, s.cancelRejected(id, o.Status)
	}

	moved, err := s.orderRepo.TransitionStatus(ctx, id, order.CancellableStatuses(), model.OrderStatusCancelled, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	if !moved {
		// The status changed after it was read.
		current, err := s.GetOrderByID(ctx, id)
		if err != nil || current == nil {
			return nil, err
		}
		return nil, s.cancelRejected(id, current.Status)
	}

	s.metrics.StatusChanged(string(model.OrderStatusCancelled))

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(o.Status)).
		Msg("order cancelled")

	return s.GetOrderByID(ctx, id)
}

func (s *orderService) cancelRejected(id uuid.UUID, status model.OrderStatus) error {
	s.logger.Warn().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order cannot be cancelled")
	return fmt.Errorf("%w: order is %s", model.ErrInvalidStatusTransition, status)
}

// SetTrackingNumber stores the tracking number and keeps the current status.
func (s *orderService) SetTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) (*model.Order, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, model.ErrMissingTracking
	}

	found, err := s.orderRepo.SetTrackingNumber(ctx, id, trackingNumber, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to set tracking number")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if !found {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return s.GetOrderByID(ctx, id)
}

func (s *orderService) GetOrdersForUser(ctx context.Context, userID string, status *model.OrderStatus) ([]model.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, model.ErrMissingUser
	}
	if status != nil && !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID, status)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if o == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	return o, nil
}

func (s *orderService) update(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber *string) (*model.Order, error) {
	found, err := s.orderRepo.UpdateStatus(ctx, id, status, trackingNumber, s.now())
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if !found {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, nil
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order updated")

	return s.GetOrderByID(ctx, id)
}
