package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/pricing"
	"storefront/internal/state"

	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	sessions state.Store[checkout.Session]
	carts    state.Store[cart.Cart]
	catalog  *catalog.Catalog
	orders   OrderService
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	sessions state.Store[checkout.Session],
	carts state.Store[cart.Cart],
	cat *catalog.Catalog,
	orders OrderService,
	m *metrics.Metrics,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		sessions: sessions,
		carts:    carts,
		catalog:  cat,
		orders:   orders,
		metrics:  m,
		logger:   logger.With().Str("service", "checkout").Logger(),
	}
}

func (s *checkoutService) Get(ctx context.Context, sessionID string) (*model.CheckoutSelections, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	selections := sess.Selections()
	return &selections, nil
}

func (s *checkoutService) SetStep(ctx context.Context, sessionID string, step model.Step) (*model.CheckoutSelections, error) {
	if !step.Valid() {
		return nil, model.ErrInvalidStep
	}
	return s.mutate(ctx, sessionID, func(sess *checkout.Session) {
		sess.SetStep(step)
	})
}

func (s *checkoutService) SetShippingAddress(ctx context.Context, sessionID string, address model.ShippingAddress) (*model.CheckoutSelections, error) {
	return s.mutate(ctx, sessionID, func(sess *checkout.Session) {
		sess.SetShippingAddress(address)
	})
}

func (s *checkoutService) SetShippingMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error) {
	method, ok := s.catalog.ShippingMethod(methodID)
	if !ok {
		return nil, model.ErrUnknownShippingMethod
	}
	return s.mutate(ctx, sessionID, func(sess *checkout.Session) {
		sess.SetShippingMethod(method)
	})
}

func (s *checkoutService) SetPaymentMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error) {
	method, ok := s.catalog.PaymentMethod(methodID)
	if !ok {
		return nil, model.ErrUnknownPaymentMethod
	}
	return s.mutate(ctx, sessionID, func(sess *checkout.Session) {
		sess.SetPaymentMethod(method)
	})
}

func (s *checkoutService) Reset(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(sess *checkout.Session) {
		sess.Reset()
	})
	return err
}

func (s *checkoutService) Summary(ctx context.Context, sessionID string) (*model.CheckoutSummary, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c, err := loadCart(ctx, s.carts, sessionID)
	if err != nil {
		return nil, err
	}

	summary := pricing.Summarize(c.View(), sess.ShippingMethod)
	return &summary, nil
}

// Complete places the order. Nothing is changed unless the order is
// created. Once it exists, failures clearing the cart or session are
// logged and the order is still returned.
func (s *checkoutService) Complete(ctx context.Context, sessionID, userID string) (*model.Order, error) {
	o, err := s.placeOrder(ctx, sessionID, userID)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			s.metrics.CheckoutFailed(domainErr.Code)
		} else {
			s.metrics.CheckoutFailed(model.ErrCodeInternalError)
		}
		return nil, err
	}

	log := s.logger.With().
		Str("session_id", sessionID).
		Str("order_number", o.OrderNumber).
		Logger()

	// A deleted key loads as an empty cart and a fresh session.
	if err := s.carts.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("failed to clear cart after order")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Error().Err(err).Msg("failed to reset checkout after order")
	}

	s.metrics.CheckoutCompleted()

	log.Info().
		Str("order_id", o.ID.String()).
		Int64("total", o.Total).
		Msg("checkout completed")

	return o, nil
}

func (s *checkoutService) placeOrder(ctx context.Context, sessionID, userID string) (*model.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, model.ErrMissingUser
	}

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Ready(); err != nil {
		s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("checkout incomplete")
		return nil, err
	}

	c, err := loadCart(ctx, s.carts, sessionID)
	if err != nil {
		return nil, err
	}

	if c.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	// The price frozen into the order comes from the catalog as it is now.
	shipping, ok := s.catalog.ShippingMethod(sess.ShippingMethod.ID)
	if !ok {
		return nil, model.ErrUnknownShippingMethod
	}

	return s.orders.CreateOrder(ctx, &model.CreateOrderRequest{
		Items:           c.Snapshot(),
		ShippingAddress: sess.ShippingAddress.Format(),
		PaymentMethod:   sess.PaymentMethod.Name,
		UserID:          userID,
		ShippingPrice:   shipping.Price,
	})
}

func (s *checkoutService) mutate(ctx context.Context, sessionID string, fn func(sess *checkout.Session)) (*model.CheckoutSelections, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fn(sess)

	if err := s.sessions.Save(ctx, sessionID, sess); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to save checkout session")
		return nil, fmt.Errorf("failed to save checkout session: %w", err)
	}

	selections := sess.Selections()
	return &selections, nil
}

// load returns the stored session, or a fresh one at the address step.
func (s *checkoutService) load(ctx context.Context, sessionID string) (*checkout.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, model.ErrMissingSession
	}

	sess, err := s.sessions.Load(ctx, sessionID)
	if errors.Is(err, state.ErrNotFound) {
		return checkout.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout session: %w", err)
	}

	return sess, nil
}
