package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/state"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	carts   state.Store[cart.Cart]
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(carts state.Store[cart.Cart], m *metrics.Metrics, logger zerolog.Logger) CartService {
	return &cartService{
		carts:   carts,
		metrics: m,
		logger:  logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, sessionID string) (*model.CartView, error) {
	c, err := loadCart(ctx, s.carts, sessionID)
	if err != nil {
		return nil, err
	}
	view := c.Summary()
	return &view, nil
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, productID, price int64, name, image string) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, "add", func(c *cart.Cart) {
		c.AddItem(productID, price, name, image)
	})
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, "remove", func(c *cart.Cart) {
		c.RemoveItem(productID)
	})
}

func (s *cartService) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartView, error) {
	return s.mutate(ctx, sessionID, "set_quantity", func(c *cart.Cart) {
		if !c.SetQuantity(productID, quantity) {
			s.logger.Debug().
				Str("session_id", sessionID).
				Int64("product_id", productID).
				Int("quantity", quantity).
				Msg("quantity update ignored")
		}
	})
}

func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, "clear", func(c *cart.Cart) {
		c.Clear()
	})
	return err
}

// mutate applies fn to the session's cart and persists the result. The
// cart is saved only after fn has run.
func (s *cartService) mutate(ctx context.Context, sessionID, op string, fn func(c *cart.Cart)) (*model.CartView, error) {
	c, err := loadCart(ctx, s.carts, sessionID)
	if err != nil {
		return nil, err
	}

	fn(c)

	if err := s.carts.Save(ctx, sessionID, c); err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID).Str("op", op).Msg("failed to save cart")
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}

	s.metrics.CartMutation(op)

	view := c.Summary()
	return &view, nil
}

// loadCart returns the stored cart for a session, or an empty one.
func loadCart(ctx context.Context, carts state.Store[cart.Cart], sessionID string) (*cart.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, model.ErrMissingSession
	}

	c, err := carts.Load(ctx, sessionID)
	if errors.Is(err, state.ErrNotFound) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c.Normalize()
	return c, nil
}
