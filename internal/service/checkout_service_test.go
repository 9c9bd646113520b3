package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/metrics"
	"storefront/internal/model"
	"storefront/internal/order"
	"storefront/internal/repository"
	"storefront/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	carts    *state.MemoryStore[cart.Cart]
	sessions *state.MemoryStore[checkout.Session]
	cart     CartService
	checkout CheckoutService
	orders   OrderService
}

func newCheckoutFixture(t *testing.T, m *metrics.Metrics) *checkoutFixture {
	t.Helper()

	logger := zerolog.Nop()
	carts := state.NewMemoryStore[cart.Cart]()
	sessions := state.NewMemoryStore[checkout.Session]()
	orders := NewOrderService(repository.NewMemoryOrderRepository(logger), order.NewNumberGenerator(), m, logger)

	return &checkoutFixture{
		carts:    carts,
		sessions: sessions,
		cart:     NewCartService(carts, m, logger),
		checkout: NewCheckoutService(sessions, carts, catalog.Default(), orders, m, logger),
		orders:   orders,
	}
}

var testAddress = model.ShippingAddress{
	FullName:   "Siti Rahayu",
	Phone:      "081234567890",
	Address:    "Jl. Sudirman No. 5",
	City:       "Bandung",
	PostalCode: "40111",
}

// fillCheckout selects address, express shipping and bank transfer.
func fillCheckout(t *testing.T, service CheckoutService, sessionID string) {
	t.Helper()
	ctx := context.Background()

	_, err := service.SetShippingAddress(ctx, sessionID, testAddress)
	require.NoError(t, err)
	_, err = service.SetStep(ctx, sessionID, model.StepShipping)
	require.NoError(t, err)
	_, err = service.SetShippingMethod(ctx, sessionID, "express")
	require.NoError(t, err)
	_, err = service.SetStep(ctx, sessionID, model.StepPayment)
	require.NoError(t, err)
	_, err = service.SetPaymentMethod(ctx, sessionID, "bank-transfer")
	require.NoError(t, err)
}

func TestCheckoutService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, nil)

	_, err := f.cart.AddItem(ctx, "s1", 1, 50000, "Kaos Polos", "/img/kaos.jpg")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = f.cart.AddItem(ctx, "s1", 2, 20000, "Topi Rajut", "/img/topi.jpg")
		require.NoError(t, err)
	}
	fillCheckout(t, f.checkout, "s1")

	summary, err := f.checkout.Summary(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(110000), summary.Subtotal)
	assert.Equal(t, int64(25000), summary.Shipping)
	assert.Equal(t, int64(135000), summary.Total)

	o, err := f.checkout.Complete(ctx, "s1", "user-1")
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, int64(50000*1+20000*3+25000), o.Total)
	assert.Equal(t, int64(25000), o.ShippingCost)
	assert.Equal(t, "Transfer Bank", o.PaymentMethod)
	assert.Equal(t, testAddress.Format(), o.ShippingAddress)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 3, o.Items[1].Quantity)

	_, err = f.carts.Load(ctx, "s1")
	assert.ErrorIs(t, err, state.ErrNotFound)
	_, err = f.sessions.Load(ctx, "s1")
	assert.ErrorIs(t, err, state.ErrNotFound)

	view, err := f.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Count)
	assert.Empty(t, view.Items)

	selections, err := f.checkout.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StepAddress, selections.Step)
	assert.Nil(t, selections.ShippingAddress)
	assert.Nil(t, selections.ShippingMethod)
	assert.Nil(t, selections.PaymentMethod)

	history, err := f.orders.GetOrdersForUser(ctx, "user-1", nil)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, o.OrderNumber, history[0].OrderNumber)
}

func TestCheckoutService_Complete_FailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, f *checkoutFixture)
		userID  string
		wantErr error
	}{
		{
			name: "missing user",
			setup: func(t *testing.T, f *checkoutFixture) {
				fillCheckout(t, f.checkout, "s1")
			},
			userID:  "",
			wantErr: model.ErrMissingUser,
		},
		{
			name: "no shipping method",
			setup: func(t *testing.T, f *checkoutFixture) {
				_, err := f.checkout.SetShippingAddress(context.Background(), "s1", testAddress)
				require.NoError(t, err)
				_, err = f.checkout.SetPaymentMethod(context.Background(), "s1", "cod")
				require.NoError(t, err)
			},
			userID:  "user-1",
			wantErr: model.ErrIncompleteCheckout,
		},
		{
			name: "no payment method",
			setup: func(t *testing.T, f *checkoutFixture) {
				_, err := f.checkout.SetShippingAddress(context.Background(), "s1", testAddress)
				require.NoError(t, err)
				_, err = f.checkout.SetShippingMethod(context.Background(), "s1", "regular")
				require.NoError(t, err)
			},
			userID:  "user-1",
			wantErr: model.ErrIncompleteCheckout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newCheckoutFixture(t, nil)

			_, err := f.cart.AddItem(ctx, "s1", 1, 50000, "Kaos Polos", "")
			require.NoError(t, err)
			tt.setup(t, f)

			beforeCart, err := f.cart.Get(ctx, "s1")
			require.NoError(t, err)
			beforeSession, err := f.checkout.Get(ctx, "s1")
			require.NoError(t, err)

			o, err := f.checkout.Complete(ctx, "s1", tt.userID)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, o)

			afterCart, err := f.cart.Get(ctx, "s1")
			require.NoError(t, err)
			afterSession, err := f.checkout.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, beforeCart, afterCart)
			assert.Equal(t, beforeSession, afterSession)
		})
	}
}

func TestCheckoutService_Complete_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, nil)
	fillCheckout(t, f.checkout, "s1")

	o, err := f.checkout.Complete(ctx, "s1", "user-1")

	assert.ErrorIs(t, err, model.ErrEmptyCart)
	assert.Nil(t, o)

	selections, err := f.checkout.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StepPayment, selections.Step)
	assert.NotNil(t, selections.PaymentMethod)
}

func TestCheckoutService_Complete_LedgerFailure(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	carts := state.NewMemoryStore[cart.Cart]()
	sessions := state.NewMemoryStore[checkout.Session]()
	mockOrders := new(MockOrderService)

	cartService := NewCartService(carts, nil, logger)
	service := NewCheckoutService(sessions, carts, catalog.Default(), mockOrders, nil, logger)

	_, err := cartService.AddItem(ctx, "s1", 1, 100000, "Kemeja Batik", "")
	require.NoError(t, err)
	_, err = cartService.AddItem(ctx, "s1", 1, 100000, "Kemeja Batik", "")
	require.NoError(t, err)
	_, err = service.SetShippingAddress(ctx, "s1", testAddress)
	require.NoError(t, err)
	_, err = service.SetShippingMethod(ctx, "s1", "regular")
	require.NoError(t, err)
	_, err = service.SetPaymentMethod(ctx, "s1", "e-wallet")
	require.NoError(t, err)

	mockOrders.On("CreateOrder", ctx, mock.MatchedBy(func(req *model.CreateOrderRequest) bool {
		return req.UserID == "user-1" &&
			req.ShippingPrice == 15000 &&
			req.PaymentMethod == "E-Wallet" &&
			len(req.Items) == 1 && req.Items[0].Quantity == 2
	})).Return(nil, errors.New("ledger unavailable"))

	o, err := service.Complete(ctx, "s1", "user-1")

	require.Error(t, err)
	assert.Nil(t, o)
	mockOrders.AssertExpectations(t)

	view, err := cartService.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.Count)

	selections, err := service.Get(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, selections.ShippingMethod)
	assert.NotNil(t, selections.PaymentMethod)
}

func TestCheckoutService_Complete_UsesCatalogPrice(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, nil)

	_, err := f.cart.AddItem(ctx, "s1", 1, 50000, "Kaos Polos", "")
	require.NoError(t, err)
	fillCheckout(t, f.checkout, "s1")

	// A tampered session price must not reach the order.
	sess, err := f.sessions.Load(ctx, "s1")
	require.NoError(t, err)
	sess.ShippingMethod.Price = 1
	require.NoError(t, f.sessions.Save(ctx, "s1", sess))

	o, err := f.checkout.Complete(ctx, "s1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(25000), o.ShippingCost)
	assert.Equal(t, int64(75000), o.Total)
}

func TestCheckoutService_Complete_ClearFailureKeepsOrder(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	carts := &saveFailingStore[cart.Cart]{MemoryStore: state.NewMemoryStore[cart.Cart]()}
	sessions := state.NewMemoryStore[checkout.Session]()
	orders := NewOrderService(repository.NewMemoryOrderRepository(logger), order.NewNumberGenerator(), nil, logger)
	service := NewCheckoutService(sessions, carts, catalog.Default(), orders, nil, logger)

	c := cart.New()
	c.AddItem(1, 50000, "Kaos Polos", "")
	require.NoError(t, carts.MemoryStore.Save(ctx, "s1", c))
	fillCheckout(t, service, "s1")

	carts.fail = true
	o, err := service.Complete(ctx, "s1", "user-1")

	require.NoError(t, err)
	require.NotNil(t, o)

	stored, err := orders.GetOrderByID(ctx, o.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)

	selections, err := service.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StepAddress, selections.Step)
}

func TestCheckoutService_Setters(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, nil)

	t.Run("fresh session starts at address step", func(t *testing.T) {
		selections, err := f.checkout.Get(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, model.StepAddress, selections.Step)
	})

	t.Run("steps may jump", func(t *testing.T) {
		selections, err := f.checkout.SetStep(ctx, "s1", model.StepPayment)
		require.NoError(t, err)
		assert.Equal(t, model.StepPayment, selections.Step)

		selections, err = f.checkout.SetStep(ctx, "s1", model.StepAddress)
		require.NoError(t, err)
		assert.Equal(t, model.StepAddress, selections.Step)
	})

	t.Run("step out of range", func(t *testing.T) {
		for _, step := range []model.Step{0, 4, -1} {
			_, err := f.checkout.SetStep(ctx, "s1", step)
			assert.ErrorIs(t, err, model.ErrInvalidStep)
		}
	})

	t.Run("unknown shipping method", func(t *testing.T) {
		_, err := f.checkout.SetShippingMethod(ctx, "s1", "teleport")
		assert.ErrorIs(t, err, model.ErrUnknownShippingMethod)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		_, err := f.checkout.SetPaymentMethod(ctx, "s1", "barter")
		assert.ErrorIs(t, err, model.ErrUnknownPaymentMethod)
	})

	t.Run("shipping method resolved from catalog", func(t *testing.T) {
		selections, err := f.checkout.SetShippingMethod(ctx, "s1", "same-day")
		require.NoError(t, err)
		require.NotNil(t, selections.ShippingMethod)
		assert.Equal(t, int64(40000), selections.ShippingMethod.Price)
	})

	t.Run("reset", func(t *testing.T) {
		fillCheckout(t, f.checkout, "s1")
		require.NoError(t, f.checkout.Reset(ctx, "s1"))

		selections, err := f.checkout.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, model.CheckoutSelections{Step: model.StepAddress}, *selections)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := f.checkout.SetStep(ctx, "", model.StepShipping)
		assert.ErrorIs(t, err, model.ErrMissingSession)
	})
}

func TestCheckoutService_Summary_NoShipping(t *testing.T) {
	ctx := context.Background()
	f := newCheckoutFixture(t, nil)

	_, err := f.cart.AddItem(ctx, "s1", 1, 50000, "Kaos Polos", "")
	require.NoError(t, err)

	summary, err := f.checkout.Summary(ctx, "s1")

	require.NoError(t, err)
	assert.Equal(t, 1, summary.ItemCount)
	assert.Equal(t, int64(50000), summary.Subtotal)
	assert.Equal(t, int64(0), summary.Shipping)
	assert.Equal(t, int64(50000), summary.Total)
	assert.Equal(t, "Rp 50.000", summary.FormattedTotal)
}

func TestCheckoutService_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	f := newCheckoutFixture(t, metrics.New(reg))

	_, err := f.checkout.Complete(ctx, "s1", "user-1")
	require.Error(t, err)

	_, err = f.cart.AddItem(ctx, "s1", 1, 50000, "Kaos Polos", "")
	require.NoError(t, err)
	fillCheckout(t, f.checkout, "s1")
	_, err = f.checkout.Complete(ctx, "s1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, 1.0, counterSum(t, reg, "storefront_checkout_failures_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "storefront_checkout_completions_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "storefront_orders_created_total"))
	assert.Equal(t, 1.0, counterSum(t, reg, "storefront_cart_mutations_total"))
}

// saveFailingStore wraps a memory store and fails writes once fail is set.
type saveFailingStore[T any] struct {
	*state.MemoryStore[T]
	fail bool
}

func (s *saveFailingStore[T]) Save(ctx context.Context, sessionID string, value *T) error {
	if s.fail {
		return errStoreDown
	}
	return s.MemoryStore.Save(ctx, sessionID, value)
}

func (s *saveFailingStore[T]) Delete(ctx context.Context, sessionID string) error {
	if s.fail {
		return errStoreDown
	}
	return s.MemoryStore.Delete(ctx, sessionID)
}
