package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*model.CartView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID string, productID, price int64, name, image string) (*model.CartView, error) {
	args := m.Called(ctx, sessionID, productID, price, name, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*model.CartView, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*model.CartView, error) {
	args := m.Called(ctx, sessionID, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) selections(args mock.Arguments) (*model.CheckoutSelections, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSelections), args.Error(1)
}

func (m *MockCheckoutService) Get(ctx context.Context, sessionID string) (*model.CheckoutSelections, error) {
	return m.selections(m.Called(ctx, sessionID))
}

func (m *MockCheckoutService) SetStep(ctx context.Context, sessionID string, step model.Step) (*model.CheckoutSelections, error) {
	return m.selections(m.Called(ctx, sessionID, step))
}

func (m *MockCheckoutService) SetShippingAddress(ctx context.Context, sessionID string, address model.ShippingAddress) (*model.CheckoutSelections, error) {
	return m.selections(m.Called(ctx, sessionID, address))
}

func (m *MockCheckoutService) SetShippingMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error) {
	return m.selections(m.Called(ctx, sessionID, methodID))
}

func (m *MockCheckoutService) SetPaymentMethod(ctx context.Context, sessionID, methodID string) (*model.CheckoutSelections, error) {
	return m.selections(m.Called(ctx, sessionID, methodID))
}

func (m *MockCheckoutService) Reset(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockCheckoutService) Summary(ctx context.Context, sessionID string) (*model.CheckoutSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutSummary), args.Error(1)
}

func (m *MockCheckoutService) Complete(ctx context.Context, sessionID, userID string) (*model.Order, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) order(args mock.Arguments) (*model.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.Order, error) {
	return m.order(m.Called(ctx, req))
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	return m.order(m.Called(ctx, id, status))
}

func (m *MockOrderService) UpdateStatusWithTracking(ctx context.Context, id uuid.UUID, status model.OrderStatus, trackingNumber string) (*model.Order, error) {
	args := m.Called(ctx, id, status, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrderService) SetTrackingNumber(ctx context.Context, id uuid.UUID, trackingNumber string) (*model.Order, error) {
	return m.order(m.Called(ctx, id, trackingNumber))
}

func (m *MockOrderService) GetOrdersForUser(ctx context.Context, userID string, status *model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return m.order(m.Called(ctx, id))
}

// newRequest builds a request with optional JSON body, identity headers and
// chi URL parameters.
func newRequest(t *testing.T, method, target string, body interface{}, headers map[string]string, params map[string]string) *http.Request {
	t.Helper()

	var buf []byte
	switch b := body.(type) {
	case nil:
	case string:
		buf = []byte(b)
	default:
		var err error
		buf, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var sessionHeaders = map[string]string{SessionIDHeader: "s1"}
