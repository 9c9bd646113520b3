package order

import (
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/pricing"

	"github.com/google/uuid"
)

// Validate checks that req describes an order that can be placed.
func Validate(req *model.CreateOrderRequest) error {
	if req == nil || len(pricing.Merge(req.Items)) == 0 {
		return model.ErrEmptyCart
	}

	if strings.TrimSpace(req.UserID) == "" {
		return model.ErrMissingUser
	}

	if req.ShippingPrice < 0 {
		return model.ErrInvalidShippingPrice
	}

	for _, item := range req.Items {
		if item.Quantity < 1 {
			return model.ErrInvalidQuantity
		}
	}

	return nil
}

// New builds a pending order from req. Items are copied out of the request
// and the total is computed once here; nothing recomputes it afterwards.
func New(req *model.CreateOrderRequest, id uuid.UUID, number string, now time.Time) (*model.Order, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	lines := pricing.Merge(req.Items)
	items := make([]model.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = model.OrderItem{
			LineNo:    i + 1,
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		}
	}

	return &model.Order{
		ID:              id,
		OrderNumber:     number,
		UserID:          req.UserID,
		Status:          model.OrderStatusPending,
		Items:           items,
		Total:           pricing.TotalWithShipping(lines, req.ShippingPrice),
		ShippingCost:    req.ShippingPrice,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
