// Package catalog provides the shipping and payment methods offered at
// checkout.
package catalog

import (
	"context"
	"fmt"

	"storefront/internal/model"
)

// Loader defines the interface for loading a catalog file.
type Loader interface {
	// Load reads a JSON catalog (optionally gzipped) and returns it validated.
	Load(ctx context.Context, path string) (*Catalog, error)
}

// Catalog is the set of shipping and payment methods a customer may pick
// from. Prices in the catalog are authoritative: the shipping price frozen
// into an order is read from here.
type Catalog struct {
	Shipping []model.ShippingMethod `json:"shippingMethods"`
	Payment  []model.PaymentMethod  `json:"paymentMethods"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Shipping: []model.ShippingMethod{
			{ID: "regular", Name: "Reguler", Price: 15000, Estimated: "3-5 hari"},
			{ID: "express", Name: "Express", Price: 25000, Estimated: "1-2 hari"},
			{ID: "same-day", Name: "Same Day", Price: 40000, Estimated: "Hari ini"},
		},
		Payment: []model.PaymentMethod{
			{ID: "bank-transfer", Name: "Transfer Bank", Description: "Transfer melalui bank BCA, BRI, BNI, atau Mandiri", Icon: "🏦"},
			{ID: "credit-card", Name: "Kartu Kredit", Description: "Bayar dengan kartu kredit Visa/Mastercard", Icon: "💳"},
			{ID: "e-wallet", Name: "E-Wallet", Description: "GOPAY, OVO, Dana, atau ShopeePay", Icon: "📱"},
			{ID: "cod", Name: "Bayar di Tempat", Description: "Bayar ketika pesanan diterima", Icon: "💰"},
		},
	}
}

// ShippingMethods returns a copy of the shipping methods.
func (c *Catalog) ShippingMethods() []model.ShippingMethod {
	return append([]model.ShippingMethod(nil), c.Shipping...)
}

// PaymentMethods returns a copy of the payment methods.
func (c *Catalog) PaymentMethods() []model.PaymentMethod {
	return append([]model.PaymentMethod(nil), c.Payment...)
}

// ShippingMethod looks up a shipping method by ID.
func (c *Catalog) ShippingMethod(id string) (model.ShippingMethod, bool) {
	for _, m := range c.Shipping {
		if m.ID == id {
			return m, true
		}
	}
	return model.ShippingMethod{}, false
}

// PaymentMethod looks up a payment method by ID.
func (c *Catalog) PaymentMethod(id string) (model.PaymentMethod, bool) {
	for _, m := range c.Payment {
		if m.ID == id {
			return m, true
		}
	}
	return model.PaymentMethod{}, false
}

// Validate checks that the catalog offers at least one method of each kind,
// that IDs are present and unique, and that no shipping price is negative.
func (c *Catalog) Validate() error {
	if len(c.Shipping) == 0 {
		return fmt.Errorf("catalog has no shipping methods")
	}
	if len(c.Payment) == 0 {
		return fmt.Errorf("catalog has no payment methods")
	}

	seen := make(map[string]bool, len(c.Shipping))
	for i, m := range c.Shipping {
		if m.ID == "" {
			return fmt.Errorf("shipping method %d: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate shipping method id: %s", m.ID)
		}
		if m.Price < 0 {
			return fmt.Errorf("shipping method %s: price cannot be negative", m.ID)
		}
		seen[m.ID] = true
	}

	seen = make(map[string]bool, len(c.Payment))
	for i, m := range c.Payment {
		if m.ID == "" {
			return fmt.Errorf("payment method %d: id is required", i)
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate payment method id: %s", m.ID)
		}
		seen[m.ID] = true
	}

	return nil
}
