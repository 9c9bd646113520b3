package model

import "strings"

// Step is the position of the checkout wizard.
type Step int

const (
	StepAddress  Step = 1
	StepShipping Step = 2
	StepPayment  Step = 3
)

// Valid reports whether s is one of the three wizard steps.
func (s Step) Valid() bool {
	return s >= StepAddress && s <= StepPayment
}

// ShippingAddress is the recipient address chosen in the first checkout step.
type ShippingAddress struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes,omitempty"`
}

// Format renders the address as the single line stored on an order.
func (a ShippingAddress) Format() string {
	parts := []string{a.FullName, a.Phone, a.Address, a.City, a.PostalCode}
	formatted := strings.Join(parts, ", ")
	if notes := strings.TrimSpace(a.Notes); notes != "" {
		formatted += ", Catatan: " + notes
	}
	return formatted
}

// ShippingMethod is a flat-priced delivery option.
type ShippingMethod struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Estimated string `json:"estimated"`
}

// PaymentMethod is a payment option shown in the last checkout step.
type PaymentMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CheckoutSelections holds the wizard cursor and the choices made so far.
type CheckoutSelections struct {
	Step            Step             `json:"step"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	ShippingMethod  *ShippingMethod  `json:"shippingMethod"`
	PaymentMethod   *PaymentMethod   `json:"paymentMethod"`
}

// CheckoutSummary is the money breakdown for the current cart and shipping choice.
type CheckoutSummary struct {
	ItemCount      int    `json:"itemCount"`
	Subtotal       int64  `json:"subtotal"`
	Shipping       int64  `json:"shipping"`
	Total          int64  `json:"total"`
	FormattedTotal string `json:"formattedTotal"`
}
