// Package checkout holds the in-progress checkout wizard for one shopping
// session.
package checkout

import (
	"fmt"

	"storefront/internal/model"
)

// Session is the wizard cursor plus the address, shipping and payment
// choices for the next order. Setters are unconditional: the caller decides
// the order in which steps are visited.
type Session struct {
	Step            model.Step             `json:"step"`
	ShippingAddress *model.ShippingAddress `json:"shippingAddress"`
	ShippingMethod  *model.ShippingMethod  `json:"shippingMethod"`
	PaymentMethod   *model.PaymentMethod   `json:"paymentMethod"`
}

// New returns a session at the address step with nothing selected.
func New() *Session {
	return &Session{Step: model.StepAddress}
}

// SetStep moves the wizard cursor to step.
func (s *Session) SetStep(step model.Step) {
	s.Step = step
}

// SetShippingAddress stores a copy of the recipient address.
func (s *Session) SetShippingAddress(address model.ShippingAddress) {
	s.ShippingAddress = &address
}

// SetShippingMethod replaces the selected shipping method.
func (s *Session) SetShippingMethod(method model.ShippingMethod) {
	s.ShippingMethod = &method
}

// SetPaymentMethod replaces the selected payment method.
func (s *Session) SetPaymentMethod(method model.PaymentMethod) {
	s.PaymentMethod = &method
}

// Reset returns the session to the address step and drops every selection.
func (s *Session) Reset() {
	*s = Session{Step: model.StepAddress}
}

// Ready reports whether every selection needed to place an order is present.
func (s *Session) Ready() error {
	switch {
	case s.ShippingAddress == nil:
		return fmt.Errorf("%w: shipping address not selected", model.ErrIncompleteCheckout)
	case s.ShippingMethod == nil:
		return fmt.Errorf("%w: shipping method not selected", model.ErrIncompleteCheckout)
	case s.PaymentMethod == nil:
		return fmt.Errorf("%w: payment method not selected", model.ErrIncompleteCheckout)
	}
	return nil
}

// Selections returns a copy of the session state for readers.
func (s *Session) Selections() model.CheckoutSelections {
	selections := model.CheckoutSelections{Step: s.Step}
	if s.ShippingAddress != nil {
		address := *s.ShippingAddress
		selections.ShippingAddress = &address
	}
	if s.ShippingMethod != nil {
		method := *s.ShippingMethod
		selections.ShippingMethod = &method
	}
	if s.PaymentMethod != nil {
		method := *s.PaymentMethod
		selections.PaymentMethod = &method
	}
	return selections
}
