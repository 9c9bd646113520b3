package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeMissingField            = "MISSING_FIELD"
	ErrCodeValidation              = "VALIDATION_FAILED"
	ErrCodeEmptyCart               = "EMPTY_CART"
	ErrCodeIncompleteCheckout      = "INCOMPLETE_CHECKOUT"
	ErrCodeInvalidQuantity         = "INVALID_QUANTITY"
	ErrCodeInvalidStep             = "INVALID_STEP"
	ErrCodeInvalidStatus           = "INVALID_STATUS"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidShippingPrice    = "INVALID_SHIPPING_PRICE"
	ErrCodeUnknownShippingMethod   = "UNKNOWN_SHIPPING_METHOD"
	ErrCodeUnknownPaymentMethod    = "UNKNOWN_PAYMENT_METHOD"
	ErrCodeMissingUser             = "MISSING_USER"
	ErrCodeMissingSession          = "MISSING_SESSION"
	ErrCodeMissingTracking         = "MISSING_TRACKING_NUMBER"
	ErrCodeOrderNotFound           = "ORDER_NOT_FOUND"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyCart               = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrIncompleteCheckout      = NewDomainError(ErrCodeIncompleteCheckout, "Checkout is incomplete")
	ErrInvalidQuantity         = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidStep             = NewDomainError(ErrCodeInvalidStep, "Checkout step must be 1, 2 or 3")
	ErrInvalidStatus           = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidStatusTransition = NewDomainError(ErrCodeInvalidStatusTransition, "Order cannot move to the requested status")
	ErrInvalidShippingPrice    = NewDomainError(ErrCodeInvalidShippingPrice, "Shipping price cannot be negative")
	ErrUnknownShippingMethod   = NewDomainError(ErrCodeUnknownShippingMethod, "Unknown shipping method")
	ErrUnknownPaymentMethod    = NewDomainError(ErrCodeUnknownPaymentMethod, "Unknown payment method")
	ErrMissingUser             = NewDomainError(ErrCodeMissingUser, "User ID is required")
	ErrMissingSession          = NewDomainError(ErrCodeMissingSession, "Session ID is required")
	ErrMissingTracking         = NewDomainError(ErrCodeMissingTracking, "Tracking number is required")
)
