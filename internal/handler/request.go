package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// AddItemRequest is the body of POST /api/cart/items.
type AddItemRequest struct {
	ProductID int64  `json:"productId" validate:"required,min=1"`
	Name      string `json:"name" validate:"required,max=200"`
	Price     *int64 `json:"price" validate:"required,min=0"`
	Image     string `json:"image" validate:"max=500"`
}

// SetQuantityRequest is the body of PUT /api/cart/items/{productID}.
// Values below 1 are accepted and ignored by the cart.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// SetStepRequest is the body of PUT /api/checkout/step.
type SetStepRequest struct {
	Step *int `json:"step" validate:"required"`
}

// ShippingAddressRequest is the body of PUT /api/checkout/address.
type ShippingAddressRequest struct {
	FullName   string `json:"fullName" validate:"required,max=100"`
	Phone      string `json:"phone" validate:"required,min=8,max=20"`
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postalCode" validate:"required,numeric,len=5"`
	Notes      string `json:"notes" validate:"max=300"`
}

func (req ShippingAddressRequest) toModel() model.ShippingAddress {
	return model.ShippingAddress{
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		PostalCode: strings.TrimSpace(req.PostalCode),
		Notes:      strings.TrimSpace(req.Notes),
	}
}

// SelectMethodRequest is the body of PUT /api/checkout/shipping and /payment.
type SelectMethodRequest struct {
	MethodID string `json:"methodId" validate:"required"`
}

// UpdateStatusRequest is the body of PUT /api/orders/{id}/status.
type UpdateStatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
	TrackingNumber *string `json:"trackingNumber" validate:"omitnil,notblank,max=64"`
}

// SetTrackingRequest is the body of PUT /api/orders/{id}/tracking.
type SetTrackingRequest struct {
	TrackingNumber string `json:"trackingNumber" validate:"required,notblank,max=64"`
}

// requestError is a client error found while decoding a body.
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string {
	return e.message
}

// decodeJSON decodes and validates the request body into dest.
func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	defer io.Copy(io.Discard, r.Body)

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return &requestError{code: model.ErrCodeInvalidJSON, message: "invalid request body"}
	}

	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) *requestError {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return &requestError{code: model.ErrCodeValidation, message: "validation failed"}
	}

	messages := make([]string, 0, len(errs))
	code := model.ErrCodeValidation
	for _, fe := range errs {
		if fe.Tag() == "required" {
			code = model.ErrCodeMissingField
		}
		messages = append(messages, fe.Field()+" "+validationMessage(fe))
	}
	sort.Strings(messages)

	return &requestError{code: code, message: strings.Join(messages, "; ")}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "notblank":
		return "must not be blank"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}

func writeRequestError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		writeError(w, r, http.StatusBadRequest, reqErr.code, reqErr.message, logger)
		return
	}
	writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
}
