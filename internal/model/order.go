package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var statusLabels = map[OrderStatus]string{
	OrderStatusPending:    "Menunggu Pembayaran",
	OrderStatusProcessing: "Sedang Diproses",
	OrderStatusShipped:    "Dikirim",
	OrderStatusDelivered:  "Terkirim",
	OrderStatusCancelled:  "Dibatalkan",
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns the customer-facing status text.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Order is a placed order. Everything except Status, TrackingNumber and
// UpdatedAt is frozen at creation.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	OrderNumber     string      `json:"orderNumber" db:"order_number"`
	UserID          string      `json:"userId" db:"user_id"`
	Status          OrderStatus `json:"status" db:"status"`
	Items           []OrderItem `json:"items"`
	Total           int64       `json:"total" db:"total"`
	ShippingCost    int64       `json:"shippingCost" db:"shipping_cost"`
	ShippingAddress string      `json:"shippingAddress" db:"shipping_address"`
	PaymentMethod   string      `json:"paymentMethod" db:"payment_method"`
	TrackingNumber  *string     `json:"trackingNumber,omitempty" db:"tracking_number"`
	CreatedAt       time.Time   `json:"date" db:"created_at"`
	UpdatedAt       time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a frozen copy of a cart line.
type OrderItem struct {
	LineNo    int    `json:"id" db:"line_no"`
	ProductID int64  `json:"productId" db:"product_id"`
	Name      string `json:"name" db:"name"`
	Price     int64  `json:"price" db:"price"`
	Quantity  int    `json:"quantity" db:"quantity"`
	Image     string `json:"image" db:"image"`
}

// CreateOrderRequest carries everything the ledger needs to place an order.
type CreateOrderRequest struct {
	Items           []CartLine
	ShippingAddress string
	PaymentMethod   string
	UserID          string
	ShippingPrice   int64
}

// OrderResponse wraps an order with its status label for API consumers.
type OrderResponse struct {
	*Order
	StatusLabel string `json:"statusLabel"`
}

// NewOrderResponse builds the API representation of o.
func NewOrderResponse(o *Order) *OrderResponse {
	return &OrderResponse{Order: o, StatusLabel: o.Status.Label()}
}
