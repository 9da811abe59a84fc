package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is a step in the order lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether next is an allowed successor of s.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// Display returns the human readable status label.
func (s OrderStatus) Display() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusPaid:
		return "Paid"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Order is an immutable record of a completed checkout with a status lifecycle.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user" db:"user_id"`
	AddressID      *uuid.UUID      `json:"address_id,omitempty" db:"address_id"`
	Status         OrderStatus     `json:"status" db:"status"`
	Total          decimal.Decimal `json:"total" db:"total"`
	Discount       decimal.Decimal `json:"discount" db:"discount"`
	Tax            decimal.Decimal `json:"tax" db:"tax"`
	Shipping       decimal.Decimal `json:"shipping" db:"shipping"`
	CouponID       *uuid.UUID      `json:"coupon_id,omitempty" db:"coupon_id"`
	TrackingNumber *string         `json:"tracking_number,omitempty" db:"tracking_number"`
	AdminNote      *string         `json:"admin_note,omitempty" db:"admin_note"`
	CheckedOutAt   time.Time       `json:"checked_out_at" db:"checked_out_at"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// OrderItem is a line of an order. Name and price are frozen at checkout time.
type OrderItem struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// OrderResponse is the representation of an order returned by the API.
type OrderResponse struct {
	Order
	Address         *Address      `json:"address,omitempty"`
	Coupon          *Coupon       `json:"coupon,omitempty"`
	Items           []OrderItem   `json:"items"`
	Reviews         []OrderReview `json:"reviews"`
	ShippingWarning string        `json:"shipping_warning,omitempty"`
}

// CheckoutRequest is the payload for POST /api/orders/checkout.
type CheckoutRequest struct {
	CouponCode string `json:"coupon_code" validate:"omitempty,max=50"`
}

// StatusUpdateRequest is the payload for PATCH /api/orders/{id}/status.
type StatusUpdateRequest struct {
	Status         *OrderStatus `json:"status,omitempty"`
	TrackingNumber *string      `json:"tracking_number,omitempty" validate:"omitempty,max=100"`
	AdminNote      *string      `json:"admin_note,omitempty"`
}

// DetailResponse carries a single human readable message.
type DetailResponse struct {
	Detail string `json:"detail"`
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	UserID *uuid.UUID
	Status *OrderStatus
	Limit  int
	Offset int
}
