package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is a user's in-progress collection of products.
// A user has at most one active cart at a time.
type Cart struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user" db:"user_id"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CheckedOut bool       `json:"checked_out" db:"checked_out"`
	Items      []CartLine `json:"items"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

// CartItem is a product line in a cart. Price is the product price when the line was added.
type CartItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	CartID    uuid.UUID       `json:"cart" db:"cart_id"`
	ProductID uuid.UUID       `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// CartLine is a cart item joined with the product's current catalogue state.
type CartLine struct {
	CartItem
	ProductName  string          `json:"product_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Stock        int             `json:"stock"`
}

// LineTotal returns the current price multiplied by the quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.CurrentPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// AddCartItemRequest is the payload for adding a product to the active cart.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItemRequest is the payload for changing a line quantity.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}
