package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderReview is a customer's rating of a delivered order.
type OrderReview struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order" db:"order_id"`
	UserID    uuid.UUID `json:"user" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    *string   `json:"review,omitempty" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ReviewRequest is the payload for POST /api/orders/reviews.
type ReviewRequest struct {
	OrderID uuid.UUID `json:"order" validate:"required"`
	Rating  int       `json:"rating"`
	Review  *string   `json:"review,omitempty"`
}
