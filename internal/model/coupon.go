package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType selects how a coupon discount is computed.
type DiscountType string

const (
	DiscountFixed   DiscountType = "fixed"
	DiscountPercent DiscountType = "percent"
)

// Coupon is a code granting a discount, subject to a validity window and usage limits.
type Coupon struct {
	ID                uuid.UUID           `json:"id" db:"id"`
	Code              string              `json:"code" db:"code"`
	DiscountType      DiscountType        `json:"discount_type" db:"discount_type"`
	DiscountValue     decimal.Decimal     `json:"discount_value" db:"discount_value"`
	UsageLimit        *int                `json:"usage_limit,omitempty" db:"usage_limit"`
	UsageLimitPerUser *int                `json:"usage_limit_per_user,omitempty" db:"usage_limit_per_user"`
	ValidFrom         time.Time           `json:"valid_from" db:"valid_from"`
	ValidTo           time.Time           `json:"valid_to" db:"valid_to"`
	Active            bool                `json:"active" db:"active"`
	MinOrderAmount    decimal.Decimal     `json:"min_order_amount" db:"min_order_amount"`
	MaxDiscount       decimal.NullDecimal `json:"max_discount" db:"max_discount"`
	CreatedAt         time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at" db:"updated_at"`
}

// CouponUsage records one redemption of a coupon.
type CouponUsage struct {
	ID       uuid.UUID `json:"id" db:"id"`
	CouponID uuid.UUID `json:"coupon" db:"coupon_id"`
	UserID   uuid.UUID `json:"user" db:"user_id"`
	OrderID  uuid.UUID `json:"order" db:"order_id"`
	UsedAt   time.Time `json:"used_at" db:"used_at"`
}

// UsageCount is the number of redemptions of a coupon, overall and by one user.
type UsageCount struct {
	Total int
	User  int
}
