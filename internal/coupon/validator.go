package coupon

import (
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// validator implements Validator.
type validator struct {
	logger zerolog.Logger
}

// NewValidator creates a new coupon validator.
func NewValidator(logger zerolog.Logger) Validator {
	return &validator{
		logger: logger.With().Str("component", "coupon-validator").Logger(),
	}
}

// Validate checks a coupon against a candidate order amount.
func (v *validator) Validate(c *model.Coupon, usage model.UsageCount, amount decimal.Decimal, now time.Time) error {
	if !c.Active || now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		v.logger.Debug().
			Str("coupon_code", c.Code).
			Bool("active", c.Active).
			Time("valid_to", c.ValidTo).
			Msg("coupon inactive or expired")
		return model.ErrCouponInactive
	}

	if amount.LessThan(c.MinOrderAmount) {
		v.logger.Debug().
			Str("coupon_code", c.Code).
			Str("amount", amount.String()).
			Str("min_order_amount", c.MinOrderAmount.String()).
			Msg("order below coupon minimum")
		return model.ErrCouponMinimum
	}

	if c.UsageLimit != nil && usage.Total >= *c.UsageLimit {
		v.logger.Debug().
			Str("coupon_code", c.Code).
			Int("usage", usage.Total).
			Int("usage_limit", *c.UsageLimit).
			Msg("coupon usage limit reached")
		return model.ErrCouponExhausted
	}

	if c.UsageLimitPerUser != nil && usage.User >= *c.UsageLimitPerUser {
		v.logger.Debug().
			Str("coupon_code", c.Code).
			Int("user_usage", usage.User).
			Int("usage_limit_per_user", *c.UsageLimitPerUser).
			Msg("coupon per-user limit reached")
		return model.ErrCouponUserExhausted
	}

	return nil
}

// Discount computes the discount: the flat value for fixed coupons, amount * value/100
// for percent coupons, capped at MaxDiscount when set and never above amount.
func (v *validator) Discount(c *model.Coupon, amount decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case model.DiscountFixed:
		discount = c.DiscountValue
	case model.DiscountPercent:
		discount = amount.Mul(c.DiscountValue.Div(hundred))
	default:
		v.logger.Warn().
			Str("coupon_code", c.Code).
			Str("discount_type", string(c.DiscountType)).
			Msg("unknown discount type")
		return decimal.Zero
	}

	if c.MaxDiscount.Valid && discount.GreaterThan(c.MaxDiscount.Decimal) {
		discount = c.MaxDiscount.Decimal
	}
	if discount.GreaterThan(amount) {
		discount = amount
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	return discount.Round(2)
}
