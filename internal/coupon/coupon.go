package coupon

import (
	"context"
	"time"

	"shopfront/internal/model"

	"github.com/shopspring/decimal"
)

// Validator defines coupon eligibility checks and discount computation.
type Validator interface {
	// Validate checks a coupon against a candidate order amount.
	// It fails with the specific violated reason:
	// - inactive or outside the validity window
	// - amount below the minimum order amount
	// - global usage count at or above the usage limit
	// - the user's usage count at or above the per-user limit
	Validate(c *model.Coupon, usage model.UsageCount, amount decimal.Decimal, now time.Time) error

	// Discount computes the discount the coupon grants on amount.
	Discount(c *model.Coupon, amount decimal.Decimal) decimal.Decimal
}

// Set represents coupon definitions keyed by code.
type Set interface {
	// Get returns the coupon with the given code.
	Get(code string) (model.Coupon, bool)

	// All returns every coupon in the set.
	All() []model.Coupon

	// Size returns the number of coupons in the set.
	Size() int
}

// Loader defines the interface for loading coupon definition files.
type Loader interface {
	// Load reads a gzipped CSV coupon file and returns a Set.
	Load(ctx context.Context, filePath string) (Set, error)
}

// Store persists coupon definitions.
type Store interface {
	// Upsert inserts the coupon or updates the existing one with the same code.
	Upsert(ctx context.Context, c *model.Coupon) error
}
