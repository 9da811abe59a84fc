package repository

import (
	"context"
	"fmt"
	"strings"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

const couponColumns = `id, code, discount_type, discount_value, usage_limit, usage_limit_per_user,
	valid_from, valid_to, active, min_order_amount, max_discount, created_at, updated_at`

func scanCoupon(row pgx.Row) (model.Coupon, error) {
	var c model.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.DiscountType, &c.DiscountValue, &c.UsageLimit,
		&c.UsageLimitPerUser, &c.ValidFrom, &c.ValidTo, &c.Active, &c.MinOrderAmount,
		&c.MaxDiscount, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	c, err := scanCoupon(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// GetByCodeForUpdate locks the coupon row so usage counting is serialised
// across concurrent checkouts redeeming the same code.
func (r *couponRepository) GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE UPPER(code) = $1 FOR UPDATE`

	c, err := scanCoupon(tx.QueryRow(ctx, query, strings.ToUpper(strings.TrimSpace(code))))
	if err != nil {
		if isNoRows(err) {
			r.logger.Debug().Str("coupon_code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_code", code).Msg("failed to lock coupon")
		return nil, fmt.Errorf("failed to lock coupon: %w", err)
	}

	return &c, nil
}

func (r *couponRepository) CountUsage(ctx context.Context, tx pgx.Tx, couponID, userID uuid.UUID) (model.UsageCount, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE user_id = $2)
		FROM coupon_usages
		WHERE coupon_id = $1
	`

	var usage model.UsageCount
	if err := tx.QueryRow(ctx, query, couponID, userID).Scan(&usage.Total, &usage.User); err != nil {
		r.logger.Error().Err(err).Str("coupon_id", couponID.String()).Msg("failed to count coupon usage")
		return usage, fmt.Errorf("failed to count coupon usage: %w", err)
	}

	return usage, nil
}

func (r *couponRepository) CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.CouponUsage) error {
	query := `
		INSERT INTO coupon_usages (id, coupon_id, user_id, order_id, used_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := tx.Exec(ctx, query, usage.ID, usage.CouponID, usage.UserID, usage.OrderID, usage.UsedAt); err != nil {
		r.logger.Error().
			Err(err).
			Str("coupon_id", usage.CouponID.String()).
			Str("order_id", usage.OrderID.String()).
			Msg("failed to record coupon usage")
		return fmt.Errorf("failed to record coupon usage: %w", err)
	}

	return nil
}

// Upsert inserts a coupon or replaces the definition with the same code.
func (r *couponRepository) Upsert(ctx context.Context, c *model.Coupon) error {
	query := `
		INSERT INTO coupons (code, discount_type, discount_value, usage_limit, usage_limit_per_user,
			valid_from, valid_to, active, min_order_amount, max_discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (UPPER(code)) DO UPDATE SET
			discount_type = EXCLUDED.discount_type,
			discount_value = EXCLUDED.discount_value,
			usage_limit = EXCLUDED.usage_limit,
			usage_limit_per_user = EXCLUDED.usage_limit_per_user,
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to,
			active = EXCLUDED.active,
			min_order_amount = EXCLUDED.min_order_amount,
			max_discount = EXCLUDED.max_discount,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, strings.ToUpper(c.Code), c.DiscountType, c.DiscountValue,
		c.UsageLimit, c.UsageLimitPerUser, c.ValidFrom, c.ValidTo, c.Active, c.MinOrderAmount,
		c.MaxDiscount,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("coupon_code", c.Code).Msg("failed to upsert coupon")
		return fmt.Errorf("failed to upsert coupon: %w", err)
	}

	return nil
}
