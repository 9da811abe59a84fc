package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements the ReviewRepository interface using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

func (r *reviewRepository) Exists(ctx context.Context, orderID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_reviews WHERE order_id = $1 AND user_id = $2)`,
		orderID, userID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to check review")
		return false, fmt.Errorf("failed to check review: %w", err)
	}
	return exists, nil
}

// Create inserts a review. The unique (order_id, user_id) index turns a lost race
// into model.ErrDuplicateReview.
func (r *reviewRepository) Create(ctx context.Context, review *model.OrderReview) error {
	query := `
		INSERT INTO order_reviews (order_id, user_id, rating, review)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, review.OrderID, review.UserID, review.Rating, review.Review).
		Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateReview
		}
		r.logger.Error().Err(err).Str("order_id", review.OrderID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderReview, error) {
	query := `
		SELECT id, order_id, user_id, rating, review, created_at, updated_at
		FROM order_reviews
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews, err := collect(rows, func(rows pgx.Rows) (model.OrderReview, error) {
		var rv model.OrderReview
		err := rows.Scan(&rv.ID, &rv.OrderID, &rv.UserID, &rv.Rating, &rv.Review, &rv.CreatedAt, &rv.UpdatedAt)
		return rv, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan review rows")
		return nil, fmt.Errorf("failed to scan reviews: %w", err)
	}

	return reviews, nil
}
