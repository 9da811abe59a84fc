package service

import (
	"context"
	"fmt"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
	logger     zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(orderRepo repository.OrderRepository, reviewRepo repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		orderRepo:  orderRepo,
		reviewRepo: reviewRepo,
		logger:     logger.With().Str("service", "review").Logger(),
	}
}

// Create checks rating, order existence, duplicates and ownership in that order.
func (s *reviewService) Create(ctx context.Context, caller auth.Principal, req model.ReviewRequest) (*model.OrderReview, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderMissing
	}

	exists, err := s.reviewRepo.Exists(ctx, order.ID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check review: %w", err)
	}
	if exists {
		return nil, model.ErrDuplicateReview
	}

	if order.UserID != caller.UserID || order.Status != model.OrderStatusDelivered {
		s.logger.Debug().
			Str("order_id", order.ID.String()).
			Str("user_id", caller.UserID.String()).
			Str("status", string(order.Status)).
			Msg("review rejected")
		return nil, model.ErrReviewForbidden
	}

	review := &model.OrderReview{
		OrderID: order.ID,
		UserID:  caller.UserID,
		Rating:  req.Rating,
		Review:  req.Review,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("rating", review.Rating).
		Msg("review created")

	return review, nil
}
