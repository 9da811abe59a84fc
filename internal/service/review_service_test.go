package service

import (
	"context"
	"testing"

	"shopfront/internal/auth"
	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewService_Create(t *testing.T) {
	ownerID := uuid.New()
	orderID := uuid.New()
	owner := auth.Principal{UserID: ownerID, Role: model.RoleCustomer}

	delivered := &model.Order{ID: orderID, UserID: ownerID, Status: model.OrderStatusDelivered}
	shipped := &model.Order{ID: orderID, UserID: ownerID, Status: model.OrderStatusShipped}

	tests := []struct {
		name        string
		caller      auth.Principal
		rating      int
		order       *model.Order
		exists      bool
		createErr   error
		expectError error
		errorMsg    string
	}{
		{
			name:   "success",
			caller: owner,
			rating: 5,
			order:  delivered,
		},
		{
			name:        "rating too low",
			caller:      owner,
			rating:      0,
			order:       delivered,
			expectError: model.ErrInvalidRating,
			errorMsg:    "Rating must be between 1 and 5.",
		},
		{
			name:        "rating too high",
			caller:      owner,
			rating:      6,
			order:       delivered,
			expectError: model.ErrInvalidRating,
			errorMsg:    "Rating must be between 1 and 5.",
		},
		{
			name:        "order missing",
			caller:      owner,
			rating:      4,
			expectError: model.ErrOrderMissing,
			errorMsg:    "Order does not exist.",
		},
		{
			name:        "already reviewed",
			caller:      owner,
			rating:      4,
			order:       delivered,
			exists:      true,
			expectError: model.ErrDuplicateReview,
			errorMsg:    "You have already reviewed this order.",
		},
		{
			name:        "not delivered",
			caller:      owner,
			rating:      4,
			order:       shipped,
			expectError: model.ErrReviewForbidden,
			errorMsg:    "You can only review your own delivered orders.",
		},
		{
			name:        "not owner",
			caller:      auth.Principal{UserID: uuid.New(), Role: model.RoleAdmin},
			rating:      4,
			order:       delivered,
			expectError: model.ErrReviewForbidden,
		},
		{
			name:        "lost race on unique index",
			caller:      owner,
			rating:      3,
			order:       delivered,
			createErr:   model.ErrDuplicateReview,
			expectError: model.ErrDuplicateReview,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			reviews := new(MockReviewRepository)
			svc := NewReviewService(orders, reviews, zerolog.Nop())

			if tt.order != nil {
				orders.On("GetByID", mock.Anything, orderID).Return(tt.order, nil)
			} else {
				orders.On("GetByID", mock.Anything, orderID).Return(nil, nil)
			}
			reviews.On("Exists", mock.Anything, orderID, tt.caller.UserID).Return(tt.exists, nil)
			reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.OrderReview")).Return(tt.createErr)

			text := "great"
			review, err := svc.Create(context.Background(), tt.caller, model.ReviewRequest{
				OrderID: orderID,
				Rating:  tt.rating,
				Review:  &text,
			})

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				if tt.errorMsg != "" {
					assert.Equal(t, tt.errorMsg, err.Error())
				}
				assert.Nil(t, review)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, orderID, review.OrderID)
			assert.Equal(t, ownerID, review.UserID)
			assert.Equal(t, tt.rating, review.Rating)
			assert.Equal(t, "great", *review.Review)
		})
	}
}
