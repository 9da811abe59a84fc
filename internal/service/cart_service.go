package service

import (
	"context"
	"fmt"

	"shopfront/internal/auth"
	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) Get(ctx context.Context, caller auth.Principal) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateActive(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}

// AddItem snapshots the product's current price on the new line.
func (s *cartService) AddItem(ctx context.Context, caller auth.Principal, req model.AddCartItemRequest) (*model.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsAvailable {
		return nil, model.ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreateActive(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	item, err := s.cartRepo.AddItem(ctx, cart.ID, product.ID, req.Quantity, product.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug().
		Str("cart_id", cart.ID.String()).
		Str("product_id", product.ID.String()).
		Int("quantity", item.Quantity).
		Msg("cart item added")

	return item, nil
}

func (s *cartService) UpdateItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, model.ErrInvalidQuantity
	}

	item, err := s.cartRepo.UpdateItemQuantity(ctx, caller.UserID, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if item == nil {
		return nil, model.ErrCartItemNotFound
	}
	return item, nil
}

func (s *cartService) RemoveItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID) error {
	deleted, err := s.cartRepo.DeleteItem(ctx, caller.UserID, itemID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !deleted {
		return model.ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, caller auth.Principal) error {
	cart, err := s.cartRepo.GetActive(ctx, caller.UserID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil
	}
	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
