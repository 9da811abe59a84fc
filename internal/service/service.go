package service

import (
	"context"

	"shopfront/internal/auth"
	"shopfront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for product management.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// CartService defines operations on the caller's active cart.
type CartService interface {
	// Get returns the active cart with its lines, creating an empty one if needed.
	Get(ctx context.Context, caller auth.Principal) (*model.Cart, error)

	// AddItem adds a product or merges into the existing line for it.
	AddItem(ctx context.Context, caller auth.Principal, req model.AddCartItemRequest) (*model.CartItem, error)

	// UpdateItem changes a line quantity.
	UpdateItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID, quantity int) (*model.CartItem, error)

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID) error

	// Clear removes every line from the active cart.
	Clear(ctx context.Context, caller auth.Principal) error
}

// AddressService defines operations on the caller's address book.
type AddressService interface {
	List(ctx context.Context, caller auth.Principal) ([]model.Address, error)
	Create(ctx context.Context, caller auth.Principal, req model.AddressRequest) (*model.Address, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// Checkout converts the caller's active cart into an order in one transaction.
	Checkout(ctx context.Context, caller auth.Principal, req model.CheckoutRequest) (*model.OrderResponse, error)

	// List returns the caller's orders, or every order for staff.
	List(ctx context.Context, caller auth.Principal, filter model.OrderFilter) ([]model.Order, error)

	// GetByID returns an order visible to the caller.
	GetByID(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.OrderResponse, error)

	// UpdateStatus applies a status transition and shipping details. It returns the
	// confirmation message for the caller.
	UpdateStatus(ctx context.Context, caller auth.Principal, id uuid.UUID, req model.StatusUpdateRequest) (string, error)
}

// ReviewService defines operations for order reviews.
type ReviewService interface {
	// Create records the caller's review of a delivered order.
	Create(ctx context.Context, caller auth.Principal, req model.ReviewRequest) (*model.OrderReview, error)
}
