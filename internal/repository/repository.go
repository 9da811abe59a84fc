package repository

import (
	"context"
	"time"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TxBeginner starts database transactions.
type TxBeginner interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// DecrementStock lowers stock for every line within the transaction, flooring at zero.
	DecrementStock(ctx context.Context, tx pgx.Tx, lines []model.CartLine) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetActive returns the user's active cart with its lines, or nil when none exists.
	GetActive(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// GetOrCreateActive returns the user's active cart, creating an empty one if needed.
	GetOrCreateActive(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// Lines returns the cart's lines joined with current product data.
	Lines(ctx context.Context, cartID uuid.UUID) ([]model.CartLine, error)

	// LockActive locks and returns the user's active cart, or nil when none exists.
	LockActive(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error)

	// LockLines locks the cart lines and their products in product id order.
	LockLines(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartLine, error)

	// AddItem adds a product line or merges the quantity into an existing one.
	AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int, price decimal.Decimal) (*model.CartItem, error)

	// UpdateItemQuantity sets the quantity of a line in the user's active cart.
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error)

	// DeleteItem removes a line from the user's active cart.
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error)

	// Clear removes every line from the cart.
	Clear(ctx context.Context, cartID uuid.UUID) error

	// CloseCheckedOut empties the cart and marks it inactive and checked out.
	CloseCheckedOut(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// AddressRepository defines the interface for address book access.
type AddressRepository interface {
	// ListByUser returns the user's addresses, default first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)

	// GetByID returns an address by id, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error)

	// CheckoutAddress returns the default address, else the first created one, else nil.
	CheckoutAddress(ctx context.Context, userID uuid.UUID) (*model.Address, error)

	// Create inserts an address. A default address unsets the user's other defaults.
	Create(ctx context.Context, address *model.Address) error
}

// RateRepository resolves shipping and tax configuration for a destination country.
type RateRepository interface {
	// ShippingMethods returns active methods of active zones serving the country.
	ShippingMethods(ctx context.Context, country string) ([]model.ShippingMethod, error)

	// TaxRate returns the latest rate in effect on the given day, or nil when none applies.
	TaxRate(ctx context.Context, country string, on time.Time) (*model.TaxRate, error)
}

// CouponRepository defines the interface for coupon data access operations.
type CouponRepository interface {
	// GetByID returns a coupon by id, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// GetByCodeForUpdate locks the coupon with the given code, matched case-insensitively.
	GetByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*model.Coupon, error)

	// CountUsage counts redemptions overall and by the given user.
	CountUsage(ctx context.Context, tx pgx.Tx, couponID, userID uuid.UUID) (model.UsageCount, error)

	// CreateUsage records a redemption.
	CreateUsage(ctx context.Context, tx pgx.Tx, usage *model.CouponUsage) error

	// Upsert inserts a coupon or replaces the definition with the same code.
	Upsert(ctx context.Context, coupon *model.Coupon) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	TxBeginner

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// Items returns the lines of an order.
	Items(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// List returns orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// LockByID locks and returns an order, or nil when it does not exist.
	LockByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// Update persists status, tracking number and admin note.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error
}

// ReviewRepository defines the interface for order review access.
type ReviewRepository interface {
	// Exists reports whether the user already reviewed the order.
	Exists(ctx context.Context, orderID, userID uuid.UUID) (bool, error)

	// Create inserts a review. A concurrent duplicate yields model.ErrDuplicateReview.
	Create(ctx context.Context, review *model.OrderReview) error

	// ListByOrder returns the reviews of an order.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.OrderReview, error)
}

// UserRepository defines the interface for user account access.
type UserRepository interface {
	// GetByID returns a user by id, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetOrCreate returns the user with the email, creating it with the role if needed.
	GetOrCreate(ctx context.Context, email string, role model.Role, isStaff bool) (*model.User, error)
}

// OutboxRepository defines the interface for the notification outbox.
type OutboxRepository interface {
	// Insert writes a record within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, record *model.OutboxRecord) error

	// MarkSent stamps the record as published.
	MarkSent(ctx context.Context, id int64) error

	// FetchPending returns unsent records oldest first.
	FetchPending(ctx context.Context, limit int) ([]model.OutboxRecord, error)
}
