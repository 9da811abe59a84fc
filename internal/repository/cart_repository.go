package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

const cartColumns = `id, user_id, is_active, checked_out, created_at, updated_at`

const cartItemColumns = `id, cart_id, product_id, quantity, price, created_at, updated_at`

const cartLineQuery = `
	SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price, ci.created_at, ci.updated_at,
	       p.name, p.price, p.stock
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id
	WHERE ci.cart_id = $1
	ORDER BY p.id
`

func scanCart(row pgx.Row) (model.Cart, error) {
	var c model.Cart
	err := row.Scan(&c.ID, &c.UserID, &c.IsActive, &c.CheckedOut, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func scanCartItem(row pgx.Row) (model.CartItem, error) {
	var i model.CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.Price, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

func scanCartLine(rows pgx.Rows) (model.CartLine, error) {
	var l model.CartLine
	err := rows.Scan(
		&l.ID, &l.CartID, &l.ProductID, &l.Quantity, &l.Price, &l.CreatedAt, &l.UpdatedAt,
		&l.ProductName, &l.CurrentPrice, &l.Stock,
	)
	return l, err
}

// GetActive returns the user's active cart with its lines, or nil when none exists.
func (r *cartRepository) GetActive(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1 AND is_active`

	cart, err := scanCart(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query active cart")
		return nil, fmt.Errorf("failed to query active cart: %w", err)
	}

	if cart.Items, err = r.Lines(ctx, cart.ID); err != nil {
		return nil, err
	}

	return &cart, nil
}

// GetOrCreateActive returns the user's active cart, creating an empty one if needed.
func (r *cartRepository) GetOrCreateActive(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	insert := `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) WHERE is_active DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, insert, userID); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	cart, err := r.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("active cart for user %s vanished after creation", userID)
	}

	return cart, nil
}

// Lines returns the cart's lines joined with current product data.
func (r *cartRepository) Lines(ctx context.Context, cartID uuid.UUID) ([]model.CartLine, error) {
	return r.lines(ctx, r.pool, cartLineQuery, cartID)
}

// LockActive locks and returns the user's active cart, or nil when none exists.
func (r *cartRepository) LockActive(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1 AND is_active FOR UPDATE`

	cart, err := scanCart(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock active cart")
		return nil, fmt.Errorf("failed to lock active cart: %w", err)
	}

	return &cart, nil
}

// LockLines locks the cart lines and their products in product id order.
func (r *cartRepository) LockLines(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartLine, error) {
	return r.lines(ctx, tx, cartLineQuery+` FOR UPDATE OF ci, p`, cartID)
}

func (r *cartRepository) lines(ctx context.Context, q Querier, query string, cartID uuid.UUID) ([]model.CartLine, error) {
	rows, err := q.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart lines")
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}

	lines, err := collect(rows, scanCartLine)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to scan cart lines")
		return nil, fmt.Errorf("failed to scan cart lines: %w", err)
	}

	return lines, nil
}

// AddItem adds a product line or merges the quantity into an existing one.
// A merged line keeps the price captured when it was first added.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID uuid.UUID, quantity int, price decimal.Decimal) (*model.CartItem, error) {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING ` + cartItemColumns

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, cartID, productID, quantity, price))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("product_id", productID.String()).
			Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	r.touch(ctx, cartID)

	return &item, nil
}

// UpdateItemQuantity sets the quantity of a line in the user's active cart.
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	query := `
		UPDATE cart_items ci
		SET quantity = $3, updated_at = NOW()
		FROM carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $1 AND c.is_active
		RETURNING ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.price, ci.created_at, ci.updated_at
	`

	item, err := scanCartItem(r.pool.QueryRow(ctx, query, userID, itemID, quantity))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	r.touch(ctx, item.CartID)

	return &item, nil
}

// DeleteItem removes a line from the user's active cart.
func (r *cartRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) (bool, error) {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $2 AND ci.cart_id = c.id AND c.user_id = $1 AND c.is_active
	`

	tag, err := r.pool.Exec(ctx, query, userID, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to delete cart item")
		return false, fmt.Errorf("failed to delete cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Clear removes every line from the cart.
func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	r.touch(ctx, cartID)

	return nil
}

// CloseCheckedOut empties the cart and marks it inactive and checked out.
func (r *cartRepository) CloseCheckedOut(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear checked out cart")
		return fmt.Errorf("failed to clear checked out cart: %w", err)
	}

	query := `
		UPDATE carts
		SET is_active = FALSE, checked_out = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := tx.Exec(ctx, query, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to close cart")
		return fmt.Errorf("failed to close cart: %w", err)
	}

	return nil
}

// touch bumps the cart's updated_at. Failure only affects bookkeeping.
func (r *cartRepository) touch(ctx context.Context, cartID uuid.UUID) {
	if _, err := r.pool.Exec(ctx, `UPDATE carts SET updated_at = NOW() WHERE id = $1`, cartID); err != nil {
		r.logger.Warn().Err(err).Str("cart_id", cartID.String()).Msg("failed to touch cart")
	}
}
