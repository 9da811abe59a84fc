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

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

const addressColumns = `id, user_id, line1, line2, city, state, postal_code, country, is_default, created_at`

func scanAddress(row pgx.Row) (model.Address, error) {
	var a model.Address
	err := row.Scan(&a.ID, &a.UserID, &a.Line1, &a.Line2, &a.City, &a.State,
		&a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt)
	return a, err
}

func (r *addressRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at, id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query addresses")
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}

	addresses, err := collect(rows, func(rows pgx.Rows) (model.Address, error) { return scanAddress(rows) })
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan address rows")
		return nil, fmt.Errorf("failed to scan addresses: %w", err)
	}

	return addresses, nil
}

func (r *addressRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	a, err := scanAddress(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("address_id", id.String()).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return &a, nil
}

// CheckoutAddress returns the default address, else the first created one, else nil.
func (r *addressRepository) CheckoutAddress(ctx context.Context, userID uuid.UUID) (*model.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at, id
		LIMIT 1
	`

	a, err := scanAddress(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query checkout address")
		return nil, fmt.Errorf("failed to query checkout address: %w", err)
	}

	return &a, nil
}

// Create inserts an address. A default address unsets the user's other defaults.
func (r *addressRepository) Create(ctx context.Context, address *model.Address) (err error) {
	tx, err := beginTx(ctx, r.pool, r.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if address.IsDefault {
		if _, err = tx.Exec(ctx, `UPDATE addresses SET is_default = FALSE WHERE user_id = $1 AND is_default`, address.UserID); err != nil {
			r.logger.Error().Err(err).Str("user_id", address.UserID.String()).Msg("failed to unset default address")
			return fmt.Errorf("failed to unset default address: %w", err)
		}
	}

	query := `
		INSERT INTO addresses (user_id, line1, line2, city, state, postal_code, country, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err = tx.QueryRow(ctx, query, address.UserID, address.Line1, address.Line2, address.City,
		address.State, address.PostalCode, address.Country, address.IsDefault,
	).Scan(&address.ID, &address.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", address.UserID.String()).Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit address")
		return fmt.Errorf("failed to commit address: %w", err)
	}

	return nil
}
