package repository

import (
	"context"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// rateRepository resolves shipping methods and tax rates by destination country.
// A country matches by ISO code or by name, case-insensitively.
type rateRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRateRepository creates a new PostgreSQL-backed rate repository.
func NewRateRepository(pool *pgxpool.Pool, logger zerolog.Logger) RateRepository {
	return &rateRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "rate").Logger(),
	}
}

const countryMatch = `
	SELECT code FROM countries
	WHERE UPPER(code) = UPPER(TRIM($1)) OR UPPER(name) = UPPER(TRIM($1))
`

func (r *rateRepository) ShippingMethods(ctx context.Context, country string) ([]model.ShippingMethod, error) {
	query := `
		SELECT m.id, m.zone_id, m.name, m.base_rate, m.free_over, m.active
		FROM shipping_methods m
		JOIN shipping_zones z ON z.id = m.zone_id
		WHERE z.active AND m.active AND z.country_code IN (` + countryMatch + `)
		ORDER BY m.base_rate, m.name
	`

	rows, err := r.pool.Query(ctx, query, country)
	if err != nil {
		r.logger.Error().Err(err).Str("country", country).Msg("failed to query shipping methods")
		return nil, fmt.Errorf("failed to query shipping methods: %w", err)
	}

	methods, err := collect(rows, func(rows pgx.Rows) (model.ShippingMethod, error) {
		var m model.ShippingMethod
		err := rows.Scan(&m.ID, &m.ZoneID, &m.Name, &m.BaseRate, &m.FreeOver, &m.Active)
		return m, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan shipping method rows")
		return nil, fmt.Errorf("failed to scan shipping methods: %w", err)
	}

	return methods, nil
}

// TaxRate returns the most recently started active rate covering the given day.
func (r *rateRepository) TaxRate(ctx context.Context, country string, on time.Time) (*model.TaxRate, error) {
	query := `
		SELECT t.id, t.zone_id, t.rate, t.start_date, t.end_date, t.active
		FROM tax_rates t
		JOIN tax_zones z ON z.id = t.zone_id
		WHERE z.active AND t.active
		  AND z.country_code IN (` + countryMatch + `)
		  AND t.start_date <= $2::date
		  AND (t.end_date IS NULL OR t.end_date >= $2::date)
		ORDER BY t.start_date DESC
		LIMIT 1
	`

	var t model.TaxRate
	err := r.pool.QueryRow(ctx, query, country, on).Scan(&t.ID, &t.ZoneID, &t.Rate, &t.StartDate, &t.EndDate, &t.Active)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("country", country).Msg("failed to query tax rate")
		return nil, fmt.Errorf("failed to query tax rate: %w", err)
	}

	return &t, nil
}
