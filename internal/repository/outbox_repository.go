package repository

import (
	"context"
	"fmt"

	"shopfront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// outboxRepository stores notifications next to the state change that produced them.
type outboxRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOutboxRepository creates a new PostgreSQL-backed outbox repository.
func NewOutboxRepository(pool *pgxpool.Pool, logger zerolog.Logger) OutboxRepository {
	return &outboxRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "outbox").Logger(),
	}
}

func (r *outboxRepository) Insert(ctx context.Context, tx pgx.Tx, record *model.OutboxRecord) error {
	query := `
		INSERT INTO notification_outbox (event_id, topic, key, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, record.EventID, record.Topic, record.Key, []byte(record.Payload)).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("event_id", record.EventID.String()).Msg("failed to insert outbox record")
		return fmt.Errorf("failed to insert outbox record: %w", err)
	}

	return nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `UPDATE notification_outbox SET sent_at = NOW() WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Int64("outbox_id", id).Msg("failed to mark outbox record sent")
		return fmt.Errorf("failed to mark outbox record sent: %w", err)
	}
	return nil
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]model.OutboxRecord, error) {
	query := `
		SELECT id, event_id, topic, key, payload, created_at, sent_at
		FROM notification_outbox
		WHERE sent_at IS NULL
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query pending outbox records")
		return nil, fmt.Errorf("failed to query pending outbox records: %w", err)
	}

	records, err := collect(rows, func(rows pgx.Rows) (model.OutboxRecord, error) {
		var rec model.OutboxRecord
		var payload []byte
		err := rows.Scan(&rec.ID, &rec.EventID, &rec.Topic, &rec.Key, &payload, &rec.CreatedAt, &rec.SentAt)
		rec.Payload = payload
		return rec, err
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan outbox rows")
		return nil, fmt.Errorf("failed to scan outbox records: %w", err)
	}

	return records, nil
}
