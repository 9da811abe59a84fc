package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
)

// Outbox is the persistence the dispatcher drains.
type Outbox interface {
	MarkSent(ctx context.Context, id int64) error
	FetchPending(ctx context.Context, limit int) ([]model.OutboxRecord, error)
}

const (
	dispatchTimeout = 10 * time.Second
	flushBatchSize  = 100
)

// Dispatcher publishes committed outbox records through a Notifier.
// A failed publish leaves the record pending for the next flush.
type Dispatcher struct {
	outbox   Outbox
	notifier Notifier
	logger   zerolog.Logger
	wg       sync.WaitGroup
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(outbox Outbox, notifier Notifier, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		outbox:   outbox,
		notifier: notifier,
		logger:   logger.With().Str("component", "notification-dispatcher").Logger(),
	}
}

// Dispatch publishes a record and marks it sent.
func (d *Dispatcher) Dispatch(ctx context.Context, record model.OutboxRecord) error {
	var n model.Notification
	if err := json.Unmarshal(record.Payload, &n); err != nil {
		return fmt.Errorf("failed to decode outbox record %d: %w", record.ID, err)
	}

	if err := d.notifier.Notify(ctx, n); err != nil {
		return err
	}

	return d.outbox.MarkSent(ctx, record.ID)
}

// DispatchAsync publishes the record in the background. Errors are logged only.
func (d *Dispatcher) DispatchAsync(record model.OutboxRecord) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := d.Dispatch(ctx, record); err != nil {
			d.logger.Warn().
				Err(err).
				Int64("outbox_id", record.ID).
				Str("event_id", record.EventID.String()).
				Msg("notification dispatch failed, left pending")
		}
	}()
}

// FlushPending dispatches every pending record once and returns how many were sent.
func (d *Dispatcher) FlushPending(ctx context.Context) (int, error) {
	sent := 0
	for {
		records, err := d.outbox.FetchPending(ctx, flushBatchSize)
		if err != nil {
			return sent, err
		}

		batchSent := 0
		for _, record := range records {
			if err := d.Dispatch(ctx, record); err != nil {
				d.logger.Warn().Err(err).Int64("outbox_id", record.ID).Msg("pending notification not sent")
				continue
			}
			batchSent++
		}
		sent += batchSent

		// A short batch means the table is drained. A batch with no progress would refetch the same rows.
		if len(records) < flushBatchSize || batchSent == 0 {
			break
		}
	}

	if sent > 0 {
		d.logger.Info().Int("sent", sent).Msg("flushed pending notifications")
	}
	return sent, nil
}

// Wait blocks until background dispatches finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
