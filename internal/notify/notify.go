package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Notifier delivers an order notification to the customer.
type Notifier interface {
	Notify(ctx context.Context, n model.Notification) error
	Close() error
}

// Compose builds the status email for an order.
func Compose(order *model.Order, email string, now time.Time) model.Notification {
	status := order.Status.Display()

	body := "Your order status is now: " + status
	if order.TrackingNumber != nil && *order.TrackingNumber != "" {
		body += "\nTracking Number: " + *order.TrackingNumber
	}

	return model.Notification{
		EventID:   uuid.New(),
		OrderID:   order.ID,
		UserID:    order.UserID,
		Email:     email,
		Status:    order.Status,
		Subject:   fmt.Sprintf("Order %s status update: %s", order.ID, status),
		Body:      body,
		CreatedAt: now,
	}
}

// NewRecord wraps a notification as an outbox record keyed by order id.
func NewRecord(n model.Notification, topic string) (*model.OutboxRecord, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification: %w", err)
	}
	return &model.OutboxRecord{
		EventID: n.EventID,
		Topic:   topic,
		Key:     n.OrderID.String(),
		Payload: payload,
	}, nil
}

// LogNotifier writes notifications to the log. Used when no broker is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "log-notifier").Logger()}
}

func (n *LogNotifier) Notify(_ context.Context, msg model.Notification) error {
	n.logger.Info().
		Str("event_id", msg.EventID.String()).
		Str("order_id", msg.OrderID.String()).
		Str("to", msg.Email).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("order notification")
	return nil
}

func (n *LogNotifier) Close() error { return nil }
