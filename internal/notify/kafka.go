package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopfront/internal/model"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafka.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotifier publishes notifications as JSON for the email service to consume.
type KafkaNotifier struct {
	writer messageWriter
	logger zerolog.Logger
}

// NewKafkaNotifier creates a notifier writing to topic on the given brokers.
func NewKafkaNotifier(brokers []string, topic string, logger zerolog.Logger) *KafkaNotifier {
	return newKafkaNotifier(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}, logger)
}

func newKafkaNotifier(w messageWriter, logger zerolog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: w,
		logger: logger.With().Str("component", "kafka-notifier").Logger(),
	}
}

// Notify publishes the notification keyed by order id so events for one order stay ordered.
func (n *KafkaNotifier) Notify(ctx context.Context, msg model.Notification) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.OrderID.String()),
		Value: data,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		n.logger.Error().Err(err).Str("event_id", msg.EventID.String()).Msg("failed to publish notification")
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug().Str("event_id", msg.EventID.String()).Msg("notification published")
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
