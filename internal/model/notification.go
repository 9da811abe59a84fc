package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification is an order status email addressed to the order's owner.
type Notification struct {
	EventID   uuid.UUID   `json:"event_id"`
	OrderID   uuid.UUID   `json:"order_id"`
	UserID    uuid.UUID   `json:"user_id"`
	Email     string      `json:"email"`
	Status    OrderStatus `json:"status"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
}

// OutboxRecord is a notification persisted with the state change that caused it.
// SentAt stays nil until a publisher has accepted the payload.
type OutboxRecord struct {
	ID        int64           `json:"id"`
	EventID   uuid.UUID       `json:"event_id"`
	Topic     string          `json:"topic"`
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	SentAt    *time.Time      `json:"sent_at"`
}
