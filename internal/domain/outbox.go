package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderPlaced = "OrderPlaced"

	OrderEventsTopic = "order-events"
	EventTypeHeader  = "event_type"
)

type OutboxEvent struct {
	ID          string          `bson:"_id"`
	AggregateID string          `bson:"aggregate_id"`
	EventType   string          `bson:"event_type"`
	Payload     json.RawMessage `bson:"payload"`
	CreatedAt   time.Time       `bson:"created_at"`
	ProcessedAt *time.Time      `bson:"processed_at,omitempty"`
}

// OrderPlacedPayload is the message body published for EventOrderPlaced.
type OrderPlacedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Email       string    `json:"email"`
	TotalAmount float64   `json:"total_amount"`
	PlacedAt    time.Time `json:"placed_at"`
}

func NewOrderPlacedPayload(o *Order) OrderPlacedPayload {
	return OrderPlacedPayload{
		OrderID:     o.ID.Hex(),
		OrderNumber: o.OrderNumber,
		Email:       o.Customer.Email,
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.CreatedAt,
	}
}

// NewOrderPlacedEvent builds the outbox record announcing a persisted order.
func NewOrderPlacedEvent(o *Order) (*OutboxEvent, error) {
	payload, err := json.Marshal(NewOrderPlacedPayload(o))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order placed payload: %w", err)
	}
	return &OutboxEvent{
		ID:          uuid.NewString(),
		AggregateID: o.ID.Hex(),
		EventType:   EventOrderPlaced,
		Payload:     payload,
		CreatedAt:   time.Now(),
	}, nil
}
