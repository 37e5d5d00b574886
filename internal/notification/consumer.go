package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 2 * time.Second
	maxStoreBackoff    = 30 * time.Second
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderStore interface {
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	UpdateNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification) error
}

// Consumer turns OrderPlaced events into confirmation emails and records the
// delivery result on the order before committing the message.
type Consumer struct {
	orders      OrderStore
	reader      MessageReader
	composer    *Composer
	sender      Sender
	maxAttempts int
	backoff     time.Duration
}

func NewReader(brokers ...string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    domain.OrderEventsTopic,
		GroupID:  "notification-worker",
		MaxBytes: 10e6, // 10MB
	})
}

func NewConsumer(orders OrderStore, sender Sender, reader MessageReader) *Consumer {
	return &Consumer{
		orders:      orders,
		reader:      reader,
		composer:    NewComposer(),
		sender:      sender,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Error().Err(err).Msg("error closing kafka reader")
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		log.Error().Err(err).Msg("error reading message")
		return
	}

	if !c.handle(ctx, m) {
		return
	}

	if err := c.reader.CommitMessages(ctx, m); err != nil {
		log.Error().Err(err).Int64("offset", m.Offset).Msg("failed to commit message")
	}
}

// handle reports whether the message is finished with and may be committed.
func (c *Consumer) handle(ctx context.Context, m kafka.Message) bool {
	if eventType(m) != domain.EventOrderPlaced {
		return true
	}

	var payload domain.OrderPlacedPayload
	if err := json.Unmarshal(m.Value, &payload); err != nil {
		log.Error().Err(err).Int64("offset", m.Offset).Msg("error parsing message")
		return true
	}

	orderID, err := primitive.ObjectIDFromHex(payload.OrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", payload.OrderID).Msg("invalid order id in event")
		return true
	}

	var order *domain.Order
	err = c.untilStored(ctx, "failed to load order", func() error {
		var getErr error
		order, getErr = c.orders.GetOrderByID(ctx, orderID)
		return getErr
	})
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Str("order_id", payload.OrderID).Msg("order for event not found, skipping")
		return true
	}
	if err != nil {
		return false
	}

	if order.Notification.Status == domain.NotificationSent {
		log.Info().Str("order_number", order.OrderNumber).Msg("confirmation already sent, skipping")
		return true
	}

	result := c.deliver(ctx, order)
	if ctx.Err() != nil {
		return false
	}

	err = c.untilStored(ctx, "failed to record notification result", func() error {
		return c.orders.UpdateNotification(ctx, order.ID, result)
	})
	if errors.Is(err, repository.ErrNotFound) {
		log.Warn().Str("order_number", order.OrderNumber).Msg("order vanished before notification was recorded")
		return true
	}
	return err == nil
}

// untilStored runs op until it succeeds, reports a missing order, or ctx is
// done. The reader must not move past a message whose store work is
// unfinished: committing a later offset would skip it for good.
func (c *Consumer) untilStored(ctx context.Context, msg string, op func() error) error {
	for attempt := 1; ; attempt++ {
		err := op()
		if err == nil || errors.Is(err, repository.ErrNotFound) {
			return err
		}
		log.Error().Err(err).Int("attempt", attempt).Msg(msg)

		wait := min(c.backoff*time.Duration(attempt), maxStoreBackoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, order *domain.Order) domain.Notification {
	result := order.Notification

	email, err := c.composer.Compose(order)
	if err != nil {
		result.Status = domain.NotificationFailed
		result.LastError = err.Error()
		return result
	}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result.Attempts++
		err = c.sender.Send(ctx, email)
		if err == nil {
			sentAt := time.Now()
			result.Status = domain.NotificationSent
			result.LastError = ""
			result.SentAt = &sentAt
			log.Info().Str("order_number", order.OrderNumber).Str("to", email.To).Msg("order confirmation sent")
			return result
		}

		log.Warn().Err(err).Str("order_number", order.OrderNumber).Int("attempt", attempt).Msg("order confirmation send failed")
		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			result.Status = domain.NotificationFailed
			result.LastError = ctx.Err().Error()
			return result
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}

	result.Status = domain.NotificationFailed
	result.LastError = err.Error()
	return result
}

func eventType(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == domain.EventTypeHeader {
			return string(h.Value)
		}
	}
	return ""
}
