package publisher

import (
	"context"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	batchSize = 100
	// orders younger than this may still be mid-request in the order service
	recoveryGrace = 10 * time.Second
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type OrderEventSource interface {
	ListUnrecordedOrders(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Order, error)
	MarkEventRecorded(ctx context.Context, id primitive.ObjectID) error
}

type OutboxPoller struct {
	timeout      time.Duration
	eventTick    time.Duration
	recoveryTick time.Duration
	outbox       repository.OutboxRepository
	orders       OrderEventSource
	writer       MessageWriter
}

func NewWriter(brokers ...string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  domain.OrderEventsTopic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewOutboxPoller(outbox repository.OutboxRepository, orders OrderEventSource, writer MessageWriter) *OutboxPoller {
	return &OutboxPoller{
		timeout:      5 * time.Second,
		eventTick:    time.Second,
		recoveryTick: 5 * time.Second,
		outbox:       outbox,
		orders:       orders,
		writer:       writer,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) {
	eventTicker := time.NewTicker(p.eventTick)
	recoveryTicker := time.NewTicker(p.recoveryTick)
	defer eventTicker.Stop()
	defer recoveryTicker.Stop()
	for {
		select {
		case <-eventTicker.C:
			p.processUnpublishedEvents(ctx)
		case <-recoveryTicker.C:
			p.recoverUnrecordedOrders(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *OutboxPoller) Close() {
	if err := p.writer.Close(); err != nil {
		log.Error().Err(err).Msg("error closing kafka writer")
	}
}

func (p *OutboxPoller) processUnpublishedEvents(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	events, err := p.outbox.GetUnprocessedEvents(ctx, batchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch outbox events")
		return
	}

	for _, event := range events {
		if err := p.publishToKafka(ctx, event); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to publish event")
			continue
		}

		if err := p.outbox.MarkEventAsProcessed(ctx, event.ID); err != nil {
			log.Error().Err(err).Str("event_id", event.ID).Msg("failed to mark event as processed")
			continue
		}
	}
}

// recoverUnrecordedOrders writes the missing OrderPlaced event for orders
// whose request failed between the insert and the outbox write.
func (p *OutboxPoller) recoverUnrecordedOrders(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	orders, err := p.orders.ListUnrecordedOrders(ctx, time.Now().Add(-recoveryGrace), batchSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to get unrecorded orders")
		return
	}

	for _, order := range orders {
		log.Info().Str("order_number", order.OrderNumber).Msg("recovering unrecorded order")

		event, err := domain.NewOrderPlacedEvent(order)
		if err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to build order placed event")
			continue
		}
		if err := p.outbox.RecordEvent(ctx, event); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to record order placed event")
			continue
		}
		if err := p.orders.MarkEventRecorded(ctx, order.ID); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to mark order event recorded")
			continue
		}

		log.Info().Str("order_number", order.OrderNumber).Msg("order recovered")
	}
}

func (p *OutboxPoller) publishToKafka(ctx context.Context, event *domain.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID), // order id keeps one order's events on one partition
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: domain.EventTypeHeader, Value: []byte(event.EventType)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
