package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOutboxRepository struct {
	collection *mongo.Collection
}

func NewOutboxRepository(db *mongo.Database) *MongoOutboxRepository {
	return &MongoOutboxRepository{
		collection: db.Collection("outbox"),
	}
}

// RecordEvent inserts an event. Recording the same (aggregate, type) twice is a no-op.
func (m *MongoOutboxRepository) RecordEvent(ctx context.Context, event *domain.OutboxEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	_, err := m.collection.InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return classify("failed to record outbox event", err)
	}
	return nil
}

func (m *MongoOutboxRepository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	query := bson.M{"processed_at": bson.M{"$exists": false}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, classify("failed to fetch outbox events", err)
	}
	defer cursor.Close(ctx)

	events := make([]*domain.OutboxEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, classify("failed to decode outbox events", err)
	}
	return events, nil
}

func (m *MongoOutboxRepository) MarkEventAsProcessed(ctx context.Context, id string) error {
	update := bson.M{"$set": bson.M{"processed_at": time.Now()}}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return classify("failed to mark outbox event processed", err)
	}
	if result.MatchedCount == 0 {
		return domain.WrapError(domain.KindNotFound, "outbox event not found", ErrNotFound)
	}
	return nil
}

func (m *MongoOutboxRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "aggregate_id", Value: 1}, {Key: "event_type", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "processed_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(30 * 24 * 60 * 60), // 30 days TTL once published
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create outbox indexes: %w", err)
	}
	return nil
}
