package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

func (m *MongoOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}

	_, err := m.collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("failed to insert order %s: %w", order.OrderNumber, ErrDuplicateOrderNumber)
		}
		return classify("failed to insert order", err)
	}
	return nil
}

func (m *MongoOrderRepository) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, classify("failed to get order", err)
	}
	return &order, nil
}

// ListOrders returns orders newest first, optionally for one customer email.
// The limit is capped at MaxOrderListLimit.
func (m *MongoOrderRepository) ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error) {
	query := bson.M{}
	if filter.Email != "" {
		query["customer.email"] = filter.Email
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxOrderListLimit {
		limit = MaxOrderListLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, classify("failed to list orders", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, classify("failed to decode orders", err)
	}
	return orders, nil
}

func (m *MongoOrderRepository) MarkEventRecorded(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			"event_recorded": true,
			"updated_at":     time.Now(),
		},
	}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return classify("failed to mark order event recorded", err)
	}
	if result.MatchedCount == 0 {
		return domain.WrapError(domain.KindNotFound, "order not found", ErrNotFound)
	}
	return nil
}

// ListUnrecordedOrders finds orders created before olderThan whose outbox event was never written.
func (m *MongoOrderRepository) ListUnrecordedOrders(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Order, error) {
	query := bson.M{
		"event_recorded": false,
		"created_at":     bson.M{"$lt": olderThan},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, classify("failed to list unrecorded orders", err)
	}
	defer cursor.Close(ctx)

	orders := make([]*domain.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, classify("failed to decode unrecorded orders", err)
	}
	return orders, nil
}

func (m *MongoOrderRepository) UpdateNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification) error {
	update := bson.M{
		"$set": bson.M{
			"notification": n,
			"updated_at":   time.Now(),
		},
	}
	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return classify("failed to update order notification", err)
	}
	if result.MatchedCount == 0 {
		return domain.WrapError(domain.KindNotFound, "order not found", ErrNotFound)
	}
	return nil
}

func (m *MongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "customer.email", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "event_recorded", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}
