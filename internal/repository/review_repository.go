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

type MongoReviewRepository struct {
	collection *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{
		collection: db.Collection("reviews"),
	}
}

func (m *MongoReviewRepository) CreateReview(ctx context.Context, review *domain.Review) error {
	now := time.Now()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}

	if _, err := m.collection.InsertOne(ctx, review); err != nil {
		return classify("failed to insert review", err)
	}
	return nil
}

func (m *MongoReviewRepository) ListRecentReviews(ctx context.Context, limit int) ([]*domain.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify("failed to list reviews", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*domain.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, classify("failed to decode reviews", err)
	}
	return reviews, nil
}

func (m *MongoReviewRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}
