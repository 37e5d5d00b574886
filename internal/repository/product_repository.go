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

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection("products"),
	}
}

func (m *MongoProductRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, classify("failed to list products", err)
	}
	defer cursor.Close(ctx)

	products := make([]*domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, classify("failed to decode products", err)
	}
	return products, nil
}

func (m *MongoProductRepository) GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		return nil, classify("failed to get product", err)
	}
	return &product, nil
}

func (m *MongoProductRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	if err := m.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&product); err != nil {
		return nil, classify("failed to get product", err)
	}
	return &product, nil
}

// UpsertProduct replaces the product with the same slug, keeping its id and creation time.
func (m *MongoProductRepository) UpsertProduct(ctx context.Context, product *domain.Product) error {
	now := time.Now()
	product.UpdatedAt = now

	set := bson.M{
		"name":        product.Name,
		"slug":        product.Slug,
		"description": product.Description,
		"price":       product.Price,
		"category":    product.Category,
		"notes":       product.Notes,
		"images":      product.Images,
		"variants":    product.Variants,
		"featured":    product.Featured,
		"updated_at":  now,
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored domain.Product
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"slug": product.Slug}, update, opts).Decode(&stored)
	if err != nil {
		return classify("failed to upsert product", err)
	}
	product.ID = stored.ID
	product.CreatedAt = stored.CreatedAt
	return nil
}

func (m *MongoProductRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "featured", Value: 1}},
		},
	}
	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}
