package repository

import (
	"context"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MaxOrderListLimit = 50

type OrderFilter struct {
	Email string
	Limit int
}

type ProductFilter struct {
	Category domain.Category
	Featured *bool
}

// Consumers define these interfaces, not the MongoDB implementations.

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	MarkEventRecorded(ctx context.Context, id primitive.ObjectID) error
	ListUnrecordedOrders(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Order, error)
	UpdateNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification) error
}

type OutboxRepository interface {
	RecordEvent(ctx context.Context, event *domain.OutboxEvent) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ReviewRepository interface {
	CreateReview(ctx context.Context, review *domain.Review) error
	ListRecentReviews(ctx context.Context, limit int) ([]*domain.Review, error)
}

type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	UpsertProduct(ctx context.Context, product *domain.Product) error
}
