package http

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/revollution/storefront/internal/auth"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/revollution/storefront/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Order service mocks ---

type OrderPlacerMock struct {
	order   *domain.Order
	orders  []*domain.Order
	err     error
	placed  *service.PlaceOrderRequest
	emailed string
}

func (m *OrderPlacerMock) PlaceOrder(ctx context.Context, req *service.PlaceOrderRequest) (*domain.Order, error) {
	m.placed = req
	if m.err != nil {
		return nil, m.err
	}
	return m.order, nil
}

func (m *OrderPlacerMock) ListOrders(ctx context.Context, email string) ([]*domain.Order, error) {
	m.emailed = email
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

// memoryOrders is an in-process OrderRepository, enough to drive the real
// order service end to end.
type memoryOrders struct {
	mu     sync.Mutex
	orders []*domain.Order
}

func (m *memoryOrders) CreateOrder(ctx context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	stored := *order
	m.orders = append(m.orders, &stored)
	return nil
}

func (m *memoryOrders) GetOrderByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryOrders) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Order, 0)
	for _, o := range slices.Backward(m.orders) {
		if filter.Email == "" || o.Customer.Email == filter.Email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryOrders) MarkEventRecorded(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id {
			o.EventRecorded = true
		}
	}
	return nil
}

func (m *memoryOrders) ListUnrecordedOrders(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Order, error) {
	return nil, nil
}

func (m *memoryOrders) UpdateNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification) error {
	return nil
}

type memoryOutbox struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (m *memoryOutbox) RecordEvent(ctx context.Context, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *memoryOutbox) GetUnprocessedEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (m *memoryOutbox) MarkEventAsProcessed(ctx context.Context, id string) error {
	return nil
}

// staticCatalog prices products by id.
type staticCatalog map[string]*domain.Product

func (c staticCatalog) Product(ctx context.Context, id string) (*domain.Product, error) {
	if p, ok := c[id]; ok {
		return p, nil
	}
	return nil, domain.WrapError(domain.KindNotFound, "Product not found", repository.ErrNotFound)
}

func (c staticCatalog) Products(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(c))
	for _, p := range c {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// --- Review service mock ---

type ReviewServiceMock struct {
	review  *domain.Review
	reviews []*domain.Review
	err     error
	created *service.CreateReviewRequest
}

func (m *ReviewServiceMock) CreateReview(ctx context.Context, req *service.CreateReviewRequest) (*domain.Review, error) {
	m.created = req
	if m.err != nil {
		return nil, m.err
	}
	return m.review, nil
}

func (m *ReviewServiceMock) ListRecent(ctx context.Context) ([]*domain.Review, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reviews, nil
}

// --- Account service mock ---

type AccountServiceMock struct {
	user   *domain.User
	result *service.LoginResult
	err    error
}

func (m *AccountServiceMock) Register(ctx context.Context, req *service.RegisterRequest) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *AccountServiceMock) Login(ctx context.Context, req *service.LoginRequest) (*service.LoginResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newTestTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}
