package service

import (
	"context"
	"sync"
	"time"

	"github.com/revollution/storefront/internal/cache"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockOrderRepository implements repository.OrderRepository for testing
type MockOrderRepository struct {
	mu            sync.Mutex
	Orders        []*domain.Order
	CreateErrs    []error // consumed one per CreateOrder call
	ListErr       error
	MarkErr       error
	LastFilter    repository.OrderFilter
	CreateCalls   int
	MarkedIDs     []primitive.ObjectID
	Notifications map[primitive.ObjectID]domain.Notification
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if len(m.CreateErrs) > 0 {
		err := m.CreateErrs[0]
		m.CreateErrs = m.CreateErrs[1:]
		if err != nil {
			return err
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	m.Orders = append(m.Orders, &stored)
	return nil
}

func (m *MockOrderRepository) GetOrderByID(_ context.Context, id primitive.ObjectID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, o := range m.Orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.WrapError(domain.KindNotFound, "order not found", repository.ErrNotFound)
}

func (m *MockOrderRepository) ListOrders(_ context.Context, filter repository.OrderFilter) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFilter = filter
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]*domain.Order, 0)
	for i := len(m.Orders) - 1; i >= 0; i-- {
		if filter.Email == "" || m.Orders[i].Customer.Email == filter.Email {
			out = append(out, m.Orders[i])
		}
	}
	return out, nil
}

func (m *MockOrderRepository) MarkEventRecorded(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MarkErr != nil {
		return m.MarkErr
	}
	m.MarkedIDs = append(m.MarkedIDs, id)
	return nil
}

func (m *MockOrderRepository) ListUnrecordedOrders(_ context.Context, _ time.Time, _ int) ([]*domain.Order, error) {
	return nil, nil
}

func (m *MockOrderRepository) UpdateNotification(_ context.Context, id primitive.ObjectID, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Notifications == nil {
		m.Notifications = make(map[primitive.ObjectID]domain.Notification)
	}
	m.Notifications[id] = n
	return nil
}

// MockOutboxRepository implements repository.OutboxRepository for testing
type MockOutboxRepository struct {
	mu        sync.Mutex
	Events    []*domain.OutboxEvent
	RecordErr error
}

func (m *MockOutboxRepository) RecordEvent(_ context.Context, event *domain.OutboxEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnprocessedEvents(_ context.Context, _ int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Events, nil
}

func (m *MockOutboxRepository) MarkEventAsProcessed(_ context.Context, _ string) error {
	return nil
}

// MockUserRepository implements repository.UserRepository for testing
type MockUserRepository struct {
	mu        sync.Mutex
	Users     map[string]*domain.User
	GetErr    error
	CreateErr error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) CreateUser(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	user.ID = primitive.NewObjectID()
	m.Users[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	user, ok := m.Users[email]
	if !ok {
		return nil, domain.WrapError(domain.KindNotFound, "failed to get user", repository.ErrNotFound)
	}
	return user, nil
}

// MockReviewRepository implements repository.ReviewRepository for testing
type MockReviewRepository struct {
	mu        sync.Mutex
	Reviews   []*domain.Review
	LastLimit int
	CreateErr error
}

func (m *MockReviewRepository) CreateReview(_ context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	review.ID = primitive.NewObjectID()
	review.CreatedAt = time.Now()
	m.Reviews = append(m.Reviews, review)
	return nil
}

func (m *MockReviewRepository) ListRecentReviews(_ context.Context, limit int) ([]*domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastLimit = limit
	return m.Reviews, nil
}

// MockProductRepository implements repository.ProductRepository for testing
type MockProductRepository struct {
	mu         sync.Mutex
	Products   []*domain.Product
	GetErr     error
	Delay      time.Duration
	LookupCall int
}

func (m *MockProductRepository) ListProducts(_ context.Context, _ repository.ProductFilter) ([]*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Products, nil
}

func (m *MockProductRepository) GetProductByID(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.ID == id })
}

func (m *MockProductRepository) GetProductBySlug(_ context.Context, slug string) (*domain.Product, error) {
	return m.find(func(p *domain.Product) bool { return p.Slug == slug })
}

func (m *MockProductRepository) UpsertProduct(_ context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Products = append(m.Products, product)
	return nil
}

func (m *MockProductRepository) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.LookupCall
}

func (m *MockProductRepository) find(match func(*domain.Product) bool) (*domain.Product, error) {
	time.Sleep(m.Delay)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.LookupCall++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for _, p := range m.Products {
		if match(p) {
			return p, nil
		}
	}
	return nil, domain.WrapError(domain.KindNotFound, "failed to get product", repository.ErrNotFound)
}

// MockProductCache implements cache.ProductCache for testing
type MockProductCache struct {
	mu      sync.Mutex
	Entries map[string]*domain.Product
	GetErr  error
	Sets    int
}

func NewMockProductCache() *MockProductCache {
	return &MockProductCache{Entries: make(map[string]*domain.Product)}
}

func (m *MockProductCache) Get(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Entries[id]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return p, nil
}

func (m *MockProductCache) Set(_ context.Context, id string, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sets++
	m.Entries[id] = product
	return nil
}

func (m *MockProductCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.Entries, id)
	return nil
}

func (m *MockProductCache) Has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.Entries[id]
	return ok
}

// StaticCatalog implements ProductLookup over a fixed id -> product map
type StaticCatalog map[string]*domain.Product

func (c StaticCatalog) Product(_ context.Context, id string) (*domain.Product, error) {
	p, ok := c[id]
	if !ok {
		return nil, domain.WrapError(domain.KindNotFound, "Product not found", ErrUnknownProduct)
	}
	return p, nil
}

type stubIssuer struct {
	token string
	err   error
}

func (s stubIssuer) Issue(_ *domain.User) (string, error) {
	return s.token, s.err
}
