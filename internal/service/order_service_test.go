package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOrderRequest() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		CustomerInfo: &CustomerInfo{
			Name:       "Ana",
			Email:      "a@x.com",
			Phone:      "555-0100",
			Address:    "1 Main St",
			City:       "Lisbon",
			PostalCode: "1000-001",
		},
		Items: []domain.CartItem{
			{ProductID: "1", Name: "Neon Mirage", UnitPrice: 92, Quantity: 1, Category: "unisex"},
		},
		TotalAmount: 92,
	}
}

func testCatalog() StaticCatalog {
	return StaticCatalog{
		"1": {Name: "Neon Mirage", Price: 92, Category: domain.CategoryUnisex,
			Images: []domain.ProductImage{{URL: "/img/neon.jpg", Alt: "Neon Mirage"}}},
		"2": {Name: "Emerald Dawn", Price: 89, Category: domain.CategoryWomen},
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	orders := &MockOrderRepository{}
	outbox := &MockOutboxRepository{}
	svc := NewOrderService(orders, outbox, testCatalog())

	order, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)

	assert.Regexp(t, domain.OrderNumberPattern, order.OrderNumber)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, domain.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, 92.0, order.TotalAmount)
	assert.Equal(t, "1 Main St", order.ShippingAddress.Street)
	assert.Equal(t, "/img/neon.jpg", order.Items[0].ImageURL)
	assert.True(t, order.EventRecorded)

	require.Len(t, outbox.Events, 1)
	assert.Equal(t, domain.EventOrderPlaced, outbox.Events[0].EventType)
	assert.Equal(t, order.ID.Hex(), outbox.Events[0].AggregateID)
	assert.Equal(t, order.ID, orders.MarkedIDs[0])
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlaceOrderRequest)
	}{
		{"no customer", func(r *PlaceOrderRequest) { r.CustomerInfo = nil }},
		{"no items", func(r *PlaceOrderRequest) { r.Items = nil }},
		{"zero total", func(r *PlaceOrderRequest) { r.TotalAmount = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := &MockOrderRepository{}
			svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

			req := validOrderRequest()
			tt.mutate(req)

			_, err := svc.PlaceOrder(context.Background(), req)
			assert.Equal(t, domain.KindMissingFields, domain.KindOf(err))
			assert.Equal(t, "Missing required fields", domain.MessageOf(err))
			assert.Zero(t, orders.CreateCalls)
		})
	}
}

func TestPlaceOrder_EmptyItemsArePresent(t *testing.T) {
	orders := &MockOrderRepository{}
	svc := NewOrderService(orders, &MockOutboxRepository{}, nil)

	req := validOrderRequest()
	req.Items = []domain.CartItem{}
	req.TotalAmount = 10

	order, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, order.Items)
	assert.Equal(t, 10.0, order.TotalAmount)
	assert.Equal(t, 1, orders.CreateCalls)
}

func TestPlaceOrder_IdenticalPayloadsGetDistinctNumbers(t *testing.T) {
	orders := &MockOrderRepository{}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	first, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, orders.Orders, 2)
}

func TestPlaceOrder_CatalogPriceWins(t *testing.T) {
	orders := &MockOrderRepository{}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	req := validOrderRequest()
	req.Items = []domain.CartItem{
		{ProductID: "1", Name: "tampered", UnitPrice: 1, Quantity: 2},
		{ProductID: "2", UnitPrice: 1, Quantity: 1},
	}
	req.TotalAmount = 3

	order, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 273.0, order.TotalAmount)
	assert.Equal(t, "Neon Mirage", order.Items[0].Name)
	assert.Equal(t, 92.0, order.Items[0].UnitPrice)
	assert.Equal(t, "women", order.Items[1].Category)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	orders := &MockOrderRepository{}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	req := validOrderRequest()
	req.Items = []domain.CartItem{{ProductID: "missing", UnitPrice: 10, Quantity: 1}}

	_, err := svc.PlaceOrder(context.Background(), req)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	assert.Zero(t, orders.CreateCalls)
}

func TestPlaceOrder_NonPositiveQuantityRejected(t *testing.T) {
	svc := NewOrderService(&MockOrderRepository{}, &MockOutboxRepository{}, testCatalog())

	req := validOrderRequest()
	req.Items[0].Quantity = -1

	_, err := svc.PlaceOrder(context.Background(), req)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestPlaceOrder_WithoutCatalogKeepsClientValues(t *testing.T) {
	svc := NewOrderService(&MockOrderRepository{}, &MockOutboxRepository{}, nil)

	req := validOrderRequest()
	req.Items[0].UnitPrice = 10
	req.TotalAmount = 11

	order, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 11.0, order.TotalAmount)
	assert.Equal(t, 10.0, order.Items[0].UnitPrice)
}

func TestPlaceOrder_RetriesOrderNumberCollision(t *testing.T) {
	dup := fmt.Errorf("failed to insert order: %w", repository.ErrDuplicateOrderNumber)
	orders := &MockOrderRepository{CreateErrs: []error{dup, nil}}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	order, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, orders.CreateCalls)
	assert.Regexp(t, domain.OrderNumberPattern, order.OrderNumber)
}

func TestPlaceOrder_CollisionAttemptsExhausted(t *testing.T) {
	dup := fmt.Errorf("failed to insert order: %w", repository.ErrDuplicateOrderNumber)
	orders := &MockOrderRepository{CreateErrs: []error{dup, dup, dup}}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	_, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	assert.ErrorIs(t, err, ErrOrderNumberExhausted)
	assert.Equal(t, 3, orders.CreateCalls)
}

func TestPlaceOrder_DatabaseUnavailable(t *testing.T) {
	down := domain.WrapError(domain.KindDatabaseUnavailable, "failed to insert order", errors.New("no reachable servers"))
	orders := &MockOrderRepository{CreateErrs: []error{down}}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())

	_, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	assert.Equal(t, domain.KindDatabaseUnavailable, domain.KindOf(err))
	assert.Equal(t, 1, orders.CreateCalls)
}

func TestPlaceOrder_OutboxFailureStillPlacesOrder(t *testing.T) {
	orders := &MockOrderRepository{}
	outbox := &MockOutboxRepository{RecordErr: errors.New("write conflict")}
	svc := NewOrderService(orders, outbox, testCatalog())

	order, err := svc.PlaceOrder(context.Background(), validOrderRequest())
	require.NoError(t, err)
	assert.False(t, order.EventRecorded)
	assert.Empty(t, orders.MarkedIDs)
	assert.Len(t, orders.Orders, 1)
}

func TestListOrders_PassesFilterAndCap(t *testing.T) {
	orders := &MockOrderRepository{}
	svc := NewOrderService(orders, &MockOutboxRepository{}, testCatalog())
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, validOrderRequest())
	require.NoError(t, err)
	other := validOrderRequest()
	other.CustomerInfo.Email = "b@x.com"
	_, err = svc.PlaceOrder(ctx, other)
	require.NoError(t, err)

	list, err := svc.ListOrders(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a@x.com", list[0].Customer.Email)
	assert.Equal(t, repository.OrderFilter{Email: "a@x.com", Limit: 50}, orders.LastFilter)

	all, err := svc.ListOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
