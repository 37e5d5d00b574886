package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const maxOrderNumberAttempts = 3

type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// PlaceOrderRequest is the checkout payload. Only presence is checked: an
// empty items list is present, a missing or null one is not.
type PlaceOrderRequest struct {
	CustomerInfo *CustomerInfo     `json:"customerInfo" validate:"required"`
	Items        []domain.CartItem `json:"items" validate:"required"`
	TotalAmount  float64           `json:"totalAmount" validate:"required"`
}

// ProductLookup resolves the authoritative product for a cart line.
type ProductLookup interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
}

type OrderService struct {
	orders   repository.OrderRepository
	outbox   repository.OutboxRepository
	products ProductLookup
	validate *validator.Validate
	now      func() time.Time
}

// NewOrderService builds the order service. A nil products lookup keeps the
// client-supplied prices and total.
func NewOrderService(orders repository.OrderRepository, outbox repository.OutboxRepository, products ProductLookup) *OrderService {
	return &OrderService{
		orders:   orders,
		outbox:   outbox,
		products: products,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*domain.Order, error) {
	if err := requirePresent(s.validate, req, "Missing required fields"); err != nil {
		return nil, err
	}

	items, total, err := s.price(ctx, req)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		Customer: domain.Customer{
			Name:  req.CustomerInfo.Name,
			Email: req.CustomerInfo.Email,
			Phone: req.CustomerInfo.Phone,
		},
		ShippingAddress: domain.ShippingAddress{
			Street:     req.CustomerInfo.Address,
			City:       req.CustomerInfo.City,
			PostalCode: req.CustomerInfo.PostalCode,
		},
		Items:         items,
		TotalAmount:   total,
		Status:        domain.OrderStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Notification:  domain.Notification{Status: domain.NotificationPending},
	}

	if err := s.insert(ctx, order); err != nil {
		return nil, err
	}

	s.recordPlaced(ctx, order)
	return order, nil
}

// ListOrders returns up to 50 orders, newest first. An empty email lists every customer's orders.
func (s *OrderService) ListOrders(ctx context.Context, email string) ([]*domain.Order, error) {
	return s.orders.ListOrders(ctx, repository.OrderFilter{
		Email: email,
		Limit: repository.MaxOrderListLimit,
	})
}

func (s *OrderService) price(ctx context.Context, req *PlaceOrderRequest) ([]domain.LineItem, float64, error) {
	items := make([]domain.LineItem, 0, len(req.Items))

	if s.products == nil {
		for _, item := range req.Items {
			items = append(items, item.LineItem())
		}
		return items, req.TotalAmount, nil
	}

	total := decimal.Zero
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, 0, domain.NewError(domain.KindInvalidInput, fmt.Sprintf("Invalid quantity for product %s", item.ProductID))
		}
		product, err := s.products.Product(ctx, item.ProductID)
		if err != nil {
			if domain.KindOf(err) == domain.KindNotFound {
				return nil, 0, domain.WrapError(domain.KindInvalidInput, fmt.Sprintf("Unknown product %s", item.ProductID), err)
			}
			return nil, 0, fmt.Errorf("failed to price product %s: %w", item.ProductID, err)
		}

		line := item.LineItem()
		line.Name = product.Name
		line.Category = string(product.Category)
		line.UnitPrice = product.Price
		if image := product.PrimaryImage(); image != "" {
			line.ImageURL = image
		}
		items = append(items, line)
		total = total.Add(line.Subtotal())
	}

	if !total.Equal(decimal.NewFromFloat(req.TotalAmount)) {
		log.Warn().
			Float64("client_total", req.TotalAmount).
			Str("catalog_total", total.StringFixed(2)).
			Msg("client total differs from catalog, using catalog total")
	}
	return items, total.InexactFloat64(), nil
}

// insert persists the order, drawing a fresh order number on collision.
func (s *OrderService) insert(ctx context.Context, order *domain.Order) error {
	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		number, err := domain.NewOrderNumber(s.now())
		if err != nil {
			return fmt.Errorf("failed to generate order number: %w", err)
		}
		order.OrderNumber = number

		err = s.orders.CreateOrder(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return err
		}
		log.Warn().Str("order_number", number).Int("attempt", attempt).Msg("order number collision")
	}
	return domain.WrapError(domain.KindUnknown, "Failed to create order", ErrOrderNumberExhausted)
}

// recordPlaced writes the OrderPlaced outbox event and flags the order. A
// failure here leaves the order unflagged for the outbox recovery loop.
func (s *OrderService) recordPlaced(ctx context.Context, order *domain.Order) {
	event, err := domain.NewOrderPlacedEvent(order)
	if err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to build order placed event")
		return
	}
	if err := s.outbox.RecordEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to record order placed event")
		return
	}
	if err := s.orders.MarkEventRecorded(ctx, order.ID); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to mark order event recorded")
		return
	}
	order.EventRecorded = true
}
