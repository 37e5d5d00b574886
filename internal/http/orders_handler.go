package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/service"
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req *service.PlaceOrderRequest) (*domain.Order, error)
	ListOrders(ctx context.Context, email string) ([]*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderPlacer
	timeout time.Duration
}

func NewOrdersHandler(orders OrderPlacer, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type PlacedOrderDTO struct {
	OrderNumber string `json:"orderNumber"`
	OrderID     string `json:"orderId"`
}

// POST /orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req service.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields", "invalid request body")
		return
	}

	order, err := h.orders.PlaceOrder(ctx, &req)
	if err != nil {
		handleError(w, r, err, "Failed to create order")
		return
	}

	respondSuccess(w, "Order placed successfully", PlacedOrderDTO{
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID.Hex(),
	})
}

// GET /orders?email=
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		if claims := claimsFromContext(r.Context()); claims != nil {
			email = claims.Email
		}
	}

	orders, err := h.orders.ListOrders(ctx, email)
	if err != nil {
		handleError(w, r, err, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}

	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: orders})
}
