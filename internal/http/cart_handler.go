package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/revollution/storefront/internal/cart"
	"github.com/revollution/storefront/internal/domain"
	"github.com/revollution/storefront/internal/service"
)

const CartIDHeader = "X-Cart-ID"

type CartHandler struct {
	storage cart.Storage
	orders  OrderPlacer
	timeout time.Duration
	locks   sync.Map // cart id -> *sync.Mutex
}

func NewCartHandler(storage cart.Storage, orders OrderPlacer, timeout time.Duration) *CartHandler {
	return &CartHandler{
		storage: storage,
		orders:  orders,
		timeout: timeout,
	}
}

type CartDTO struct {
	Items      []domain.CartItem `json:"items"`
	TotalPrice float64           `json:"totalPrice"`
	TotalCount int               `json:"totalCount"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequestDTO struct {
	CustomerInfo *service.CustomerInfo `json:"customerInfo"`
}

// GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()
	respondJSON(w, http.StatusOK, toCartDTO(store))
}

// POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var item domain.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid cart item", err.Error())
		return
	}

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()
	if err := store.Add(ctx, item); err != nil {
		handleError(w, r, err, "Failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(store))
}

// PUT /cart/items/{productId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid quantity", err.Error())
		return
	}

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()
	if err := store.SetQuantity(ctx, chi.URLParam(r, "productId"), req.Quantity); err != nil {
		handleError(w, r, err, "Failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(store))
}

// DELETE /cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()
	if err := store.Remove(ctx, chi.URLParam(r, "productId")); err != nil {
		handleError(w, r, err, "Failed to update cart")
		return
	}
	respondJSON(w, http.StatusOK, toCartDTO(store))
}

// DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()
	if err := store.Clear(ctx); err != nil {
		handleError(w, r, err, "Failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /cart/checkout places an order from the cart contents. The cart is
// cleared and the order mirrored to the cart's history only after the order
// is stored.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields", "invalid request body")
		return
	}

	store, unlock, ok := h.openStore(ctx, w, r)
	if !ok {
		return
	}
	defer unlock()

	items := store.Items()
	if len(items) == 0 {
		respondError(w, http.StatusBadRequest, "Cart is empty", "")
		return
	}
	order, err := h.orders.PlaceOrder(ctx, &service.PlaceOrderRequest{
		CustomerInfo: req.CustomerInfo,
		Items:        items,
		TotalAmount:  store.TotalPrice().InexactFloat64(),
	})
	if err != nil {
		handleError(w, r, err, "Failed to create order")
		return
	}

	log := requestLogger(r)
	if err := store.Clear(ctx); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to clear cart after checkout")
	}
	history := cart.NewHistory(h.storage, r.Header.Get(CartIDHeader))
	if err := history.Append(ctx, cart.NewHistoryEntry(order, items)); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to record order history")
	}

	respondSuccess(w, "Order placed successfully", PlacedOrderDTO{
		OrderNumber: order.OrderNumber,
		OrderID:     order.ID.Hex(),
	})
}

// GET /cart/orders?email=
func (h *CartHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID, ok := requireCartID(w, r)
	if !ok {
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		if claims := claimsFromContext(r.Context()); claims != nil {
			email = claims.Email
		}
	}

	entries, err := cart.NewHistory(h.storage, cartID).List(ctx, email)
	if err != nil {
		handleError(w, r, err, "Failed to fetch orders")
		return
	}
	respondJSON(w, http.StatusOK, Envelope{Success: true, Data: entries})
}

// openStore hydrates the request's cart while holding that cart's lock. The
// caller must release it with the returned unlock once the request is done.
func (h *CartHandler) openStore(ctx context.Context, w http.ResponseWriter, r *http.Request) (*cart.Store, func(), bool) {
	cartID, ok := requireCartID(w, r)
	if !ok {
		return nil, nil, false
	}
	unlock := h.lockCart(cartID)

	store, err := cart.NewStore(ctx, h.storage, cartID)
	if err != nil {
		unlock()
		handleError(w, r, err, "Failed to load cart")
		return nil, nil, false
	}
	return store, unlock, true
}

// lockCart serializes requests on one cart within this process.
func (h *CartHandler) lockCart(cartID string) func() {
	v, _ := h.locks.LoadOrStore(cartID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func requireCartID(w http.ResponseWriter, r *http.Request) (string, bool) {
	cartID := r.Header.Get(CartIDHeader)
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "Missing cart id", CartIDHeader+" header is required")
		return "", false
	}
	return cartID, true
}

func toCartDTO(store *cart.Store) CartDTO {
	return CartDTO{
		Items:      store.Items(),
		TotalPrice: store.TotalPrice().InexactFloat64(),
		TotalCount: store.TotalCount(),
	}
}
