package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/revollution/storefront/internal/domain"
)

// HistoryEntry is the summary of a placed order kept next to the cart.
type HistoryEntry struct {
	ID     string             `json:"id"`
	UserID string             `json:"userId"`
	Items  []domain.CartItem  `json:"items"`
	Total  float64            `json:"total"`
	Date   time.Time          `json:"date"`
	Status domain.OrderStatus `json:"status"`
}

// History mirrors placed orders so they can still be listed when the order
// database is unreachable.
type History struct {
	mu      sync.Mutex
	storage Storage
	key     string
}

func NewHistory(storage Storage, cartID string) *History {
	return &History{
		storage: storage,
		key:     storageKey(HistoryNamespace, cartID),
	}
}

func (h *History) Append(ctx context.Context, entry HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal order history: %w", err)
	}
	if err := h.storage.Save(ctx, h.key, data); err != nil {
		return fmt.Errorf("failed to save order history: %w", err)
	}
	return nil
}

// List returns the entries recorded for userID, oldest first.
func (h *History) List(ctx context.Context, userID string) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (h *History) load(ctx context.Context) ([]HistoryEntry, error) {
	data, err := h.storage.Load(ctx, h.key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order history: %w", err)
	}
	return entries, nil
}

func NewHistoryEntry(order *domain.Order, items []domain.CartItem) HistoryEntry {
	return HistoryEntry{
		ID:     order.OrderNumber,
		UserID: order.Customer.Email,
		Items:  items,
		Total:  order.TotalAmount,
		Date:   order.CreatedAt,
		Status: order.Status,
	}
}
