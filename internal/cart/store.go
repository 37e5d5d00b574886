package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/revollution/storefront/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Store is one shopping cart. Lines keep insertion order and every mutation
// writes the whole cart back to Storage before it becomes visible.
type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	items   []domain.CartItem
}

// NewStore hydrates the cart identified by cartID. A missing or unreadable
// snapshot starts an empty cart; a storage failure is returned.
func NewStore(ctx context.Context, storage Storage, cartID string) (*Store, error) {
	s := &Store{
		storage: storage,
		key:     storageKey(CartNamespace, cartID),
		items:   make([]domain.CartItem, 0),
	}

	data, err := storage.Load(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("discarding unreadable cart snapshot")
		return s, nil
	}
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			continue
		}
		s.items = append(s.items, item)
	}
	return s, nil
}

// Add puts one unit of item in the cart. The item's own quantity is ignored.
func (s *Store) Add(ctx context.Context, item domain.CartItem) error {
	if item.ProductID == "" {
		return domain.NewError(domain.KindMissingFields, "Product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	if i := s.indexOf(item.ProductID); i >= 0 {
		next[i].Quantity++
	} else {
		item.Quantity = 1
		next = append(next, item)
	}
	return s.commit(ctx, next)
}

func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.items), func(item domain.CartItem) bool {
		return item.ProductID == productID
	})
	return s.commit(ctx, next)
}

// SetQuantity overwrites a line's quantity; quantity <= 0 removes the line.
// Unknown products are left alone.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	if i := s.indexOf(productID); i >= 0 {
		next[i].Quantity = quantity
	}
	return s.commit(ctx, next)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, make([]domain.CartItem, 0))
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.items)
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) indexOf(productID string) int {
	return slices.IndexFunc(s.items, func(item domain.CartItem) bool {
		return item.ProductID == productID
	})
}

// commit must be called with mu held.
func (s *Store) commit(ctx context.Context, next []domain.CartItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	s.items = next
	return nil
}
