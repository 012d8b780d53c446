package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/prasetyoadi/umkm-storefront/internal/catalog"
	"github.com/prasetyoadi/umkm-storefront/pkg/logger"
)

// Item is a product snapshot plus a quantity. The snapshot taken at first
// add wins; later catalog updates never refresh price, name or weight.
type Item struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// envelope is the JSON shape written to the durable slot.
type envelope struct {
	Items []Item `json:"items"`
}

// Store holds one session's cart. It owns the item sequence exclusively:
// all mutations go through its methods, each of which writes the whole cart
// back to the durable slot. Persist failures are logged and swallowed;
// in-memory state stays the source of truth for the session.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []Item
	storage   Storage
	logg      *logger.Logger
}

// NewStore creates an empty cart bound to the given session and slot storage.
func NewStore(sessionID string, storage Storage, logg *logger.Logger) *Store {
	return &Store{
		sessionID: sessionID,
		storage:   storage,
		logg:      logg,
	}
}

// Rehydrate loads the persisted slot. An absent, unreadable or malformed
// slot yields an empty cart; rehydration never fails.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.storage == nil {
		return
	}
	raw, found, err := s.storage.Load(ctx, s.sessionID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, s.sessionID), "cart slot unreadable, starting empty")
		}
		return
	}
	if !found {
		return
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithSessionID(ctx, s.sessionID), "cart slot malformed, starting empty")
		}
		return
	}

	items := make([]Item, 0, len(env.Items))
	for _, item := range env.Items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		items = append(items, item)
	}
	s.items = items
}

// AddItem increments the quantity for an already-carted product or appends
// a new line with quantity 1. It always succeeds.
func (s *Store) AddItem(ctx context.Context, product catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity++
			s.persist(ctx)
			return
		}
	}
	s.items = append(s.items, Item{Product: product, Quantity: 1})
	s.persist(ctx)
}

// RemoveItem deletes the line for the given product id. Absent ids are a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, productID)
}

// UpdateQuantity overwrites the quantity for the given product id. A
// quantity of zero or below behaves exactly like RemoveItem.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

// TotalPrice recomputes the subtotal on every call.
func (s *Store) TotalPrice() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Price * item.Quantity
	}
	return total
}

// TotalWeight recomputes the total weight in grams on every call.
func (s *Store) TotalWeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Weight * item.Quantity
	}
	return total
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// persist writes the full cart to the slot. Callers hold the lock.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	raw, err := json.Marshal(envelope{Items: s.items})
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithSessionID(ctx, s.sessionID), "failed to serialize cart", err)
		}
		return
	}
	if err := s.storage.Save(ctx, s.sessionID, raw); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithSessionID(ctx, s.sessionID), "failed to persist cart slot")
	}
}
