package cache

import (
	"context"
	"sync"

	"github.com/RajaDani/antique-watches-sub001/internal/model"
)

// memoryCartStore is an in-process CartStore used by tests and by local
// development without Redis.
type memoryCartStore struct {
	mu    sync.Mutex
	carts map[string]model.Cart
}

// NewMemoryCartStore returns a CartStore that keeps carts in process memory.
func NewMemoryCartStore() CartStore {
	return &memoryCartStore{carts: make(map[string]model.Cart)}
}

func (s *memoryCartStore) Get(ctx context.Context, userID string) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.carts[userID]
	// copy so callers cannot mutate the stored slice
	out := model.Cart{Items: append([]model.CartItem(nil), cart.Items...)}
	return &out, nil
}

func (s *memoryCartStore) Save(ctx context.Context, userID string, cart *model.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[userID] = model.Cart{Items: append([]model.CartItem(nil), cart.Items...)}
	return nil
}

func (s *memoryCartStore) Clear(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}
