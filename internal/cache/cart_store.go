// Package cache holds the Redis-backed cart store. Carts are ephemeral
// per-customer state and are not persisted in the relational schema.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RajaDani/antique-watches-sub001/internal/model"

	"github.com/redis/go-redis/v9"
)

// Abandoned carts expire on their own.
const cartTTL = 30 * 24 * time.Hour

// CartStore reads and writes customer carts.
type CartStore interface {
	Get(ctx context.Context, userID string) (*model.Cart, error)
	Save(ctx context.Context, userID string, cart *model.Cart) error
	Clear(ctx context.Context, userID string) error
}

type redisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore connects a cart store to the Redis instance at addr.
func NewRedisCartStore(addr string) CartStore {
	return &redisCartStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

// Get returns the user's cart. A missing key is an empty cart, not an error.
func (s *redisCartStore) Get(ctx context.Context, userID string) (*model.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return &model.Cart{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

func (s *redisCartStore) Save(ctx context.Context, userID string, cart *model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.client.Set(ctx, cartKey(userID), data, cartTTL).Err()
}

func (s *redisCartStore) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, cartKey(userID)).Err()
}
