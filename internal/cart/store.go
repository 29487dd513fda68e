package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Carts live in Redis as a JSON array under cart:<userID>. TTL refreshes on
// every mutation; an untouched cart expires after 30 days.
const cartTTL = 30 * 24 * time.Hour

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func cartKey(userID string) string { return "cart:" + userID }

// Get returns the user's cart, empty (never nil) when none is stored.
func (s *Store) Get(ctx context.Context, userID string) ([]Item, error) {
	data, err := s.rdb.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil {
		return []Item{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("corrupt cart for %s: %w", userID, err)
	}
	return items, nil
}

// Add merges the item into the cart: an existing line for the same product
// gets its quantity bumped, otherwise a new line is appended.
func (s *Store) Add(ctx context.Context, userID string, item Item) ([]Item, error) {
	if item.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}

	if err := s.save(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the line's quantity outright; zero removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, userID string, productID ProductID, quantity int) ([]Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.Remove(ctx, userID, productID)
	}

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			if err := s.save(ctx, userID, items); err != nil {
				return nil, err
			}
			return items, nil
		}
	}
	return nil, fmt.Errorf("product %s not in cart", productID)
}

// Remove drops the line for the product, if present.
func (s *Store) Remove(ctx context.Context, userID string, productID ProductID) ([]Item, error) {
	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := s.save(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear wipes the cart, used after an order completes.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, cartKey(userID)).Err(); err != nil {
		return err
	}
	s.rdb.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

func (s *Store) save(ctx context.Context, userID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return err
	}
	// Wake up any websocket subscribed to this user's cart.
	s.rdb.Publish(ctx, cartKey(userID), "updated")
	return nil
}
