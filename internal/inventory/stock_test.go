package inventory

import (
	"context"
	"fmt"
	"testing"

	"yekzen_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

type mockStore struct {
	stock map[string]int
}

func (m *mockStore) Stock(_ context.Context, productID string) (int, error) {
	s, ok := m.stock[productID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return s, nil
}

func (m *mockStore) SetStock(_ context.Context, productID string, stock int) error {
	m.stock[productID] = stock
	return nil
}

func TestHasSufficientStock(t *testing.T) {
	assert.True(t, HasSufficientStock(10, 5))
	assert.False(t, HasSufficientStock(3, 5))
	assert.False(t, HasSufficientStock(-5, 1))
	assert.True(t, HasSufficientStock(5, 5))
}

func TestRemainingStockClampsAtZero(t *testing.T) {
	assert.Equal(t, 5, RemainingStock(10, 5))
	assert.Equal(t, 0, RemainingStock(3, 5))
	assert.Equal(t, 0, RemainingStock(0, 1))
}

func TestApplyOrderDecrementsStock(t *testing.T) {
	store := &mockStore{stock: map[string]int{"p1": 10, "p2": 3}}

	ApplyOrder(context.Background(), store, []models.OrderItem{
		{ProductID: "p1", Quantity: 4},
		{ProductID: "p2", Quantity: 5}, // oversell, clamps at zero
	})

	assert.Equal(t, 6, store.stock["p1"])
	assert.Equal(t, 0, store.stock["p2"])
}

func TestApplyOrderSkipsMissingProducts(t *testing.T) {
	store := &mockStore{stock: map[string]int{"p1": 10}}

	// The missing product must not abort the rest of the order.
	ApplyOrder(context.Background(), store, []models.OrderItem{
		{ProductID: "ghost", Quantity: 1},
		{ProductID: "p1", Quantity: 2},
	})

	assert.Equal(t, 8, store.stock["p1"])
	_, ok := store.stock["ghost"]
	assert.False(t, ok)
}
