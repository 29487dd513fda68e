package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestStoreGetEmpty(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestStoreAddMergesSameProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", Item{ProductID: "1", Name: "Headphones", Price: 99.99, Quantity: 1})
	require.NoError(t, err)

	items, err := s.Add(ctx, "u1", Item{ProductID: "1", Quantity: 2})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 99.99, items[0].Price)
}

func TestStoreAddDistinctProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", Item{ProductID: "1", Price: 10, Quantity: 2})
	require.NoError(t, err)
	items, err := s.Add(ctx, "u1", Item{ProductID: "2", Price: 20, Quantity: 2})
	require.NoError(t, err)

	// Badge stays at distinct-line count.
	assert.Equal(t, 2, UniqueItemCount(items))
	assert.Equal(t, 4, TotalQuantity(items))
}

func TestStoreAddRejectsNonPositiveQuantity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(context.Background(), "u1", Item{ProductID: "1", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.Add(context.Background(), "u1", Item{ProductID: "1", Quantity: -2})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestStoreUpdateQuantity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", Item{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	items, err := s.UpdateQuantity(ctx, "u1", "1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, items[0].Quantity)

	// Quantity zero removes the line.
	items, err = s.UpdateQuantity(ctx, "u1", "1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.UpdateQuantity(ctx, "u1", "missing", 2)
	assert.Error(t, err)
}

func TestStoreRemoveAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", Item{ProductID: "1", Quantity: 1})
	require.NoError(t, err)
	_, err = s.Add(ctx, "u1", Item{ProductID: "2", Quantity: 1})
	require.NoError(t, err)

	items, err := s.Remove(ctx, "u1", "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ProductID("2"), items[0].ProductID)

	require.NoError(t, s.Clear(ctx, "u1"))
	items, err = s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreCartsIsolatedPerUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "u1", Item{ProductID: "1", Quantity: 1})
	require.NoError(t, err)

	items, err := s.Get(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
