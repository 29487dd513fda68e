package payment

import (
	"context"
	"strings"
	"sync"
	"testing"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/inventory"
	"yekzen_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memOrders struct {
	mu    sync.Mutex
	saved []models.Order
}

func (m *memOrders) Save(order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, *order)
	return nil
}

func (m *memOrders) ExistsByPaymentID(paymentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.saved {
		if o.PaymentID == paymentID {
			return true, nil
		}
	}
	return false, nil
}

type memStock map[string]int

func (m memStock) Stock(_ context.Context, productID string) (int, error) {
	stock, ok := m[productID]
	if !ok {
		return 0, inventory.ErrProductNotFound
	}
	return stock, nil
}

func (m memStock) SetStock(_ context.Context, productID string, stock int) error {
	m[productID] = stock
	return nil
}

func newTestBooker(store *memOrders, stock memStock, cleared *[]string) orderBooker {
	return orderBooker{
		orders: store,
		stock:  stock,
		clearCart: func(_ context.Context, userID string) error {
			*cleared = append(*cleared, userID)
			return nil
		},
		notify: func(models.Order, string) {},
	}
}

func TestBookOrder(t *testing.T) {
	store := &memOrders{}
	stock := memStock{"p1": 10, "p2": 3}
	var cleared []string
	b := newTestBooker(store, stock, &cleared)

	items := []cart.Item{
		{ProductID: "p1", Name: "Headphones", Price: 99.99, Quantity: 2},
		{ProductID: "p2", Name: "Case", Price: 149.99, Quantity: 1},
	}

	order, err := b.book("u1", "u1@example.com", "razorpay", "pay_A1", "addr1", items)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, "razorpay", order.Provider)
	assert.Equal(t, 349.97, order.TotalPrice)
	require.Len(t, store.saved, 1)

	assert.Equal(t, 8, stock["p1"])
	assert.Equal(t, 2, stock["p2"])
	assert.Equal(t, []string{"u1"}, cleared)
}

func TestBookOrderSamePaymentIDBooksOnce(t *testing.T) {
	store := &memOrders{}
	stock := memStock{"p1": 10}
	var cleared []string
	b := newTestBooker(store, stock, &cleared)

	items := []cart.Item{{ProductID: "p1", Name: "Headphones", Price: 99.99, Quantity: 2}}

	first, err := b.book("u1", "u1@example.com", "stripe", "pi_123", "", items)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Redelivery of the same payment is a no-op.
	second, err := b.book("u1", "u1@example.com", "stripe", "pi_123", "", items)
	require.NoError(t, err)
	assert.Nil(t, second)

	assert.Len(t, store.saved, 1)
	assert.Equal(t, 8, stock["p1"])
	assert.Equal(t, []string{"u1"}, cleared)
}

func TestBookOrderSkipsMissingProduct(t *testing.T) {
	store := &memOrders{}
	stock := memStock{"p1": 5}
	var cleared []string
	b := newTestBooker(store, stock, &cleared)

	items := []cart.Item{
		{ProductID: "p1", Name: "Headphones", Price: 10, Quantity: 1},
		{ProductID: "gone", Name: "Ghost", Price: 10, Quantity: 1},
	}

	order, err := b.book("u1", "u1@example.com", "razorpay", "pay_B2", "", items)
	require.NoError(t, err)
	require.NotNil(t, order)

	// The order still books; only the existing line decrements.
	assert.Len(t, store.saved, 1)
	assert.Equal(t, 4, stock["p1"])
	_, exists := stock["gone"]
	assert.False(t, exists)
}

func TestNewReceiptFitsProviderLimit(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		r := newReceipt()
		assert.LessOrEqual(t, len(r), 40)
		assert.True(t, strings.HasPrefix(r, "rcpt_"))
		assert.False(t, seen[r])
		seen[r] = true
	}
}
