package payments

import (
	"testing"

	"yekzen_backend/internal/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCheckoutLineItems(t *testing.T) {
	items := []cart.Item{
		{ProductID: "1", Name: "Headphones", Price: 99.99, Quantity: 2, ImageURL: "https://cdn.yekzen.dev/p/1.jpg"},
		{ProductID: "2", Name: "Keyboard", Price: 149.99, Quantity: 1},
	}

	lineItems, err := BuildCheckoutLineItems(items, "inr")
	require.NoError(t, err)
	require.Len(t, lineItems, 2)

	assert.Equal(t, int64(9999), *lineItems[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *lineItems[0].Quantity)
	assert.Equal(t, "inr", *lineItems[0].PriceData.Currency)
	assert.Equal(t, "Headphones", *lineItems[0].PriceData.ProductData.Name)
	require.Len(t, lineItems[0].PriceData.ProductData.Images, 1)

	assert.Equal(t, int64(14999), *lineItems[1].PriceData.UnitAmount)
	assert.Nil(t, lineItems[1].PriceData.ProductData.Images)
}

func TestBuildCheckoutLineItemsEmptyCart(t *testing.T) {
	_, err := BuildCheckoutLineItems(nil, "inr")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildCheckoutLineItemsBadQuantity(t *testing.T) {
	_, err := BuildCheckoutLineItems([]cart.Item{{Name: "X", Price: 1, Quantity: 0}}, "inr")
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}
