package cart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueItemCountIsLineCountNotQuantitySum(t *testing.T) {
	items := []Item{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 2},
	}
	// The cart badge shows 2 distinct products, not 4 units.
	assert.Equal(t, 2, UniqueItemCount(items))
	assert.Equal(t, 4, TotalQuantity(items))
}

func TestUniqueItemCountEmptyAndNil(t *testing.T) {
	assert.Equal(t, 0, UniqueItemCount(nil))
	assert.Equal(t, 0, UniqueItemCount([]Item{}))
}

func TestUniqueItemCountSingleLineLargeQuantity(t *testing.T) {
	assert.Equal(t, 1, UniqueItemCount([]Item{{ProductID: "7", Quantity: 100}}))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 199.98, LineTotal(Item{Price: 99.99, Quantity: 2}))
	assert.Equal(t, 449.97, LineTotal(Item{Price: 149.99, Quantity: 3}))
}

func TestLineTotalNoFloatArtifacts(t *testing.T) {
	// 10.995 * 2 must come out as exactly 21.99, not 21.990000000000002.
	assert.Equal(t, 21.99, LineTotal(Item{Price: 10.995, Quantity: 2}))
}

func TestLineTotalMissingFields(t *testing.T) {
	assert.Equal(t, 0.0, LineTotal(Item{Quantity: 3}))
	assert.Equal(t, 0.0, LineTotal(Item{Price: 9.99}))
}

func TestOrderTotal(t *testing.T) {
	items := []Item{
		{Price: 99.99, Quantity: 2},
		{Price: 149.99, Quantity: 1},
	}
	assert.Equal(t, 349.97, OrderTotal(items))
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestSummarize(t *testing.T) {
	items := []Item{
		{ProductID: "1", Price: 99.99, Quantity: 2},
		{ProductID: "2", Price: 149.99, Quantity: 1},
	}
	s := Summarize(items)
	assert.Equal(t, 2, s.UniqueCount)
	assert.Equal(t, 3, s.TotalQuantity)
	assert.Equal(t, []float64{199.98, 149.99}, s.LineTotals)
	assert.Equal(t, 349.97, s.Subtotal)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(9999), MinorUnits(99.99))
	assert.Equal(t, int64(100), MinorUnits(1.0))
	// Rounding, not truncation, of 0.1+0.2-style drift.
	assert.Equal(t, int64(30), MinorUnits(0.1+0.2))
}

func TestNormalizeID(t *testing.T) {
	assert.Equal(t, ProductID("1"), NormalizeID(1))
	assert.Equal(t, ProductID("123"), NormalizeID(123))
	assert.Equal(t, ProductID("1.5"), NormalizeID(1.5))
	assert.Equal(t, ProductID("9007199254740991"), NormalizeID(int64(9007199254740991)))
	assert.Equal(t, ProductID("abc"), NormalizeID("abc"))
	assert.Equal(t, ProductID(""), NormalizeID(nil))
}

func TestProductIDUnmarshalJSON(t *testing.T) {
	var item Item

	require.NoError(t, json.Unmarshal([]byte(`{"productId": 42, "quantity": 1}`), &item))
	assert.Equal(t, ProductID("42"), item.ProductID)

	require.NoError(t, json.Unmarshal([]byte(`{"productId": "42", "quantity": 1}`), &item))
	assert.Equal(t, ProductID("42"), item.ProductID)

	require.NoError(t, json.Unmarshal([]byte(`{"productId": 1.5}`), &item))
	assert.Equal(t, ProductID("1.5"), item.ProductID)

	// Digit-exact at MAX_SAFE_INTEGER scale, no float round-trip.
	require.NoError(t, json.Unmarshal([]byte(`{"productId": 9007199254740991}`), &item))
	assert.Equal(t, ProductID("9007199254740991"), item.ProductID)

	err := json.Unmarshal([]byte(`{"productId": true}`), &item)
	assert.Error(t, err)
}
