package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartResponse struct {
	Items   []cart.Item `json:"items"`
	Summary struct {
		UniqueCount   int     `json:"unique_count"`
		TotalQuantity int     `json:"total_quantity"`
		Subtotal      float64 `json:"subtotal"`
	} `json:"summary"`
}

func setupCartRouter(t *testing.T) *gin.Engine {
	t.Helper()

	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "u1") })
	r.GET("/cart", GetCart)
	r.POST("/cart/add", AddToCart)
	r.PUT("/cart/:productId", UpdateCartItem)
	r.DELETE("/cart/:productId", RemoveFromCart)
	r.DELETE("/cart", ClearCart)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetCartEmpty(t *testing.T) {
	r := setupCartRouter(t)

	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Summary.UniqueCount)
}

func TestAddToCartNumericAndStringIDsMerge(t *testing.T) {
	r := setupCartRouter(t)

	// Legacy clients send the ID as a JSON number.
	w := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": 42, "name": "Headphones", "price": 99.99, "quantity": 1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "42", "name": "Headphones", "price": 99.99, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, cart.ProductID("42"), resp.Items[0].ProductID)
	assert.Equal(t, 3, resp.Items[0].Quantity)
	assert.Equal(t, 1, resp.Summary.UniqueCount)
	assert.Equal(t, 299.97, resp.Summary.Subtotal)
}

func TestAddToCartBadgeCountsLinesNotQuantity(t *testing.T) {
	r := setupCartRouter(t)

	doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "1", "name": "A", "price": 10, "quantity": 2,
	})
	w := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "2", "name": "B", "price": 20, "quantity": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	assert.Equal(t, 2, resp.Summary.UniqueCount)
	assert.Equal(t, 4, resp.Summary.TotalQuantity)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	r := setupCartRouter(t)

	w := doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "1", "name": "A", "price": 10, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemZeroRemovesLine(t *testing.T) {
	r := setupCartRouter(t)

	doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "1", "name": "A", "price": 10, "quantity": 2,
	})

	w := doJSON(t, r, http.MethodPut, "/cart/1", map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
}

func TestUpdateCartItemMissingProduct(t *testing.T) {
	r := setupCartRouter(t)

	w := doJSON(t, r, http.MethodPut, "/cart/missing", map[string]interface{}{"quantity": 2})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	r := setupCartRouter(t)

	doJSON(t, r, http.MethodPost, "/cart/add", map[string]interface{}{
		"productId": "1", "name": "A", "price": 10, "quantity": 1,
	})

	w := doJSON(t, r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/cart", nil)
	resp := decodeCart(t, w)
	assert.Empty(t, resp.Items)
}
