package handlers

import (
	"net/http"

	"yekzen_backend/internal/cache"
	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"

	"github.com/gin-gonic/gin"
)

func cartStore() *cart.Store {
	return cart.NewStore(database.Redis)
}

// GET /api/cart
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := cartStore().Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart read failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":   items,
		"summary": cart.Summarize(items),
	})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var item cart.Item
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item"})
		return
	}
	if item.ProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId is required"})
		return
	}

	// Clients that only send an ID get the display name filled in.
	if item.Name == "" {
		names := cache.GetProductNamesFromCache([]string{item.ProductID.String()})
		item.Name = names[item.ProductID.String()]
	}

	items, err := cartStore().Add(c.Request.Context(), userID, item)
	if err == cart.ErrInvalidQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "summary": cart.Summarize(items)})
}

// PUT /api/cart/:productId
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := cart.NormalizeID(c.Param("productId"))

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	items, err := cartStore().UpdateQuantity(c.Request.Context(), userID, productID, req.Quantity)
	if err == cart.ErrInvalidQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "summary": cart.Summarize(items)})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := cart.NormalizeID(c.Param("productId"))

	items, err := cartStore().Remove(c.Request.Context(), userID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart update failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "summary": cart.Summarize(items)})
}

// DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := cartStore().Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart clear failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
