package handlers

import (
	"log"
	"net/http"

	"yekzen_backend/internal/models"
	"yekzen_backend/internal/orders"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GET /api/orders
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	list, err := orders.ListByUser(userID)
	if err != nil {
		log.Printf("❌ Order listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := orders.GetByID(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	// Owner or admin only.
	if order.UserID != userID && c.GetString("role") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// GET /api/admin/orders (admin)
func AdminListOrders(c *gin.Context) {
	list, err := orders.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "order listing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": list, "count": len(list)})
}

// PUT /api/admin/orders/:id/status (admin)
func AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	switch req.Status {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped,
		models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	if err := orders.UpdateStatus(orderID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "status update failed"})
		return
	}

	log.Printf("📦 Order %s → %s", orderID, req.Status)
	c.JSON(http.StatusOK, gin.H{"order_id": orderID.String(), "status": req.Status})
}
