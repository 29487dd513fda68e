package payment

import (
	"log"
	"net/http"
	"os"
	"strings"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newReceipt stays under the provider's 40-character receipt cap.
func newReceipt() string {
	return "rcpt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// POST /api/checkout/razorpay — registers a Razorpay order for the user's
// cart total; the storefront opens the payment widget with the returned ID.
func CreateRazorpayOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	items, err := cart.NewStore(database.Redis).Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart read failed"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	total := cart.OrderTotal(items)
	amountPaise := cart.MinorUnits(total)
	if amountPaise <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	order, err := payments.CreateRazorpayOrder(amountPaise, "INR", newReceipt())
	if err != nil {
		paymentError(c, err)
		return
	}

	log.Printf("💳 Razorpay order %s (₹%.2f) for %s", order.ID, total, userID)

	c.JSON(http.StatusOK, gin.H{
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"receipt":  order.Receipt,
		"key_id":   os.Getenv("RAZORPAY_KEY_ID"),
	})
}

// POST /api/checkout/razorpay/verify — verifies the client-reported payment
// completion. A bad signature is a hard authentication failure.
func VerifyRazorpayPayment(c *gin.Context) {
	var req struct {
		OrderID   string `json:"razorpay_order_id" binding:"required"`
		PaymentID string `json:"razorpay_payment_id" binding:"required"`
		Signature string `json:"razorpay_signature" binding:"required"`
		AddressID string `json:"address_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order id, payment id and signature are required"})
		return
	}

	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if !payments.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature, secret) {
		log.Printf("❌ Razorpay signature mismatch for order %s", req.OrderID)
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "error": "signature verification failed"})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")

	items, err := cart.NewStore(database.Redis).Get(c.Request.Context(), userID)
	if err != nil || len(items) == 0 {
		// Payment is genuine even if the cart is gone; report verified.
		c.JSON(http.StatusOK, gin.H{"verified": true})
		return
	}

	order, err := finalizeOrder(userID, email, "razorpay", req.PaymentID, req.AddressID, items)
	if err != nil {
		log.Printf("❌ Order booking failed for payment %s: %v", req.PaymentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"verified": true, "error": "order booking failed"})
		return
	}

	resp := gin.H{"verified": true}
	if order != nil {
		resp["order_id"] = order.ID.String()
	}
	c.JSON(http.StatusOK, resp)
}
