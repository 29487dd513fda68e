package payment

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/payments"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"
)

func paymentError(c *gin.Context, err error) {
	body := gin.H{"error": "payment session creation failed"}
	// Provider details stay server-side in production.
	if gin.Mode() != gin.ReleaseMode {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}

// POST /api/checkout/stripe — creates a Stripe Checkout Session from the
// user's cart and hands back the redirect URL unchanged.
func CreateCheckoutSession(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	items, err := cart.NewStore(database.Redis).Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart read failed"})
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		return
	}

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:3000"
	}

	cartJSON, _ := json.Marshal(items)
	metadata := map[string]string{
		"user_id": userID,
		"email":   email,
		"cart":    string(cartJSON),
	}

	s, err := payments.CreateCheckoutSession(items, "inr",
		frontend+"/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		frontend+"/cart", metadata)
	if err == payments.ErrEmptyCart || err == cart.ErrInvalidQuantity {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		paymentError(c, err)
		return
	}

	log.Printf("💳 Checkout session %s (₹%.2f) for %s", s.ID, cart.OrderTotal(items), userID)

	c.JSON(http.StatusOK, gin.H{
		"session_id": s.ID,
		"url":        s.URL,
	})
}

// POST /api/checkout/intent — PaymentIntent flow for the embedded payment
// element. The cart rides along in the intent metadata so the webhook can
// book the order without trusting the client.
func CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Items []cart.Item `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request or empty cart"})
		return
	}

	userID := c.GetString("user_id")
	email := c.GetString("email")

	total := cart.OrderTotal(req.Items)
	if total <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be positive"})
		return
	}

	cartJSON, err := json.Marshal(req.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cart serialization failed"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(cart.MinorUnits(total)),
		Currency: stripe.String("inr"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id": userID,
			"email":   email,
			"cart":    string(cartJSON),
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		paymentError(c, err)
		return
	}

	log.Printf("💳 PaymentIntent %s (₹%.2f) for %s", intent.ID, total, email)

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
	})
}

// POST /api/webhooks/stripe
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body read failed"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ No STRIPE_WEBHOOK_SECRET — test mode, skipping signature check")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Invalid Stripe signature:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
	}

	log.Printf("📥 Stripe event: %s", event.Type)
	handleStripeEvent(event)

	c.Status(http.StatusOK)
}

func handleStripeEvent(event stripe.Event) {
	if event.Type != "payment_intent.succeeded" {
		log.Printf("ℹ️ Ignoring event: %s", event.Type)
		return
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		log.Println("❌ PaymentIntent decoding failed:", err)
		return
	}

	userID := pi.Metadata["user_id"]
	email := pi.Metadata["email"]
	cartData := pi.Metadata["cart"]
	if userID == "" || cartData == "" {
		log.Println("⚠️ Incomplete intent metadata, skipping")
		return
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(cartData), &items); err != nil {
		log.Println("❌ Cart metadata decoding failed:", err)
		return
	}

	if _, err := finalizeOrder(userID, email, "stripe", pi.ID, "", items); err != nil {
		log.Printf("❌ Order booking failed for intent %s: %v", pi.ID, err)
	}
}

