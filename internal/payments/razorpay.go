package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

var (
	razorpayClient *razorpay.Client

	ErrInvalidAmount = errors.New("amount must be positive")
)

// InitRazorpay builds the shared client from RAZORPAY_KEY_ID /
// RAZORPAY_KEY_SECRET. Fatal when missing, same as the Stripe key check.
func InitRazorpay() {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("❌ Cannot initialize Razorpay: RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET missing")
	}
	razorpayClient = razorpay.NewClient(keyID, keySecret)
	log.Println("✅ Razorpay initialized")
}

// RazorpayOrder is the slice of the provider's order object the storefront
// needs to open the payment widget.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateRazorpayOrder registers an order with Razorpay. Amount is in paise;
// the provider's order ID comes back unchanged.
func CreateRazorpayOrder(amountPaise int64, currency, receipt string) (*RazorpayOrder, error) {
	if amountPaise <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	body, err := razorpayClient.Order.Create(data, nil)
	if err != nil {
		log.Printf("❌ Razorpay order creation failed: %v", err)
		return nil, fmt.Errorf("payment session creation failed: %w", err)
	}

	order := &RazorpayOrder{
		Amount:   amountPaise,
		Currency: currency,
		Receipt:  receipt,
	}
	if id, ok := body["id"].(string); ok {
		order.ID = id
	}
	return order, nil
}

// VerifyPaymentSignature recomputes the HMAC-SHA256 over
// "<orderID>|<paymentID>" with the key secret and compares it to the
// client-reported signature in constant time. Any mismatch means the
// completion callback was forged or tampered with.
func VerifyPaymentSignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
