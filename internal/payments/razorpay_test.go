package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyPaymentSignatureAccepts(t *testing.T) {
	secret := "test_key_secret"
	sig := signPayment(secret, "order_Nxz1", "pay_Mab42")

	assert.True(t, VerifyPaymentSignature("order_Nxz1", "pay_Mab42", sig, secret))
}

func TestVerifyPaymentSignatureRejects(t *testing.T) {
	secret := "test_key_secret"
	sig := signPayment(secret, "order_Nxz1", "pay_Mab42")

	// Any deviation is a hard rejection, there is no partial-trust state.
	assert.False(t, VerifyPaymentSignature("order_Nxz1", "pay_Mab42", "deadbeef", secret))
	assert.False(t, VerifyPaymentSignature("order_Nxz1", "pay_Mab42", sig+"00", secret))
	assert.False(t, VerifyPaymentSignature("order_other", "pay_Mab42", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_Nxz1", "pay_other", sig, secret))
	assert.False(t, VerifyPaymentSignature("order_Nxz1", "pay_Mab42", sig, "wrong_secret"))
	assert.False(t, VerifyPaymentSignature("order_Nxz1", "pay_Mab42", "", secret))
}

func TestCreateRazorpayOrderRejectsNonPositiveAmount(t *testing.T) {
	_, err := CreateRazorpayOrder(0, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = CreateRazorpayOrder(-100, "INR", "rcpt_1")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
