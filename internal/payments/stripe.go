package payments

import (
	"errors"
	"fmt"
	"log"

	"yekzen_backend/internal/cart"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/checkout/session"
)

var ErrEmptyCart = errors.New("cart is empty")

// BuildCheckoutLineItems translates cart lines into Stripe line items. Unit
// amounts go over in minor currency units.
func BuildCheckoutLineItems(items []cart.Item, currency string) ([]*stripe.CheckoutSessionLineItemParams, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, cart.ErrInvalidQuantity
		}

		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.ImageURL != "" {
			product.Images = stripe.StringSlice([]string{item.ImageURL})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(cart.MinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	return lineItems, nil
}

// CreateCheckoutSession opens a Stripe Checkout Session for the cart and
// returns the session ID and redirect URL unchanged.
func CreateCheckoutSession(items []cart.Item, currency, successURL, cancelURL string, metadata map[string]string) (*stripe.CheckoutSession, error) {
	lineItems, err := BuildCheckoutLineItems(items, currency)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	if metadata != nil {
		params.Metadata = metadata
	}

	s, err := session.New(params)
	if err != nil {
		log.Printf("❌ Stripe checkout session failed: %v", err)
		return nil, fmt.Errorf("payment session creation failed: %w", err)
	}
	return s, nil
}
