package payment

import (
	"context"
	"log"

	"yekzen_backend/internal/cart"
	"yekzen_backend/internal/database"
	"yekzen_backend/internal/inventory"
	"yekzen_backend/internal/models"
	"yekzen_backend/internal/orders"
	"yekzen_backend/internal/utils"
)

// orderStore is the slice of the order store the booking path needs.
type orderStore interface {
	Save(order *models.Order) error
	ExistsByPaymentID(paymentID string) (bool, error)
}

type scyllaOrders struct{}

func (scyllaOrders) Save(order *models.Order) error { return orders.Save(order) }
func (scyllaOrders) ExistsByPaymentID(paymentID string) (bool, error) {
	return orders.ExistsByPaymentID(paymentID)
}

// orderBooker turns a verified payment into an order: persist, decrement
// stock, clear the cart, send the confirmation.
type orderBooker struct {
	orders    orderStore
	stock     inventory.StockStore
	clearCart func(ctx context.Context, userID string) error
	notify    func(order models.Order, email string)
}

// book is idempotent per payment ID: a payment that already produced an
// order row returns nil without side effects, so webhook retries cannot
// double-book.
func (b orderBooker) book(userID, email, provider, paymentID, addressID string, items []cart.Item) (*models.Order, error) {
	exists, err := b.orders.ExistsByPaymentID(paymentID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Printf("🔁 Payment %s already booked, skipping", paymentID)
		return nil, nil
	}

	order := &models.Order{
		UserID:     userID,
		Provider:   provider,
		PaymentID:  paymentID,
		TotalPrice: cart.OrderTotal(items),
		Status:     models.OrderStatusPaid,
		AddressID:  addressID,
	}
	for _, item := range items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	if err := b.orders.Save(order); err != nil {
		return nil, err
	}
	log.Printf("✅ Order %s booked (%s, ₹%.2f)", order.ID, provider, order.TotalPrice)

	ctx := context.Background()

	// Missing products are logged and skipped, the rest of the order stands.
	inventory.ApplyOrder(ctx, b.stock, order.Items)

	if err := b.clearCart(ctx, userID); err == nil {
		log.Printf("🧹 Cart cleared for %s", userID)
	}

	go b.notify(*order, email)

	return order, nil
}

func finalizeOrder(userID, email, provider, paymentID, addressID string, items []cart.Item) (*models.Order, error) {
	b := orderBooker{
		orders:    scyllaOrders{},
		stock:     inventory.ScyllaStore{},
		clearCart: cart.NewStore(database.Redis).Clear,
		notify:    sendConfirmation,
	}
	return b.book(userID, email, provider, paymentID, addressID, items)
}

func sendConfirmation(order models.Order, email string) {
	if email == "" {
		return
	}

	html := utils.GenerateOrderConfirmationHTML(order)

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("❌ Invoice PDF generation failed: %v", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(email, "Your YekZen order confirmation", html, pdf); err != nil {
		log.Printf("❌ Confirmation email failed: %v", err)
	} else {
		log.Println("📧 Confirmation email sent to", email)
	}
}
