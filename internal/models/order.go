package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order statuses, in lifecycle order.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID         gocql.UUID  `json:"id" db:"order_id"`
	UserID     string      `json:"user_id" db:"user_id"`
	Provider   string      `json:"provider" db:"provider"` // "stripe" or "razorpay"
	PaymentID  string      `json:"payment_id" db:"payment_id"`
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	Status     string      `json:"status" db:"status"`
	AddressID  string      `json:"address_id,omitempty" db:"address_id"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
