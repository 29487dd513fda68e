package orders

import (
	"encoding/json"
	"fmt"
	"time"

	"yekzen_backend/internal/database"
	"yekzen_backend/internal/models"

	"github.com/gocql/gocql"
)

// Orders live in the orders keyspace; line items are stored as a JSON text
// column alongside the order row.

func Save(order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if order.ID == (gocql.UUID{}) {
		order.ID = gocql.TimeUUID()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("items serialization failed: %w", err)
	}

	return session.Query(`INSERT INTO orders
		(order_id, user_id, provider, payment_id, items_json, total_price, status, address_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Provider, order.PaymentID, string(itemsJSON),
		order.TotalPrice, order.Status, order.AddressID, order.CreatedAt).Exec()
}

// ExistsByPaymentID dedupes webhook deliveries: one provider payment, one
// order row.
func ExistsByPaymentID(paymentID string) (bool, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return false, err
	}

	var id gocql.UUID
	err = session.Query(`SELECT order_id FROM orders WHERE payment_id = ? ALLOW FILTERING`, paymentID).Scan(&id)
	if err == gocql.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func ListByUser(userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, user_id, provider, payment_id, items_json, total_price, status, address_id, created_at
		FROM orders WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	return scanOrders(iter)
}

func ListAll() ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT order_id, user_id, provider, payment_id, items_json, total_price, status, address_id, created_at
		FROM orders`).Iter()

	return scanOrders(iter)
}

func GetByID(orderID gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		order     models.Order
		itemsJSON string
	)
	err = session.Query(`SELECT order_id, user_id, provider, payment_id, items_json, total_price, status, address_id, created_at
		FROM orders WHERE order_id = ?`, orderID).Scan(
		&order.ID, &order.UserID, &order.Provider, &order.PaymentID, &itemsJSON,
		&order.TotalPrice, &order.Status, &order.AddressID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("corrupt items for order %s: %w", orderID, err)
	}
	return &order, nil
}

func UpdateStatus(orderID gocql.UUID, status string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}
	return session.Query(`UPDATE orders SET status = ? WHERE order_id = ?`, status, orderID).Exec()
}

func scanOrders(iter *gocql.Iter) ([]models.Order, error) {
	orders := []models.Order{}

	var (
		order     models.Order
		itemsJSON string
	)
	for iter.Scan(&order.ID, &order.UserID, &order.Provider, &order.PaymentID, &itemsJSON,
		&order.TotalPrice, &order.Status, &order.AddressID, &order.CreatedAt) {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			order.Items = nil
		}
		orders = append(orders, order)
		order = models.Order{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}
