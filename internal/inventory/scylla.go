package inventory

import (
	"context"
	"fmt"

	"yekzen_backend/internal/database"

	"github.com/gocql/gocql"
)

// ScyllaStore reads and writes product stock in the products keyspace.
type ScyllaStore struct{}

func (ScyllaStore) Stock(ctx context.Context, productID string) (int, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return 0, err
	}

	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrProductNotFound, productID)
	}

	var stock int
	if err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, id).
		WithContext(ctx).Scan(&stock); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	return stock, nil
}

func (ScyllaStore) SetStock(ctx context.Context, productID string, stock int) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return err
	}

	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return fmt.Errorf("%w: bad id %q", ErrProductNotFound, productID)
	}

	return session.Query(`UPDATE products SET stock = ? WHERE product_id = ?`, stock, id).
		WithContext(ctx).Exec()
}
