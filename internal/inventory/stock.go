package inventory

import (
	"context"
	"errors"
	"log"

	"yekzen_backend/internal/models"
)

// ErrProductNotFound signals a line item whose product row no longer exists.
var ErrProductNotFound = errors.New("product not found")

// StockStore is the slice of the product store the reconciliation needs.
type StockStore interface {
	Stock(ctx context.Context, productID string) (int, error)
	SetStock(ctx context.Context, productID string, stock int) error
}

// HasSufficientStock reports whether the recorded stock covers the requested
// quantity. Negative recorded stock never satisfies a request.
func HasSufficientStock(stock, requested int) bool {
	return stock >= requested
}

// RemainingStock is the stock left after an order, clamped at zero so an
// oversell can never drive the recorded stock negative.
func RemainingStock(stock, ordered int) int {
	remaining := stock - ordered
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ApplyOrder decrements stock for every line of a placed order. A product
// that has disappeared is logged and skipped; the rest of the order still
// goes through. Lines update independently, a failed line never rolls back
// the others.
func ApplyOrder(ctx context.Context, store StockStore, items []models.OrderItem) {
	for _, item := range items {
		stock, err := store.Stock(ctx, item.ProductID)
		if err != nil {
			log.Printf("⚠️ Stock update skipped, product %s not found: %v", item.ProductID, err)
			continue
		}

		remaining := RemainingStock(stock, item.Quantity)
		if err := store.SetStock(ctx, item.ProductID, remaining); err != nil {
			log.Printf("⚠️ Stock update failed for product %s: %v", item.ProductID, err)
			continue
		}

		if !HasSufficientStock(stock, item.Quantity) {
			log.Printf("⚠️ Oversell on product %s: stock %d, ordered %d", item.ProductID, stock, item.Quantity)
		}
	}
}
