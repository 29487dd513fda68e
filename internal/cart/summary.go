package cart

import "math"

// Item is one product line in a cart, with the unit price captured at
// add-to-cart time.
type Item struct {
	ProductID ProductID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ImageURL  string    `json:"image_url,omitempty"`
}

// Summary is what the storefront needs to render the cart badge and totals.
type Summary struct {
	UniqueCount   int       `json:"unique_count"`
	TotalQuantity int       `json:"total_quantity"`
	Subtotal      float64   `json:"subtotal"`
	LineTotals    []float64 `json:"line_totals"`
}

// round2 rounds half away from zero to 2 decimal places, so
// 10.995 × 2 comes out as 21.99 and not 21.990000000000002.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// UniqueItemCount is the cart badge number: the count of distinct lines,
// never the summed quantity. Two lines of quantity 2 each is a badge of 2.
func UniqueItemCount(items []Item) int {
	return len(items)
}

// TotalQuantity sums quantities across lines. Kept separate from
// UniqueItemCount so the two can never be conflated again.
func TotalQuantity(items []Item) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// LineTotal is price × quantity rounded to 2 decimals. A zero price or
// quantity simply yields 0.
func LineTotal(item Item) float64 {
	return round2(item.Price * float64(item.Quantity))
}

// OrderTotal sums the rounded line totals and rounds the result once more to
// absorb float drift from the additions.
func OrderTotal(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item)
	}
	return round2(total)
}

// Summarize computes everything in one pass over the lines.
func Summarize(items []Item) Summary {
	s := Summary{
		UniqueCount:   UniqueItemCount(items),
		TotalQuantity: TotalQuantity(items),
		LineTotals:    make([]float64, 0, len(items)),
	}
	for _, item := range items {
		s.LineTotals = append(s.LineTotals, LineTotal(item))
	}
	s.Subtotal = OrderTotal(items)
	return s
}

// MinorUnits converts a price to the smallest currency denomination (paise,
// cents) the payment providers expect.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
