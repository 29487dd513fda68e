package utils

import (
	"testing"

	"yekzen_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

func TestOrderConfirmationHTMLEscapesProductNames(t *testing.T) {
	order := models.Order{
		ID:         gocql.TimeUUID(),
		TotalPrice: 99.99,
		Items: []models.OrderItem{
			{Name: `<script>alert("x")</script>`, Price: 99.99, Quantity: 1},
		},
	}

	body := GenerateOrderConfirmationHTML(order)

	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestOrderConfirmationHTMLUsesRoundedLineTotals(t *testing.T) {
	// 0.125 rounds half away from zero to 0.13; naive %.2f formatting of the
	// raw product would print 0.12.
	order := models.Order{
		ID:         gocql.TimeUUID(),
		TotalPrice: 0.13,
		Items: []models.OrderItem{
			{Name: "Sticker", Price: 0.125, Quantity: 1},
		},
	}

	body := GenerateOrderConfirmationHTML(order)

	assert.Contains(t, body, "₹0.13")
}
