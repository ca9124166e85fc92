package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem is one product in the client-side cart. Price is nullable so a
// payload that omits it can be told apart from a free item.
type LineItem struct {
	ProductID string              `json:"productID"`
	Name      string              `json:"name"`
	Price     decimal.NullDecimal `json:"price"`
	Quantity  int                 `json:"quantity"`
	Image     string              `json:"image"`
}

// Subtotal treats a missing price or quantity as zero.
func (i LineItem) Subtotal() decimal.Decimal {
	if !i.Price.Valid {
		return decimal.Zero
	}
	return i.Price.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Trimmed returns a copy with surrounding whitespace removed from the text fields.
func (i LineItem) Trimmed() LineItem {
	i.ProductID = strings.TrimSpace(i.ProductID)
	i.Name = strings.TrimSpace(i.Name)
	i.Image = strings.TrimSpace(i.Image)
	return i
}

// Valid reports whether the item can be part of an order submission. A
// whitespace-only id, name or image counts as missing.
func (i LineItem) Valid() bool {
	i = i.Trimmed()
	return i.ProductID != "" &&
		i.Name != "" &&
		i.Image != "" &&
		i.Quantity > 0 &&
		i.Price.Valid &&
		!i.Price.Decimal.IsNegative()
}
