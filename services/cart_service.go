package services

import (
	"fmt"
	"math"
	"sync"

	"storefront/models"

	"github.com/shopspring/decimal"
)

// Cart holds the line items passed in from product browsing. It is seeded
// once and never synced with any other cart source.
type Cart struct {
	mu    sync.Mutex
	items []models.LineItem
}

func NewCart(items []models.LineItem) *Cart {
	seeded := make([]models.LineItem, len(items))
	copy(seeded, items)
	return &Cart{items: seeded}
}

// SetQuantity adjusts the quantity at index by delta and returns the new
// quantity. The result never drops below 1; a delta that would overflow int
// is rejected and leaves the item unchanged.
func (c *Cart) SetQuantity(index, delta int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.items) {
		return 0, &models.ValidationError{Message: fmt.Sprintf("no cart item at position %d", index)}
	}

	qty := c.items[index].Quantity
	switch {
	case delta > 0 && qty > math.MaxInt-delta:
		return 0, &models.ValidationError{Message: fmt.Sprintf("quantity at position %d out of range", index)}
	case delta < 0 && qty < math.MinInt-delta:
		qty = 1
	default:
		qty += delta
	}
	if qty < 1 {
		qty = 1
	}
	c.items[index].Quantity = qty
	return qty, nil
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) Items() []models.LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
