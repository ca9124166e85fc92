package services

import (
	"math"
	"math/rand"
	"testing"

	"storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func mug() models.LineItem {
	return models.LineItem{ProductID: "P1", Name: "Mug", Price: price("10"), Quantity: 2, Image: "i.png"}
}

func TestCartSetQuantity(t *testing.T) {
	cart := NewCart([]models.LineItem{mug()})

	qty, err := cart.SetQuantity(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, qty)

	qty, err = cart.SetQuantity(0, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)
	assert.Equal(t, 1, cart.Len())
}

func TestCartSetQuantityOutOfRange(t *testing.T) {
	cart := NewCart([]models.LineItem{mug()})

	_, err := cart.SetQuantity(1, 1)
	var valErr *models.ValidationError
	assert.ErrorAs(t, err, &valErr)

	_, err = cart.SetQuantity(-1, 1)
	assert.ErrorAs(t, err, &valErr)
}

func TestCartSetQuantityOverflow(t *testing.T) {
	cart := NewCart([]models.LineItem{mug()})

	_, err := cart.SetQuantity(0, math.MaxInt)
	var valErr *models.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Message, "out of range")
	assert.Equal(t, 2, cart.Items()[0].Quantity)

	qty, err := cart.SetQuantity(0, math.MaxInt-2)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, qty)

	qty, err = cart.SetQuantity(0, math.MinInt)
	require.NoError(t, err)
	assert.Equal(t, 1, qty)
}

func TestCartQuantityNeverBelowOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		cart := NewCart([]models.LineItem{mug(), {ProductID: "P2", Name: "Cup", Quantity: 0}})
		for step := 0; step < 50; step++ {
			idx := rng.Intn(2)
			delta := rng.Intn(21) - 15
			qty, err := cart.SetQuantity(idx, delta)
			require.NoError(t, err)
			require.GreaterOrEqual(t, qty, 1)
		}
		for _, item := range cart.Items() {
			assert.GreaterOrEqual(t, item.Quantity, 1)
		}
	}
}

func TestCartTotal(t *testing.T) {
	items := []models.LineItem{
		mug(),
		{ProductID: "P2", Name: "Tea", Price: price("0.10"), Quantity: 3, Image: "t.png"},
		{ProductID: "P3", Name: "Spoon", Price: price("0.20"), Quantity: 1, Image: "s.png"},
		{ProductID: "P4", Name: "No price", Quantity: 5},
		{ProductID: "P5", Name: "No quantity", Price: price("99.99")},
	}

	want := decimal.RequireFromString("20.50")
	assert.True(t, NewCart(items).Total().Equal(want))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := make([]models.LineItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := NewCart(shuffled).Total()
		assert.True(t, got.Equal(want), "got %s", got)
	}
}

func TestCartSeedIsCopied(t *testing.T) {
	seed := []models.LineItem{mug()}
	cart := NewCart(seed)

	_, err := cart.SetQuantity(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, seed[0].Quantity)

	items := cart.Items()
	items[0].Quantity = 100
	assert.Equal(t, 7, cart.Items()[0].Quantity)
}

func TestCartClear(t *testing.T) {
	cart := NewCart([]models.LineItem{mug()})
	cart.Clear()
	assert.Equal(t, 0, cart.Len())
	assert.True(t, cart.Total().IsZero())
}
