package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemDecodeMissingFields(t *testing.T) {
	var items []LineItem
	payload := `[
		{"productID":"P1","name":"Mug","price":10,"quantity":2,"image":"i.png"},
		{"productID":"P2","name":"Cup"}
	]`
	require.NoError(t, json.Unmarshal([]byte(payload), &items))
	require.Len(t, items, 2)

	assert.True(t, items[0].Price.Valid)
	assert.True(t, items[0].Subtotal().Equal(decimal.NewFromInt(20)))

	assert.False(t, items[1].Price.Valid)
	assert.Equal(t, 0, items[1].Quantity)
	assert.True(t, items[1].Subtotal().IsZero())
}

func TestLineItemValid(t *testing.T) {
	good := LineItem{
		ProductID: "P1",
		Name:      "Mug",
		Price:     decimal.NewNullDecimal(decimal.NewFromInt(10)),
		Quantity:  1,
		Image:     "i.png",
	}
	assert.True(t, good.Valid())

	free := good
	free.Price = decimal.NewNullDecimal(decimal.Zero)
	assert.True(t, free.Valid())

	cases := map[string]func(*LineItem){
		"missing product id": func(i *LineItem) { i.ProductID = "" },
		"missing name":       func(i *LineItem) { i.Name = "" },
		"missing image":      func(i *LineItem) { i.Image = "" },
		"blank product id":   func(i *LineItem) { i.ProductID = "   " },
		"blank name":         func(i *LineItem) { i.Name = "\t" },
		"blank image":        func(i *LineItem) { i.Image = " \n " },
		"zero quantity":      func(i *LineItem) { i.Quantity = 0 },
		"missing price":      func(i *LineItem) { i.Price = decimal.NullDecimal{} },
		"negative price":     func(i *LineItem) { i.Price = decimal.NewNullDecimal(decimal.NewFromInt(-1)) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			item := good
			mutate(&item)
			assert.False(t, item.Valid())
		})
	}
}

func TestLineItemTrimmed(t *testing.T) {
	item := LineItem{ProductID: " P1 ", Name: " Mug", Image: "i.png "}.Trimmed()
	assert.Equal(t, "P1", item.ProductID)
	assert.Equal(t, "Mug", item.Name)
	assert.Equal(t, "i.png", item.Image)
}
