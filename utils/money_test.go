package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	out := FormatMoney(decimal.RequireFromString("20"))
	assert.Contains(t, out, "$")
	assert.Contains(t, out, "20")

	assert.NotEqual(t, FormatMoney(decimal.RequireFromString("1.10")), FormatMoney(decimal.RequireFromString("1.20")))
}
