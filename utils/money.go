package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount in USD, the currency the storefront prices in.
func FormatMoney(amount decimal.Decimal) string {
	return printer.Sprint(currency.Symbol(currency.USD.Amount(amount.Round(2).InexactFloat64())))
}
