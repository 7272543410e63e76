// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Constants for all supported currencies.
const (
	USD = "USD"
	EUR = "EUR"
	GBP = "GBP"
)

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	USD,
	EUR,
	GBP,
}

// IsSupportedCurrency returns true if the currncy is supported.
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}

	return false
}

// Format renders the amount in the currency display format, e.g. "$1,234.50".
//
// The amount is rounded half away from zero to the currency minor unit.
func Format(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(USD)
	}

	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if minor.BigInt().IsInt64() {
		return cur.Formatter().Format(minor.IntPart())
	}

	return formatBig(amount, cur)
}

// formatBig renders amounts whose minor units overflow int64 with the same
// separators and template as the go-money formatter.
func formatBig(amount decimal.Decimal, cur *money.Currency) string {
	digits := amount.Abs().StringFixed(int32(cur.Fraction))

	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(cur.Thousand)
		}
		b.WriteRune(r)
	}

	if frac != "" {
		b.WriteString(cur.Decimal)
		b.WriteString(frac)
	}

	s := strings.Replace(cur.Template, "1", b.String(), 1)
	s = strings.Replace(s, "$", cur.Grapheme, 1)

	if amount.IsNegative() {
		s = "-" + s
	}

	return s
}
