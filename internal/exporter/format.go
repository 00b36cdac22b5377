package exporter

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// moneyPrinter renders grouped thousands separators for monetary values.
var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount as currency with thousands separators and
// exactly 2 decimal places. A value that cannot be rendered (NaN, ±Inf)
// degrades to a zero-amount display instead of corrupting the document.
func FormatMoney(symbol string, amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return symbol + "0.00"
	}
	return symbol + moneyPrinter.Sprintf("%.2f", amount)
}

// FormatFloat formats a float for delimited output without trailing zeros,
// matching the way values were written in the source ledger.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// FormatBool formats a boolean as its literal text representation.
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}

// FormatPercent renders a share value with 2 decimal places and a percent sign.
func FormatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 2, 64) + "%"
}
