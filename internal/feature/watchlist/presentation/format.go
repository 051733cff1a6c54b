// Package presentation turns watchlist rows into what a user sees: formatted
// cells, the optimistic toggle control, and HTML or terminal renderings.
package presentation

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of any missing quote value.
const NotAvailable = "N/A"

// Change classes used by renderers to color the change cell.
const (
	ClassUp   = "up"
	ClassDown = "down"
)

// FormatPrice renders a price as US dollars with two decimals, e.g. "$1,234.50".
// A nil or zero price is treated as missing.
func FormatPrice(price *float64) string {
	if price == nil || *price == 0 {
		return NotAvailable
	}
	cents := decimal.NewFromFloat(*price).Round(2).Shift(2).IntPart()
	return money.New(cents, money.USD).Display()
}

// FormatChange renders "+1.25 (+0.84%)". The sign of the absolute change
// decides the prefix of both parts. Either value missing yields N/A.
func FormatChange(change, percent *float64) string {
	if change == nil || percent == nil {
		return NotAvailable
	}
	sign := ""
	if *change >= 0 {
		sign = "+"
	}
	return sign + fixed2(*change) + " (" + sign + fixed2(*percent) + "%)"
}

// ChangeClass is ClassDown for a negative change and ClassUp otherwise,
// including when the change is unknown.
func ChangeClass(change *float64) string {
	if change != nil && *change < 0 {
		return ClassDown
	}
	return ClassUp
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
