// Package format renders chart values as display strings.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency formats v as a dollar amount with two decimals and thousands
// separators, e.g. 1234.5 -> "$1,234.50".
func Currency(v float64) string {
	return Money("$", 2)(v)
}

// Money returns a formatter with the given symbol and decimal places
func Money(symbol string, places int32) func(float64) string {
	return func(v float64) string {
		d := decimal.NewFromFloat(v).Round(places)
		sign := ""
		if d.IsNegative() {
			sign = "-"
			d = d.Abs()
		}
		fixed := d.StringFixed(places)
		whole, frac, _ := strings.Cut(fixed, ".")
		out := sign + symbol + group(whole)
		if frac != "" {
			out += "." + frac
		}
		return out
	}
}

// group inserts a comma every three digits from the right
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
