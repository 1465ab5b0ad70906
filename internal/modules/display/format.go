// Package display implements the display-formatting collaborator: raw
// numeric strings rendered as currency for presentation only. The engine
// never stores or compares formatted strings.
package display

import (
	"strconv"
	"strings"
)

// Formatter renders raw numeric strings as localized currency
type Formatter struct {
	symbol    string
	thousands string
	decimal   string
}

// NewFormatter creates a formatter for the given currency symbol using
// US-style grouping.
func NewFormatter(symbol string) *Formatter {
	return &Formatter{symbol: symbol, thousands: ",", decimal: "."}
}

// Currency renders a raw numeric string like "12500.5" as "$12,500.50".
// Unparseable input is returned unchanged: formatting never invents data.
func (f *Formatter) Currency(raw string) string {
	trimmed := strings.TrimSpace(raw)
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return raw
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	parts := strings.SplitN(fixed, ".", 2)
	whole := parts[0]

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteString(f.thousands)
		}
		grouped.WriteRune(digit)
	}

	out := f.symbol + grouped.String() + f.decimal + parts[1]
	if negative {
		return "-" + out
	}
	return out
}
