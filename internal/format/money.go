package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Compact renders an amount the way the budget header shows it:
// $1.5B, $2.3M, $4.0K, or the plain grouped amount below one thousand.
// A value that rounds up to 1000 of a unit moves to the next unit, so
// 999,950 is $1.0M rather than $1000.0K.
func Compact(amount int64) string {
	d := decimal.NewFromInt(amount)

	units := []struct {
		size   decimal.Decimal
		suffix string
	}{
		{size: thousand, suffix: "K"},
		{size: million, suffix: "M"},
		{size: billion, suffix: "B"},
	}

	idx := -1

	for i, u := range units {
		if d.GreaterThanOrEqual(u.size) {
			idx = i
		}
	}

	if idx == -1 {
		return Full(amount)
	}

	scaled := d.Div(units[idx].size).Round(1)
	if idx+1 < len(units) && scaled.GreaterThanOrEqual(thousand) {
		idx++
		scaled = d.Div(units[idx].size).Round(1)
	}

	return "$" + scaled.StringFixed(1) + units[idx].suffix
}

// Full renders an amount with thousands separators, e.g. $99,999,500,000.
func Full(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	return "$" + sign + group(strconv.FormatInt(amount, 10))
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder

	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}

	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}

		b.WriteString(digits[i : i+3])
	}

	return b.String()
}

// Seconds renders an optional duration in whole seconds, or N/A.
func Seconds(s *int64) string {
	if s == nil {
		return "N/A"
	}

	return fmt.Sprintf("%ds", *s)
}

// OneDecimal renders d rounded half-up to one decimal place.
func OneDecimal(d decimal.Decimal) string {
	return d.StringFixed(1)
}

// Percent renders d as a percentage with two decimals.
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}
