// Package format renders monetary, percentage, and date values into German
// display strings: "." thousands separator, "," decimal separator,
// DD.MM.YYYY dates, EUR currency suffix.
package format

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrFormat marks values that cannot be formatted, e.g. a missing or
// unparseable date. Dates fail fast here instead of rendering garbage text
// into a customer-facing PDF.
var ErrFormat = errors.New("unformattable value")

// Non-breaking space between amount and currency symbol.
const nbsp = " "

// Currency renders v as a German EUR amount, e.g. 1234.5 -> "1.234,50 €".
// The zero value renders as "0,00 €".
func Currency(v decimal.Decimal) string {
	return Number(v) + nbsp + "€"
}

// Percent renders v with two decimals and a percent sign, e.g. "19,00%".
func Percent(v decimal.Decimal) string {
	return Number(v) + "%"
}

// Number renders v with two decimals, thousands grouping, and a decimal
// comma.
func Number(v decimal.Decimal) string {
	s := v.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// Date renders t as DD.MM.YYYY.
func Date(t time.Time) string {
	return t.Format("02.01.2006")
}

// dateLayouts are the accepted wire formats for date fields, most specific
// first. RFC 3339 covers ISO timestamps with and without fractional seconds.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses a date field from a request. An empty or unparseable
// value returns ErrFormat.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrFormat)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrFormat, s)
}
