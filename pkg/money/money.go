// Package money formats decimal amounts the way Dutch banks and the
// Belastingdienst print them: comma as decimal separator, dot as thousands
// separator, euro sign in front.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Hundred is 100 as a decimal, used for percent conversions.
var Hundred = decimal.NewFromInt(100)

// Decimal renders d with a fixed number of places and a decimal comma, without grouping.
func Decimal(d decimal.Decimal, places int32) string {
	return strings.Replace(d.StringFixed(places), ".", ",", 1)
}

// Grouped renders d with a decimal comma and dot thousands separators.
func Grouped(d decimal.Decimal, places int32) string {
	s := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	return b.String()
}

// Euro formats an amount as "€ 1.234,56".
func Euro(d decimal.Decimal) string { return "€ " + Grouped(d, 2) }

// EuroRounded formats an amount in whole euros, e.g. "€ 1.235".
func EuroRounded(d decimal.Decimal) string { return "€ " + Grouped(d, 0) }

// Percent formats a percentage value (3.6 means 3.6%) as "3,60%".
func Percent(d decimal.Decimal, places int32) string { return Decimal(d, places) + "%" }

// IsNegligible reports whether |d| is below one cent.
func IsNegligible(d decimal.Decimal) bool {
	return d.Abs().LessThan(decimal.New(1, -2))
}
