package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecimal(t *testing.T) {
	cases := []struct {
		in     string
		places int32
		out    string
	}{
		{"1234.567", 2, "1234,57"},
		{"0", 2, "0,00"},
		{"-12.5", 2, "-12,50"},
		{"3.6", 1, "3,6"},
	}
	for _, c := range cases {
		d := decimal.RequireFromString(c.in)
		assert.Equal(t, c.out, Decimal(d, c.places), "input %s", c.in)
	}
}

func TestGrouped(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"0.4", "0,40"},
		{"999.99", "999,99"},
		{"1000", "1.000,00"},
		{"300000", "300.000,00"},
		{"1234567.891", "1.234.567,89"},
		{"-76817", "-76.817,00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.out, Grouped(decimal.RequireFromString(c.in), 2), "input %s", c.in)
	}
}

func TestEuroAndPercent(t *testing.T) {
	assert.Equal(t, "€ 1.363,95", Euro(decimal.RequireFromString("1363.9499")))
	assert.Equal(t, "€ 1.364", EuroRounded(decimal.RequireFromString("1363.9499")))
	assert.Equal(t, "36,97%", Percent(decimal.RequireFromString("36.97"), 2))
}

func TestIsNegligible(t *testing.T) {
	assert.True(t, IsNegligible(decimal.RequireFromString("0.009")))
	assert.True(t, IsNegligible(decimal.RequireFromString("-0.001")))
	assert.False(t, IsNegligible(decimal.RequireFromString("0.01")))
}
