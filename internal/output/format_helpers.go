package output

import (
	"github.com/hypotheekplanner/mortgage-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as euro currency with 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.Euro(amount) }

// FormatPercentage formats a percentage value with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return money.Percent(amount, 2) }

// csvAmount renders an amount for the semicolon CSV exports: 2 places, decimal comma.
func csvAmount(amount decimal.Decimal) string { return money.Decimal(amount, 2) }
