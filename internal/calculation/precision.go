package calculation

import "github.com/shopspring/decimal"

// Amounts are kept at calcPlaces decimal places between steps so that
// shopspring arithmetic stays bounded over a 360-month run. Compound factors
// use factorPlaces.
const (
	calcPlaces   = 10
	factorPlaces = 20
)

var (
	one          = decimal.NewFromInt(1)
	twelve       = decimal.NewFromInt(12)
	hundred      = decimal.NewFromInt(100)
	monthsPerPct = decimal.NewFromInt(1200)

	// payoffResidue is the balance below which a loan counts as repaid.
	payoffResidue = decimal.New(1, -2)
	// activityThreshold filters all-but-empty months out of the schedules.
	activityThreshold = decimal.NewFromInt(1)
)

// monthlyRate converts a nominal annual percentage into a monthly fraction.
func monthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.DivRound(monthsPerPct, factorPlaces)
}

// compound returns (1+r)^n by repeated squaring, rounding every step.
func compound(r decimal.Decimal, n int) decimal.Decimal {
	result := one
	base := one.Add(r)
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base).Round(factorPlaces)
		}
		base = base.Mul(base).Round(factorPlaces)
		n >>= 1
	}
	return result
}

// share returns part/whole*amount, or zero when whole is not positive.
func share(amount, part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return amount.Mul(part).DivRound(whole, calcPlaces)
}
