package calculation

import (
	"sort"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// DUTCH TAX TABLE ASSUMPTIONS:
//
// 1. Maximum deduction rate (hypotheekrenteaftrek): top box 1 rate until 2013,
//    then the annual phase-out steps, 37.48% in 2025.
// 2. Eigenwoningforfait: the standard band only (no villa tax above the
//    upper WOZ threshold).
// 3. Wet Hillen: the relief factor schedule from the 2019 phase-out law,
//    with the accelerated 2026+ steps.
// 4. Imputed-income tax uses the top bracket rate when household income is
//    above the threshold, otherwise the deduction rate. This is an
//    approximation, not a bracket calculation.

// DefaultDeductionYears is the length of the mortgage-interest deduction window.
const DefaultDeductionYears = 30

var (
	defaultHighBracketRate      = decimal.NewFromFloat(49.50)
	defaultHighBracketThreshold = decimal.NewFromInt(76817)
)

func rateTable(values map[int]float64) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(values))
	for year, v := range values {
		out[year] = decimal.NewFromFloat(v)
	}
	return out
}

// DefaultTaxRules returns the built-in Dutch tables (1995-2030).
func DefaultTaxRules() domain.TaxRules {
	return domain.TaxRules{
		DeductionRates: rateTable(map[int]float64{
			1995: 60.00, 1996: 60.00, 1997: 60.00, 1998: 60.00, 1999: 60.00,
			2000: 60.00, 2001: 52.00, 2002: 52.00, 2003: 52.00, 2004: 52.00,
			2005: 52.00, 2006: 52.00, 2007: 52.00, 2008: 52.00, 2009: 52.00,
			2010: 52.00, 2011: 52.00, 2012: 52.00, 2013: 52.00,
			// phase-out in steps of 0.5%
			2014: 51.50, 2015: 51.00, 2016: 50.50, 2017: 50.00, 2018: 49.50, 2019: 49.00,
			// accelerated phase-out
			2020: 46.00, 2021: 43.00, 2022: 40.00, 2023: 36.93, 2024: 36.97, 2025: 37.48,
		}),
		ImputedIncomeRates: rateTable(map[int]float64{
			2000: 0.0060,
			2001: 0.0080, 2002: 0.0080, 2003: 0.0080, 2004: 0.0080, 2005: 0.0085,
			2006: 0.0065, 2007: 0.0055, 2008: 0.0055, 2009: 0.0055, 2010: 0.0055,
			2011: 0.0055, 2012: 0.0060, 2013: 0.0060, 2014: 0.0070, 2015: 0.0075,
			2016: 0.0075, 2017: 0.0075, 2018: 0.0070, 2019: 0.0065, 2020: 0.0060,
			2021: 0.0050, 2022: 0.0045, 2023: 0.0035, 2024: 0.0035, 2025: 0.0035,
		}),
		HillenFactors: rateTable(map[int]float64{
			2018: 1.00,
			2019: 0.9667, 2020: 0.9333, 2021: 0.9000, 2022: 0.8667, 2023: 0.8333,
			2024: 0.8000, 2025: 0.7667,
			// accelerated, partly estimated
			2026: 0.7182, 2027: 0.6698, 2028: 0.6213, 2029: 0.5729, 2030: 0.5244,
		}),
		HillenFallback: &domain.HillenFallback{
			BeforeFactor: decimal.NewFromInt(1),
			AfterFactor:  decimal.Zero,
		},
		HighBracketRate:      defaultHighBracketRate,
		HighBracketThreshold: defaultHighBracketThreshold,
		DeductionYears:       DefaultDeductionYears,
		PhaseOutCurve:        domain.PhaseOutLinear,
	}
}

// MergeTaxRules fills every unset field of override from DefaultTaxRules.
func MergeTaxRules(override *domain.TaxRules) domain.TaxRules {
	rules := DefaultTaxRules()
	if override == nil {
		return rules
	}
	if len(override.DeductionRates) > 0 {
		rules.DeductionRates = override.DeductionRates
	}
	if len(override.ImputedIncomeRates) > 0 {
		rules.ImputedIncomeRates = override.ImputedIncomeRates
	}
	if len(override.HillenFactors) > 0 {
		rules.HillenFactors = override.HillenFactors
	}
	if override.HillenFallback != nil {
		fb := *override.HillenFallback
		rules.HillenFallback = &fb
	}
	if !override.HighBracketRate.IsZero() {
		rules.HighBracketRate = override.HighBracketRate
	}
	if !override.HighBracketThreshold.IsZero() {
		rules.HighBracketThreshold = override.HighBracketThreshold
	}
	if override.DeductionYears > 0 {
		rules.DeductionYears = override.DeductionYears
	}
	if override.PhaseOutCurve != "" {
		rules.PhaseOutCurve = override.PhaseOutCurve
	}
	return rules
}

// yearTable is a sorted, year-keyed series.
type yearTable struct {
	values map[int]decimal.Decimal
	first  int
	last   int
}

func newYearTable(values map[int]decimal.Decimal) yearTable {
	t := yearTable{values: make(map[int]decimal.Decimal, len(values))}
	years := make([]int, 0, len(values))
	for y, v := range values {
		t.values[y] = v
		years = append(years, y)
	}
	sort.Ints(years)
	if len(years) > 0 {
		t.first, t.last = years[0], years[len(years)-1]
	}
	return t
}

// forwardFilled returns the exact year, else the latest tabulated value.
func (t yearTable) forwardFilled(year int) decimal.Decimal {
	if v, ok := t.values[year]; ok {
		return v
	}
	return t.values[t.last]
}

// TaxTable answers year-keyed policy lookups. It holds no mutable state.
type TaxTable struct {
	deductions yearTable
	imputed    yearTable
	hillen     yearTable
	fallback   domain.HillenFallback
}

// NewTaxTable builds a lookup table from rules. A missing Hillen fallback
// policy is filled from DefaultTaxRules so every lookup has a declared answer.
func NewTaxTable(rules domain.TaxRules) *TaxTable {
	fallback := DefaultTaxRules().HillenFallback
	if rules.HillenFallback != nil {
		fallback = rules.HillenFallback
	}
	return &TaxTable{
		deductions: newYearTable(rules.DeductionRates),
		imputed:    newYearTable(rules.ImputedIncomeRates),
		hillen:     newYearTable(rules.HillenFactors),
		fallback:   *fallback,
	}
}

// Lookup returns the policy parameters for a calendar year.
func (t *TaxTable) Lookup(year int) domain.TaxYearParameters {
	return domain.TaxYearParameters{
		Year:              year,
		DeductionRate:     t.deductions.forwardFilled(year),
		ImputedIncomeRate: t.imputed.forwardFilled(year),
		HillenFactor:      t.HillenFactor(year),
	}
}

// HillenFactor looks up the relief factor by exact year, falling back to the
// table's declared policy when the year is not tabulated.
func (t *TaxTable) HillenFactor(year int) decimal.Decimal {
	if v, ok := t.hillen.values[year]; ok {
		return v
	}
	if len(t.hillen.values) > 0 && year < t.hillen.first {
		return t.fallback.BeforeFactor
	}
	return t.fallback.AfterFactor
}

// LatestYear returns the last year with a tabulated deduction rate.
func (t *TaxTable) LatestYear() int { return t.deductions.last }
