package domain

import "github.com/shopspring/decimal"

// Phase-out curves for the manual deduction phase-out simulation.
const (
	PhaseOutLinear  = "linear"
	PhaseOutSquared = "squared"
)

// TaxYearParameters are the policy values that apply in one calendar year.
type TaxYearParameters struct {
	Year              int             `json:"year"`
	DeductionRate     decimal.Decimal `json:"deduction_rate"`      // percent, e.g. 36.97
	ImputedIncomeRate decimal.Decimal `json:"imputed_income_rate"` // fraction of property value per year, e.g. 0.0035
	HillenFactor      decimal.Decimal `json:"hillen_factor"`       // 0..1
}

// HillenFallback decides the Hillen factor for years missing from the table.
type HillenFallback struct {
	BeforeFactor decimal.Decimal `yaml:"before_factor" json:"before_factor"` // years before the first tabulated year
	AfterFactor  decimal.Decimal `yaml:"after_factor" json:"after_factor"`   // every other missing year
}

// TaxRules holds the year tables and the simplified bracket rules used by the aggregator.
type TaxRules struct {
	DeductionRates     map[int]decimal.Decimal `yaml:"deduction_rates,omitempty" json:"deduction_rates,omitempty"`
	ImputedIncomeRates map[int]decimal.Decimal `yaml:"imputed_income_rates,omitempty" json:"imputed_income_rates,omitempty"`
	HillenFactors      map[int]decimal.Decimal `yaml:"hillen_factors,omitempty" json:"hillen_factors,omitempty"`
	HillenFallback     *HillenFallback         `yaml:"hillen_fallback,omitempty" json:"hillen_fallback,omitempty"`

	// Income above HighBracketThreshold pays HighBracketRate (percent) on imputed income.
	HighBracketRate      decimal.Decimal `yaml:"high_bracket_rate" json:"high_bracket_rate"`
	HighBracketThreshold decimal.Decimal `yaml:"high_bracket_threshold" json:"high_bracket_threshold"`

	// DeductionYears is the length of the portfolio-wide deduction window.
	DeductionYears int    `yaml:"deduction_years" json:"deduction_years"`
	PhaseOutCurve  string `yaml:"phase_out_curve" json:"phase_out_curve"`
}
