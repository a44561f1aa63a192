package domain

import (
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ScenarioInput describes a hypothetical new loan run over a 30-year term.
type ScenarioInput struct {
	Principal    decimal.Decimal `json:"principal"`
	InitialRate  decimal.Decimal `json:"initial_rate"` // percent during the fixed period
	FixedYears   int             `json:"fixed_years"`
	FutureRate   decimal.Decimal `json:"future_rate"` // percent after the fixed period
	Type         RepaymentType   `json:"type"`
	HorizonYears int             `json:"horizon_years"` // 0 means the full term
}

// ScenarioCost is the outcome of a scenario run.
type ScenarioCost struct {
	Total         decimal.Decimal `json:"total"`          // payments summed within the horizon
	MonthlyStart  decimal.Decimal `json:"monthly_start"`  // first fixed-phase payment
	MonthlyFuture decimal.Decimal `json:"monthly_future"` // first floating-phase payment, zero if none
}

// RateOffer is a quoted rate for a fixed-rate period.
type RateOffer struct {
	FixedYears int             `yaml:"fixed_years" json:"fixed_years"`
	Rate       decimal.Decimal `yaml:"rate" json:"rate"`
}

// ComparisonInput configures a fixed-period comparison for a new loan.
type ComparisonInput struct {
	Principal    decimal.Decimal    `yaml:"principal" json:"principal"`
	Type         RepaymentType      `yaml:"type" json:"type"`
	HorizonYears int                `yaml:"horizon_years" json:"horizon_years"`
	StartMonth   dateutil.YearMonth `yaml:"start_month,omitempty" json:"start_month,omitempty"` // used when proposing the loan
	Offers       []RateOffer        `yaml:"offers" json:"offers"`
}

// PeriodComparison is one row of the fixed-period comparison.
type PeriodComparison struct {
	FixedYears   int             `json:"fixed_years"`
	Rate         decimal.Decimal `json:"rate"`
	MonthlyStart decimal.Decimal `json:"monthly_start"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	IsBenchmark  bool            `json:"is_benchmark"`

	PessimisticRate    decimal.Decimal `json:"pessimistic_rate"`
	PessimisticMonthly decimal.Decimal `json:"pessimistic_monthly"`
	OptimisticRate     decimal.Decimal `json:"optimistic_rate"`
	OptimisticMonthly  decimal.Decimal `json:"optimistic_monthly"`

	// BreakEvenRate is the future rate at which this period costs as much as
	// the benchmark. Zero on the benchmark row itself.
	BreakEvenRate decimal.Decimal `json:"break_even_rate"`
	Unrealistic   bool            `json:"unrealistic"`

	// BreakEvens holds one entry per offered period longer than this one, ascending.
	BreakEvens []BreakEven `json:"break_evens,omitempty"`
}

// BreakEven is the future rate at which a shorter fixed period costs as much
// as the longer period BenchmarkYears over the comparison horizon.
type BreakEven struct {
	BenchmarkYears int             `json:"benchmark_years"`
	Rate           decimal.Decimal `json:"rate"`
	Unrealistic    bool            `json:"unrealistic"`
}

// BreakEvenAgainst returns the break-even against the given longer period.
func (p PeriodComparison) BreakEvenAgainst(years int) (BreakEven, bool) {
	for _, be := range p.BreakEvens {
		if be.BenchmarkYears == years {
			return be, true
		}
	}
	return BreakEven{}, false
}

// FixedPeriodComparison is the full comparison table.
type FixedPeriodComparison struct {
	Principal      decimal.Decimal    `json:"principal"`
	Type           RepaymentType      `json:"type"`
	HorizonYears   int                `json:"horizon_years"`
	BenchmarkYears int                `json:"benchmark_years"`
	BenchmarkTotal decimal.Decimal    `json:"benchmark_total"`
	Rows           []PeriodComparison `json:"rows"`
}
