package domain

import (
	"fmt"
	"strings"

	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RepaymentType selects how a loan part is paid off.
type RepaymentType string

const (
	// Annuity keeps the total monthly payment constant until the rate resets.
	Annuity RepaymentType = "annuity"
	// Linear repays the same principal every month; the payment declines over time.
	Linear RepaymentType = "linear"
)

// ParseRepaymentType accepts the English and Dutch spellings.
func ParseRepaymentType(s string) (RepaymentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annuity", "annuitair", "annuiteit":
		return Annuity, nil
	case "linear", "lineair":
		return Linear, nil
	default:
		return "", fmt.Errorf("unknown repayment type %q: must be 'annuity' or 'linear'", s)
	}
}

// Valid reports whether t is one of the known repayment types.
func (t RepaymentType) Valid() bool { return t == Annuity || t == Linear }

// ExtraRepayment is a one-off principal reduction in a given calendar month.
type ExtraRepayment struct {
	Month  dateutil.YearMonth `yaml:"month" json:"month"`
	Amount decimal.Decimal    `yaml:"amount" json:"amount"`
}

// LoanPart is one tranche of a mortgage.
type LoanPart struct {
	ID                string             `yaml:"id" json:"id"`
	Name              string             `yaml:"name" json:"name"`
	Type              RepaymentType      `yaml:"type" json:"type"`
	Amount            decimal.Decimal    `yaml:"amount" json:"amount"`
	Rate              decimal.Decimal    `yaml:"rate" json:"rate"`                                           // annual percent during the fixed period
	FixedPeriodMonths int                `yaml:"fixed_period_months" json:"fixed_period_months"`             // may exceed TermMonths
	RateAfterFixed    *decimal.Decimal   `yaml:"rate_after_fixed,omitempty" json:"rate_after_fixed,omitempty"` // nil keeps Rate
	StartMonth        dateutil.YearMonth `yaml:"start_month" json:"start_month"`
	TermMonths        int                `yaml:"term_months" json:"term_months"`
	ExtraRepayments   []ExtraRepayment   `yaml:"extra_repayments,omitempty" json:"extra_repayments,omitempty"`
}

// RateForMonth returns the nominal annual rate for the i-th month of the loan (0-based).
func (l LoanPart) RateForMonth(i int) decimal.Decimal {
	if i < l.FixedPeriodMonths || l.RateAfterFixed == nil {
		return l.Rate
	}
	return *l.RateAfterFixed
}

// EndMonth returns the first month after the loan's term.
func (l LoanPart) EndMonth() dateutil.YearMonth { return l.StartMonth.AddMonths(l.TermMonths) }

// ExtraRepaymentIn sums the extra repayments that fall in month ym.
func (l LoanPart) ExtraRepaymentIn(ym dateutil.YearMonth) decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.ExtraRepayments {
		if r.Month == ym {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// Clone returns a deep copy so callers can modify the result without touching l.
func (l LoanPart) Clone() LoanPart {
	c := l
	if l.RateAfterFixed != nil {
		r := *l.RateAfterFixed
		c.RateAfterFixed = &r
	}
	if l.ExtraRepayments != nil {
		c.ExtraRepayments = append([]ExtraRepayment(nil), l.ExtraRepayments...)
	}
	return c
}

// PortfolioSettings carries the household-wide inputs for the tax simulation.
type PortfolioSettings struct {
	Income               decimal.Decimal `yaml:"income" json:"income"`                 // combined gross annual income
	PropertyValue        decimal.Decimal `yaml:"property_value" json:"property_value"` // WOZ value
	IncludeImputedIncome bool            `yaml:"include_imputed_income" json:"include_imputed_income"`
	SimulatePhaseOut     bool            `yaml:"simulate_phase_out" json:"simulate_phase_out"`
	PhaseOutEndYear      int             `yaml:"phase_out_end_year" json:"phase_out_end_year"`

	// AsOf is the month treated as "now" for phase-out and current-month totals.
	// A zero value is filled in by the engine.
	AsOf dateutil.YearMonth `yaml:"as_of,omitempty" json:"as_of,omitempty"`
}

// PortfolioState is the {settings, loans} pair that is shared and persisted.
type PortfolioState struct {
	Settings PortfolioSettings `yaml:"settings" json:"settings"`
	Loans    []LoanPart        `yaml:"loans" json:"loans"`
}
