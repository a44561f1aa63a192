package domain

import (
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// AmortizationEntry is one month of a single loan part's schedule.
type AmortizationEntry struct {
	Month          dateutil.YearMonth `json:"month"`
	Rate           decimal.Decimal    `json:"rate"`
	Interest       decimal.Decimal    `json:"interest"`
	Principal      decimal.Decimal    `json:"principal"`
	Gross          decimal.Decimal    `json:"gross"`
	BalanceAfter   decimal.Decimal    `json:"balance_after"`
	ExtraRepayment decimal.Decimal    `json:"extra_repayment"`
}

// LoanSchedule is the month-by-month amortization of one loan part, indexed
// by offset from the loan's start month.
type LoanSchedule struct {
	LoanID string              `json:"loan_id"`
	Start  dateutil.YearMonth  `json:"start"`
	Months []AmortizationEntry `json:"months"`
}

// Entry returns the schedule entry for calendar month ym. Months outside the
// loan's term report ok=false.
func (s LoanSchedule) Entry(ym dateutil.YearMonth) (AmortizationEntry, bool) {
	i := ym.MonthsSince(s.Start)
	if i < 0 || i >= len(s.Months) {
		return AmortizationEntry{}, false
	}
	return s.Months[i], true
}

// ScheduleRow is the portfolio-wide cash flow for one month.
type ScheduleRow struct {
	Month                 dateutil.YearMonth `json:"month"`
	Label                 string             `json:"label"`
	Gross                 decimal.Decimal    `json:"gross"`
	Net                   decimal.Decimal    `json:"net"`
	Interest              decimal.Decimal    `json:"interest"`
	Principal             decimal.Decimal    `json:"principal"`
	Balance               decimal.Decimal    `json:"balance"`
	ExtraRepayment        decimal.Decimal    `json:"extra_repayment"`
	GrossDeductionBenefit decimal.Decimal    `json:"gross_deduction_benefit"`
	ImputedIncome         decimal.Decimal    `json:"imputed_income"`
	TaxableImputedIncome  decimal.Decimal    `json:"taxable_imputed_income"`
	ImputedIncomeCost     decimal.Decimal    `json:"imputed_income_cost"`
	IsDeductible          bool               `json:"is_deductible"`
	DeductionRateUsed     decimal.Decimal    `json:"deduction_rate_used"`
}

// BreakdownRow is one loan part's share of a month.
type BreakdownRow struct {
	Month             dateutil.YearMonth `json:"month"`
	Label             string             `json:"label"`
	Gross             decimal.Decimal    `json:"gross"`
	Principal         decimal.Decimal    `json:"principal"`
	Interest          decimal.Decimal    `json:"interest"`
	Balance           decimal.Decimal    `json:"balance"`
	DeductionBenefit  decimal.Decimal    `json:"deduction_benefit"`
	ImputedIncomeCost decimal.Decimal    `json:"imputed_income_cost"`
	Net               decimal.Decimal    `json:"net"`
}

// StackedPart is a loan part's principal and interest within a StackedPoint.
type StackedPart struct {
	LoanID    string          `json:"loan_id"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

// StackedPoint is one month shaped for layered-area charts.
type StackedPoint struct {
	Month             dateutil.YearMonth `json:"month"`
	Label             string             `json:"label"`
	Parts             []StackedPart      `json:"parts"`
	DeductionBenefit  decimal.Decimal    `json:"deduction_benefit"`
	ImputedIncomeCost decimal.Decimal    `json:"imputed_income_cost"`
}

// Totals are the headline numbers of a portfolio run.
type Totals struct {
	TotalInterest decimal.Decimal `json:"total_interest"`
	StartNet      decimal.Decimal `json:"start_net"`
	EndNet        decimal.Decimal `json:"end_net"`
	CurrentNet    decimal.Decimal `json:"current_net"`
	CurrentGross  decimal.Decimal `json:"current_gross"`
	HasCurrent    bool            `json:"has_current"`
}

// PortfolioResult is everything the aggregator produces for one run.
type PortfolioResult struct {
	Schedule       []ScheduleRow             `json:"schedule"`
	Breakdown      map[string][]BreakdownRow `json:"breakdown"`
	Stacked        []StackedPoint            `json:"stacked"`
	TaxCutoffMonth dateutil.YearMonth        `json:"tax_cutoff_month"`
	TaxCutoffLabel string                    `json:"tax_cutoff_label"`
	Totals         Totals                    `json:"totals"`

	// Loans is the input the result was computed from, in input order.
	Loans    []LoanPart         `json:"loans"`
	Settings PortfolioSettings  `json:"settings"`
	AsOf     dateutil.YearMonth `json:"as_of"`
}

// RowFor returns the schedule row for month ym, if one was emitted.
func (r *PortfolioResult) RowFor(ym dateutil.YearMonth) (ScheduleRow, bool) {
	for _, row := range r.Schedule {
		if row.Month == ym {
			return row, true
		}
	}
	return ScheduleRow{}, false
}
