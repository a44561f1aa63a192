package calculation

import (
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// monthTotals is the sum of all loan parts for one global month.
type monthTotals struct {
	interest  decimal.Decimal
	principal decimal.Decimal
	gross     decimal.Decimal
	balance   decimal.Decimal
	extra     decimal.Decimal
}

// taxEffect is the portfolio-level tax outcome for one month.
type taxEffect struct {
	deductible  bool
	rateUsed    decimal.Decimal
	benefit     decimal.Decimal
	imputed     decimal.Decimal
	taxable     decimal.Decimal
	imputedCost decimal.Decimal
}

// timeline returns the earliest start month and the largest end offset
// (start offset + term) across loans.
func timeline(loans []domain.LoanPart) (dateutil.YearMonth, int) {
	start := loans[0].StartMonth
	for _, l := range loans[1:] {
		if l.StartMonth.Before(start) {
			start = l.StartMonth
		}
	}
	maxOffset := 0
	for _, l := range loans {
		if end := l.StartMonth.MonthsSince(start) + l.TermMonths; end > maxOffset {
			maxOffset = end
		}
	}
	return start, maxOffset
}

// effectiveDeductionRate applies the optional manual phase-out to the
// tabulated rate. Years before the reference year keep the tabulated rate.
func effectiveDeductionRate(tabulated decimal.Decimal, year, currentYear int, settings domain.PortfolioSettings, curve string) decimal.Decimal {
	if !settings.SimulatePhaseOut || year < currentYear {
		return tabulated
	}
	if year >= settings.PhaseOutEndYear {
		return decimal.Zero
	}
	elapsed := decimal.NewFromInt(int64(year - currentYear))
	total := decimal.NewFromInt(int64(settings.PhaseOutEndYear - currentYear))
	factor := decimal.Max(decimal.Zero, one.Sub(elapsed.DivRound(total, factorPlaces)))

	rate := tabulated.Mul(factor)
	if curve == domain.PhaseOutSquared {
		rate = rate.Mul(factor)
	}
	return rate.Round(calcPlaces)
}

// applyTax computes deduction benefit and imputed-income cost for one month.
func applyTax(t monthTotals, params domain.TaxYearParameters, effRate decimal.Decimal, deductible bool, settings domain.PortfolioSettings, rules domain.TaxRules) taxEffect {
	deductibleInterest := decimal.Zero
	if deductible {
		deductibleInterest = t.interest
	}

	imputed := settings.PropertyValue.Mul(params.ImputedIncomeRate).DivRound(twelve, calcPlaces)
	taxable := imputed
	if deductibleInterest.LessThan(imputed) {
		relief := imputed.Sub(deductibleInterest).Mul(params.HillenFactor).Round(calcPlaces)
		taxable = imputed.Sub(relief)
	}

	marginal := effRate
	if settings.Income.GreaterThan(rules.HighBracketThreshold) {
		marginal = rules.HighBracketRate
	}

	cost := decimal.Zero
	if settings.IncludeImputedIncome {
		cost = taxable.Mul(marginal).DivRound(hundred, calcPlaces)
	}

	return taxEffect{
		deductible:  deductible,
		rateUsed:    effRate,
		benefit:     deductibleInterest.Mul(effRate).DivRound(hundred, calcPlaces),
		imputed:     imputed,
		taxable:     taxable,
		imputedCost: cost,
	}
}

func isActive(balance, gross, extra decimal.Decimal) bool {
	return balance.GreaterThan(activityThreshold) || gross.GreaterThan(activityThreshold) || extra.IsPositive()
}

// AggregatePortfolio merges the schedules of all loan parts onto one monthly
// timeline starting at the earliest loan, applies the tax rules per month and
// returns the combined schedule, per-loan breakdown and chart points.
//
// settings.AsOf is the reference month for the phase-out simulation and the
// current-month totals; when zero the global start month is used.
func AggregatePortfolio(loans []domain.LoanPart, settings domain.PortfolioSettings, table *TaxTable, rules domain.TaxRules) domain.PortfolioResult {
	result := domain.PortfolioResult{
		Schedule:  []domain.ScheduleRow{},
		Breakdown: make(map[string][]domain.BreakdownRow, len(loans)),
		Stacked:   []domain.StackedPoint{},
		Loans:     make([]domain.LoanPart, len(loans)),
		Settings:  settings,
		Totals:    domain.Totals{TotalInterest: decimal.Zero, StartNet: decimal.Zero, EndNet: decimal.Zero, CurrentNet: decimal.Zero, CurrentGross: decimal.Zero},
	}
	for i, l := range loans {
		result.Loans[i] = l.Clone()
		result.Breakdown[l.ID] = []domain.BreakdownRow{}
	}
	if len(loans) == 0 {
		result.AsOf = settings.AsOf
		return result
	}

	start, maxOffset := timeline(loans)
	asOf := settings.AsOf
	if asOf.IsZero() {
		asOf = start
	}
	result.AsOf = asOf

	deductionYears := rules.DeductionYears
	if deductionYears <= 0 {
		deductionYears = DefaultDeductionYears
	}
	cutoffOffset := deductionYears * 12
	result.TaxCutoffMonth = start.AddMonths(cutoffOffset)
	result.TaxCutoffLabel = result.TaxCutoffMonth.Label()

	schedules := make([]domain.LoanSchedule, len(loans))
	for i, l := range loans {
		schedules[i] = Amortize(l)
	}

	cumulativeInterest := decimal.Zero
	entries := make([]domain.AmortizationEntry, len(loans))

	for offset := 0; offset <= maxOffset; offset++ {
		month := start.AddMonths(offset)
		label := month.Label()
		params := table.Lookup(month.Year)
		effRate := effectiveDeductionRate(params.DeductionRate, month.Year, asOf.Year, settings, rules.PhaseOutCurve)

		totals := monthTotals{}
		for i, s := range schedules {
			e, ok := s.Entry(month)
			if !ok {
				e = domain.AmortizationEntry{Month: month}
			}
			entries[i] = e
			totals.interest = totals.interest.Add(e.Interest)
			totals.principal = totals.principal.Add(e.Principal)
			totals.gross = totals.gross.Add(e.Gross)
			totals.balance = totals.balance.Add(e.BalanceAfter)
			totals.extra = totals.extra.Add(e.ExtraRepayment)
		}

		tax := applyTax(totals, params, effRate, offset <= cutoffOffset, settings, rules)
		net := totals.gross.Sub(tax.benefit).Add(tax.imputedCost)
		cumulativeInterest = cumulativeInterest.Add(totals.interest)

		for i, e := range entries {
			if !e.BalanceAfter.GreaterThan(activityThreshold) && !e.Gross.GreaterThan(activityThreshold) {
				continue
			}
			benefit := share(tax.benefit, e.Interest, totals.interest)
			cost := share(tax.imputedCost, e.Gross, totals.gross)
			id := loans[i].ID
			result.Breakdown[id] = append(result.Breakdown[id], domain.BreakdownRow{
				Month:             month,
				Label:             label,
				Gross:             e.Gross,
				Principal:         e.Principal,
				Interest:          e.Interest,
				Balance:           e.BalanceAfter,
				DeductionBenefit:  benefit,
				ImputedIncomeCost: cost,
				Net:               e.Gross.Sub(benefit).Add(cost),
			})
		}

		if !isActive(totals.balance, totals.gross, totals.extra) {
			continue
		}

		row := domain.ScheduleRow{
			Month:                 month,
			Label:                 label,
			Gross:                 totals.gross,
			Net:                   net,
			Interest:              totals.interest,
			Principal:             totals.principal,
			Balance:               totals.balance,
			ExtraRepayment:        totals.extra,
			GrossDeductionBenefit: tax.benefit,
			ImputedIncome:         tax.imputed,
			TaxableImputedIncome:  tax.taxable,
			ImputedIncomeCost:     tax.imputedCost,
			IsDeductible:          tax.deductible,
			DeductionRateUsed:     tax.rateUsed,
		}
		result.Schedule = append(result.Schedule, row)

		point := domain.StackedPoint{
			Month:             month,
			Label:             label,
			Parts:             make([]domain.StackedPart, len(entries)),
			DeductionBenefit:  tax.benefit,
			ImputedIncomeCost: tax.imputedCost,
		}
		for i, e := range entries {
			point.Parts[i] = domain.StackedPart{LoanID: loans[i].ID, Principal: e.Principal, Interest: e.Interest}
		}
		result.Stacked = append(result.Stacked, point)

		if month == asOf {
			result.Totals.CurrentNet = row.Net
			result.Totals.CurrentGross = row.Gross
			result.Totals.HasCurrent = true
		}
	}

	result.Totals.TotalInterest = cumulativeInterest
	if n := len(result.Schedule); n > 0 {
		result.Totals.StartNet = result.Schedule[0].Net
		result.Totals.EndNet = result.Schedule[n-1].Net
	}
	return result
}
