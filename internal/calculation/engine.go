package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Engine binds a tax rule set to the calculation entry points and supplies
// the reference month when the caller leaves it unset.
type Engine struct {
	Rules  domain.TaxRules
	Taxes  *TaxTable
	Logger Logger
}

// NewEngine creates an engine with the built-in Dutch tax tables.
func NewEngine() *Engine {
	return NewEngineWithRules(nil)
}

// NewEngineWithRules creates an engine whose tax rules are the defaults with
// every field set in override replacing the built-in value.
func NewEngineWithRules(override *domain.TaxRules) *Engine {
	rules := MergeTaxRules(override)
	return &Engine{
		Rules:  rules,
		Taxes:  NewTaxTable(rules),
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// withAsOf fills an unset reference month from the engine clock.
func (e *Engine) withAsOf(settings domain.PortfolioSettings) domain.PortfolioSettings {
	if settings.AsOf.IsZero() {
		settings.AsOf = dateutil.FromTime(nowFunc())
	}
	return settings
}

// RunPortfolio aggregates every loan part of state and applies the tax rules.
func (e *Engine) RunPortfolio(ctx context.Context, state domain.PortfolioState) (*domain.PortfolioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("portfolio run cancelled: %w", err)
	}
	settings := e.withAsOf(state.Settings)
	e.Logger.Debugf("running portfolio: %d loan parts, as of %s", len(state.Loans), settings.AsOf)

	if settings.SimulatePhaseOut && settings.PhaseOutEndYear <= settings.AsOf.Year {
		e.Logger.Warnf("phase-out end year %d is not after %d; deduction drops to zero immediately", settings.PhaseOutEndYear, settings.AsOf.Year)
	}
	for _, l := range state.Loans {
		if l.StartMonth.Year > e.Taxes.LatestYear() {
			e.Logger.Debugf("loan %s starts after %d; using the latest tabulated tax rates", l.ID, e.Taxes.LatestYear())
		}
	}

	result := AggregatePortfolio(state.Loans, settings, e.Taxes, e.Rules)
	e.Logger.Infof("portfolio schedule: %d months, total interest %s, tax cutoff %s",
		len(result.Schedule), result.Totals.TotalInterest.StringFixed(2), result.TaxCutoffLabel)
	return &result, nil
}

// Compare runs the fixed-period comparison for a new loan.
func (e *Engine) Compare(ctx context.Context, in domain.ComparisonInput) (*domain.FixedPeriodComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("comparison cancelled: %w", err)
	}
	if !in.Principal.IsPositive() {
		return nil, fmt.Errorf("comparison principal must be positive, got %s", in.Principal)
	}
	cmp := CompareFixedPeriods(in)
	if len(cmp.Rows) == 0 {
		return nil, fmt.Errorf("comparison needs at least one offer with a positive rate")
	}
	e.Logger.Infof("compared %d fixed periods against %d-year benchmark", len(cmp.Rows), cmp.BenchmarkYears)
	return &cmp, nil
}

// BreakEven returns the future rate at which in costs as much as target.
func (e *Engine) BreakEven(target decimal.Decimal, in domain.ScenarioInput) decimal.Decimal {
	rate := BreakEvenRate(target, in)
	if rate.GreaterThan(RealisticRateLimit) {
		e.Logger.Debugf("break-even rate %s%% for %d-year fixed is unrealistic", rate.StringFixed(2), in.FixedYears)
	}
	return rate
}

// ProposeLoan adds a new loan part for principal at a quoted offer to the
// portfolio and re-runs it, so the combined cash flow can be inspected. The
// proposed part starts at in.StartMonth, or the reference month when unset.
func (e *Engine) ProposeLoan(ctx context.Context, state domain.PortfolioState, in domain.ComparisonInput, offer domain.RateOffer) (*domain.PortfolioResult, domain.LoanPart, error) {
	if !in.Principal.IsPositive() {
		return nil, domain.LoanPart{}, fmt.Errorf("proposed principal must be positive, got %s", in.Principal)
	}
	if offer.FixedYears <= 0 || !offer.Rate.IsPositive() {
		return nil, domain.LoanPart{}, fmt.Errorf("invalid offer: %d years at %s%%", offer.FixedYears, offer.Rate)
	}
	typ := in.Type
	if !typ.Valid() {
		typ = domain.Annuity
	}
	start := in.StartMonth
	if start.IsZero() {
		start = e.withAsOf(state.Settings).AsOf
	}

	candidate := domain.LoanPart{
		ID:                uuid.NewString(),
		Name:              fmt.Sprintf("Nieuw deel %d jaar vast", offer.FixedYears),
		Type:              typ,
		Amount:            in.Principal,
		Rate:              offer.Rate,
		FixedPeriodMonths: offer.FixedYears * 12,
		StartMonth:        start,
		TermMonths:        ScenarioTermMonths,
	}

	next := domain.PortfolioState{Settings: state.Settings, Loans: make([]domain.LoanPart, 0, len(state.Loans)+1)}
	for _, l := range state.Loans {
		next.Loans = append(next.Loans, l.Clone())
	}
	next.Loans = append(next.Loans, candidate)

	result, err := e.RunPortfolio(ctx, next)
	if err != nil {
		return nil, domain.LoanPart{}, fmt.Errorf("failed to run portfolio with proposed loan: %w", err)
	}
	return result, candidate, nil
}
