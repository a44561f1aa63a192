package calculation

import (
	"sort"
	"sync"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Scenario constants. Every hypothetical loan runs over a standard Dutch
// 30-year term regardless of the horizon being compared.
const (
	ScenarioTermMonths  = 360
	DefaultHorizonYears = 30
	breakEvenIterations = 30

	maxComparisonWorkers = 4
)

var (
	// BreakEvenCeiling is the upper bound of the break-even search, in percent.
	BreakEvenCeiling = decimal.NewFromInt(50)
	// RealisticRateLimit marks break-even rates that are not worth displaying.
	RealisticRateLimit = decimal.NewFromInt(20)

	two = decimal.NewFromInt(2)
)

// TotalCost simulates a 360-month loan with a fixed-rate phase followed by a
// floating-rate phase and sums the payments that fall within the horizon.
// The balance is carried through the full term because the floating-phase
// payment depends on what is left after the fixed phase.
func TotalCost(in domain.ScenarioInput) domain.ScenarioCost {
	horizonMonths := in.HorizonYears * 12
	if in.HorizonYears <= 0 {
		horizonMonths = DefaultHorizonYears * 12
	}
	fixedMonths := in.FixedYears * 12
	initial := monthlyRate(in.InitialRate)
	future := monthlyRate(in.FutureRate)

	reg := newRegime(in.Type, in.Principal, ScenarioTermMonths)
	balance := in.Principal
	cost := domain.ScenarioCost{Total: decimal.Zero, MonthlyStart: decimal.Zero, MonthlyFuture: decimal.Zero}

	for m := 0; m < ScenarioTermMonths; m++ {
		rate := initial
		if m >= fixedMonths {
			rate = future
		}
		reset := m == 0 || (m == fixedMonths && !future.Equal(initial))
		p := reg.pay(balance, ScenarioTermMonths-m, rate, reset)
		balance = settle(balance, p.principal)

		if m == 0 {
			cost.MonthlyStart = p.gross
		}
		if m == fixedMonths {
			cost.MonthlyFuture = p.gross
		}
		if m < horizonMonths {
			cost.Total = cost.Total.Add(p.gross)
		}
	}
	return cost
}

// BreakEvenRate searches [0, BreakEvenCeiling] for the future rate whose total
// cost comes closest to target without exceeding it. Total cost is
// non-decreasing in the future rate, so a fixed number of bisection steps is
// enough. The returned rate pins at the ceiling when no realistic rate exists
// and at zero when even a 0% future rate exceeds the target.
func BreakEvenRate(target decimal.Decimal, in domain.ScenarioInput) decimal.Decimal {
	low, high := decimal.Zero, BreakEvenCeiling
	best := decimal.Zero
	for i := 0; i < breakEvenIterations; i++ {
		mid := low.Add(high).Div(two)
		candidate := in
		candidate.FutureRate = mid
		if TotalCost(candidate).Total.GreaterThan(target) {
			high = mid
		} else {
			low = mid
			best = mid
		}
	}
	return best
}

// riskRates returns the pessimistic and optimistic future rates used for a
// quoted rate: up by max(2, 25%) and down by max(1, 25%), floored at zero.
func riskRates(rate decimal.Decimal) (pessimistic, optimistic decimal.Decimal) {
	quarter := rate.Div(decimal.NewFromInt(4))
	up := decimal.Max(two, quarter)
	down := decimal.Max(one, quarter)
	return rate.Add(up), decimal.Max(decimal.Zero, rate.Sub(down))
}

// CompareFixedPeriods evaluates every quoted fixed period for a new loan and
// measures each against every longer quoted period. The longest period is the
// benchmark and gets no break-even of its own.
func CompareFixedPeriods(in domain.ComparisonInput) domain.FixedPeriodComparison {
	horizon := in.HorizonYears
	if horizon <= 0 {
		horizon = DefaultHorizonYears
	}
	out := domain.FixedPeriodComparison{
		Principal:    in.Principal,
		Type:         in.Type,
		HorizonYears: horizon,
		Rows:         []domain.PeriodComparison{},
	}

	offers := make([]domain.RateOffer, 0, len(in.Offers))
	for _, o := range in.Offers {
		if o.Rate.IsPositive() && o.FixedYears > 0 {
			offers = append(offers, o)
		}
	}
	if len(offers) == 0 {
		return out
	}
	sort.SliceStable(offers, func(i, j int) bool { return offers[i].FixedYears < offers[j].FixedYears })

	scenario := func(o domain.RateOffer, future decimal.Decimal) domain.ScenarioInput {
		return domain.ScenarioInput{
			Principal:    in.Principal,
			InitialRate:  o.Rate,
			FixedYears:   o.FixedYears,
			FutureRate:   future,
			Type:         in.Type,
			HorizonYears: horizon,
		}
	}

	// One benchmark total per distinct period; a later duplicate offer wins.
	type benchmark struct {
		years int
		total decimal.Decimal
	}
	var benchmarks []benchmark
	for _, o := range offers {
		total := TotalCost(scenario(o, o.Rate)).Total
		if n := len(benchmarks); n > 0 && benchmarks[n-1].years == o.FixedYears {
			benchmarks[n-1].total = total
			continue
		}
		benchmarks = append(benchmarks, benchmark{years: o.FixedYears, total: total})
	}
	longest := benchmarks[len(benchmarks)-1]
	out.BenchmarkYears = longest.years
	out.BenchmarkTotal = longest.total

	// Rows are independent; each runs its own break-even searches.
	out.Rows = make([]domain.PeriodComparison, len(offers))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxComparisonWorkers)

	for i, o := range offers {
		wg.Add(1)
		go func(idx int, o domain.RateOffer) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			base := TotalCost(scenario(o, o.Rate))
			pessRate, optRate := riskRates(o.Rate)
			row := domain.PeriodComparison{
				FixedYears:         o.FixedYears,
				Rate:               o.Rate,
				MonthlyStart:       base.MonthlyStart,
				TotalCost:          base.Total,
				IsBenchmark:        idx == len(offers)-1,
				PessimisticRate:    pessRate,
				PessimisticMonthly: TotalCost(scenario(o, pessRate)).MonthlyFuture,
				OptimisticRate:     optRate,
				OptimisticMonthly:  TotalCost(scenario(o, optRate)).MonthlyFuture,
			}
			for _, b := range benchmarks {
				if b.years <= o.FixedYears {
					continue
				}
				rate := BreakEvenRate(b.total, scenario(o, o.Rate))
				row.BreakEvens = append(row.BreakEvens, domain.BreakEven{
					BenchmarkYears: b.years,
					Rate:           rate,
					Unrealistic:    rate.GreaterThan(RealisticRateLimit),
				})
			}
			if be, ok := row.BreakEvenAgainst(longest.years); ok {
				row.BreakEvenRate = be.Rate
				row.Unrealistic = be.Unrealistic
			}
			out.Rows[idx] = row
		}(i, o)
	}

	wg.Wait()
	return out
}
