package calculation

import (
	"testing"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioInput(fixedYears int, initial, future string) domain.ScenarioInput {
	return domain.ScenarioInput{
		Principal:    dec("300000"),
		InitialRate:  dec(initial),
		FixedYears:   fixedYears,
		FutureRate:   dec(future),
		Type:         domain.Annuity,
		HorizonYears: 30,
	}
}

func TestTotalCostConstantRate(t *testing.T) {
	reset := TotalCost(scenarioInput(10, "3.6", "3.6"))
	constant := TotalCost(scenarioInput(30, "3.6", "9"))

	assert.True(t, reset.Total.Equal(constant.Total), "%s != %s", reset.Total, constant.Total)
	assert.True(t, reset.MonthlyStart.Equal(constant.MonthlyStart))
	assert.True(t, reset.MonthlyFuture.Equal(reset.MonthlyStart))
	assert.True(t, constant.MonthlyFuture.IsZero(), "no floating phase within the term")

	loan := testLoan("same", domain.Annuity, "300000", "3.6", 360)
	s := Amortize(loan)
	assert.True(t, s.Months[0].Gross.Equal(reset.MonthlyStart), "scenario and amortizer share the regime")
}

func TestTotalCostHorizon(t *testing.T) {
	in := scenarioInput(10, "4", "5")
	in.HorizonYears = 10
	cost := TotalCost(in)
	assert.True(t, cost.Total.Equal(cost.MonthlyStart.Mul(decimal.NewFromInt(120))), "only the fixed phase is summed")
	assert.True(t, cost.MonthlyFuture.GreaterThan(cost.MonthlyStart), "the floating payment is still reported")

	in.HorizonYears = 0
	assert.True(t, TotalCost(in).Total.Equal(TotalCost(scenarioInput(10, "4", "5")).Total), "zero horizon means 30 years")
}

func TestTotalCostLinear(t *testing.T) {
	in := scenarioInput(10, "3", "3")
	in.Type = domain.Linear
	cost := TotalCost(in)
	// 300000/360 principal plus 750 interest.
	assert.InDelta(t, 833.3333333333+750, cost.MonthlyStart.InexactFloat64(), 1e-6)
}

func TestTotalCostMonotonicInFutureRate(t *testing.T) {
	prev := decimal.Zero
	for _, rate := range []string{"0", "1", "2.5", "4", "6", "10"} {
		total := TotalCost(scenarioInput(5, "3", rate)).Total
		assert.True(t, total.GreaterThan(prev), "future %s%%: %s <= %s", rate, total, prev)
		prev = total
	}
}

func TestBreakEvenRate(t *testing.T) {
	target := TotalCost(scenarioInput(20, "4", "4")).Total
	in := scenarioInput(5, "3.5", "3.5")

	rate := BreakEvenRate(target, in)
	assert.True(t, rate.GreaterThan(dec("3.5")), "break-even %s", rate)
	assert.True(t, rate.LessThan(RealisticRateLimit))

	at := in
	at.FutureRate = rate
	assert.False(t, TotalCost(at).Total.GreaterThan(target), "break-even never exceeds the target")
	at.FutureRate = rate.Add(dec("0.01"))
	assert.True(t, TotalCost(at).Total.GreaterThan(target))

	t.Run("unreachable target pins at zero", func(t *testing.T) {
		assert.True(t, BreakEvenRate(dec("1000"), in).IsZero())
	})

	t.Run("generous target pins near the ceiling", func(t *testing.T) {
		rate := BreakEvenRate(dec("100000000"), in)
		assert.InDelta(t, 50.0, rate.InexactFloat64(), 1e-6)
	})

	t.Run("monotonic in the target", func(t *testing.T) {
		prev := decimal.Zero
		for _, bump := range []string{"0", "10000", "50000", "150000"} {
			r := BreakEvenRate(target.Add(dec(bump)), in)
			assert.True(t, r.GreaterThanOrEqual(prev), "target +%s: %s < %s", bump, r, prev)
			prev = r
		}
	})
}

func TestRiskRates(t *testing.T) {
	tests := []struct {
		rate, up, down string
	}{
		{rate: "3.5", up: "5.5", down: "2.5"},
		{rate: "10", up: "12.5", down: "7.5"},
		{rate: "0.5", up: "2.5", down: "0"},
	}
	for _, tt := range tests {
		up, down := riskRates(dec(tt.rate))
		assert.True(t, up.Equal(dec(tt.up)), "%s up %s", tt.rate, up)
		assert.True(t, down.Equal(dec(tt.down)), "%s down %s", tt.rate, down)
	}
}

func TestCompareFixedPeriods(t *testing.T) {
	in := domain.ComparisonInput{
		Principal:    dec("300000"),
		Type:         domain.Annuity,
		HorizonYears: 30,
		Offers: []domain.RateOffer{
			{FixedYears: 10, Rate: dec("3.8")},
			{FixedYears: 5, Rate: dec("3.5")},
			{FixedYears: 20, Rate: dec("4.1")},
			{FixedYears: 30, Rate: decimal.Zero},
		},
	}
	cmp := CompareFixedPeriods(in)
	require.Len(t, cmp.Rows, 3, "offers without a rate are skipped")
	assert.Equal(t, 20, cmp.BenchmarkYears)
	assert.Equal(t, []int{5, 10, 20}, []int{cmp.Rows[0].FixedYears, cmp.Rows[1].FixedYears, cmp.Rows[2].FixedYears})

	bench := cmp.Rows[2]
	assert.True(t, bench.IsBenchmark)
	assert.True(t, bench.TotalCost.Equal(cmp.BenchmarkTotal))
	assert.True(t, bench.BreakEvenRate.IsZero(), "benchmark has no break-even against itself")
	assert.False(t, bench.Unrealistic)
	assert.Empty(t, bench.BreakEvens)

	five := cmp.Rows[0]
	assert.False(t, five.IsBenchmark)
	assert.True(t, five.PessimisticRate.Equal(dec("5.5")))
	assert.True(t, five.OptimisticRate.Equal(dec("2.5")))
	assert.True(t, five.PessimisticMonthly.GreaterThan(five.MonthlyStart))
	assert.True(t, five.OptimisticMonthly.LessThan(five.MonthlyStart))
	assert.True(t, five.BreakEvenRate.GreaterThan(five.Rate))
	assert.False(t, five.Unrealistic)
	require.Len(t, five.BreakEvens, 2)
	assert.True(t, five.BreakEvenRate.Equal(five.BreakEvens[1].Rate), "headline break-even is against the benchmark")

	assert.True(t, cmp.Rows[0].MonthlyStart.LessThan(cmp.Rows[1].MonthlyStart))
	assert.True(t, cmp.Rows[1].MonthlyStart.LessThan(cmp.Rows[2].MonthlyStart))
}

func TestCompareFixedPeriodsBreakEvenPerLongerPeriod(t *testing.T) {
	offers := []domain.RateOffer{
		{FixedYears: 5, Rate: dec("3.55")},
		{FixedYears: 10, Rate: dec("3.8")},
		{FixedYears: 20, Rate: dec("4.05")},
		{FixedYears: 30, Rate: dec("4.2")},
	}
	in := domain.ComparisonInput{Principal: dec("300000"), Type: domain.Annuity, HorizonYears: 30, Offers: offers}
	cmp := CompareFixedPeriods(in)
	require.Len(t, cmp.Rows, 4)

	constant := func(o domain.RateOffer) domain.ScenarioInput {
		return domain.ScenarioInput{
			Principal: in.Principal, InitialRate: o.Rate, FixedYears: o.FixedYears,
			FutureRate: o.Rate, Type: in.Type, HorizonYears: in.HorizonYears,
		}
	}

	wantYears := [][]int{{10, 20, 30}, {20, 30}, {30}, nil}
	for i, row := range cmp.Rows {
		var got []int
		for _, be := range row.BreakEvens {
			got = append(got, be.BenchmarkYears)
		}
		assert.Equal(t, wantYears[i], got, "%d years", row.FixedYears)
	}

	five := cmp.Rows[0]
	for j, longer := range offers[1:] {
		be, ok := five.BreakEvenAgainst(longer.FixedYears)
		require.True(t, ok, "5 vs %d", longer.FixedYears)
		assert.Equal(t, five.BreakEvens[j], be)

		target := TotalCost(constant(longer)).Total
		expected := BreakEvenRate(target, constant(offers[0]))
		assert.True(t, be.Rate.Equal(expected), "5 vs %d: %s != %s", longer.FixedYears, be.Rate, expected)
		assert.True(t, be.Rate.GreaterThan(longer.Rate), "5 vs %d: %s", longer.FixedYears, be.Rate)
		assert.False(t, be.Unrealistic)
	}

	_, ok := five.BreakEvenAgainst(5)
	assert.False(t, ok, "no break-even against its own period")
	assert.True(t, cmp.Rows[3].BreakEvenRate.IsZero())
	assert.False(t, cmp.Rows[3].Unrealistic)
}

func TestCompareFixedPeriodsUnrealisticBreakEven(t *testing.T) {
	cmp := CompareFixedPeriods(domain.ComparisonInput{
		Principal:    dec("300000"),
		Type:         domain.Annuity,
		HorizonYears: 10,
		Offers: []domain.RateOffer{
			{FixedYears: 5, Rate: dec("1")},
			{FixedYears: 30, Rate: dec("12")},
		},
	})
	require.Len(t, cmp.Rows, 2)
	assert.True(t, cmp.Rows[0].BreakEvenRate.GreaterThan(RealisticRateLimit), "break-even %s", cmp.Rows[0].BreakEvenRate)
	assert.True(t, cmp.Rows[0].Unrealistic)
	assert.True(t, cmp.Rows[1].OptimisticMonthly.IsZero(), "a 30-year period has no floating phase")
}

func TestCompareFixedPeriodsEmpty(t *testing.T) {
	cmp := CompareFixedPeriods(domain.ComparisonInput{Principal: dec("100000")})
	assert.Empty(t, cmp.Rows)
	assert.Equal(t, DefaultHorizonYears, cmp.HorizonYears)
}
