package integration

import (
	"context"
	"testing"
	"time"

	"github.com/hypotheekplanner/mortgage-planner/internal/calculation"
	"github.com/hypotheekplanner/mortgage-planner/internal/config"
	"github.com/hypotheekplanner/mortgage-planner/internal/share"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndCalculation(t *testing.T) {
	// Test that we can load a configuration and run calculations
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Loans, 2)
	assert.Equal(t, 360, cfg.Loans[1].TermMonths, "term defaults to 30 years")

	engine := calculation.NewEngineWithRules(cfg.TaxRules)
	result, err := engine.RunPortfolio(context.Background(), cfg.State())
	require.NoError(t, err)

	assert.Equal(t, dateutil.NewYearMonth(2024, time.January), result.Schedule[0].Month)
	assert.Equal(t, dateutil.NewYearMonth(2025, time.January), result.AsOf)
	assert.Equal(t, "jan. 2054", result.TaxCutoffLabel)
	assert.True(t, result.Totals.HasCurrent)
	assert.True(t, result.Totals.TotalInterest.GreaterThan(decimal.NewFromInt(150000)))

	last := result.Schedule[len(result.Schedule)-1]
	assert.Equal(t, dateutil.NewYearMonth(2054, time.June), last.Month, "timeline ends with the later loan")
	assert.InDelta(t, 0, last.Balance.InexactFloat64(), 0.01)

	for _, row := range result.Schedule {
		assert.True(t, row.Gross.Equal(row.Interest.Add(row.Principal)), "%s", row.Month)
		if row.Month.Year >= 2040 {
			assert.True(t, row.GrossDeductionBenefit.IsZero(), "phase-out ends the deduction in %s", row.Month)
		}
	}

	extra, ok := result.RowFor(dateutil.NewYearMonth(2027, time.July))
	require.True(t, ok)
	assert.True(t, extra.ExtraRepayment.Equal(decimal.NewFromInt(10000)))
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	// Test valid configuration
	cfg, err := parser.LoadFromFile("../testdata/example_config.yaml")
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	// Test that validation works
	err = parser.ValidateConfiguration(cfg)
	assert.NoError(t, err)
}

func TestComparisonAndProposal(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)
	engine := calculation.NewEngine()

	cmp, err := engine.Compare(context.Background(), *cfg.Comparison)
	require.NoError(t, err)
	require.Len(t, cmp.Rows, 4)
	assert.Equal(t, 30, cmp.BenchmarkYears)
	for _, row := range cmp.Rows[:3] {
		assert.True(t, row.BreakEvenRate.GreaterThan(row.Rate), "%d years", row.FixedYears)
	}

	result, candidate, err := engine.ProposeLoan(context.Background(), cfg.State(), *cfg.Comparison, cfg.Comparison.Offers[1])
	require.NoError(t, err)
	assert.Equal(t, dateutil.NewYearMonth(2025, time.January), candidate.StartMonth)
	assert.Len(t, result.Breakdown, 3)
}

func TestShareRoundTripReproducesSchedule(t *testing.T) {
	cfg, err := config.NewInputParser().LoadFromFile("../testdata/example_config.yaml")
	require.NoError(t, err)

	encoded, err := share.Encode(cfg.State())
	require.NoError(t, err)
	decoded, err := share.Decode(encoded)
	require.NoError(t, err)

	engine := calculation.NewEngine()
	before, err := engine.RunPortfolio(context.Background(), cfg.State())
	require.NoError(t, err)
	after, err := engine.RunPortfolio(context.Background(), decoded)
	require.NoError(t, err)

	require.Len(t, after.Schedule, len(before.Schedule))
	for i := range before.Schedule {
		assert.True(t, before.Schedule[i].Net.Equal(after.Schedule[i].Net), "%s", before.Schedule[i].Month)
	}
}
