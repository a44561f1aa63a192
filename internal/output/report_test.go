package output_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	stddec "github.com/shopspring/decimal"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/internal/output"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
)

func TestFormatters(t *testing.T) {
	if got := output.FormatCurrency(stddec.NewFromFloat(123.45)); got != "€ 123,45" {
		t.Fatalf("FormatCurrency = %q", got)
	}
	if got := output.FormatPercentage(stddec.NewFromFloat(3.6)); got != "3,60%" {
		t.Fatalf("FormatPercentage = %q", got)
	}
}

func TestSaveConfiguration(t *testing.T) {
	rate := stddec.NewFromFloat(4.5)
	cfg := &domain.Configuration{
		Loans: []domain.LoanPart{{
			ID:             "deel-1",
			Type:           domain.Annuity,
			Amount:         stddec.NewFromInt(200000),
			Rate:           stddec.NewFromFloat(3.8),
			RateAfterFixed: &rate,
			StartMonth:     dateutil.NewYearMonth(2024, time.March),
			TermMonths:     360,
		}},
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := output.SaveConfiguration(cfg, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	for _, want := range []string{"start_month: 2024-03", "id: deel-1", "rate_after_fixed:"} {
		if !strings.Contains(content, want) {
			t.Fatalf("saved YAML missing %q:\n%s", want, content)
		}
	}
}

func TestGenerateReport_CSV_JSON(t *testing.T) {
	result := buildResult()
	dir := t.TempDir()

	for _, format := range []string{"csv", "json-pretty"} {
		paths, err := output.GenerateReport(result, format, dir)
		if err != nil {
			t.Fatalf("GenerateReport %s error: %v", format, err)
		}
		if len(paths) != 1 {
			t.Fatalf("GenerateReport %s wrote %d files", format, len(paths))
		}
		if _, err := os.Stat(paths[0]); err != nil {
			t.Fatalf("report file missing: %v", err)
		}
	}

	all, err := output.GenerateReport(result, "all", dir)
	if err != nil {
		t.Fatalf("GenerateReport all error: %v", err)
	}
	if len(all) != len(output.AvailableFormatterNames()) {
		t.Fatalf("all wrote %d files, want %d", len(all), len(output.AvailableFormatterNames()))
	}
}

func buildResult() *domain.PortfolioResult {
	jan := dateutil.NewYearMonth(2024, time.January)
	d := stddec.NewFromFloat
	return &domain.PortfolioResult{
		Schedule: []domain.ScheduleRow{
			{Month: jan, Label: jan.Label(), Gross: d(1500), Net: d(1200), Interest: d(900), Principal: d(600), Balance: d(299400), GrossDeductionBenefit: d(332.73), ImputedIncomeCost: d(32.73)},
		},
		Breakdown: map[string][]domain.BreakdownRow{
			"a": {{Month: jan, Label: jan.Label(), Gross: d(1500), Interest: d(900), Principal: d(600), Balance: d(299400), DeductionBenefit: d(332.73), ImputedIncomeCost: d(32.73), Net: d(1200)}},
		},
		Stacked: []domain.StackedPoint{
			{Month: jan, Label: jan.Label(), Parts: []domain.StackedPart{{LoanID: "a", Principal: d(600), Interest: d(900)}}, DeductionBenefit: d(332.73), ImputedIncomeCost: d(32.73)},
		},
		Loans: []domain.LoanPart{{ID: "a", Name: "Deel A", Type: domain.Annuity, Amount: d(300000), Rate: d(3.6), StartMonth: jan, TermMonths: 360}},
	}
}
