package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/pkg/money"
	"github.com/shopspring/decimal"
)

// realisticLimit mirrors calculation.RealisticRateLimit for display.
var realisticLimit = decimal.NewFromInt(20)

// formatBreakEven renders a break-even cell: "-" when there is none, ">20%"
// when it is unrealistic.
func formatBreakEven(be domain.BreakEven, ok bool) string {
	if !ok || be.Rate.IsZero() {
		return "-"
	}
	if be.Unrealistic {
		return ">" + money.Percent(realisticLimit, 0)
	}
	return FormatPercentage(be.Rate)
}

// benchmarkColumns lists every period some row has a break-even against, ascending.
func benchmarkColumns(cmp *domain.FixedPeriodComparison) []int {
	seen := map[int]bool{}
	var cols []int
	for _, row := range cmp.Rows {
		for _, be := range row.BreakEvens {
			if !seen[be.BenchmarkYears] {
				seen[be.BenchmarkYears] = true
				cols = append(cols, be.BenchmarkYears)
			}
		}
	}
	sort.Ints(cols)
	return cols
}

// FormatComparison renders a fixed-period comparison as "console", "csv" or "json".
func FormatComparison(cmp *domain.FixedPeriodComparison, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "":
		return comparisonTable(cmp)
	case "csv":
		return comparisonCSV(cmp)
	case "json":
		return json.MarshalIndent(cmp, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q for comparison (use console, csv or json)", ErrUnsupportedFormat, format)
	}
}

func comparisonTable(cmp *domain.FixedPeriodComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RENTEVASTE PERIODES VERGELEKEN")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Hoofdsom %s, %s, horizon %d jaar, referentie %d jaar vast (%s)\n\n",
		FormatCurrency(cmp.Principal), cmp.Type, cmp.HorizonYears, cmp.BenchmarkYears, FormatCurrency(cmp.BenchmarkTotal))

	cols := benchmarkColumns(cmp)
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	header := "Vast\tRente\tMaandlast\tTotaal\tPessimistisch\tOptimistisch\t"
	for _, years := range cols {
		header += fmt.Sprintf("vs %dj\t", years)
	}
	fmt.Fprintln(tw, header)
	for _, row := range cmp.Rows {
		label := strconv.Itoa(row.FixedYears) + " jaar"
		if row.IsBenchmark {
			label += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s (%s)\t%s (%s)\t",
			label,
			FormatPercentage(row.Rate),
			FormatCurrency(row.MonthlyStart),
			money.EuroRounded(row.TotalCost),
			FormatCurrency(row.PessimisticMonthly), FormatPercentage(row.PessimisticRate),
			FormatCurrency(row.OptimisticMonthly), FormatPercentage(row.OptimisticRate),
		)
		for _, years := range cols {
			fmt.Fprintf(tw, "%s\t", formatBreakEven(row.BreakEvenAgainst(years)))
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func comparisonCSV(cmp *domain.FixedPeriodComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := newCSVWriter(buf)
	cols := benchmarkColumns(cmp)
	header := []string{"Rentevast", "Rente", "Maandlast", "Totaal", "Pessimistische Rente", "Pessimistische Maandlast", "Optimistische Rente", "Optimistische Maandlast"}
	for _, years := range cols {
		header = append(header, fmt.Sprintf("Break-even vs %dj", years))
	}
	header = append(header, "Referentie")
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range cmp.Rows {
		record := []string{
			strconv.Itoa(row.FixedYears),
			csvAmount(row.Rate),
			csvAmount(row.MonthlyStart),
			csvAmount(row.TotalCost),
			csvAmount(row.PessimisticRate),
			csvAmount(row.PessimisticMonthly),
			csvAmount(row.OptimisticRate),
			csvAmount(row.OptimisticMonthly),
		}
		for _, years := range cols {
			cell := ""
			if be, ok := row.BreakEvenAgainst(years); ok {
				cell = csvAmount(be.Rate)
			}
			record = append(record, cell)
		}
		record = append(record, strconv.FormatBool(row.IsBenchmark))
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
