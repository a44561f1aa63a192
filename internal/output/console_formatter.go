package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints the headline totals and one line per calendar year.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

// yearSummary is the sum of a calendar year's schedule rows.
type yearSummary struct {
	year      int
	gross     decimal.Decimal
	net       decimal.Decimal
	interest  decimal.Decimal
	principal decimal.Decimal
	benefit   decimal.Decimal
	cost      decimal.Decimal
	balance   decimal.Decimal
}

func summarizeYears(rows []domain.ScheduleRow) []yearSummary {
	var out []yearSummary
	for _, row := range rows {
		if len(out) == 0 || out[len(out)-1].year != row.Month.Year {
			out = append(out, yearSummary{year: row.Month.Year})
		}
		y := &out[len(out)-1]
		y.gross = y.gross.Add(row.Gross)
		y.net = y.net.Add(row.Net)
		y.interest = y.interest.Add(row.Interest)
		y.principal = y.principal.Add(row.Principal)
		y.benefit = y.benefit.Add(row.GrossDeductionBenefit)
		y.cost = y.cost.Add(row.ImputedIncomeCost)
		y.balance = row.Balance
	}
	return out
}

func (c ConsoleFormatter) Format(result *domain.PortfolioResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HYPOTHEEK OVERZICHT")
	fmt.Fprintln(&buf, "================================")
	if result == nil || len(result.Schedule) == 0 {
		fmt.Fprintln(&buf, "Geen leningdelen.")
		return buf.Bytes(), nil
	}

	principal := decimal.Zero
	for _, l := range result.Loans {
		principal = principal.Add(l.Amount)
		fmt.Fprintf(&buf, "- %s: %s, %s, %s vanaf %s (%d mnd)\n",
			l.Name, FormatCurrency(l.Amount), l.Type, FormatPercentage(l.Rate), l.StartMonth.Label(), l.TermMonths)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Totale hoofdsom:       %s\n", FormatCurrency(principal))
	fmt.Fprintf(&buf, "Totaal betaalde rente: %s\n", FormatCurrency(result.Totals.TotalInterest))
	fmt.Fprintf(&buf, "Netto maandlast start: %s\n", FormatCurrency(result.Totals.StartNet))
	fmt.Fprintf(&buf, "Netto maandlast eind:  %s\n", FormatCurrency(result.Totals.EndNet))
	if result.Totals.HasCurrent {
		fmt.Fprintf(&buf, "Huidige maand (%s): bruto %s, netto %s\n",
			result.AsOf.Label(), FormatCurrency(result.Totals.CurrentGross), FormatCurrency(result.Totals.CurrentNet))
	}
	fmt.Fprintf(&buf, "Renteaftrek tot en met: %s\n", result.TaxCutoffLabel)
	fmt.Fprintln(&buf)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Jaar\tBruto\tNetto\tRente\tAflossing\tHRA\tEWF\tRestschuld\t")
	for _, y := range summarizeYears(result.Schedule) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.year,
			FormatCurrency(y.gross),
			FormatCurrency(y.net),
			FormatCurrency(y.interest),
			FormatCurrency(y.principal),
			FormatCurrency(y.benefit),
			FormatCurrency(y.cost),
			FormatCurrency(y.balance),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
