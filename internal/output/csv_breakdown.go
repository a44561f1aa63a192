package output

import (
	"bytes"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// BreakdownCSVExporter writes the per-loan breakdown, grouped by loan part in
// input order.
type BreakdownCSVExporter struct{}

func (c BreakdownCSVExporter) Name() string { return "breakdown-csv" }

func (c BreakdownCSVExporter) Format(result *domain.PortfolioResult) ([]byte, error) {
	if result == nil || len(result.Schedule) == 0 {
		return nil, ErrEmptySchedule
	}
	buf := &bytes.Buffer{}
	w := newCSVWriter(buf)
	header := []string{"Leningdeel", "Datum", "Bruto Maandlast", "Rente", "Aflossing", "HRA Voordeel", "EWF Kosten", "Netto Maandlast", "Restschuld"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, loan := range result.Loans {
		name := loan.Name
		if name == "" {
			name = loan.ID
		}
		for _, row := range result.Breakdown[loan.ID] {
			record := []string{
				name,
				row.Label,
				csvAmount(row.Gross),
				csvAmount(row.Interest),
				csvAmount(row.Principal),
				csvAmount(row.DeductionBenefit),
				csvAmount(row.ImputedIncomeCost),
				csvAmount(row.Net),
				csvAmount(row.Balance),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StackedCSVExporter writes the chart series: per month the principal and
// interest of every loan part, then the deduction benefit as a negative value
// and the imputed-income cost.
type StackedCSVExporter struct{}

func (c StackedCSVExporter) Name() string { return "stacked-csv" }

func (c StackedCSVExporter) Format(result *domain.PortfolioResult) ([]byte, error) {
	if result == nil || len(result.Stacked) == 0 {
		return nil, ErrEmptySchedule
	}
	buf := &bytes.Buffer{}
	w := newCSVWriter(buf)

	header := []string{"Datum"}
	for _, loan := range result.Loans {
		header = append(header, "Aflossing "+loan.ID, "Rente "+loan.ID)
	}
	header = append(header, "HRA Voordeel", "EWF Kosten")
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range result.Stacked {
		record := make([]string, 0, len(header))
		record = append(record, p.Label)
		for _, part := range p.Parts {
			record = append(record, csvAmount(part.Principal), csvAmount(part.Interest))
		}
		record = append(record, csvAmount(p.DeductionBenefit.Neg()), csvAmount(p.ImputedIncomeCost))
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
