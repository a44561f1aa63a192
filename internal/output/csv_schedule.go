package output

import (
	"bytes"
	"encoding/csv"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// csvSeparator keeps the exports readable in Dutch spreadsheet locales,
// which use the comma as decimal separator.
const csvSeparator = ';'

// ScheduleHeader is the column layout of the monthly schedule export.
var ScheduleHeader = []string{
	"Datum",
	"Bruto Maandlast",
	"Netto Maandlast",
	"Rente",
	"Aflossing",
	"HRA Voordeel",
	"EWF Kosten",
	"Restschuld",
}

func newCSVWriter(buf *bytes.Buffer) *csv.Writer {
	w := csv.NewWriter(buf)
	w.Comma = csvSeparator
	return w
}

// ScheduleCSVExporter writes the combined monthly schedule, one row per month.
type ScheduleCSVExporter struct{}

func (c ScheduleCSVExporter) Name() string { return "csv" }

func (c ScheduleCSVExporter) Format(result *domain.PortfolioResult) ([]byte, error) {
	if result == nil || len(result.Schedule) == 0 {
		return nil, ErrEmptySchedule
	}
	buf := &bytes.Buffer{}
	w := newCSVWriter(buf)
	if err := w.Write(ScheduleHeader); err != nil {
		return nil, err
	}
	for _, row := range result.Schedule {
		record := []string{
			row.Label,
			csvAmount(row.Gross),
			csvAmount(row.Net),
			csvAmount(row.Interest),
			csvAmount(row.Principal),
			csvAmount(row.GrossDeductionBenefit),
			csvAmount(row.ImputedIncomeCost),
			csvAmount(row.Balance),
		}
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
