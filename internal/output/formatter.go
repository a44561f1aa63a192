package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(result *domain.PortfolioResult) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.PortfolioResult) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.PortfolioResult) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                                     { return ff.ID }

// nowFunc stamps written file names (override in tests).
var nowFunc = time.Now

// WriteFormatted runs a formatter and writes output to a timestamped file in dir.
func WriteFormatted(f Formatter, result *domain.PortfolioResult, dir, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	filename := filepath.Join(dir, fmt.Sprintf("hypotheek_%s_%s.%s", f.Name(), nowFunc().Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}

// builtInFormatters stores available formatters.
var builtInFormatters = []Formatter{
	ScheduleCSVExporter{},
	BreakdownCSVExporter{},
	StackedCSVExporter{},
	ConsoleFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"schedule-csv": "csv",
	"schema":       "csv",
	"per-deel":     "breakdown-csv",
	"csv-per-loan": "breakdown-csv",
	"chart":        "stacked-csv",
	"text":         "console",
	"txt":          "console",
	"json-pretty":  "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extension returns the file extension used when writing a formatter's output.
func Extension(f Formatter) string {
	switch {
	case strings.HasSuffix(f.Name(), "csv"):
		return "csv"
	case f.Name() == "json":
		return "json"
	default:
		return "txt"
	}
}
