package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes result in the named format to a timestamped file in
// dir and returns its path. The special format "all" writes every formatter.
func GenerateReport(result *domain.PortfolioResult, format, dir string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var written []string
		for _, f := range builtInFormatters {
			path, err := WriteFormatted(f, result, dir, Extension(f))
			if err != nil {
				return written, err
			}
			written = append(written, path)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, result, dir, Extension(f))
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveConfiguration writes config back to YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
