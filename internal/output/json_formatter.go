package output

import (
	"encoding/json"

	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
)

// JSONFormatter serializes the portfolio result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.PortfolioResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
