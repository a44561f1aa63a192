package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hypotheekplanner/mortgage-planner/internal/domain"
	"github.com/hypotheekplanner/mortgage-planner/pkg/dateutil"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Defaults applied to loan parts that leave these fields unset.
const (
	DefaultFixedPeriodMonths = 120
	DefaultTermMonths        = 360
	DefaultPhaseOutEndYear   = 2035
)

// maxTermMonths bounds a single loan part to 50 years.
const maxTermMonths = 600

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a YAML configuration.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ApplyDefaults(&config); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills generated loan IDs, regime aliases and default periods.
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) error {
	if config.Settings.PhaseOutEndYear == 0 {
		config.Settings.PhaseOutEndYear = DefaultPhaseOutEndYear
	}
	for i := range config.Loans {
		loan := &config.Loans[i]
		if loan.ID == "" {
			loan.ID = uuid.NewString()
		}
		if loan.Name == "" {
			loan.Name = fmt.Sprintf("Leningdeel %d", i+1)
		}
		if loan.Type == "" {
			loan.Type = domain.Annuity
		} else {
			t, err := domain.ParseRepaymentType(string(loan.Type))
			if err != nil {
				return fmt.Errorf("loan %d: %w", i+1, err)
			}
			loan.Type = t
		}
		if loan.FixedPeriodMonths == 0 {
			loan.FixedPeriodMonths = DefaultFixedPeriodMonths
		}
		if loan.TermMonths == 0 {
			loan.TermMonths = DefaultTermMonths
		}
	}
	if c := config.Comparison; c != nil {
		if c.Type == "" {
			c.Type = domain.Annuity
		} else {
			t, err := domain.ParseRepaymentType(string(c.Type))
			if err != nil {
				return fmt.Errorf("comparison: %w", err)
			}
			c.Type = t
		}
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateSettings(&config.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	seen := make(map[string]bool, len(config.Loans))
	for i := range config.Loans {
		loan := &config.Loans[i]
		if seen[loan.ID] {
			return fmt.Errorf("duplicate loan id %q", loan.ID)
		}
		seen[loan.ID] = true
		if err := ip.validateLoan(loan); err != nil {
			return fmt.Errorf("loan %d (%s) validation failed: %w", i+1, loan.Name, err)
		}
	}

	if config.TaxRules != nil {
		if err := ip.validateTaxRules(config.TaxRules); err != nil {
			return fmt.Errorf("tax rules validation failed: %w", err)
		}
	}

	if config.Comparison != nil {
		if err := ip.validateComparison(config.Comparison); err != nil {
			return fmt.Errorf("comparison validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateSettings(s *domain.PortfolioSettings) error {
	if s.Income.IsNegative() {
		return fmt.Errorf("income cannot be negative")
	}
	if s.PropertyValue.IsNegative() {
		return fmt.Errorf("property value cannot be negative")
	}
	if s.SimulatePhaseOut && s.PhaseOutEndYear < 2000 {
		return fmt.Errorf("phase-out end year %d is not plausible", s.PhaseOutEndYear)
	}
	return nil
}

func (ip *InputParser) validateLoan(loan *domain.LoanPart) error {
	if !loan.Type.Valid() {
		return fmt.Errorf("unknown repayment type %q", loan.Type)
	}
	if !loan.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	if loan.Rate.IsNegative() {
		return fmt.Errorf("rate cannot be negative")
	}
	if loan.RateAfterFixed != nil && loan.RateAfterFixed.IsNegative() {
		return fmt.Errorf("rate after fixed period cannot be negative")
	}
	if loan.StartMonth.IsZero() {
		return fmt.Errorf("start month is required")
	}
	if loan.TermMonths < 1 || loan.TermMonths > maxTermMonths {
		return fmt.Errorf("term must be between 1 and %d months, got %d", maxTermMonths, loan.TermMonths)
	}
	if loan.FixedPeriodMonths < 0 {
		return fmt.Errorf("fixed period cannot be negative")
	}
	for j, extra := range loan.ExtraRepayments {
		if !extra.Amount.IsPositive() {
			return fmt.Errorf("extra repayment %d: amount must be positive", j+1)
		}
		if extra.Month.Before(loan.StartMonth) || !extra.Month.Before(loan.EndMonth()) {
			return fmt.Errorf("extra repayment %d: month %s is outside the loan term %s to %s",
				j+1, extra.Month, loan.StartMonth, loan.EndMonth().AddMonths(-1))
		}
	}
	return nil
}

func (ip *InputParser) validateTaxRules(rules *domain.TaxRules) error {
	if rules.PhaseOutCurve != "" && rules.PhaseOutCurve != domain.PhaseOutLinear && rules.PhaseOutCurve != domain.PhaseOutSquared {
		return fmt.Errorf("unknown phase-out curve %q", rules.PhaseOutCurve)
	}
	if rules.DeductionYears < 0 {
		return fmt.Errorf("deduction years cannot be negative")
	}
	for year, f := range rules.HillenFactors {
		if f.IsNegative() || f.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("hillen factor for %d must be between 0 and 1", year)
		}
	}
	return nil
}

func (ip *InputParser) validateComparison(c *domain.ComparisonInput) error {
	if !c.Principal.IsPositive() {
		return fmt.Errorf("principal must be positive")
	}
	if c.HorizonYears < 0 || c.HorizonYears > 30 {
		return fmt.Errorf("horizon must be between 0 and 30 years, got %d", c.HorizonYears)
	}
	if len(c.Offers) == 0 {
		return fmt.Errorf("at least one rate offer is required")
	}
	for _, o := range c.Offers {
		if o.FixedYears < 1 || o.FixedYears > 30 {
			return fmt.Errorf("fixed period must be between 1 and 30 years, got %d", o.FixedYears)
		}
		if o.Rate.IsNegative() {
			return fmt.Errorf("rate for %d years cannot be negative", o.FixedYears)
		}
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration for testing
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	afterFixed := decimal.NewFromFloat(4.5)
	start := dateutil.FromTime(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	return &domain.Configuration{
		Settings: domain.PortfolioSettings{
			Income:               decimal.NewFromInt(75000),
			PropertyValue:        decimal.NewFromInt(400000),
			IncludeImputedIncome: true,
			SimulatePhaseOut:     false,
			PhaseOutEndYear:      DefaultPhaseOutEndYear,
		},
		Loans: []domain.LoanPart{
			{
				ID:                "deel-1",
				Name:              "Annuïteitendeel",
				Type:              domain.Annuity,
				Amount:            decimal.NewFromInt(200000),
				Rate:              decimal.NewFromFloat(3.8),
				FixedPeriodMonths: DefaultFixedPeriodMonths,
				RateAfterFixed:    &afterFixed,
				StartMonth:        start,
				TermMonths:        DefaultTermMonths,
			},
			{
				ID:                "deel-2",
				Name:              "Lineair deel",
				Type:              domain.Linear,
				Amount:            decimal.NewFromInt(100000),
				Rate:              decimal.NewFromFloat(4.1),
				FixedPeriodMonths: 240,
				StartMonth:        start.AddMonths(6),
				TermMonths:        DefaultTermMonths,
				ExtraRepayments: []domain.ExtraRepayment{
					{Month: start.AddMonths(36), Amount: decimal.NewFromInt(10000)},
				},
			},
		},
		Comparison: &domain.ComparisonInput{
			Principal:    decimal.NewFromInt(200000),
			Type:         domain.Annuity,
			HorizonYears: 30,
			Offers: []domain.RateOffer{
				{FixedYears: 5, Rate: decimal.NewFromFloat(3.55)},
				{FixedYears: 10, Rate: decimal.NewFromFloat(3.8)},
				{FixedYears: 20, Rate: decimal.NewFromFloat(4.05)},
				{FixedYears: 30, Rate: decimal.NewFromFloat(4.2)},
			},
		},
	}
}
