package domain

// Configuration is the top-level YAML input.
type Configuration struct {
	Settings   PortfolioSettings `yaml:"settings" json:"settings"`
	Loans      []LoanPart        `yaml:"loans" json:"loans"`
	TaxRules   *TaxRules         `yaml:"tax_rules,omitempty" json:"tax_rules,omitempty"`
	Comparison *ComparisonInput  `yaml:"comparison,omitempty" json:"comparison,omitempty"`
}

// State returns the settings and loans as a share/persist payload.
func (c *Configuration) State() PortfolioState {
	loans := make([]LoanPart, len(c.Loans))
	for i, l := range c.Loans {
		loans[i] = l.Clone()
	}
	return PortfolioState{Settings: c.Settings, Loans: loans}
}
