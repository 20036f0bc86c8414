package model

import "time"

// SectionConfig enumerates which report sections an exporter renders.
type SectionConfig struct {
	Summary        bool `toml:"summary"`
	Ratios         bool `toml:"ratios"`
	Scenario       bool `toml:"scenario"`
	Budget         bool `toml:"budget"`
	Mortgage       bool `toml:"mortgage"`
	Notes          bool `toml:"notes"`
	SignatureBlock bool `toml:"signature_block"`
}

// DefaultSections enables every section. Boards opt out, not in.
func DefaultSections() SectionConfig {
	return SectionConfig{
		Summary:        true,
		Ratios:         true,
		Scenario:       true,
		Budget:         true,
		Mortgage:       true,
		Notes:          true,
		SignatureBlock: true,
	}
}

// ReportModel is the immutable aggregate handed to export and delivery
// collaborators. Built once per report action, consumed exactly once.
type ReportModel struct {
	ID          string
	Client      string
	GeneratedAt time.Time

	Summary   FinancialSummary
	Scenario  *ScenarioProjection
	Budget    []BudgetLine
	BudgetSum *BudgetSummary
	Mortgage  *MortgagePortfolio

	Notes    string
	Preparer string
}

// HasScenario reports whether a scenario section is attached.
func (r ReportModel) HasScenario() bool { return r.Scenario != nil }

// HasBudget reports whether budget reconciliation data is attached.
func (r ReportModel) HasBudget() bool { return len(r.Budget) > 0 }

// HasMortgage reports whether mortgage portfolio data is attached.
func (r ReportModel) HasMortgage() bool { return r.Mortgage != nil && r.Mortgage.LoanCount > 0 }
