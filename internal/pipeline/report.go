package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/fundsight/fundsight/internal/model"
)

// ReportInputs bundles the component outputs handed to BuildReport. Every
// section except the summary is optional.
type ReportInputs struct {
	Client    string
	Summary   model.FinancialSummary
	Scenario  *model.ScenarioProjection
	Budget    []model.BudgetLine
	BudgetSum *model.BudgetSummary
	Mortgage  *model.MortgagePortfolio
	Notes     string
	Preparer  string
}

// BuildReport composes one immutable report model from the component
// outputs. Pure assembly: the only additions are the id and timestamp.
func BuildReport(in ReportInputs) model.ReportModel {
	return model.ReportModel{
		ID:          uuid.NewString(),
		Client:      in.Client,
		GeneratedAt: time.Now(),

		Summary:   in.Summary,
		Scenario:  in.Scenario,
		Budget:    in.Budget,
		BudgetSum: in.BudgetSum,
		Mortgage:  in.Mortgage,

		Notes:    in.Notes,
		Preparer: in.Preparer,
	}
}
