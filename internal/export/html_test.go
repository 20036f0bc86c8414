package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func sampleReport(t *testing.T) model.ReportModel {
	t.Helper()
	due := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	return model.ReportModel{
		ID:          "r-100",
		Client:      "Harbor Community Trust",
		GeneratedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		Summary: model.FinancialSummary{
			TotalIncome:         dec(t, "10000"),
			TotalExpenses:       dec(t, "-6000"),
			NetCashFlow:         dec(t, "4000"),
			CashOnHand:          dec(t, "4000"),
			DaysCashOnHand:      dec(t, "40"),
			ProgramExpenseRatio: dec(t, "0.33333333"),
		},
		Scenario: &model.ScenarioProjection{
			ProjectedIncome:   dec(t, "11000"),
			ProjectedExpenses: dec(t, "-6200"),
			ProjectedNet:      dec(t, "4800"),
			BaselineNet:       dec(t, "4000"),
		},
		Budget: []model.BudgetLine{
			{Category: "Salaries & Wages", Budgeted: dec(t, "12000"), Actual: dec(t, "12500"), Variance: dec(t, "-500")},
		},
		BudgetSum: &model.BudgetSummary{
			TotalBudgeted: dec(t, "12000"),
			TotalActual:   dec(t, "12500"),
			TotalVariance: dec(t, "-500"),
			LineCount:     1,
			OverCount:     1,
		},
		Mortgage: &model.MortgagePortfolio{
			Loans: []model.MortgageLoan{{
				Borrower:     "Acme Housing",
				LoanID:       "L-100",
				AmountDue:    dec(t, "1000"),
				AmountPaid:   dec(t, "200"),
				DueDate:      due,
				Balance:      dec(t, "800"),
				DaysLate:     90,
				IsDelinquent: true,
			}},
			TotalOutstandingBalance: dec(t, "800"),
			DelinquentCount:         1,
			LoanCount:               1,
		},
		Notes:    "Q2 looked stable. Watch the delinquent Acme loan.",
		Preparer: "J. Alvarez, Treasurer",
	}
}

func TestRenderHTML_AllSections(t *testing.T) {
	html, err := RenderHTML(sampleReport(t), model.DefaultSections())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, want := range []string{
		"Board Summary Report - Harbor Community Trust",
		"Total Income",
		"$10,000.00",
		"-$6,000.00",
		"Days Cash on Hand",
		"40.0",
		"33.33%",
		"Scenario Net Cash Flow",
		"$4,800.00",
		"Salaries &amp; Wages",
		"-$500.00",
		"Acme Housing",
		"Delinquent",
		"Watch the delinquent Acme loan",
		"J. Alvarez, Treasurer",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRenderHTML_SectionToggles(t *testing.T) {
	sections := model.DefaultSections()
	sections.Scenario = false
	sections.Mortgage = false
	sections.SignatureBlock = false

	html, err := RenderHTML(sampleReport(t), sections)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	if strings.Contains(html, "Scenario Projection") {
		t.Error("scenario section rendered while toggled off")
	}
	if strings.Contains(html, "Acme Housing") {
		t.Error("mortgage section rendered while toggled off")
	}
	if strings.Contains(html, "J. Alvarez") {
		t.Error("signature block rendered while toggled off")
	}
	if !strings.Contains(html, "Total Income") {
		t.Error("summary section missing with summary enabled")
	}
}

func TestRenderHTML_OmitsEmptyOptionalSections(t *testing.T) {
	report := sampleReport(t)
	report.Scenario = nil
	report.Budget = nil
	report.BudgetSum = nil
	report.Mortgage = nil
	report.Notes = ""

	html, err := RenderHTML(report, model.DefaultSections())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	for _, absent := range []string{"Scenario Projection", "Budget vs. Actuals", "Mortgage Portfolio", "<h2>Notes</h2>"} {
		if strings.Contains(html, absent) {
			t.Errorf("section %q rendered with no data attached", absent)
		}
	}
}

func TestRenderHTML_EscapesUserText(t *testing.T) {
	report := sampleReport(t)
	report.Notes = "<script>alert('x')</script>"

	html, err := RenderHTML(report, model.DefaultSections())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("notes text rendered unescaped")
	}
}
