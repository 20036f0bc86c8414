package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/fundsight/fundsight/internal/model"
)

// WriteXLSX writes the report as a workbook with one sheet per enabled
// section. Amounts are written as floats so spreadsheet formulas work on
// them directly.
func WriteXLSX(report model.ReportModel, sections model.SectionConfig, path string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	sheets := 0
	writeSheet := func(name string, rows [][]any) error {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
		sheets++
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return fmt.Errorf("writing %s row %d: %w", name, i+1, err)
			}
		}
		if len(rows) > 0 {
			end, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(name, "A1", end, headerStyle); err != nil {
				return err
			}
		}
		return nil
	}

	if sections.Summary || sections.Ratios {
		s := report.Summary
		rows := [][]any{{"Metric", "Value"}}
		if sections.Summary {
			rows = append(rows,
				[]any{"Total Income", s.TotalIncome.InexactFloat64()},
				[]any{"Total Expenses", s.TotalExpenses.InexactFloat64()},
				[]any{"Net Cash Flow", s.NetCashFlow.InexactFloat64()},
				[]any{"Cash on Hand", s.CashOnHand.InexactFloat64()},
			)
		}
		if sections.Ratios {
			rows = append(rows,
				[]any{"Days Cash on Hand", s.DaysCashOnHand.InexactFloat64()},
				[]any{"Program Expense Ratio", s.ProgramExpenseRatio.InexactFloat64()},
			)
		}
		if err := writeSheet("Summary", rows); err != nil {
			return err
		}
	}

	if sections.Scenario && report.HasScenario() {
		p := report.Scenario
		rows := [][]any{
			{"Metric", "Value"},
			{"Projected Income", p.ProjectedIncome.InexactFloat64()},
			{"Projected Expenses", p.ProjectedExpenses.InexactFloat64()},
			{"Projected Net Cash Flow", p.ProjectedNet.InexactFloat64()},
			{"Baseline Net Cash Flow", p.BaselineNet.InexactFloat64()},
		}
		if err := writeSheet("Scenario", rows); err != nil {
			return err
		}
	}

	if sections.Budget && report.HasBudget() {
		rows := [][]any{{"Category", "Budgeted", "Actual", "Variance"}}
		for _, l := range report.Budget {
			rows = append(rows, []any{
				l.Category,
				l.Budgeted.InexactFloat64(),
				l.Actual.InexactFloat64(),
				l.Variance.InexactFloat64(),
			})
		}
		if sum := report.BudgetSum; sum != nil {
			rows = append(rows, []any{
				"Total",
				sum.TotalBudgeted.InexactFloat64(),
				sum.TotalActual.InexactFloat64(),
				sum.TotalVariance.InexactFloat64(),
			})
		}
		if err := writeSheet("Budget", rows); err != nil {
			return err
		}
	}

	if sections.Mortgage && report.HasMortgage() {
		rows := [][]any{{"Borrower", "Loan ID", "Amount Due", "Amount Paid", "Balance", "Due Date", "Days Late", "Delinquent"}}
		for _, l := range report.Mortgage.Loans {
			rows = append(rows, []any{
				l.Borrower,
				l.LoanID,
				l.AmountDue.InexactFloat64(),
				l.AmountPaid.InexactFloat64(),
				l.Balance.InexactFloat64(),
				l.DueDate.Format("2006-01-02"),
				l.DaysLate,
				l.IsDelinquent,
			})
		}
		if err := writeSheet("Mortgage", rows); err != nil {
			return err
		}
	}

	// Drop the default sheet so the workbook opens on Summary, unless it
	// is all we have.
	if sheets > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
