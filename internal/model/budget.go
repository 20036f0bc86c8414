package model

import "github.com/shopspring/decimal"

// BudgetLine is one reconciled category row. Variance is budgeted minus
// actual: positive means under budget, negative means over.
type BudgetLine struct {
	Category string
	Budgeted decimal.Decimal
	Actual   decimal.Decimal
	Variance decimal.Decimal
}

// Over reports whether actual spending exceeded the budgeted amount.
// Income flowing through a zero-budget line is not overspending.
func (b BudgetLine) Over() bool {
	if b.Budgeted.IsZero() && b.Actual.IsPositive() {
		return false
	}
	return b.Variance.IsNegative()
}

// BudgetSummary holds reconciliation totals across all budget lines.
type BudgetSummary struct {
	TotalBudgeted decimal.Decimal
	TotalActual   decimal.Decimal
	TotalVariance decimal.Decimal
	LineCount     int
	OverCount     int
}
