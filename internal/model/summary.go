package model

import "github.com/shopspring/decimal"

// FinancialSummary holds the top-level aggregate derived from one ledger.
type FinancialSummary struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal // kept negative
	NetCashFlow   decimal.Decimal
	CashOnHand    decimal.Decimal

	// DaysCashOnHand estimates how many days of average expenses the
	// current cash position covers. 0 when no expense-bearing months exist.
	DaysCashOnHand decimal.Decimal

	// ProgramExpenseRatio is |program expenses| / |total expenses|.
	// 0 when total expenses are 0.
	ProgramExpenseRatio decimal.Decimal

	PersonnelExpense decimal.Decimal
	ProgramExpense   decimal.Decimal
	OtherExpense     decimal.Decimal

	TransactionCount int
	Months           int // distinct calendar months observed
	ExpenseMonths    int // distinct months carrying at least one expense
}
