package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one category's summed flow across the ledger.
type CategoryTotal struct {
	Category string
	Class    ExpenseClass
	Amount   decimal.Decimal
	Count    int
}

// MonthlyFlow holds one calendar month's income/expense totals.
type MonthlyFlow struct {
	Month    time.Time // first day of the month
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
}
