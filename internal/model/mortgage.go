package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MortgageLoan is one loan row with its derived delinquency state.
type MortgageLoan struct {
	Borrower   string
	LoanID     string
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	DueDate    time.Time

	Balance      decimal.Decimal
	DaysLate     int
	IsDelinquent bool
}

// MortgagePortfolio holds every classified loan plus portfolio aggregates.
// Recomputed wholesale on each upload; rows are never mutated in place.
type MortgagePortfolio struct {
	Loans []MortgageLoan

	TotalOutstandingBalance decimal.Decimal
	DelinquentCount         int
	LoanCount               int
}
