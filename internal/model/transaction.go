// Package model defines domain types for fundsight ledgers and reports.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one canonical ledger entry parsed from an upload.
type TransactionRecord struct {
	Date         time.Time
	Category     string
	Amount       decimal.Decimal
	Counterparty string
	Tag          string
}

// IsIncome reports whether the record is a positive inflow.
func (t TransactionRecord) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense reports whether the record is a negative outflow.
func (t TransactionRecord) IsExpense() bool {
	return t.Amount.IsNegative()
}

// Month returns the record's calendar month key (YYYY-MM).
func (t TransactionRecord) Month() string {
	return t.Date.Format("2006-01")
}

// Ledger is the canonical, validated transaction sequence for one client
// period. Immutable once built; rebuilt in full when new source rows arrive.
type Ledger struct {
	Records []TransactionRecord
}

// Count returns the number of valid records in the ledger.
func (l Ledger) Count() int {
	return len(l.Records)
}
