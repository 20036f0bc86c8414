package source

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/model"
)

// FileKind classifies a discovered data file by the table it carries.
type FileKind string

const (
	KindTransactions FileKind = "transactions"
	KindBudget       FileKind = "budget"
	KindMortgage     FileKind = "mortgage"
	KindTags         FileKind = "tags"
	KindUnknown      FileKind = "unknown"
)

// String returns the kind's display name.
func (k FileKind) String() string { return string(k) }

// DiscoveredFile represents a CSV or XLSX table found during directory scanning.
type DiscoveredFile struct {
	Path    string
	Kind    FileKind
	Size    int64
	ModTime time.Time
}

// ParseResult holds the output of normalizing a single transactions file.
// Skipped counts rows dropped for unparseable dates or amounts; only the
// aggregate count is surfaced, never per-row errors.
type ParseResult struct {
	Records []model.TransactionRecord
	Skipped int
	Err     error
}

// BudgetRow is one raw budget line before reconciliation. Actual is nil
// when the optional Actual column is absent from the file or blank for
// the row; the reconciler then derives it from the ledger.
type BudgetRow struct {
	Category string
	Budgeted decimal.Decimal
	Actual   *decimal.Decimal
}

// LoanRow is one raw mortgage line before classification.
type LoanRow struct {
	Borrower   string
	LoanID     string
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	DueDate    time.Time
}
