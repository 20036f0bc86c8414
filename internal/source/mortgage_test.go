package source

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseMortgageRows_Valid(t *testing.T) {
	path := writeFile(t, "mortgage.csv",
		"Borrower,Loan ID,Amount Due,Amount Paid,Due Date",
		"Alice Johnson,L-100,1000,200,2024-03-01",
		"Bob Chen,L-101,\"$2,500.00\",2500,3/15/2024",
	)

	rows, skipped, err := ParseMortgageRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	if rows[0].LoanID != "L-100" {
		t.Errorf("LoanID = %q, want L-100", rows[0].LoanID)
	}
	if !rows[1].AmountDue.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("AmountDue = %s, want 2500", rows[1].AmountDue)
	}
	wantDue := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !rows[1].DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", rows[1].DueDate, wantDue)
	}
}

func TestParseMortgageRows_SkipsBadRows(t *testing.T) {
	path := writeFile(t, "mortgage.csv",
		"Borrower,Loan ID,Amount Due,Amount Paid,Due Date",
		"Alice Johnson,L-100,oops,200,2024-03-01",
		"Bob Chen,L-101,2500,2500,never",
		"Cara Diaz,L-102,800,100,2024-04-01",
	)

	rows, skipped, err := ParseMortgageRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if skipped != 2 {
		t.Errorf("skipped = %d, want 2", skipped)
	}
	if rows[0].LoanID != "L-102" {
		t.Errorf("surviving LoanID = %q, want L-102", rows[0].LoanID)
	}
}

func TestParseMortgageRows_MissingColumns(t *testing.T) {
	path := writeFile(t, "mortgage.csv",
		"Borrower,Amount Due",
		"Alice Johnson,1000",
	)

	_, _, err := ParseMortgageRows(path)
	if err == nil {
		t.Fatal("expected a schema error, got nil")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}
	for _, want := range []string{"Loan ID", "Amount Paid", "Due Date"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not name column %q", err.Error(), want)
		}
	}
}
