package pipeline

import (
	"testing"
	"time"

	"github.com/fundsight/fundsight/internal/source"
)

func loanRow(t *testing.T, borrower, id, due, paid string, dueDate time.Time) source.LoanRow {
	t.Helper()
	return source.LoanRow{
		Borrower:   borrower,
		LoanID:     id,
		AmountDue:  dec(t, due),
		AmountPaid: dec(t, paid),
		DueDate:    dueDate,
	}
}

func TestClassifyLoans_EndToEnd(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "Acme Housing", "L-100", "1000", "200", asOf.AddDate(0, 0, -90)),
	}

	p := ClassifyLoans(rows, asOf, 0)

	if p.LoanCount != 1 {
		t.Fatalf("LoanCount = %d, want 1", p.LoanCount)
	}
	l := p.Loans[0]
	if !l.Balance.Equal(dec(t, "800")) {
		t.Errorf("Balance = %s, want 800", l.Balance)
	}
	if l.DaysLate != 90 {
		t.Errorf("DaysLate = %d, want 90", l.DaysLate)
	}
	if !l.IsDelinquent {
		t.Error("loan 90 days past due not flagged delinquent")
	}
	if !p.TotalOutstandingBalance.Equal(dec(t, "800")) {
		t.Errorf("TotalOutstandingBalance = %s, want 800", p.TotalOutstandingBalance)
	}
	if p.DelinquentCount != 1 {
		t.Errorf("DelinquentCount = %d, want 1", p.DelinquentCount)
	}
}

func TestClassifyLoans_ThresholdBoundary(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "At Limit", "L-60", "500", "0", asOf.AddDate(0, 0, -60)),
		loanRow(t, "Past Limit", "L-61", "500", "0", asOf.AddDate(0, 0, -61)),
	}

	p := ClassifyLoans(rows, asOf, 0)

	if p.Loans[0].IsDelinquent {
		t.Error("loan exactly 60 days late flagged delinquent; threshold is strict")
	}
	if !p.Loans[1].IsDelinquent {
		t.Error("loan 61 days late not flagged delinquent")
	}
	if p.DelinquentCount != 1 {
		t.Errorf("DelinquentCount = %d, want 1", p.DelinquentCount)
	}
}

func TestClassifyLoans_FutureDueDate(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "Not Yet Due", "L-1", "1000", "0", asOf.AddDate(0, 0, 30)),
	}

	p := ClassifyLoans(rows, asOf, 0)

	l := p.Loans[0]
	if l.DaysLate != -30 {
		t.Errorf("DaysLate = %d, want -30 for a future due date", l.DaysLate)
	}
	if l.IsDelinquent {
		t.Error("loan due in the future flagged delinquent")
	}
	// Balance still counts toward the outstanding total.
	if !p.TotalOutstandingBalance.Equal(dec(t, "1000")) {
		t.Errorf("TotalOutstandingBalance = %s, want 1000", p.TotalOutstandingBalance)
	}
}

func TestClassifyLoans_Overpaid(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "Prepaid", "L-2", "1000", "1200", asOf.AddDate(0, 0, -10)),
	}

	p := ClassifyLoans(rows, asOf, 0)

	if !p.Loans[0].Balance.Equal(dec(t, "-200")) {
		t.Errorf("Balance = %s, want -200 for an overpaid loan", p.Loans[0].Balance)
	}
}

func TestClassifyLoans_CustomThreshold(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "Acme Housing", "L-100", "1000", "0", asOf.AddDate(0, 0, -45)),
	}

	if p := ClassifyLoans(rows, asOf, 0); p.Loans[0].IsDelinquent {
		t.Error("45 days late flagged delinquent under the default 60-day threshold")
	}
	if p := ClassifyLoans(rows, asOf, 30); !p.Loans[0].IsDelinquent {
		t.Error("45 days late not flagged delinquent under a 30-day threshold")
	}
}

func TestClassifyLoans_PreservesInputOrder(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []source.LoanRow{
		loanRow(t, "Zeta", "L-3", "100", "0", asOf),
		loanRow(t, "Alpha", "L-1", "100", "0", asOf),
	}

	p := ClassifyLoans(rows, asOf, 0)

	if p.Loans[0].Borrower != "Zeta" || p.Loans[1].Borrower != "Alpha" {
		t.Errorf("loan order = %q, %q; want input order Zeta, Alpha",
			p.Loans[0].Borrower, p.Loans[1].Borrower)
	}
}

func TestClassifyLoans_Empty(t *testing.T) {
	p := ClassifyLoans(nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 0)

	if p.LoanCount != 0 || p.DelinquentCount != 0 {
		t.Errorf("empty portfolio counts = %d/%d, want 0/0", p.LoanCount, p.DelinquentCount)
	}
	if !p.TotalOutstandingBalance.IsZero() {
		t.Errorf("TotalOutstandingBalance = %s, want 0", p.TotalOutstandingBalance)
	}
}
