package pipeline

import (
	"time"

	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/source"
)

// ClassifyLoans derives balances and delinquency for every loan row and
// sums the portfolio aggregates. asOf anchors the days-late computation
// so classification is reproducible; callers pass time.Now() in practice.
// A non-positive delinquencyDays falls back to the 60-day default.
func ClassifyLoans(rows []source.LoanRow, asOf time.Time, delinquencyDays int) model.MortgagePortfolio {
	if delinquencyDays <= 0 {
		delinquencyDays = 60
	}

	var p model.MortgagePortfolio
	for _, row := range rows {
		loan := model.MortgageLoan{
			Borrower:   row.Borrower,
			LoanID:     row.LoanID,
			AmountDue:  row.AmountDue,
			AmountPaid: row.AmountPaid,
			DueDate:    row.DueDate,
		}
		loan.Balance = row.AmountDue.Sub(row.AmountPaid)
		loan.DaysLate = daysBetween(row.DueDate, asOf)
		loan.IsDelinquent = loan.DaysLate > delinquencyDays

		p.TotalOutstandingBalance = p.TotalOutstandingBalance.Add(loan.Balance)
		if loan.IsDelinquent {
			p.DelinquentCount++
		}
		p.Loans = append(p.Loans, loan)
	}
	p.LoanCount = len(p.Loans)

	return p
}

// daysBetween returns whole days from a to b, negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
