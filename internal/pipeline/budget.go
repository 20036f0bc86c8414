package pipeline

import (
	"sort"

	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/source"
)

// ReconcilePolicy controls whether ledger categories absent from the
// budget file appear as zero-budget lines.
type ReconcilePolicy struct {
	IncludeUnbudgeted bool
}

// Reconcile joins budget rows against the ledger's per-category actuals.
// Budgeted categories with no ledger activity get an actual of 0; with
// IncludeUnbudgeted, ledger categories missing from the budget appear as
// zero-budget lines (full outer join). An explicit Actual on a budget row
// overrides the ledger-derived value. Lines are ordered by category name
// for stable rendering.
func Reconcile(ledger model.Ledger, rows []source.BudgetRow, policy ReconcilePolicy) ([]model.BudgetLine, model.BudgetSummary) {
	actuals := CategorySums(ledger)

	lines := make([]model.BudgetLine, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		actual := actuals[row.Category]
		if row.Actual != nil {
			actual = *row.Actual
		}
		seen[row.Category] = struct{}{}

		lines = append(lines, model.BudgetLine{
			Category: row.Category,
			Budgeted: row.Budgeted,
			Actual:   actual,
			Variance: row.Budgeted.Sub(actual),
		})
	}

	if policy.IncludeUnbudgeted {
		for category, actual := range actuals {
			if _, ok := seen[category]; ok {
				continue
			}
			lines = append(lines, model.BudgetLine{
				Category: category,
				Actual:   actual,
				Variance: actual.Neg(),
			})
		}
	}

	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Category < lines[j].Category
	})

	var sum model.BudgetSummary
	for _, l := range lines {
		sum.TotalBudgeted = sum.TotalBudgeted.Add(l.Budgeted)
		sum.TotalActual = sum.TotalActual.Add(l.Actual)
		sum.TotalVariance = sum.TotalVariance.Add(l.Variance)
		if l.Over() {
			sum.OverCount++
		}
	}
	sum.LineCount = len(lines)

	return lines, sum
}
