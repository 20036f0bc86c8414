// Package pipeline turns canonical ledgers into summaries, projections,
// reconciliations, and report models.
package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/model"
)

// ratioScale is the decimal scale used for internal ratio divisions.
// Display rounding happens in cli/format and the exporters only.
const ratioScale = 8

// Options carries per-invocation classification and threshold knobs so
// aggregation never reads ambient state.
type Options struct {
	Keywords    config.Keywords
	DaysInMonth int
}

func (o Options) keywords() config.Keywords {
	if len(o.Keywords.Personnel) == 0 && len(o.Keywords.Program) == 0 {
		return config.DefaultKeywords()
	}
	return o.Keywords
}

func (o Options) daysInMonth() int64 {
	if o.DaysInMonth <= 0 {
		return 30
	}
	return int64(o.DaysInMonth)
}

// Aggregate computes the financial summary for one ledger. Pure and
// order-independent: the same records always yield the same summary, in
// any order, on any number of calls.
func Aggregate(ledger model.Ledger, opts Options) model.FinancialSummary {
	kw := opts.keywords()

	var s model.FinancialSummary
	months := make(map[string]struct{})
	expenseMonths := make(map[string]struct{})

	for _, r := range ledger.Records {
		s.CashOnHand = s.CashOnHand.Add(r.Amount)
		month := r.Month()
		months[month] = struct{}{}

		switch {
		case r.Amount.IsPositive():
			s.TotalIncome = s.TotalIncome.Add(r.Amount)
		case r.Amount.IsNegative():
			s.TotalExpenses = s.TotalExpenses.Add(r.Amount)
			expenseMonths[month] = struct{}{}

			switch Classify(r.Category, kw) {
			case model.ExpensePersonnel:
				s.PersonnelExpense = s.PersonnelExpense.Add(r.Amount)
			case model.ExpenseProgram:
				s.ProgramExpense = s.ProgramExpense.Add(r.Amount)
			default:
				s.OtherExpense = s.OtherExpense.Add(r.Amount)
			}
		}
	}

	s.NetCashFlow = s.TotalIncome.Add(s.TotalExpenses)
	s.TransactionCount = len(ledger.Records)
	s.Months = len(months)
	s.ExpenseMonths = len(expenseMonths)

	// Liquidity: zero expense-bearing months means 0 days, not infinity.
	if s.ExpenseMonths > 0 && !s.TotalExpenses.IsZero() {
		avgMonthly := s.TotalExpenses.Abs().DivRound(decimal.NewFromInt(int64(s.ExpenseMonths)), ratioScale)
		if !avgMonthly.IsZero() {
			days := decimal.NewFromInt(opts.daysInMonth())
			s.DaysCashOnHand = s.CashOnHand.Mul(days).DivRound(avgMonthly, ratioScale)
		}
	}

	// Program ratio: zero total expenses means 0, never a division error.
	if !s.TotalExpenses.IsZero() {
		s.ProgramExpenseRatio = s.ProgramExpense.Abs().DivRound(s.TotalExpenses.Abs(), ratioScale)
	}

	return s
}

// CategorySums returns each category's summed amount. The budget
// reconciler and exporters consume this.
func CategorySums(ledger model.Ledger) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range ledger.Records {
		sums[r.Category] = sums[r.Category].Add(r.Amount)
	}
	return sums
}

// AggregateCategories sums every category, largest absolute flow first,
// ties broken by name so rendering stays stable.
func AggregateCategories(ledger model.Ledger, opts Options) []model.CategoryTotal {
	kw := opts.keywords()

	catMap := make(map[string]*model.CategoryTotal)
	for _, r := range ledger.Records {
		ct, ok := catMap[r.Category]
		if !ok {
			ct = &model.CategoryTotal{
				Category: r.Category,
				Class:    Classify(r.Category, kw),
			}
			catMap[r.Category] = ct
		}
		ct.Amount = ct.Amount.Add(r.Amount)
		ct.Count++
	}

	cats := make([]model.CategoryTotal, 0, len(catMap))
	for _, ct := range catMap {
		cats = append(cats, *ct)
	}
	sort.Slice(cats, func(i, j int) bool {
		ai, aj := cats[i].Amount.Abs(), cats[j].Amount.Abs()
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return cats[i].Category < cats[j].Category
	})

	return cats
}

// AggregateMonths computes the month-by-month flow series, gap-filled so
// charts show quiet months as zeros, oldest first.
func AggregateMonths(ledger model.Ledger) []model.MonthlyFlow {
	flowMap := make(map[string]*model.MonthlyFlow)
	var first, last time.Time

	for _, r := range ledger.Records {
		key := r.Month()
		mf, ok := flowMap[key]
		if !ok {
			monthStart := time.Date(r.Date.Year(), r.Date.Month(), 1, 0, 0, 0, 0, r.Date.Location())
			mf = &model.MonthlyFlow{Month: monthStart}
			flowMap[key] = mf
			if first.IsZero() || monthStart.Before(first) {
				first = monthStart
			}
			if monthStart.After(last) {
				last = monthStart
			}
		}
		if r.Amount.IsPositive() {
			mf.Income = mf.Income.Add(r.Amount)
		} else {
			mf.Expenses = mf.Expenses.Add(r.Amount)
		}
	}

	// Fill every month in the observed range so gaps render as zeros.
	for m := first; !first.IsZero() && !m.After(last); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		if _, ok := flowMap[key]; !ok {
			flowMap[key] = &model.MonthlyFlow{Month: m}
		}
	}

	flows := make([]model.MonthlyFlow, 0, len(flowMap))
	for _, mf := range flowMap {
		mf.Net = mf.Income.Add(mf.Expenses)
		flows = append(flows, *mf)
	}
	sort.Slice(flows, func(i, j int) bool {
		return flows[i].Month.Before(flows[j].Month)
	})

	return flows
}

// FilterByDateRange returns records whose date falls within [since, until).
// Zero bounds are open.
func FilterByDateRange(ledger model.Ledger, since, until time.Time) model.Ledger {
	if since.IsZero() && until.IsZero() {
		return ledger
	}

	var records []model.TransactionRecord
	for _, r := range ledger.Records {
		if !since.IsZero() && r.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !r.Date.Before(until) {
			continue
		}
		records = append(records, r)
	}
	return model.Ledger{Records: records}
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
