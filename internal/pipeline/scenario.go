package pipeline

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/model"
)

// Classify assigns a ledger category to exactly one expense class by
// case-insensitive substring match. First match wins, personnel before
// program, so a category naming both ("Program Staff Salaries") lands in
// Personnel and is never counted twice.
func Classify(category string, kw config.Keywords) model.ExpenseClass {
	for _, k := range kw.Personnel {
		if containsIgnoreCase(category, k) {
			return model.ExpensePersonnel
		}
	}
	for _, k := range kw.Program {
		if containsIgnoreCase(category, k) {
			return model.ExpenseProgram
		}
	}
	return model.ExpenseOther
}

// SplitExpenses buckets every expense record by class. Income rows are
// ignored and signs are preserved: each bucket stays negative or zero.
func SplitExpenses(ledger model.Ledger, kw config.Keywords) (personnel, program, other decimal.Decimal) {
	for _, r := range ledger.Records {
		if !r.Amount.IsNegative() {
			continue
		}
		switch Classify(r.Category, kw) {
		case model.ExpensePersonnel:
			personnel = personnel.Add(r.Amount)
		case model.ExpenseProgram:
			program = program.Add(r.Amount)
		default:
			other = other.Add(r.Amount)
		}
	}
	return personnel, program, other
}

// ValidateParams rejects parameter sets the arithmetic cannot accept.
// Percentages are intentionally unclamped, including values below -100
// and above +100; only the one-time cost has a bound.
func ValidateParams(p model.ScenarioParameters) error {
	if p.OneTimeCost.IsNegative() {
		return errors.New("one-time cost must be non-negative")
	}
	return nil
}

// Project applies one parameter set to the ledger and returns the
// projected income/expense/net triple. Re-evaluable at any parameter
// value; a zero parameter set reproduces the unadjusted net cash flow
// exactly.
func Project(ledger model.Ledger, params model.ScenarioParameters, opts Options) (model.ScenarioProjection, error) {
	if err := ValidateParams(params); err != nil {
		return model.ScenarioProjection{}, err
	}
	kw := opts.keywords()

	var income decimal.Decimal
	for _, r := range ledger.Records {
		if r.Amount.IsPositive() {
			income = income.Add(r.Amount)
		}
	}
	personnel, program, other := SplitExpenses(ledger, kw)

	donationFactor := decimal.NewFromFloat(1 + params.DonationChangePct/100)
	grantFactor := decimal.NewFromFloat(params.GrantChangePct / 100)
	projectedIncome := income.Mul(donationFactor).Add(income.Mul(grantFactor))

	personnelFactor := decimal.NewFromFloat(1 + params.PersonnelChangePct/100)
	programFactor := decimal.NewFromFloat(1 + params.ProgramChangePct/100)
	projectedExpenses := personnel.Mul(personnelFactor).
		Add(program.Mul(programFactor)).
		Add(other).
		Sub(params.OneTimeCost)

	return model.ScenarioProjection{
		Parameters: params,

		PersonnelExpense: personnel,
		ProgramExpense:   program,
		OtherExpense:     other,

		BaselineIncome: income,
		BaselineNet:    income.Add(personnel).Add(program).Add(other),

		ProjectedIncome:   projectedIncome,
		ProjectedExpenses: projectedExpenses,
		ProjectedNet:      projectedIncome.Add(projectedExpenses),
	}, nil
}
