package model

import "github.com/shopspring/decimal"

// ExpenseClass is the single classification bucket for a ledger category.
type ExpenseClass int

const (
	ExpenseOther ExpenseClass = iota
	ExpensePersonnel
	ExpenseProgram
)

// String returns the display name of the class.
func (c ExpenseClass) String() string {
	switch c {
	case ExpensePersonnel:
		return "Personnel"
	case ExpenseProgram:
		return "Program"
	default:
		return "Other"
	}
}

// ScenarioParameters is one what-if input tuple. Percentages are signed and
// unclamped; values below -100 and above +100 are legal. Supplied fresh per
// evaluation, never persisted.
type ScenarioParameters struct {
	DonationChangePct  float64
	GrantChangePct     float64
	PersonnelChangePct float64
	ProgramChangePct   float64
	OneTimeCost        decimal.Decimal
}

// IsZero reports whether every parameter is at its neutral value.
func (p ScenarioParameters) IsZero() bool {
	return p.DonationChangePct == 0 &&
		p.GrantChangePct == 0 &&
		p.PersonnelChangePct == 0 &&
		p.ProgramChangePct == 0 &&
		p.OneTimeCost.IsZero()
}

// ScenarioProjection is the derived income/expense/net triple for one
// parameter set, alongside the expense split it was computed from.
type ScenarioProjection struct {
	Parameters ScenarioParameters

	PersonnelExpense decimal.Decimal
	ProgramExpense   decimal.Decimal
	OtherExpense     decimal.Decimal

	BaselineIncome  decimal.Decimal
	BaselineNet     decimal.Decimal
	ProjectedIncome decimal.Decimal

	// ProjectedExpenses stays negative, matching TotalExpenses sign.
	ProjectedExpenses decimal.Decimal
	ProjectedNet      decimal.Decimal
}
