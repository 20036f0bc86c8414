package source

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseBudgetRows_Valid(t *testing.T) {
	path := writeFile(t, "budget.csv",
		"Account,Budget Amount,Actual",
		"Salaries,12000,11500",
		"Program Supplies,4000,",
		"Rent,9000,8700.25",
	)

	rows, skipped, err := ParseBudgetRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	if !rows[0].Budgeted.Equal(decimal.NewFromInt(12000)) {
		t.Errorf("Budgeted = %s, want 12000", rows[0].Budgeted)
	}
	if rows[0].Actual == nil || !rows[0].Actual.Equal(decimal.NewFromInt(11500)) {
		t.Errorf("Actual = %v, want 11500", rows[0].Actual)
	}
	if rows[1].Actual != nil {
		t.Errorf("blank Actual cell must stay nil, got %s", rows[1].Actual)
	}
}

func TestParseBudgetRows_NoActualColumn(t *testing.T) {
	path := writeFile(t, "budget.csv",
		"Account,Budget Amount",
		"Salaries,12000",
	)

	rows, _, err := ParseBudgetRows(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Actual != nil {
		t.Errorf("Actual = %v, want nil when column absent", rows[0].Actual)
	}
}

func TestParseBudgetRows_MissingBudgetAmount(t *testing.T) {
	// A budget file with only Account must reject wholesale, naming the
	// missing column, never reconcile to an empty result.
	path := writeFile(t, "budget.csv",
		"Account",
		"Salaries",
	)

	rows, _, err := ParseBudgetRows(path)
	if err == nil {
		t.Fatal("expected a schema error, got nil")
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil on rejection", rows)
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", err)
	}
	if !strings.Contains(err.Error(), "Budget Amount") {
		t.Errorf("error %q does not name Budget Amount", err.Error())
	}
}
