package source

// budgetColumns must all be present in a budget header. Actual is optional.
var budgetColumns = []string{"Account", "Budget Amount"}

// ParseBudgetRows loads raw budget lines. Returns the rows, the count of
// rows skipped for blank categories or unparseable amounts, and a
// SchemaError when mandatory columns are absent: the whole file is
// rejected, never partially read.
func ParseBudgetRows(path string) ([]BudgetRow, int, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, 0, err
	}
	if missing := t.Missing(budgetColumns...); len(missing) > 0 {
		return nil, 0, newSchemaError(path, KindBudget, missing)
	}

	categoryCol, _ := t.Column("Account")
	budgetCol, _ := t.Column("Budget Amount")
	actualCol, hasActual := t.Column("Actual")

	var (
		rows    []BudgetRow
		skipped int
	)

	for _, row := range t.Rows {
		category := Cell(row, categoryCol)
		if category == "" {
			skipped++
			continue
		}
		budgeted, ok := parseAmount(Cell(row, budgetCol))
		if !ok {
			skipped++
			continue
		}

		br := BudgetRow{Category: category, Budgeted: budgeted}
		if hasActual {
			if actual, ok := parseAmount(Cell(row, actualCol)); ok {
				br.Actual = &actual
			}
		}
		rows = append(rows, br)
	}

	return rows, skipped, nil
}
