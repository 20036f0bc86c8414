package source

// mortgageColumns are all mandatory in a mortgage header.
var mortgageColumns = []string{"Borrower", "Loan ID", "Amount Due", "Amount Paid", "Due Date"}

// ParseMortgageRows loads raw loan rows. A header missing any mandatory
// column rejects the file wholesale, naming every absent column. Rows with
// unparseable amounts or due dates are dropped and counted.
func ParseMortgageRows(path string) ([]LoanRow, int, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, 0, err
	}
	if missing := t.Missing(mortgageColumns...); len(missing) > 0 {
		return nil, 0, newSchemaError(path, KindMortgage, missing)
	}

	borrowerCol, _ := t.Column("Borrower")
	idCol, _ := t.Column("Loan ID")
	dueCol, _ := t.Column("Amount Due")
	paidCol, _ := t.Column("Amount Paid")
	dateCol, _ := t.Column("Due Date")

	var (
		rows    []LoanRow
		skipped int
	)

	for _, row := range t.Rows {
		due, ok := parseAmount(Cell(row, dueCol))
		if !ok {
			skipped++
			continue
		}
		paid, ok := parseAmount(Cell(row, paidCol))
		if !ok {
			skipped++
			continue
		}
		dueDate, ok := parseDate(Cell(row, dateCol))
		if !ok {
			skipped++
			continue
		}

		rows = append(rows, LoanRow{
			Borrower:   Cell(row, borrowerCol),
			LoanID:     Cell(row, idCol),
			AmountDue:  due,
			AmountPaid: paid,
			DueDate:    dueDate,
		})
	}

	return rows, skipped, nil
}
