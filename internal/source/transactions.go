package source

import "github.com/fundsight/fundsight/internal/model"

// transactionColumns must all be present in a transactions header.
var transactionColumns = []string{"Date", "Account", "Amount"}

// ParseTransactions normalizes one transactions table into canonical
// records. Rows with unparseable dates or amounts are dropped and counted;
// a file with zero valid rows is a valid, empty result. Only a header
// missing mandatory columns fails the whole file.
//
// The optional tags map joins a Tag onto each record by counterparty name.
func ParseTransactions(path string, tags map[string]string) ParseResult {
	t, err := ReadTable(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	if missing := t.Missing(transactionColumns...); len(missing) > 0 {
		return ParseResult{Err: newSchemaError(path, KindTransactions, missing)}
	}

	dateCol, _ := t.Column("Date")
	categoryCol, _ := t.Column("Account")
	amountCol, _ := t.Column("Amount")
	nameCol, hasName := t.Column("Name")

	var (
		records []model.TransactionRecord
		skipped int
	)

	for _, row := range t.Rows {
		date, ok := parseDate(Cell(row, dateCol))
		if !ok {
			skipped++
			continue
		}
		amount, ok := parseAmount(Cell(row, amountCol))
		if !ok {
			skipped++
			continue
		}

		counterparty := "Unknown"
		if hasName {
			if name := Cell(row, nameCol); name != "" {
				counterparty = name
			}
		}

		rec := model.TransactionRecord{
			Date:         date,
			Category:     Cell(row, categoryCol),
			Amount:       amount,
			Counterparty: counterparty,
		}
		if tag, ok := tags[counterparty]; ok {
			rec.Tag = tag
		}
		records = append(records, rec)
	}

	return ParseResult{Records: records, Skipped: skipped}
}
