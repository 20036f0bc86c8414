package source

// ParseTagTable loads the optional counterparty -> tag lookup table
// (columns Transaction, Tag). Failures are non-fatal by contract: any
// error, including missing columns, degrades to "no tags available".
func ParseTagTable(path string) map[string]string {
	t, err := ReadTable(path)
	if err != nil {
		return nil
	}

	txCol, okTx := t.Column("Transaction")
	tagCol, okTag := t.Column("Tag")
	if !okTx || !okTag {
		return nil
	}

	tags := make(map[string]string)
	for _, row := range t.Rows {
		name := Cell(row, txCol)
		tag := Cell(row, tagCol)
		if name == "" || tag == "" {
			continue
		}
		tags[name] = tag
	}
	return tags
}
