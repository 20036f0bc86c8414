package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestScanDir_ClassifiesByName(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"transactions-2024.csv": "Date,Account,Amount\n",
		"budget_fy24.csv":       "Account,Budget Amount\n",
		"mortgage_loans.csv":    "Borrower,Loan ID,Amount Due,Amount Paid,Due Date\n",
		"tags.csv":              "Transaction,Tag\n",
		"notes.txt":             "ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	found, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 4 {
		t.Fatalf("discovered = %d, want 4 (txt ignored)", len(found))
	}

	counts := CountByKind(found)
	for _, kind := range []FileKind{KindTransactions, KindBudget, KindMortgage, KindTags} {
		if counts[kind] != 1 {
			t.Errorf("count[%s] = %d, want 1", kind, counts[kind])
		}
	}
}

func TestScanDir_SniffsUnhintedNames(t *testing.T) {
	dir := t.TempDir()
	content := "Borrower,Loan ID,Amount Due,Amount Paid,Due Date\nAlice,L-1,100,50,2024-01-01\n"
	if err := os.WriteFile(filepath.Join(dir, "export.csv"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	found, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("discovered = %d, want 1", len(found))
	}
	if found[0].Kind != KindMortgage {
		t.Errorf("Kind = %s, want %s (header sniff)", found[0].Kind, KindMortgage)
	}
}

func TestScanDir_MissingDirIsEmpty(t *testing.T) {
	found, err := ScanDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("missing dir must not error, got %v", err)
	}
	if len(found) != 0 {
		t.Errorf("discovered = %d, want 0", len(found))
	}
}

func TestFilterKind(t *testing.T) {
	files := []DiscoveredFile{
		{Path: "a.csv", Kind: KindTransactions},
		{Path: "b.csv", Kind: KindBudget},
		{Path: "c.csv", Kind: KindTransactions},
	}
	got := FilterKind(files, KindTransactions)
	if len(got) != 2 || got[0].Path != "a.csv" || got[1].Path != "c.csv" {
		t.Errorf("FilterKind = %v, want a.csv and c.csv in order", got)
	}
}

func TestParseTransactions_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Date", "Account", "Amount", "Name"},
		{"2024-01-15", "Donations", 5000, "Smith Foundation"},
		{"2024-01-20", "Rent", -900, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ParseTransactions(path, nil)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records = %d, want 2", len(result.Records))
	}
	if got := result.Records[0].Amount.String(); got != "5000" {
		t.Errorf("Amount = %s, want 5000", got)
	}
	if !strings.EqualFold(result.Records[1].Counterparty, "Unknown") {
		t.Errorf("Counterparty = %q, want Unknown", result.Records[1].Counterparty)
	}
}
