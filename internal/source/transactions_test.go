package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// writeFile creates a temp data file and returns its path.
func writeFile(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseTransactions_ValidRows(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"Date,Account,Amount,Name",
		"2024-01-15,Donations,5000,Smith Foundation",
		"2024-01-20,  Program Supplies  ,-1200.50,Acme Co",
		"2024-02-01,Rent,(950),",
	)

	result := ParseTransactions(path, nil)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 3 {
		t.Fatalf("Records = %d, want 3", len(result.Records))
	}
	if result.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped)
	}

	if got := result.Records[1].Category; got != "Program Supplies" {
		t.Errorf("Category = %q, want trimmed %q", got, "Program Supplies")
	}
	if got := result.Records[2].Amount; !got.Equal(decimal.NewFromInt(-950)) {
		t.Errorf("Amount = %s, want -950 (accounting parentheses)", got)
	}
	if got := result.Records[0].Counterparty; got != "Smith Foundation" {
		t.Errorf("Counterparty = %q, want Smith Foundation", got)
	}
	if got := result.Records[2].Counterparty; got != "Unknown" {
		t.Errorf("blank Name: Counterparty = %q, want Unknown", got)
	}
}

func TestParseTransactions_SkipsBadRows(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"Date,Account,Amount",
		"not-a-date,Donations,100",
		"2024-01-15,Donations,abc",
		"2024-01-16,Donations,250",
	)

	result := ParseTransactions(path, nil)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("Records = %d, want 1", len(result.Records))
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
	if got := result.Records[0].Amount; !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("surviving Amount = %s, want 250", got)
	}
}

func TestParseTransactions_MissingColumns(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"Date,Description",
		"2024-01-01,whatever",
	)

	result := ParseTransactions(path, nil)
	if result.Err == nil {
		t.Fatal("expected a schema error, got nil")
	}

	var schemaErr *SchemaError
	if !errors.As(result.Err, &schemaErr) {
		t.Fatalf("error type = %T, want *SchemaError", result.Err)
	}
	if len(schemaErr.Missing) != 2 {
		t.Fatalf("Missing = %v, want [Account Amount]", schemaErr.Missing)
	}
	for _, want := range []string{"Account", "Amount"} {
		if !strings.Contains(schemaErr.Error(), want) {
			t.Errorf("error %q does not name column %q", schemaErr.Error(), want)
		}
	}
}

func TestParseTransactions_AllRowsInvalidIsEmptyLedger(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"Date,Account,Amount",
		"bad,Donations,xyz",
		"also bad,Rent,??",
	)

	result := ParseTransactions(path, nil)
	if result.Err != nil {
		t.Fatalf("zero valid rows must not be an error, got %v", result.Err)
	}
	if len(result.Records) != 0 {
		t.Errorf("Records = %d, want 0", len(result.Records))
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}
}

func TestParseTransactions_TagJoin(t *testing.T) {
	path := writeFile(t, "transactions.csv",
		"Date,Account,Amount,Name",
		"2024-01-15,Donations,5000,Smith Foundation",
		"2024-01-16,Rent,-900,Main St Realty",
	)
	tags := map[string]string{"Smith Foundation": "Restricted"}

	result := ParseTransactions(path, tags)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if got := result.Records[0].Tag; got != "Restricted" {
		t.Errorf("Tag = %q, want Restricted", got)
	}
	if got := result.Records[1].Tag; got != "" {
		t.Errorf("untagged counterparty: Tag = %q, want empty", got)
	}
}

func TestParseTagTable_NonFatal(t *testing.T) {
	// Missing Tag column reduces to "no tags available", never an error.
	path := writeFile(t, "tags.csv",
		"Transaction",
		"Smith Foundation",
	)
	if tags := ParseTagTable(path); tags != nil {
		t.Errorf("tags = %v, want nil for unusable table", tags)
	}

	if tags := ParseTagTable(filepath.Join(t.TempDir(), "absent.csv")); tags != nil {
		t.Errorf("tags = %v, want nil for missing file", tags)
	}
}
