package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/fundsight/fundsight/internal/model"
)

func writeDataFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_MergesAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "transactions_q1.csv",
		"Date,Account,Amount,Name",
		"2024-02-05,Donations,5000,Smith Foundation",
		"2024-01-10,Salaries,-3000,",
	)
	writeDataFile(t, dir, "transactions_q2.csv",
		"Date,Account,Amount,Name",
		"2024-04-01,Grants,2500,State of Ohio",
	)

	res, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.Ledger.Count() != 3 {
		t.Fatalf("records = %d, want 3 across both files", res.Ledger.Count())
	}
	if res.TotalFiles != 2 || res.ParsedFiles != 2 {
		t.Errorf("files = %d/%d, want 2/2", res.ParsedFiles, res.TotalFiles)
	}
	// Chronological regardless of which file a row came from.
	for i := 1; i < res.Ledger.Count(); i++ {
		prev, cur := res.Ledger.Records[i-1], res.Ledger.Records[i]
		if cur.Date.Before(prev.Date) {
			t.Errorf("record %d (%s) sorts before record %d (%s)", i, cur.Date, i-1, prev.Date)
		}
	}
}

func TestSortLedger_SameDayOrderIsInputIndependent(t *testing.T) {
	recs := []model.TransactionRecord{
		rec(t, "2024-01-10", "Salaries", "-3000"),
		rec(t, "2024-01-10", "Donations", "5000"),
		rec(t, "2024-01-10", "Donations", "250"),
		rec(t, "2024-01-09", "Rent", "-1500"),
	}

	forward := ledgerOf(recs...)
	reversed := ledgerOf(recs[3], recs[2], recs[1], recs[0])
	sortLedger(&forward)
	sortLedger(&reversed)

	for i := range forward.Records {
		f, r := forward.Records[i], reversed.Records[i]
		if f.Category != r.Category || !f.Amount.Equal(r.Amount) {
			t.Errorf("record %d differs by input order: %s %s vs %s %s",
				i, f.Category, f.Amount, r.Category, r.Amount)
		}
	}
	if forward.Records[0].Category != "Rent" {
		t.Errorf("first record = %q, want Rent (earlier date)", forward.Records[0].Category)
	}
	if !forward.Records[1].Amount.Equal(dec(t, "250")) {
		t.Errorf("same-day Donations rows not ordered by amount: %s", forward.Records[1].Amount)
	}
}

func TestLoad_CountsSkippedRows(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "transactions.csv",
		"Date,Account,Amount",
		"2024-01-10,Salaries,-3000",
		"not-a-date,Salaries,-100",
		"2024-01-12,Rent,not-a-number",
	)

	res, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.Ledger.Count() != 1 {
		t.Errorf("records = %d, want 1", res.Ledger.Count())
	}
	if res.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", res.SkippedRows)
	}
}

func TestLoad_AppliesTags(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "transactions.csv",
		"Date,Account,Amount,Name",
		"2024-01-10,Donations,5000,Smith Foundation",
		"2024-01-15,Donations,250,",
	)
	writeDataFile(t, dir, "tags.csv",
		"Name,Tag",
		"Smith Foundation,Major Donor",
	)

	res, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.Ledger.Count() != 2 {
		t.Fatalf("records = %d, want 2 (tag file must not parse as transactions)", res.Ledger.Count())
	}
	var tagged, untagged int
	for _, r := range res.Ledger.Records {
		switch r.Counterparty {
		case "Smith Foundation":
			if r.Tag != "Major Donor" {
				t.Errorf("Smith Foundation tag = %q, want Major Donor", r.Tag)
			}
			tagged++
		case "Unknown":
			if r.Tag != "" {
				t.Errorf("untagged counterparty has tag %q", r.Tag)
			}
			untagged++
		default:
			t.Errorf("unexpected counterparty %q", r.Counterparty)
		}
	}
	if tagged != 1 || untagged != 1 {
		t.Errorf("tagged/untagged = %d/%d, want 1/1", tagged, untagged)
	}
}

func TestLoad_BadFileReportedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "transactions.csv",
		"Date,Account,Amount",
		"2024-01-10,Salaries,-3000",
	)
	// A transaction-named file missing mandatory columns: surfaced as a
	// per-file error while the good file still loads.
	writeDataFile(t, dir, "transactions_broken.csv",
		"Date,Description",
		"2024-01-11,whatever",
	)

	res, err := Load(dir, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.Ledger.Count() != 1 {
		t.Errorf("records = %d, want 1 from the intact file", res.Ledger.Count())
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(res.Errors))
	}
	if !strings.Contains(res.Errors[0].Error(), "missing required columns") {
		t.Errorf("error = %q, want a missing-columns message", res.Errors[0])
	}
}

func TestLoad_MissingDir(t *testing.T) {
	res, err := Load(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("Load on a missing dir: %v", err)
	}
	if res.Ledger.Count() != 0 || res.TotalFiles != 0 {
		t.Errorf("missing dir: records = %d, files = %d, want empty result",
			res.Ledger.Count(), res.TotalFiles)
	}
}

func TestLoad_ReportsProgress(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "transactions_a.csv",
		"Date,Account,Amount",
		"2024-01-10,Salaries,-3000",
	)
	writeDataFile(t, dir, "transactions_b.csv",
		"Date,Account,Amount",
		"2024-01-11,Rent,-1000",
	)

	// Workers report progress concurrently and in no particular order.
	var mu sync.Mutex
	var calls, maxCurrent, lastTotal int
	_, err := Load(dir, func(current, total int) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if current > maxCurrent {
			maxCurrent = current
		}
		lastTotal = total
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if calls != 2 {
		t.Errorf("progress calls = %d, want 2", calls)
	}
	if maxCurrent != 2 || lastTotal != 2 {
		t.Errorf("progress high-water mark = %d/%d, want 2/2", maxCurrent, lastTotal)
	}
}
