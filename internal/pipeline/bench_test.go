package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"
)

// benchDataDir writes a synthetic data directory with the given number of
// transaction files, each holding rows transactions.
func benchDataDir(b *testing.B, files, rows int) string {
	b.Helper()
	dir := b.TempDir()

	categories := []string{"Donations", "Grants", "Salaries", "Program Supplies", "Rent", "Utilities"}
	for f := 0; f < files; f++ {
		var sb strings.Builder
		sb.WriteString("Date,Account,Amount,Name\n")
		for r := 0; r < rows; r++ {
			month := r%12 + 1
			day := r%28 + 1
			cat := categories[r%len(categories)]
			amount := 100 + r%900
			if r%3 != 0 {
				amount = -amount
			}
			fmt.Fprintf(&sb, "2024-%02d-%02d,%s,%d,Donor %d\n", month, day, cat, amount, r%50)
		}
		path := filepath.Join(dir, fmt.Sprintf("transactions_%d.csv", f))
		if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
			b.Fatal(err)
		}
	}
	return dir
}

func benchLedger(b *testing.B, dir string) model.Ledger {
	b.Helper()
	res, err := Load(dir, nil)
	if err != nil {
		b.Fatal(err)
	}
	return res.Ledger
}

func BenchmarkLoad(b *testing.B) {
	dir := benchDataDir(b, 8, 500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := Load(dir, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}

func BenchmarkParseTransactions(b *testing.B) {
	dir := benchDataDir(b, 1, 5000)

	files, err := source.ScanDir(dir)
	if err != nil {
		b.Fatal(err)
	}
	if len(files) != 1 {
		b.Fatalf("discovered %d files, want 1", len(files))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := source.ParseTransactions(files[0].Path, nil)
		if result.Err != nil {
			b.Fatal(result.Err)
		}
	}
}

func BenchmarkScanDir(b *testing.B) {
	dir := benchDataDir(b, 32, 10)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		files, err := source.ScanDir(dir)
		if err != nil {
			b.Fatal(err)
		}
		_ = files
	}
}

func BenchmarkAggregate(b *testing.B) {
	ledger := benchLedger(b, benchDataDir(b, 4, 2500))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := Aggregate(ledger, Options{})
		_ = s
	}
}

func BenchmarkProject(b *testing.B) {
	ledger := benchLedger(b, benchDataDir(b, 4, 2500))
	params := model.ScenarioParameters{DonationChangePct: 10, PersonnelChangePct: -5}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p, err := Project(ledger, params, Options{})
		if err != nil {
			b.Fatal(err)
		}
		_ = p
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dir := benchDataDir(b, 8, 500)

	cache, err := store.Open(filepath.Join(b.TempDir(), "ledger.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// Warm the cache so iterations measure the hit path.
	if _, err := LoadWithCache(dir, cache, nil); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cr, err := LoadWithCache(dir, cache, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = cr
	}
}
