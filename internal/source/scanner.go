// Package source discovers and normalizes fundsight data files: CSV and
// XLSX accounting exports turned into canonical domain records.
package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks the client data directory and classifies every CSV/XLSX
// table it finds. A missing directory is an empty result, not an error.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dataDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".csv" && ext != ".xlsx" {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // entry vanished mid-walk
		}

		files = append(files, DiscoveredFile{
			Path:    path,
			Kind:    classifyFile(path),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})

	return files, err
}

// classifyFile decides the table kind from the filename, falling back to a
// header sniff when the name gives no hint.
func classifyFile(path string) FileKind {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(base, "budget"):
		return KindBudget
	case strings.Contains(base, "mortgage"), strings.Contains(base, "loan"):
		return KindMortgage
	case strings.Contains(base, "tag"):
		return KindTags
	case strings.Contains(base, "transaction"), strings.Contains(base, "ledger"):
		return KindTransactions
	}
	return sniffKind(path)
}

// sniffKind loads the table and matches its header against the known
// column sets, most specific first.
func sniffKind(path string) FileKind {
	t, err := ReadTable(path)
	if err != nil {
		return KindUnknown
	}
	switch {
	case len(t.Missing(mortgageColumns...)) == 0:
		return KindMortgage
	case len(t.Missing(budgetColumns...)) == 0:
		return KindBudget
	case len(t.Missing("Transaction", "Tag")) == 0:
		return KindTags
	case len(t.Missing(transactionColumns...)) == 0:
		return KindTransactions
	}
	return KindUnknown
}

// FilterKind returns only the files of one kind, preserving order.
func FilterKind(files []DiscoveredFile, kind FileKind) []DiscoveredFile {
	var out []DiscoveredFile
	for _, f := range files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

// CountByKind returns how many discovered files carry each kind.
func CountByKind(files []DiscoveredFile) map[FileKind]int {
	counts := make(map[FileKind]int)
	for _, f := range files {
		counts[f.Kind]++
	}
	return counts
}
