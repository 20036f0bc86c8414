package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fundsight/fundsight/internal/model"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := WriteXLSX(sampleReport(t), model.DefaultSections(), path); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	want := map[string]bool{"Summary": true, "Scenario": true, "Budget": true, "Mortgage": true}
	for _, s := range sheets {
		delete(want, s)
	}
	if len(want) > 0 {
		t.Fatalf("workbook sheets = %v, missing %v", sheets, want)
	}

	if got, _ := f.GetCellValue("Summary", "A2"); got != "Total Income" {
		t.Errorf("Summary!A2 = %q, want Total Income", got)
	}
	if got, _ := f.GetCellValue("Summary", "B2"); got != "10000" {
		t.Errorf("Summary!B2 = %q, want 10000", got)
	}
	if got, _ := f.GetCellValue("Budget", "A2"); got != "Salaries & Wages" {
		t.Errorf("Budget!A2 = %q, want Salaries & Wages", got)
	}
	if got, _ := f.GetCellValue("Budget", "D2"); got != "-500" {
		t.Errorf("Budget!D2 = %q, want -500", got)
	}
	if got, _ := f.GetCellValue("Mortgage", "B2"); got != "L-100" {
		t.Errorf("Mortgage!B2 = %q, want L-100", got)
	}
	if got, _ := f.GetCellValue("Scenario", "B4"); got != "4800" {
		t.Errorf("Scenario!B4 = %q, want 4800", got)
	}
}

func TestWriteXLSX_SectionToggles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary_only.xlsx")

	sections := model.SectionConfig{Summary: true}
	if err := WriteXLSX(sampleReport(t), sections, path); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	for _, s := range f.GetSheetList() {
		if s != "Summary" {
			t.Errorf("unexpected sheet %q with only the summary enabled", s)
		}
	}
}
