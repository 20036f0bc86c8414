package store

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestReportHistory_RoundTrip(t *testing.T) {
	c := openTestCache(t)

	older := ReportEntry{
		ID:          "r-001",
		Client:      "Harbor Community Trust",
		CreatedAt:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		NetCashFlow: decimal.NewFromInt(4800),
		PDFPath:     "/tmp/fundsight_report.pdf",
	}
	newer := ReportEntry{
		ID:          "r-002",
		Client:      "Harbor Community Trust",
		CreatedAt:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		NetCashFlow: decimal.NewFromInt(-250),
		XLSXPath:    "/tmp/fundsight_report.xlsx",
	}
	for _, e := range []ReportEntry{older, newer} {
		if err := c.SaveReportEntry(e); err != nil {
			t.Fatalf("SaveReportEntry(%s): %v", e.ID, err)
		}
	}

	entries, err := c.ListReportEntries(0)
	if err != nil {
		t.Fatalf("ListReportEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != "r-002" || entries[1].ID != "r-001" {
		t.Errorf("order = %s, %s; want newest first", entries[0].ID, entries[1].ID)
	}
	if !entries[0].NetCashFlow.Equal(decimal.NewFromInt(-250)) {
		t.Errorf("NetCashFlow = %s, want -250", entries[0].NetCashFlow)
	}
	if !entries[1].CreatedAt.Equal(older.CreatedAt) {
		t.Errorf("CreatedAt = %s, want %s", entries[1].CreatedAt, older.CreatedAt)
	}

	limited, err := c.ListReportEntries(1)
	if err != nil {
		t.Fatalf("ListReportEntries(1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "r-002" {
		t.Errorf("limited list = %+v, want just r-002", limited)
	}
}

func TestMarkDelivered(t *testing.T) {
	c := openTestCache(t)

	entry := ReportEntry{
		ID:          "r-010",
		Client:      "Harbor Community Trust",
		CreatedAt:   time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		NetCashFlow: decimal.NewFromInt(100),
	}
	if err := c.SaveReportEntry(entry); err != nil {
		t.Fatalf("SaveReportEntry: %v", err)
	}

	if err := c.MarkDelivered("r-010", "board@example.org", nil); err != nil {
		t.Fatalf("MarkDelivered: %v", err)
	}
	entries, err := c.ListReportEntries(1)
	if err != nil {
		t.Fatalf("ListReportEntries: %v", err)
	}
	if !entries[0].Delivered || entries[0].Recipient != "board@example.org" {
		t.Errorf("after success: %+v, want delivered to board@example.org", entries[0])
	}

	if err := c.MarkDelivered("r-010", "board@example.org", errors.New("smtp: connection refused")); err != nil {
		t.Fatalf("MarkDelivered failure: %v", err)
	}
	entries, err = c.ListReportEntries(1)
	if err != nil {
		t.Fatalf("ListReportEntries: %v", err)
	}
	if entries[0].Delivered {
		t.Error("failed delivery left the entry marked delivered")
	}
	if entries[0].DeliveryError != "smtp: connection refused" {
		t.Errorf("DeliveryError = %q, want the transport message", entries[0].DeliveryError)
	}
}

func TestReportCount(t *testing.T) {
	c := openTestCache(t)

	n, err := c.ReportCount()
	if err != nil {
		t.Fatalf("ReportCount: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}

	e := ReportEntry{
		ID:          "r-001",
		Client:      "x",
		CreatedAt:   time.Now(),
		NetCashFlow: decimal.Zero,
	}
	if err := c.SaveReportEntry(e); err != nil {
		t.Fatalf("SaveReportEntry: %v", err)
	}

	n, err = c.ReportCount()
	if err != nil {
		t.Fatalf("ReportCount: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}
