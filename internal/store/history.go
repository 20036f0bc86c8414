package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReportEntry is one row of board-report history.
type ReportEntry struct {
	ID            string
	Client        string
	CreatedAt     time.Time
	NetCashFlow   decimal.Decimal
	PDFPath       string
	XLSXPath      string
	Delivered     bool
	Recipient     string
	DeliveryError string
}

// SaveReportEntry records a generated report.
func (c *Cache) SaveReportEntry(e ReportEntry) error {
	delivered := 0
	if e.Delivered {
		delivered = 1
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO report_history
		(report_id, client, created_at, net_cash_flow, pdf_path, xlsx_path,
		 delivered, recipient, delivery_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Client, e.CreatedAt.UTC().Format(time.RFC3339), e.NetCashFlow.String(),
		e.PDFPath, e.XLSXPath, delivered, e.Recipient, e.DeliveryError,
	)
	return err
}

// MarkDelivered updates a report's delivery outcome. A nil deliveryErr
// marks success; otherwise the failure is recorded for the history view.
func (c *Cache) MarkDelivered(reportID, recipient string, deliveryErr error) error {
	delivered := 1
	errMsg := ""
	if deliveryErr != nil {
		delivered = 0
		errMsg = deliveryErr.Error()
	}
	_, err := c.db.Exec(`UPDATE report_history
		SET delivered = ?, recipient = ?, delivery_error = ?
		WHERE report_id = ?`,
		delivered, recipient, errMsg, reportID,
	)
	return err
}

// ListReportEntries returns report history, newest first, up to limit
// rows. A limit of 0 or less returns everything.
func (c *Cache) ListReportEntries(limit int) ([]ReportEntry, error) {
	q := `SELECT report_id, client, created_at, net_cash_flow, pdf_path,
		xlsx_path, delivered, recipient, delivery_error
		FROM report_history ORDER BY created_at DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = c.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = c.db.Query(q)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []ReportEntry
	for rows.Next() {
		var e ReportEntry
		var createdStr, netStr string
		var pdfPath, xlsxPath, recipient, deliveryError sql.NullString
		var delivered int

		err := rows.Scan(&e.ID, &e.Client, &createdStr, &netStr,
			&pdfPath, &xlsxPath, &delivered, &recipient, &deliveryError)
		if err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("history created_at %q: %w", createdStr, err)
		}
		if e.NetCashFlow, err = decimal.NewFromString(netStr); err != nil {
			return nil, fmt.Errorf("history net_cash_flow %q: %w", netStr, err)
		}
		e.Delivered = delivered != 0
		e.PDFPath = pdfPath.String
		e.XLSXPath = xlsxPath.String
		e.Recipient = recipient.String
		e.DeliveryError = deliveryError.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReportCount returns the number of recorded reports.
func (c *Cache) ReportCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM report_history").Scan(&count)
	return count, err
}
