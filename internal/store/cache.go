// Package store provides a SQLite-backed cache for parsed ledger data and
// report history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed ledger caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM files")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveRecords stores one file's parsed records and its tracking info,
// replacing whatever was cached for that file before.
func (c *Cache) SaveRecords(filePath string, mtimeNs, sizeBytes int64, skipped int, records []model.TransactionRecord) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO files
		(file_path, kind, mtime_ns, size_bytes, skipped, parsed_at)
		VALUES (?, 'transactions', ?, ?, ?, ?)`,
		filePath, mtimeNs, sizeBytes, skipped, now,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM transactions WHERE file_path = ?", filePath); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO transactions
		(file_path, row_idx, tx_date, category, amount, counterparty, tag)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		_, err = stmt.Exec(filePath, i, r.Date.UTC().Format(time.RFC3339),
			r.Category, r.Amount.String(), r.Counterparty, r.Tag)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadRecords reads the cached records for the given files, ordered by
// file and original row position, along with their summed skip count.
func (c *Cache) LoadRecords(filePaths []string) ([]model.TransactionRecord, int, error) {
	if len(filePaths) == 0 {
		return nil, 0, nil
	}

	placeholders := strings.Repeat("?,", len(filePaths)-1) + "?"
	args := make([]any, len(filePaths))
	for i, p := range filePaths {
		args[i] = p
	}

	var skipped int
	err := c.db.QueryRow(
		"SELECT COALESCE(SUM(skipped), 0) FROM files WHERE file_path IN ("+placeholders+")",
		args...,
	).Scan(&skipped)
	if err != nil {
		return nil, 0, err
	}

	rows, err := c.db.Query(`SELECT tx_date, category, amount, counterparty, tag
		FROM transactions WHERE file_path IN (`+placeholders+`)
		ORDER BY file_path, row_idx`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.TransactionRecord
	for rows.Next() {
		var dateStr, amountStr string
		var tag sql.NullString
		var r model.TransactionRecord

		if err := rows.Scan(&dateStr, &r.Category, &amountStr, &r.Counterparty, &tag); err != nil {
			return nil, 0, err
		}
		if r.Date, err = time.Parse(time.RFC3339, dateStr); err != nil {
			return nil, 0, fmt.Errorf("cached date %q: %w", dateStr, err)
		}
		if r.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, 0, fmt.Errorf("cached amount %q: %w", amountStr, err)
		}
		if tag.Valid {
			r.Tag = tag.String
		}
		records = append(records, r)
	}
	return records, skipped, rows.Err()
}

// DeleteFile removes one file's tracking entry and its cached records.
func (c *Cache) DeleteFile(filePath string) error {
	_, err := c.db.Exec("DELETE FROM files WHERE file_path = ?", filePath)
	return err
}

// FileCount returns the number of tracked files.
func (c *Cache) FileCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM files").Scan(&count)
	return count, err
}

// RecordCount returns the number of cached transaction records.
func (c *Cache) RecordCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM transactions").Scan(&count)
	return count, err
}
