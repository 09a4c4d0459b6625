// Package store provides a SQLite-backed mirror of parsed ledger files.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fundex/despesas/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// dateLayout stores the wall-clock date; rows are always UTC.
const dateLayout = "2006-01-02T15:04:05"

// Cache provides SQLite-backed ledger caching.
type Cache struct {
	db   *sql.DB
	path string
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

	return &Cache{db: db, path: dbPath}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file location.
func (c *Cache) Path() string {
	return c.path
}

// FileInfo holds the tracked state of a ledger file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
	RowCount  int
	ParsedAt  time.Time
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes, row_count, parsed_at FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path, parsedAt string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes, &fi.RowCount, &parsedAt); err != nil {
			return nil, err
		}
		fi.ParsedAt, _ = time.Parse(time.RFC3339, parsedAt)
		result[path] = fi
	}
	return result, rows.Err()
}

// Lookup reports whether path is tracked with exactly this mtime and size.
func (c *Cache) Lookup(path string, mtimeNs, sizeBytes int64) (bool, error) {
	var n int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM file_tracker
		WHERE file_path = ? AND mtime_ns = ? AND size_bytes = ?`,
		path, mtimeNs, sizeBytes).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SaveLedger replaces everything stored for path with rows.
func (c *Cache) SaveLedger(path string, mtimeNs, sizeBytes int64, rows []model.LedgerRow) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM ledger_rows WHERE file_path = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO file_tracker (file_path, mtime_ns, size_bytes, row_count, parsed_at)
		VALUES (?, ?, ?, ?, ?)`, path, mtimeNs, sizeBytes, len(rows), now)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO ledger_rows
		(file_path, seq, entry_date, cost_center, account, realized, forecast)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		_, err = stmt.Exec(path, i, r.Date.UTC().Format(dateLayout), r.CostCenter, r.Account,
			r.Realized.String(), r.Forecast.String())
		if err != nil {
			return fmt.Errorf("saving row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// LoadLedger reads the rows stored for path in their original order.
func (c *Cache) LoadLedger(path string) ([]model.LedgerRow, error) {
	rows, err := c.db.Query(`SELECT entry_date, cost_center, account, realized, forecast
		FROM ledger_rows WHERE file_path = ? ORDER BY seq`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.LedgerRow
	for rows.Next() {
		var dateStr, center, account, realizedStr, forecastStr string
		if err := rows.Scan(&dateStr, &center, &account, &realizedStr, &forecastStr); err != nil {
			return nil, err
		}
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q: %w", dateStr, err)
		}
		realized, err := decimal.NewFromString(realizedStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", realizedStr, err)
		}
		forecast, err := decimal.NewFromString(forecastStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", forecastStr, err)
		}
		out = append(out, model.NewRow(date, center, account, realized, forecast))
	}
	return out, rows.Err()
}

// DeleteFile removes a tracked file and its rows.
func (c *Cache) DeleteFile(path string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", path)
	return err
}

// Stats summarizes the cache contents.
type Stats struct {
	Files     int
	Rows      int
	SizeBytes int64 // main database file, excluding WAL
	Newest    time.Time
}

// Stats returns file and row counts plus the database size on disk.
func (c *Cache) Stats() (Stats, error) {
	var s Stats
	var newest sql.NullString
	err := c.db.QueryRow("SELECT COUNT(*), MAX(parsed_at) FROM file_tracker").Scan(&s.Files, &newest)
	if err != nil {
		return s, err
	}
	if newest.Valid {
		s.Newest, _ = time.Parse(time.RFC3339, newest.String)
	}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM ledger_rows").Scan(&s.Rows); err != nil {
		return s, err
	}
	if info, err := os.Stat(c.path); err == nil {
		s.SizeBytes = info.Size()
	} else if !errors.Is(err, os.ErrNotExist) {
		return s, err
	}
	return s, nil
}

// Clear removes every tracked file and row.
func (c *Cache) Clear() error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM ledger_rows"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker"); err != nil {
		return err
	}
	return tx.Commit()
}
