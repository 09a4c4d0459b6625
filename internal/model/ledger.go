// Package model defines domain types for expense ledgers and their aggregates.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout formats the year-month bucket key. It sorts lexically.
const MonthLayout = "2006-01"

// LedgerRow is one expense record plus its derived fields.
type LedgerRow struct {
	Date       time.Time
	CostCenter string
	Account    string
	Realized   decimal.Decimal // signed, as posted
	Forecast   decimal.Decimal

	// Derived at construction, never recomputed.
	Expense  decimal.Decimal // |Realized|
	Variance decimal.Decimal // Forecast - Expense
	Month    string
}

// NewRow builds a row and computes Expense, Variance and Month.
func NewRow(date time.Time, center, account string, realized, forecast decimal.Decimal) LedgerRow {
	expense := realized.Abs()
	return LedgerRow{
		Date:       date,
		CostCenter: center,
		Account:    account,
		Realized:   realized,
		Forecast:   forecast,
		Expense:    expense,
		Variance:   forecast.Sub(expense),
		Month:      date.Format(MonthLayout),
	}
}

// Table is an immutable, ordered collection of ledger rows.
// The zero value and a nil *Table are both valid empty tables.
type Table struct {
	rows []LedgerRow
}

// NewTable copies rows into a new table.
func NewTable(rows []LedgerRow) *Table {
	cp := make([]LedgerRow, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// EmptyTable returns a table with no rows.
func EmptyTable() *Table {
	return &Table{}
}

// Concat joins tables in argument order.
func Concat(tables ...*Table) *Table {
	n := 0
	for _, t := range tables {
		n += t.Len()
	}
	rows := make([]LedgerRow, 0, n)
	for _, t := range tables {
		if t != nil {
			rows = append(rows, t.rows...)
		}
	}
	return &Table{rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Row returns the i-th row. Like slice indexing it panics when i is out of
// range, which is every i on a nil or empty table; bound loops with Len.
func (t *Table) Row(i int) LedgerRow {
	return t.rows[i]
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []LedgerRow {
	if t == nil {
		return nil
	}
	cp := make([]LedgerRow, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// Centers returns distinct cost centers in encounter order.
func (t *Table) Centers() []string {
	return t.distinct(func(r LedgerRow) string { return r.CostCenter })
}

// Accounts returns distinct accounts in encounter order.
func (t *Table) Accounts() []string {
	return t.distinct(func(r LedgerRow) string { return r.Account })
}

// Months returns distinct month buckets in encounter order.
func (t *Table) Months() []string {
	return t.distinct(func(r LedgerRow) string { return r.Month })
}

func (t *Table) distinct(key func(LedgerRow) string) []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.rows {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// DateRange returns the earliest and latest row dates.
// ok is false for an empty table.
func (t *Table) DateRange() (first, last time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = t.rows[0].Date, t.rows[0].Date
	for _, r := range t.rows[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last, true
}
