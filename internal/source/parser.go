// Package source discovers ledger files and parses them into ledger rows.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/model"

	"github.com/schollz/closestmatch"
)

// progressEvery controls how often row progress is reported.
const progressEvery = 256

// ParseFile reads a .xlsx or .csv ledger and returns its rows with derived
// fields computed. The whole file fails on the first bad row; no partial
// result is returned. progressFn may be nil.
func ParseFile(path string, progressFn func(current, total int)) ([]model.LedgerRow, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var records [][]string
	switch format {
	case FormatXLSX:
		records, err = readXLSX(path)
	case FormatCSV:
		records, err = readCSV(path)
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}

	rows, err := buildRows(records, format == FormatXLSX, progressFn)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return rows, nil
}

// columnIndex validates the header row and maps each required column to its
// position. All columns are checked before any row is touched.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	names := make([]string, 0, len(header))
	for i, h := range header {
		name := normalizeLabel(h)
		if name == "" {
			continue
		}
		if _, dup := idx[name]; !dup {
			idx[name] = i
			names = append(names, name)
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return idx, nil
	}

	return nil, &MissingColumnError{
		Column:     missing[0],
		Missing:    missing,
		Suggestion: suggestColumn(names, missing[0]),
	}
}

// suggestColumn finds the header most similar to a missing column name,
// ignoring headers that are themselves required columns.
func suggestColumn(headers []string, want string) string {
	var candidates []string
	for _, h := range headers {
		if !isRequired(h) {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	cm := closestmatch.New(candidates, []int{2, 3})
	return cm.Closest(want)
}

func isRequired(name string) bool {
	for _, col := range RequiredColumns {
		if col == name {
			return true
		}
	}
	return false
}

func buildRows(records [][]string, sheetDates bool, progressFn func(current, total int)) ([]model.LedgerRow, error) {
	if len(records) == 0 {
		return nil, &ParseError{Err: errors.New("no header row")}
	}
	col, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	body := records[1:]
	total := len(body)
	rows := make([]model.LedgerRow, 0, total)

	for i, rec := range body {
		line := i + 2 // 1-based, header is line 1
		if blankRecord(rec) {
			continue
		}
		row, err := parseRecord(rec, col, sheetDates)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Line = line
			}
			return nil, err
		}
		rows = append(rows, row)

		if progressFn != nil && (i+1)%progressEvery == 0 {
			progressFn(i+1, total)
		}
	}
	if progressFn != nil {
		progressFn(total, total)
	}
	return rows, nil
}

func parseRecord(rec []string, col map[string]int, sheetDates bool) (model.LedgerRow, error) {
	cell := func(name string) string {
		i := col[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	rawDate := cell(ColDate)
	parseDate := ParseDate
	if sheetDates {
		parseDate = parseSheetDate
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return model.LedgerRow{}, &ParseError{Column: ColDate, Value: rawDate, Err: err}
	}

	center := normalizeLabel(cell(ColCenter))
	if center == "" {
		return model.LedgerRow{}, &ParseError{Column: ColCenter, Err: errEmptyValue}
	}
	account := normalizeLabel(cell(ColAccount))
	if account == "" {
		return model.LedgerRow{}, &ParseError{Column: ColAccount, Err: errEmptyValue}
	}

	rawRealized := cell(ColRealized)
	realized, err := ParseAmount(rawRealized)
	if err != nil {
		return model.LedgerRow{}, &ParseError{Column: ColRealized, Value: rawRealized, Err: err}
	}
	rawForecast := cell(ColForecast)
	forecast, err := ParseAmount(rawForecast)
	if err != nil {
		return model.LedgerRow{}, &ParseError{Column: ColForecast, Value: rawForecast, Err: err}
	}

	return model.NewRow(date, center, account, realized, forecast), nil
}

func blankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseFailure wraps a reader error as a file-level ParseError.
func parseFailure(format Format, err error) error {
	return &ParseError{Err: fmt.Errorf("reading %s: %w", format, err)}
}
