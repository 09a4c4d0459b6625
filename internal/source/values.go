package source

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

var errEmptyValue = errors.New("empty value")

// dateLayouts are tried in order. Slashed dates are day-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2/1/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2-1-2006",
}

// ParseDate parses a ledger date. The wall-clock date is kept as written;
// zoned inputs are not shifted to UTC first.
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, errEmptyValue
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958466

// parseSheetDate accepts an Excel serial number as well as the text layouts.
// Numbers outside the serial range, NaN and Inf fall through to ParseDate
// and fail there.
func parseSheetDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 && serial < maxExcelSerial {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	return ParseDate(v)
}

// ParseAmount parses a monetary cell. It accepts an optional "R$" and sign,
// Brazilian (1.234,56) and US (1,234.56) grouping, and plain or exponent
// notation as written by spreadsheets.
func ParseAmount(s string) (decimal.Decimal, error) {
	v := strings.ReplaceAll(s, "R$", "")
	v = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, v)
	if v == "" {
		return decimal.Zero, errEmptyValue
	}

	neg := false
	switch v[0] {
	case '-':
		neg = true
		v = v[1:]
	case '+':
		v = v[1:]
	}
	if v == "" || v[0] == '-' || v[0] == '+' {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}

	d, err := decimal.NewFromString(normalizeSeparators(v))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", strings.TrimSpace(s))
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// normalizeSeparators rewrites grouping and decimal marks to a plain
// dot-decimal number. When both marks appear the last one is the decimal
// separator; a lone comma is decimal; repeated marks are grouping.
func normalizeSeparators(v string) string {
	lastDot := strings.LastIndex(v, ".")
	lastComma := strings.LastIndex(v, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			v = strings.ReplaceAll(v, ".", "")
			return strings.Replace(v, ",", ".", 1)
		}
		return strings.ReplaceAll(v, ",", "")
	case lastComma >= 0:
		if strings.Count(v, ",") > 1 {
			return strings.ReplaceAll(v, ",", "")
		}
		return strings.Replace(v, ",", ".", 1)
	case strings.Count(v, ".") > 1:
		return strings.ReplaceAll(v, ".", "")
	}
	return v
}

// normalizeLabel trims and NFC-normalizes header names and category labels,
// so "Manutenção" typed with combining marks matches its composed form.
func normalizeLabel(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return norm.NFC.String(strings.TrimSpace(s))
}
