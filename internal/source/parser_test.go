package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const scenarioCSV = `Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor_Previsto
2024-01-10,A,Rent,-1000,1200
2024-02-10,A,Rent,-800,800
2024-01-20,B,Fuel,-300,250
`

// writeFile creates a fixture file in a temp dir and returns its path.
func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeXLSX builds a workbook with one sheet holding the given cells.
func writeXLSX(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "despesas.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestParseFile_CSV(t *testing.T) {
	path := writeFile(t, "despesas.csv", []byte(scenarioCSV))

	rows, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Expense)
	}
	if !total.Equal(mustDec(t, "2100")) {
		t.Errorf("total Expense = %s, want 2100", total)
	}

	first := rows[0]
	if first.CostCenter != "A" || first.Account != "Rent" {
		t.Errorf("row 0 = %q/%q, want A/Rent", first.CostCenter, first.Account)
	}
	if first.Month != "2024-01" {
		t.Errorf("row 0 Month = %q, want 2024-01", first.Month)
	}
	if !first.Variance.Equal(mustDec(t, "200")) {
		t.Errorf("row 0 Variance = %s, want 200", first.Variance)
	}
	if rows[2].CostCenter != "B" {
		t.Errorf("row order not preserved: row 2 center = %q", rows[2].CostCenter)
	}
}

func TestParseFile_CSVBrazilianExport(t *testing.T) {
	// Semicolon-delimited, Windows-1252 encoded, day-first dates, BRL amounts.
	content := []byte("Data;Centro_Custo;Descricao_Conta;Valor_Realizado;Valor_Previsto\r\n" +
		"15/03/2024;Obra Centro;Manuten\xe7\xe3o;R$ -1.234,56;1.500,00\r\n")
	path := writeFile(t, "export.csv", content)

	rows, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	r := rows[0]
	if r.Account != "Manutenção" {
		t.Errorf("Account = %q, want Manutenção", r.Account)
	}
	if !r.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v, want 2024-03-15", r.Date)
	}
	if !r.Realized.Equal(mustDec(t, "-1234.56")) {
		t.Errorf("Realized = %s, want -1234.56", r.Realized)
	}
	if !r.Forecast.Equal(mustDec(t, "1500")) {
		t.Errorf("Forecast = %s, want 1500", r.Forecast)
	}
}

func TestParseFile_CSVWithBOMAndBlankLines(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(scenarioCSV+"\n\n")...)
	path := writeFile(t, "bom.csv", content)

	rows, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("len(rows) = %d, want 3", len(rows))
	}
}

func TestParseFile_MissingColumn(t *testing.T) {
	path := writeFile(t, "missing.csv", []byte(
		"Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor Previst\n2024-01-10,A,Rent,-1000,1200\n"))

	rows, err := ParseFile(path, nil)
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}

	var mce *MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("err is %T, want *MissingColumnError", err)
	}
	if mce.Column != ColForecast {
		t.Errorf("Column = %q, want %q", mce.Column, ColForecast)
	}
	if mce.Suggestion != "Valor Previst" {
		t.Errorf("Suggestion = %q, want %q", mce.Suggestion, "Valor Previst")
	}
}

func TestParseFile_MissingColumnCheckedBeforeRows(t *testing.T) {
	// The bad date must not be reported: header validation runs first.
	path := writeFile(t, "both.csv", []byte(
		"Data,Centro_Custo,Descricao_Conta,Valor_Realizado\nnot-a-date,A,Rent,-1000\n"))

	_, err := ParseFile(path, nil)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("err = %v, want ErrMissingColumn", err)
	}
}

func TestParseFile_BadRowFailsWholeFile(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantCol string
	}{
		{"bad date", "31/31/2024,A,Rent,-10,10", ColDate},
		{"bad realized", "2024-01-01,A,Rent,abc,10", ColRealized},
		{"empty forecast", "2024-01-01,A,Rent,-10,", ColForecast},
		{"empty center", "2024-01-01,,Rent,-10,10", ColCenter},
		{"short record", "2024-01-01,A", ColAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor_Previsto\n" +
				"2024-01-01,A,Rent,-10,10\n" + tt.line + "\n"
			path := writeFile(t, "bad.csv", []byte(content))

			rows, err := ParseFile(path, nil)
			if rows != nil {
				t.Errorf("rows = %d, want nil on failure", len(rows))
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err is %T, want *ParseError", err)
			}
			if pe.Line != 3 {
				t.Errorf("Line = %d, want 3", pe.Line)
			}
			if pe.Column != tt.wantCol {
				t.Errorf("Column = %q, want %q", pe.Column, tt.wantCol)
			}
			if pe.Path != path {
				t.Errorf("Path = %q, want %q", pe.Path, path)
			}
		})
	}
}

func TestParseFile_MalformedCSV(t *testing.T) {
	path := writeFile(t, "quote.csv", []byte(
		"Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor_Previsto\n2024-01-01,\"A,Rent,-10,10\n"))

	_, err := ParseFile(path, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	path := writeFile(t, "empty.csv", nil)
	_, err := ParseFile(path, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseFile_HeaderOnly(t *testing.T) {
	path := writeFile(t, "header.csv", []byte("Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor_Previsto\n"))
	rows, err := ParseFile(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("len(rows) = %d, want 0", len(rows))
	}
}

func TestParseFile_UnsupportedAndMissing(t *testing.T) {
	txt := writeFile(t, "despesas.txt", []byte(scenarioCSV))
	if _, err := ParseFile(txt, nil); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt: err = %v, want ErrUnsupportedFormat", err)
	}

	missing := filepath.Join(t.TempDir(), "nope.csv")
	if _, err := ParseFile(missing, nil); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing: err = %v, want ErrFileNotFound", err)
	}
}

func TestParseFile_XLSX(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"Data", "Centro_Custo", "Descricao_Conta", "Valor_Realizado", "Valor_Previsto"},
		{time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "A", "Rent", -1000, 1200},
		{"2024-02-10", "A", "Rent", -800, 800},
		{},
		{time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "B", "Fuel", -300.5, 250},
	})

	var lastCurrent, lastTotal int
	rows, err := ParseFile(path, func(current, total int) {
		lastCurrent, lastTotal = current, total
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3 (blank row skipped)", len(rows))
	}
	if lastCurrent != lastTotal || lastTotal == 0 {
		t.Errorf("final progress = %d/%d, want complete", lastCurrent, lastTotal)
	}

	if !rows[0].Date.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("serial date = %v, want 2024-01-10", rows[0].Date)
	}
	if rows[1].Month != "2024-02" {
		t.Errorf("text date Month = %q, want 2024-02", rows[1].Month)
	}
	if !rows[2].Expense.Equal(mustDec(t, "300.5")) {
		t.Errorf("Expense = %s, want 300.5", rows[2].Expense)
	}
}

func TestParseFile_XLSXNonDateFailsLoad(t *testing.T) {
	for _, bad := range []string{"NaN", "Inf", "1e9"} {
		t.Run(bad, func(t *testing.T) {
			path := writeXLSX(t, [][]any{
				{"Data", "Centro_Custo", "Descricao_Conta", "Valor_Realizado", "Valor_Previsto"},
				{"2024-01-10", "A", "Rent", -1000, 1200},
				{bad, "A", "Rent", -800, 800},
			})

			rows, err := ParseFile(path, nil)
			if rows != nil {
				t.Errorf("rows = %d, want nil on failure", len(rows))
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("err = %v, want ErrParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Column != ColDate || pe.Line != 3 {
				t.Errorf("err = %v, want ParseError on %s line 3", err, ColDate)
			}
		})
	}
}

func TestParseFile_XLSXMissingColumn(t *testing.T) {
	path := writeXLSX(t, [][]any{
		{"Data", "Centro_Custo", "Descricao_Conta", "Valor_Realizado"},
		{"2024-01-10", "A", "Rent", -1000},
	})

	_, err := ParseFile(path, nil)
	var mce *MissingColumnError
	if !errors.As(err, &mce) || mce.Column != ColForecast {
		t.Fatalf("err = %v, want MissingColumnError for %s", err, ColForecast)
	}
}

func TestParseFile_CorruptXLSX(t *testing.T) {
	path := writeFile(t, "corrupt.xlsx", []byte("this is not a zip archive"))
	_, err := ParseFile(path, nil)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}
