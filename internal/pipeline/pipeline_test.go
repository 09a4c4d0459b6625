package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fundex/despesas/internal/model"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func row(date time.Time, center, account, realized, forecast string) model.LedgerRow {
	return model.NewRow(date, center, account, dec(realized), dec(forecast))
}

// scenarioTable is the three-row ledger used across the pipeline tests.
func scenarioTable() *model.Table {
	return model.NewTable([]model.LedgerRow{
		row(day(2024, 1, 10), "A", "Rent", "-1000", "1200"),
		row(day(2024, 2, 10), "A", "Rent", "-800", "800"),
		row(day(2024, 1, 20), "B", "Fuel", "-300", "250"),
	})
}

const scenarioCSV = `Data,Centro_Custo,Descricao_Conta,Valor_Realizado,Valor_Previsto
2024-01-10,A,Rent,-1000,1200
2024-02-10,A,Rent,-800,800
2024-01-20,B,Fuel,-300,250
`

func writeLedger(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
