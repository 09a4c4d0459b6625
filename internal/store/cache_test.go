package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fundex/despesas/internal/model"

	"github.com/shopspring/decimal"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "sub", "ledger.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleRows() []model.LedgerRow {
	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	return []model.LedgerRow{
		model.NewRow(d(2024, 1, 10), "A", "Rent", decimal.RequireFromString("-1000"), decimal.RequireFromString("1200")),
		model.NewRow(d(2024, 2, 10), "A", "Rent", decimal.RequireFromString("-800.10"), decimal.RequireFromString("800")),
		model.NewRow(time.Date(2024, 1, 20, 13, 45, 0, 0, time.UTC), "B", "Manutenção", decimal.RequireFromString("-300.005"), decimal.RequireFromString("250")),
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := openTestCache(t)
	want := sampleRows()

	if err := c.SaveLedger("/data/a.xlsx", 100, 2048, want); err != nil {
		t.Fatalf("SaveLedger: %v", err)
	}

	got, err := c.LoadLedger("/data/a.xlsx")
	if err != nil {
		t.Fatalf("LoadLedger: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if !g.Date.Equal(w.Date) || g.CostCenter != w.CostCenter || g.Account != w.Account {
			t.Errorf("row %d = %+v, want %+v", i, g, w)
		}
		if !g.Realized.Equal(w.Realized) || !g.Forecast.Equal(w.Forecast) {
			t.Errorf("row %d amounts = %s/%s, want %s/%s", i, g.Realized, g.Forecast, w.Realized, w.Forecast)
		}
		if !g.Expense.Equal(w.Expense) || !g.Variance.Equal(w.Variance) || g.Month != w.Month {
			t.Errorf("row %d derived fields differ", i)
		}
	}
}

func TestLookup(t *testing.T) {
	c := openTestCache(t)
	if err := c.SaveLedger("/data/a.csv", 100, 10, sampleRows()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		path  string
		mtime int64
		size  int64
		want  bool
	}{
		{"exact", "/data/a.csv", 100, 10, true},
		{"mtime changed", "/data/a.csv", 101, 10, false},
		{"size changed", "/data/a.csv", 100, 11, false},
		{"unknown file", "/data/b.csv", 100, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.path, tt.mtime, tt.size)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Lookup = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSaveLedgerReplaces(t *testing.T) {
	c := openTestCache(t)
	rows := sampleRows()
	if err := c.SaveLedger("/data/a.csv", 100, 10, rows); err != nil {
		t.Fatal(err)
	}
	if err := c.SaveLedger("/data/a.csv", 200, 20, rows[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadLedger("/data/a.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1 after replace", len(got))
	}

	tracked, err := c.GetTrackedFiles()
	if err != nil {
		t.Fatal(err)
	}
	fi := tracked["/data/a.csv"]
	if fi.MtimeNs != 200 || fi.SizeBytes != 20 || fi.RowCount != 1 {
		t.Errorf("tracked = %+v, want mtime 200 size 20 rows 1", fi)
	}
	if fi.ParsedAt.IsZero() {
		t.Error("ParsedAt not recorded")
	}
}

func TestDeleteFileAndClear(t *testing.T) {
	c := openTestCache(t)
	rows := sampleRows()
	for _, p := range []string{"/a.csv", "/b.csv"} {
		if err := c.SaveLedger(p, 1, 1, rows); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.DeleteFile("/a.csv"); err != nil {
		t.Fatal(err)
	}
	st, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Files != 1 || st.Rows != len(rows) {
		t.Errorf("after delete: files=%d rows=%d, want 1/%d", st.Files, st.Rows, len(rows))
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	st, err = c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Files != 0 || st.Rows != 0 || !st.Newest.IsZero() {
		t.Errorf("after clear: %+v, want empty", st)
	}
}

func TestLoadLedgerUnknownFile(t *testing.T) {
	c := openTestCache(t)
	got, err := c.LoadLedger("/nope.csv")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}
