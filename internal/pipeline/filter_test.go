package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/fundex/despesas/internal/model"
)

func TestFilter_ByCenter(t *testing.T) {
	tbl := scenarioTable()
	c := DefaultCriteria(tbl)
	c.Centers = NewSet("A")

	got := Filter(tbl, c)
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if sum := Total(got, Realized); !sum.Equal(dec("1800")) {
		t.Errorf("total = %s, want 1800", sum)
	}
	for i := 0; i < got.Len(); i++ {
		if got.Row(i).CostCenter != "A" {
			t.Errorf("row %d center = %q", i, got.Row(i).CostCenter)
		}
	}
}

func TestFilter_DefaultCriteriaIsIdentity(t *testing.T) {
	tbl := scenarioTable()
	got := Filter(tbl, DefaultCriteria(tbl))
	if got.Len() != tbl.Len() {
		t.Fatalf("Len = %d, want %d", got.Len(), tbl.Len())
	}
	for i := 0; i < tbl.Len(); i++ {
		if got.Row(i) != tbl.Row(i) {
			t.Errorf("row %d differs: %+v vs %+v", i, got.Row(i), tbl.Row(i))
		}
	}
}

func TestFilter_EmptySetsYieldEmptyTable(t *testing.T) {
	tbl := scenarioTable()

	tests := []struct {
		name string
		mod  func(*Criteria)
	}{
		{"no centers", func(c *Criteria) { c.Centers = NewSet() }},
		{"nil accounts", func(c *Criteria) { c.Accounts = nil }},
		{"unknown center", func(c *Criteria) { c.Centers = NewSet("Z") }},
		{"range before data", func(c *Criteria) { c.Start, c.End = day(2023, 1, 1), day(2023, 12, 31) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria(tbl)
			tt.mod(&c)
			got := Filter(tbl, c)
			if got == nil || !got.Empty() {
				t.Errorf("got %d rows, want empty non-nil table", got.Len())
			}
		})
	}
}

func TestFilter_DateRangeInclusiveByDay(t *testing.T) {
	tbl := model.NewTable([]model.LedgerRow{
		row(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "A", "X", "-1", "1"),
		row(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC), "A", "X", "-2", "1"),
		row(time.Date(2024, 3, 16, 0, 0, 1, 0, time.UTC), "A", "X", "-4", "1"),
	})

	tests := []struct {
		name       string
		start, end time.Time
		want       string
	}{
		{"end keeps late time of day", day(2024, 3, 1), day(2024, 3, 15), "3"},
		{"end with time of day", day(2024, 3, 1), time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC), "3"},
		{"single day", day(2024, 3, 16), day(2024, 3, 16), "4"},
		{"open start", time.Time{}, day(2024, 3, 1), "1"},
		{"open end", day(2024, 3, 15), time.Time{}, "6"},
		{"fully open", time.Time{}, time.Time{}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultCriteria(tbl)
			c.Start, c.End = tt.start, tt.end
			if got := Total(Filter(tbl, c), Realized); !got.Equal(dec(tt.want)) {
				t.Errorf("total = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFilter_PreservesOrderAndIsSubset(t *testing.T) {
	tbl := scenarioTable()
	c := DefaultCriteria(tbl)
	c.Accounts = NewSet("Rent", "Fuel")
	c.Start = day(2024, 1, 15)

	got := Filter(tbl, c)
	if got.Len() != 2 {
		t.Fatalf("Len = %d, want 2", got.Len())
	}
	if got.Row(0).Month != "2024-02" || got.Row(1).CostCenter != "B" {
		t.Errorf("order changed: %+v", got.Rows())
	}
	if tbl.Len() != 3 {
		t.Error("input table was modified")
	}
}

func TestCriteria_Describe(t *testing.T) {
	tbl := model.NewTable([]model.LedgerRow{
		row(day(2024, 1, 1), "A", "a", "-1", "1"),
		row(day(2024, 1, 2), "B", "b", "-1", "1"),
		row(day(2024, 1, 3), "C", "c", "-1", "1"),
		row(day(2024, 1, 4), "D", "d", "-1", "1"),
		row(day(2024, 1, 5), "E", "e", "-1", "1"),
	})

	c := DefaultCriteria(tbl)
	got := strings.Join(c.Describe(tbl), " | ")
	want := "centers: all | accounts: all | period: 01/01/2024 - 05/01/2024"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}

	c.Centers = NewSet("E", "A", "C", "B")
	c.Accounts = NewSet()
	c.Start = time.Time{}
	got = strings.Join(c.Describe(tbl), " | ")
	want = "centers: A, B, C +1 | accounts: none | period: until 05/01/2024"
	if got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
}

func TestUnknownValues(t *testing.T) {
	known := []string{"Manutenção", "Aluguel", "Combustível"}
	got := UnknownValues(NewSet("Aluguel", "Manutencao", "Zzz"), known)

	if len(got) != 2 {
		t.Fatalf("got %+v, want 2 unknown values", got)
	}
	if got[0].Value != "Manutencao" || got[0].Suggestion != "Manutenção" {
		t.Errorf("got[0] = %+v, want Manutencao -> Manutenção", got[0])
	}
	if got[1].Value != "Zzz" {
		t.Errorf("got[1] = %+v, want Zzz", got[1])
	}

	if none := UnknownValues(NewSet("x"), nil); len(none) != 1 || none[0].Suggestion != "" {
		t.Errorf("no known values: %+v", none)
	}
}
