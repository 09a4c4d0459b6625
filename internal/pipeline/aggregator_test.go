package pipeline

import (
	"math"
	"testing"

	"github.com/fundex/despesas/internal/model"
)

func TestGroupBy_Month(t *testing.T) {
	got := GroupBy(scenarioTable(), ByMonth, Realized)

	want := []struct {
		key string
		val string
	}{
		{"2024-01", "1300"},
		{"2024-02", "800"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Key != w.key || !got[i].Value.Equal(dec(w.val)) {
			t.Errorf("group %d = %s:%s, want %s:%s", i, got[i].Key, got[i].Value, w.key, w.val)
		}
	}
}

func TestGroupBy_MetricsAndTotals(t *testing.T) {
	tbl := scenarioTable()

	tests := []struct {
		metric Metric
		want   map[string]string
	}{
		{Realized, map[string]string{"A": "1800", "B": "300"}},
		{Forecast, map[string]string{"A": "2000", "B": "250"}},
		{Variance, map[string]string{"A": "200", "B": "-50"}},
		{Signed, map[string]string{"A": "-1800", "B": "-300"}},
	}
	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			groups := GroupBy(tbl, ByCostCenter, tt.metric)
			sum := dec("0")
			for _, g := range groups {
				if !g.Value.Equal(dec(tt.want[g.Key])) {
					t.Errorf("%s = %s, want %s", g.Key, g.Value, tt.want[g.Key])
				}
				sum = sum.Add(g.Value)
			}
			if !sum.Equal(Total(tbl, tt.metric)) {
				t.Errorf("groups sum to %s, table total %s", sum, Total(tbl, tt.metric))
			}
		})
	}
}

func TestGroupBy_Empty(t *testing.T) {
	if got := GroupBy(model.EmptyTable(), ByAccount, Realized); len(got) != 0 {
		t.Errorf("got %d groups from empty table", len(got))
	}
}

func TestTopN(t *testing.T) {
	groups := []model.GroupTotal{
		{Key: "a", Value: dec("10"), FirstRow: 3},
		{Key: "b", Value: dec("30"), FirstRow: 0},
		{Key: "c", Value: dec("10"), FirstRow: 1},
		{Key: "d", Value: dec("20"), FirstRow: 2},
		{Key: "e", Value: dec("5"), FirstRow: 4},
	}

	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"b", "d"}},
		{3, []string{"b", "d", "c"}},
		{4, []string{"b", "d", "c", "a"}},
		{10, []string{"b", "d", "c", "a", "e"}},
		{0, []string{"b", "d", "c", "a", "e"}},
		{-1, []string{"b", "d", "c", "a", "e"}},
	}
	for _, tt := range tests {
		got := TopN(groups, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("TopN(%d) len = %d, want %d", tt.n, len(got), len(tt.want))
			continue
		}
		for i, k := range tt.want {
			if got[i].Key != k {
				t.Errorf("TopN(%d)[%d] = %s, want %s", tt.n, i, got[i].Key, k)
			}
		}
	}

	if groups[0].Key != "a" {
		t.Error("TopN reordered its input")
	}
}

func TestTopN_KeptDominatesDiscarded(t *testing.T) {
	groups := GroupBy(scenarioTable(), ByAccount, Realized)
	top := TopN(groups, 1)
	if len(top) != 1 || top[0].Key != "Rent" {
		t.Fatalf("TopN(1) = %+v, want Rent", top)
	}
	for _, g := range groups {
		if g.Key != "Rent" && g.Value.GreaterThan(top[0].Value) {
			t.Errorf("discarded %s (%s) exceeds kept %s", g.Key, g.Value, top[0].Value)
		}
	}
}

func TestShares(t *testing.T) {
	groups := Shares(GroupBy(scenarioTable(), ByCostCenter, Realized))

	sum := 0.0
	for _, g := range groups {
		sum += g.Share
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("shares sum to %v, want 1", sum)
	}
	if math.Abs(groups[0].Share-1800.0/2100.0) > 1e-9 {
		t.Errorf("A share = %v, want %v", groups[0].Share, 1800.0/2100.0)
	}

	// Shares survive TopN and keep the full-table denominator.
	top := TopN(groups, 1)
	if math.Abs(top[0].Share-1800.0/2100.0) > 1e-9 {
		t.Errorf("top share = %v, want unchanged after TopN", top[0].Share)
	}
}

func TestShares_ZeroTotal(t *testing.T) {
	groups := Shares([]model.GroupTotal{
		{Key: "a", Value: dec("5")},
		{Key: "b", Value: dec("-5")},
	})
	for _, g := range groups {
		if g.Share != 0 {
			t.Errorf("%s share = %v, want 0", g.Key, g.Share)
		}
	}
}

func TestCompare(t *testing.T) {
	tbl := model.NewTable([]model.LedgerRow{
		row(day(2024, 1, 1), "C", "x", "-500", "400"),
		row(day(2024, 1, 2), "A", "x", "-100", "150"),
		row(day(2024, 1, 3), "B", "x", "-300", "350"),
		row(day(2024, 1, 4), "A", "y", "-50", "0"),
	})

	got := Compare(tbl, ByCostCenter, Forecast, Realized, Realized, 2)
	if len(got) != 2 {
		t.Fatalf("got %d comparisons, want 2", len(got))
	}
	// top-2 by realized is C and B; output in key order
	if got[0].Key != "B" || got[1].Key != "C" {
		t.Errorf("keys = %s, %s; want B, C", got[0].Key, got[1].Key)
	}
	if !got[1].Primary.Equal(dec("400")) || !got[1].Secondary.Equal(dec("500")) {
		t.Errorf("C = %s/%s, want 400/500", got[1].Primary, got[1].Secondary)
	}
	if !got[1].Gap().Equal(dec("-100")) {
		t.Errorf("C gap = %s, want -100", got[1].Gap())
	}

	all := Compare(tbl, ByCostCenter, Forecast, Realized, Realized, 0)
	if len(all) != 3 || all[0].Key != "A" || !all[0].Secondary.Equal(dec("150")) {
		t.Errorf("Compare(n=0) = %+v", all)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(scenarioTable())

	if s.Rows != 3 || s.Centers != 2 || s.Accounts != 2 || s.Months != 2 {
		t.Errorf("counts = %d/%d/%d/%d", s.Rows, s.Centers, s.Accounts, s.Months)
	}
	if !s.TotalRealized.Equal(dec("2100")) {
		t.Errorf("TotalRealized = %s, want 2100", s.TotalRealized)
	}
	if !s.TotalForecast.Equal(dec("2250")) {
		t.Errorf("TotalForecast = %s, want 2250", s.TotalForecast)
	}
	if !s.Variance.Equal(dec("150")) || s.Outcome() != model.Savings {
		t.Errorf("Variance = %s (%s), want 150 Economia", s.Variance, s.Outcome())
	}
	if !s.First.Equal(day(2024, 1, 10)) || !s.Last.Equal(day(2024, 2, 10)) {
		t.Errorf("range = %v - %v", s.First, s.Last)
	}

	empty := Summarize(model.EmptyTable())
	if empty.Rows != 0 || !empty.TotalRealized.IsZero() || !empty.First.IsZero() {
		t.Errorf("empty summary = %+v", empty)
	}
}

func TestParseDimensionAndMetric(t *testing.T) {
	dims := map[string]Dimension{"center": ByCostCenter, "Conta": ByAccount, " month ": ByMonth, "mes_ano": ByMonth}
	for in, want := range dims {
		got, err := ParseDimension(in)
		if err != nil || got != want {
			t.Errorf("ParseDimension(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDimension("week"); err == nil {
		t.Error("ParseDimension(week) should fail")
	}

	metrics := map[string]Metric{"realized": Realized, "previsto": Forecast, "VARIANCE": Variance, "signed": Signed}
	for in, want := range metrics {
		got, err := ParseMetric(in)
		if err != nil || got != want {
			t.Errorf("ParseMetric(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMetric("profit"); err == nil {
		t.Error("ParseMetric(profit) should fail")
	}
}
