// Package pipeline loads ledgers and turns them into filtered tables and
// aggregates.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fundex/despesas/internal/model"

	"github.com/shopspring/decimal"
)

// Dimension is a grouping key.
type Dimension int

const (
	ByCostCenter Dimension = iota
	ByAccount
	ByMonth
)

func (d Dimension) String() string {
	switch d {
	case ByAccount:
		return "account"
	case ByMonth:
		return "month"
	default:
		return "center"
	}
}

// Label is the column heading for the dimension.
func (d Dimension) Label() string {
	switch d {
	case ByAccount:
		return "Account"
	case ByMonth:
		return "Month"
	default:
		return "Cost Center"
	}
}

func (d Dimension) key(r model.LedgerRow) string {
	switch d {
	case ByAccount:
		return r.Account
	case ByMonth:
		return r.Month
	default:
		return r.CostCenter
	}
}

// ParseDimension accepts English and Portuguese names.
func ParseDimension(s string) (Dimension, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "centers", "centro", "centro_custo", "cc":
		return ByCostCenter, nil
	case "account", "accounts", "conta", "descricao_conta":
		return ByAccount, nil
	case "month", "months", "mes", "mes_ano":
		return ByMonth, nil
	}
	return ByCostCenter, fmt.Errorf("unknown dimension %q (use center, account or month)", s)
}

// Metric is the value summed per group.
type Metric int

const (
	Realized Metric = iota // absolute expense
	Forecast
	Variance // forecast minus expense
	Signed   // realized as posted
)

func (m Metric) String() string {
	switch m {
	case Forecast:
		return "forecast"
	case Variance:
		return "variance"
	case Signed:
		return "signed"
	default:
		return "realized"
	}
}

// Label is the column heading for the metric.
func (m Metric) Label() string {
	switch m {
	case Forecast:
		return "Forecast"
	case Variance:
		return "Variance"
	case Signed:
		return "Posted"
	default:
		return "Realized"
	}
}

func (m Metric) value(r model.LedgerRow) decimal.Decimal {
	switch m {
	case Forecast:
		return r.Forecast
	case Variance:
		return r.Variance
	case Signed:
		return r.Realized
	default:
		return r.Expense
	}
}

// ParseMetric accepts English and Portuguese names.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "realized", "expense", "realizado", "despesa":
		return Realized, nil
	case "forecast", "previsto":
		return Forecast, nil
	case "variance", "variacao":
		return Variance, nil
	case "signed", "posted":
		return Signed, nil
	}
	return Realized, fmt.Errorf("unknown metric %q (use realized, forecast, variance or signed)", s)
}

// Total sums metric over every row of t.
func Total(t *model.Table, metric Metric) decimal.Decimal {
	sum := decimal.Zero
	for i := 0; i < t.Len(); i++ {
		sum = sum.Add(metric.value(t.Row(i)))
	}
	return sum
}

// GroupBy sums metric per dimension key. Groups are sorted by key, so
// month buckets come out chronologically.
func GroupBy(t *model.Table, dim Dimension, metric Metric) []model.GroupTotal {
	idx := make(map[string]int)
	var groups []model.GroupTotal

	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		k := dim.key(r)
		j, ok := idx[k]
		if !ok {
			j = len(groups)
			idx[k] = j
			groups = append(groups, model.GroupTotal{Key: k, Value: decimal.Zero, FirstRow: i})
		}
		groups[j].Value = groups[j].Value.Add(metric.value(r))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// TopN ranks groups by value, largest first, and keeps the first n.
// Equal values keep encounter order. n <= 0 keeps all groups.
func TopN(groups []model.GroupTotal, n int) []model.GroupTotal {
	ranked := make([]model.GroupTotal, len(groups))
	copy(ranked, groups)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Value.Cmp(ranked[j].Value); c != 0 {
			return c > 0
		}
		return ranked[i].FirstRow < ranked[j].FirstRow
	})
	if n > 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Shares sets each group's Share to its fraction of the grand total of
// groups. Apply it before TopN so the denominator covers every group.
func Shares(groups []model.GroupTotal) []model.GroupTotal {
	out := make([]model.GroupTotal, len(groups))
	copy(out, groups)

	total := decimal.Zero
	for _, g := range out {
		total = total.Add(g.Value)
	}
	for i := range out {
		if total.IsZero() {
			out[i].Share = 0
			continue
		}
		out[i].Share = out[i].Value.Div(total).InexactFloat64()
	}
	return out
}

// Compare pairs two metrics per key for the n keys ranking highest by
// rankBy, returned in key order.
func Compare(t *model.Table, dim Dimension, primary, secondary, rankBy Metric, n int) []model.Comparison {
	keep := make(map[string]struct{})
	for _, g := range TopN(GroupBy(t, dim, rankBy), n) {
		keep[g.Key] = struct{}{}
	}

	first := GroupBy(t, dim, primary)
	second := GroupBy(t, dim, secondary)

	out := make([]model.Comparison, 0, len(keep))
	for i, g := range first {
		if _, ok := keep[g.Key]; !ok {
			continue
		}
		out = append(out, model.Comparison{
			Key:       g.Key,
			Primary:   g.Value,
			Secondary: second[i].Value,
		})
	}
	return out
}

// Summarize computes the headline figures for t.
func Summarize(t *model.Table) model.Summary {
	s := model.Summary{
		Rows:          t.Len(),
		Centers:       len(t.Centers()),
		Accounts:      len(t.Accounts()),
		Months:        len(t.Months()),
		TotalRealized: Total(t, Realized),
		TotalForecast: Total(t, Forecast),
	}
	s.Variance = s.TotalForecast.Sub(s.TotalRealized)
	s.First, s.Last, _ = t.DateRange()
	return s
}
