package tui

import (
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/tui/components"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// compactNoteWidth is the card inner width below which ranking amounts
// switch to the abbreviated form.
const compactNoteWidth = 56

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.summary
	var b strings.Builder

	// Row 1: headline figures
	outcomeColor := t.Green
	if s.Outcome() == model.Overrun {
		outcomeColor = t.Red
	}
	exec := s.Execution()

	cards := []components.Metric{
		{Label: "Realized", Value: cli.FormatBRL(s.TotalRealized), Delta: cli.FormatNumber(int64(s.Rows)) + " entries"},
		{Label: "Forecast", Value: cli.FormatBRL(s.TotalForecast), Delta: "executed " + cli.FormatPercent(exec), DeltaColor: components.ColorForExecution(exec)},
		{Label: "Variance", Value: cli.FormatBRL(s.Variance), Delta: s.Outcome().String(), DeltaColor: outcomeColor},
		{Label: "Period", Value: cli.FormatPeriod(s.First, s.Last), Delta: fmt.Sprintf("%d centers · %d accounts", s.Centers, s.Accounts)},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: monthly realized expense
	if len(a.months) > 0 {
		vals := make([]float64, len(a.months))
		labels := make([]string, len(a.months))
		for i, m := range a.months {
			vals[i] = m.Value.InexactFloat64()
			labels[i] = cli.FormatMonth(m.Key)
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Expense (%d months)", len(a.months)),
			components.BarChart(vals, labels, t.Accent, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: rankings
	n := a.opts.TopN
	if a.isCompactLayout() {
		b.WriteString(a.rankingCard(pipeline.ByCostCenter, a.centers, n, cw))
		b.WriteString("\n")
		b.WriteString(a.rankingCard(pipeline.ByAccount, a.accounts, n, cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.rankingCard(pipeline.ByCostCenter, a.centers, n, halves[0]),
			a.rankingCard(pipeline.ByAccount, a.accounts, n, halves[1]),
		}))
	}

	return b.String()
}

// rankingCard lists the n largest groups as horizontal bars.
func (a App) rankingCard(dim pipeline.Dimension, groups []model.GroupTotal, n, w int) string {
	t := theme.Active
	top := pipeline.TopN(groups, n)

	inner := components.CardInnerWidth(w)
	items := make([]components.RankItem, len(top))
	for i, g := range top {
		items[i] = components.RankItem{
			Label: g.Key,
			Value: g.Value.InexactFloat64(),
			Note:  rankNote(g.Value, inner),
		}
	}

	color := t.Accent
	if dim == pipeline.ByAccount {
		color = t.Blue
	}
	title := fmt.Sprintf("Top %d by %s", len(top), dim.Label())
	return components.ContentCard(title, components.RankList(items, color, inner), w)
}

// rankNote labels a ranking bar, abbreviating on narrow cards.
func rankNote(v decimal.Decimal, innerW int) string {
	if innerW < compactNoteWidth {
		return cli.FormatBRLCompact(v)
	}
	return cli.FormatBRL(v)
}

// emptyNote renders a muted one-liner for a card with nothing to show.
func emptyNote(msg string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(msg)
}
