package tui

import (
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/tui/components"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderShareTab(cw int) string {
	t := theme.Active
	n := a.opts.TopN

	if a.isCompactLayout() {
		return a.shareCard(pipeline.ByCostCenter, a.centers, n, t.Accent, cw) + "\n" +
			a.shareCard(pipeline.ByAccount, a.accounts, n, t.Blue, cw)
	}

	halves := components.LayoutRow(cw, 2)
	return components.CardRow([]string{
		a.shareCard(pipeline.ByCostCenter, a.centers, n, t.Accent, halves[0]),
		a.shareCard(pipeline.ByAccount, a.accounts, n, t.Blue, halves[1]),
	})
}

// shareCard shows each of the top n groups as a fraction of all realized
// expense, folding the rest into one "Others" line.
func (a App) shareCard(dim pipeline.Dimension, groups []model.GroupTotal, n int, color lipgloss.Color, w int) string {
	t := theme.Active
	title := fmt.Sprintf("Share of Expense by %s", dim.Label())
	if len(groups) == 0 {
		return components.ContentCard(title, emptyNote("No expense recorded"), w)
	}

	inner := components.CardInnerWidth(w)
	labelW := min(max(inner/3, 10), 30)
	barW := max(inner-labelW-8, 4)

	top := pipeline.TopN(groups, n)
	var b strings.Builder
	covered := 0.0
	for _, g := range top {
		b.WriteString(components.ShareBar(g.Key, g.Share, color, labelW, barW))
		b.WriteString("\n")
		covered += g.Share
	}
	if rest := len(groups) - len(top); rest > 0 {
		b.WriteString(components.ShareBar(fmt.Sprintf("Others (%d)", rest), 1-covered, t.TextMuted, labelW, barW))
		b.WriteString("\n")
	}
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), w)
}
