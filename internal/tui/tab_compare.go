package tui

import (
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/tui/components"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderCompareTab(cw int) string {
	title := fmt.Sprintf("Forecast vs Realized by %s (top %d, [d] to change)", a.compareDim.Label(), a.opts.TopN)

	if a.isCompactLayout() {
		return components.ContentCard(title, a.compareBars(components.CardInnerWidth(cw)), cw) + "\n" +
			components.ContentCard("Details", a.compareTable(components.CardInnerWidth(cw)), cw)
	}

	halves := components.LayoutRow(cw, 2)
	return components.CardRow([]string{
		components.ContentCard(title, a.compareBars(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Details", a.compareTable(components.CardInnerWidth(halves[1])), halves[1]),
	})
}

// compareBars draws a forecast bar over a realized bar for each group,
// both scaled to the largest amount shown.
func (a App) compareBars(w int) string {
	t := theme.Active
	if len(a.comparison) == 0 {
		return emptyNote("Nothing to compare")
	}

	peak := decimal.Zero
	amountW := 0
	for _, c := range a.comparison {
		peak = decimal.Max(peak, c.Primary, c.Secondary)
		amountW = max(amountW, len(cli.FormatBRL(c.Primary)), len(cli.FormatBRL(c.Secondary)))
	}
	peakF := peak.InexactFloat64()

	keyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	const labelW = 9 // "Forecast "
	barW := max(w-labelW-amountW-2, 4)

	line := func(label string, v decimal.Decimal, color lipgloss.Color) string {
		amount := cli.FormatBRL(v)
		return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
			components.HBar(v.InexactFloat64(), peakF, barW, color) + space +
			amountStyle.Render(fmt.Sprintf("%*s", amountW+1, amount))
	}

	var b strings.Builder
	for i, c := range a.comparison {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(keyStyle.Render(components.Truncate(c.Key, w)))
		b.WriteString("\n")
		b.WriteString(line("Forecast", c.Primary, t.Blue))
		b.WriteString("\n")
		b.WriteString(line("Realized", c.Secondary, t.Red))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// compareTable lists forecast, realized, variance and execution per group.
func (a App) compareTable(w int) string {
	t := theme.Active
	if len(a.comparison) == 0 {
		return emptyNote("Nothing to compare")
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	amountW := len("Realized")
	for _, c := range a.comparison {
		amountW = max(amountW, len(cli.FormatBRL(c.Primary)), len(cli.FormatBRL(c.Secondary)), len(cli.FormatBRL(c.Gap())))
	}
	const execW = 7
	keyW := max(w-3*(amountW+1)-(execW+1), 8)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
		keyW, a.compareDim.Label(), amountW, "Forecast", amountW, "Realized", amountW, "Variance", execW, "Exec")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(w, keyW+3*(amountW+1)+execW+1))))
	b.WriteString("\n")

	for _, c := range a.comparison {
		exec := 0.0
		if !c.Primary.IsZero() {
			exec = c.Secondary.Div(c.Primary).InexactFloat64()
		}
		gapColor := t.Green
		if c.Gap().IsNegative() {
			gapColor = t.Red
		}
		key := components.Truncate(c.Key, keyW)
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s %*s %*s ",
			keyW+len(key)-lipgloss.Width(key), key,
			amountW, cli.FormatBRL(c.Primary),
			amountW, cli.FormatBRL(c.Secondary))))
		b.WriteString(lipgloss.NewStyle().Foreground(gapColor).Background(t.Surface).Render(
			fmt.Sprintf("%*s", amountW, cli.FormatBRL(c.Gap()))))
		b.WriteString(lipgloss.NewStyle().Foreground(components.ColorForExecution(exec)).Background(t.Surface).Render(
			fmt.Sprintf(" %*s", execW, cli.FormatPercent(exec))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
