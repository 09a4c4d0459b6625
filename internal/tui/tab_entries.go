package tui

import (
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/tui/components"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entriesState holds the entries tab state.
type entriesState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	searchQuery string
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "cost center or account"
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 40
	return ti
}

// entryRows returns the filtered rows matching the search query.
func (a App) entryRows() []model.LedgerRow {
	if a.entries.searchQuery == "" {
		return a.filtered.Rows()
	}
	return searchRows(a.filtered.Rows(), a.entries.searchQuery)
}

// searchRows keeps rows whose cost center or account contains q,
// ignoring case.
func searchRows(rows []model.LedgerRow, q string) []model.LedgerRow {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	var out []model.LedgerRow
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.CostCenter), q) ||
			strings.Contains(strings.ToLower(r.Account), q) {
			out = append(out, r)
		}
	}
	return out
}

// updateEntriesKey handles list navigation. It reports whether key was used.
func (a App) updateEntriesKey(key string) (bool, App) {
	rows := a.entryRows()
	halfPage := max((a.height-scrollOverhead)/2, minHalfPageScroll)

	switch key {
	case "/":
		a.entries.searching = true
		a.entries.searchInput = newSearchInput()
		a.entries.searchInput.SetValue(a.entries.searchQuery)
		a.entries.searchInput.Focus()
	case "esc":
		a.entries.searchQuery = ""
		a.entries.cursor = 0
		a.entries.offset = 0
	case "j", "down":
		if a.entries.cursor < len(rows)-1 {
			a.entries.cursor++
		}
	case "k", "up":
		if a.entries.cursor > 0 {
			a.entries.cursor--
		}
	case "g", "home":
		a.entries.cursor = 0
		a.entries.offset = 0
	case "G", "end":
		a.entries.cursor = max(len(rows)-1, 0)
	case "ctrl+d", "pgdown":
		a.entries.cursor = min(a.entries.cursor+halfPage, max(len(rows)-1, 0))
	case "ctrl+u", "pgup":
		a.entries.cursor = max(a.entries.cursor-halfPage, 0)
	default:
		return false, a
	}
	return true, a
}

// updateEntriesSearch handles key events while in search mode.
func (a App) updateEntriesSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.entries.searchQuery = strings.TrimSpace(a.entries.searchInput.Value())
		a.entries.searching = false
		a.entries.cursor = 0
		a.entries.offset = 0
		return a, nil
	case "esc":
		a.entries.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.entries.searchInput, cmd = a.entries.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	rows := a.entryRows()

	var header string
	switch {
	case a.entries.searching:
		header = a.entries.searchInput.View()
	case a.entries.searchQuery != "":
		header = lipgloss.NewStyle().Foreground(t.TextMuted).Render(
			fmt.Sprintf(" search %q: %d matches  [esc] clear", a.entries.searchQuery, len(rows)))
	}
	withHeader := func(body string) string {
		if header == "" {
			return body
		}
		return header + "\n" + body
	}
	listH := h
	if header != "" {
		listH -= lipgloss.Height(header)
	}

	if len(rows) == 0 {
		return withHeader(components.ContentCard("Entries", emptyNote("No entries match"), cw))
	}

	if a.isCompactLayout() {
		return withHeader(a.renderEntryList(rows, cw, listH))
	}

	leftW := cw * 3 / 5
	rightW := cw - leftW
	cur := min(a.entries.cursor, len(rows)-1)
	return withHeader(components.CardRow([]string{
		a.renderEntryList(rows, leftW, listH),
		a.renderEntryDetail(rows[cur], rightW),
	}))
}

func (a App) renderEntryList(rows []model.LedgerRow, w, h int) string {
	t := theme.Active
	es := a.entries
	inner := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const dateW = 10
	amountW := len("Realized")
	for _, r := range rows {
		amountW = max(amountW, len(cli.FormatBRL(r.Expense)))
	}
	textW := max((inner-dateW-amountW-3)/2, 6)

	visible := h - 6 // card border (2) + title (1) + header (2) + footer (1)
	if visible < 3 {
		visible = 3
	}
	offset := es.offset
	if es.cursor < offset {
		offset = es.cursor
	}
	if es.cursor >= offset+visible {
		offset = es.cursor - visible + 1
	}
	end := min(offset+visible, len(rows))

	cell := func(s string, w int) string {
		s = components.Truncate(s, w)
		return s + strings.Repeat(" ", max(w-lipgloss.Width(s), 0))
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s %s %s %*s",
		cell("Date", dateW), cell("Cost Center", textW), cell("Account", textW), amountW, "Realized")))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")

	for i := offset; i < end; i++ {
		r := rows[i]
		line := fmt.Sprintf("%s %s %s %*s",
			cell(cli.FormatDate(r.Date), dateW), cell(r.CostCenter, textW), cell(r.Account, textW),
			amountW, cli.FormatBRL(r.Expense))
		if i == es.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s of %s",
		cli.FormatNumber(int64(es.cursor+1)), cli.FormatNumber(int64(len(rows))))))

	return components.ContentCard("Entries", b.String(), w)
}

// renderEntryDetail shows every field of one row and where its cost center
// stands in the filtered data.
func (a App) renderEntryDetail(r model.LedgerRow, w int) string {
	t := theme.Active
	inner := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	outcome := model.OutcomeOf(r.Variance)
	outcomeColor := t.Green
	if outcome == model.Overrun {
		outcomeColor = t.Red
	}

	fields := []struct{ label, value string }{
		{"Date", cli.FormatDate(r.Date)},
		{"Month", cli.FormatMonth(r.Month)},
		{"Cost center", r.CostCenter},
		{"Account", r.Account},
		{"Posted", cli.FormatBRL(r.Realized)},
		{"Expense", cli.FormatBRL(r.Expense)},
		{"Forecast", cli.FormatBRL(r.Forecast)},
	}

	var b strings.Builder
	for _, f := range fields {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", f.label)))
		b.WriteString(valueStyle.Render(components.Truncate(f.value, max(inner-12, 4))))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s", "Variance")))
	b.WriteString(lipgloss.NewStyle().Foreground(outcomeColor).Background(t.Surface).Bold(true).Render(
		cli.FormatBRL(r.Variance) + " " + outcome.String()))
	b.WriteString("\n\n")

	for _, g := range a.centers {
		if g.Key != r.CostCenter {
			continue
		}
		b.WriteString(mutedStyle.Render(strings.Repeat("─", inner)))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s spent %s, %s of the filtered expense",
			components.Truncate(r.CostCenter, 24), cli.FormatBRL(g.Value), cli.FormatPercent(g.Share))))
		break
	}

	center := pipeline.Filter(a.filtered, pipeline.Criteria{
		Centers:  pipeline.NewSet(r.CostCenter),
		Accounts: pipeline.NewSet(r.Account),
	})
	if center.Len() > 1 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d entries for this account here, totalling %s",
			center.Len(), cli.FormatBRL(pipeline.Total(center, pipeline.Realized)))))
	}

	return components.ContentCard("Entry", strings.TrimRight(b.String(), "\n"), w)
}
