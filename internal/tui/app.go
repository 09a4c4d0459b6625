// Package tui provides the interactive Bubble Tea dashboard for despesas.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/config"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/tui/components"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// DataLoadedMsg is sent when a ledger load finishes. On failure Table is
// empty and Err is set.
type DataLoadedMsg struct {
	Table    *model.Table
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports row or file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// Options configures a dashboard run.
type Options struct {
	Path string
	TopN int

	// Initial filter. Empty sets select every value; zero dates leave the
	// range open.
	Centers  []string
	Accounts []string
	Start    time.Time
	End      time.Time
}

// App is the root Bubble Tea model.
type App struct {
	loader *pipeline.Loader
	opts   Options

	// Data
	table     *model.Table
	loadErr   error
	loaded    bool
	loadTime  time.Duration
	loadedAt  time.Time
	reloading bool

	// Filter state. followDefaults keeps the criteria at "everything"
	// across reloads until the user edits them.
	criteria       pipeline.Criteria
	followDefaults bool

	// Pre-computed for current filter
	filtered   *model.Table
	summary    model.Summary
	months     []model.GroupTotal
	centers    []model.GroupTotal // ranked, with shares
	accounts   []model.GroupTotal // ranked, with shares
	comparison []model.Comparison

	// UI state
	width      int
	height     int
	activeTab  int
	showHelp   bool
	compareDim pipeline.Dimension
	notice     string

	// Per-tab state
	entries entriesState

	filterForm *huh.Form
	filterVals *filterValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues
	needSetup bool

	// Loading: channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine
}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabCompare
	tabShare
	tabEntries
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	maxTopN = 50

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(loader *pipeline.Loader, opts Options) App {
	if opts.TopN <= 0 {
		opts.TopN = config.DefaultTopN
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		loader:         loader,
		opts:           opts,
		table:          model.EmptyTable(),
		filtered:       model.EmptyTable(),
		followDefaults: true,
		needSetup:      !config.Exists(),
		spinner:        sp,
		loadSub:        make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.loader, a.opts.Path, a.loadSub),
		a.spinner.Tick,
	)
}

// initialCriteria selects everything in the table, narrowed by the
// options given on the command line.
func (a App) initialCriteria() pipeline.Criteria {
	c := pipeline.DefaultCriteria(a.table)
	if len(a.opts.Centers) > 0 {
		c.Centers = pipeline.NewSet(a.opts.Centers...)
	}
	if len(a.opts.Accounts) > 0 {
		c.Accounts = pipeline.NewSet(a.opts.Accounts...)
	}
	if !a.opts.Start.IsZero() {
		c.Start = a.opts.Start
	}
	if !a.opts.End.IsZero() {
		c.End = a.opts.End
	}
	return c
}

func (a *App) recompute() {
	n := a.opts.TopN

	a.filtered = pipeline.Filter(a.table, a.criteria)
	a.summary = pipeline.Summarize(a.filtered)
	a.months = pipeline.GroupBy(a.filtered, pipeline.ByMonth, pipeline.Realized)
	a.centers = pipeline.TopN(pipeline.Shares(pipeline.GroupBy(a.filtered, pipeline.ByCostCenter, pipeline.Realized)), 0)
	a.accounts = pipeline.TopN(pipeline.Shares(pipeline.GroupBy(a.filtered, pipeline.ByAccount, pipeline.Realized)), 0)
	a.comparison = pipeline.Compare(a.filtered, a.compareDim, pipeline.Forecast, pipeline.Realized, pipeline.Realized, n)

	rows := a.entryRows()
	if a.entries.cursor >= len(rows) {
		a.entries.cursor = len(rows) - 1
	}
	if a.entries.cursor < 0 {
		a.entries.cursor = 0
	}
}

func (a *App) applyData(msg DataLoadedMsg) {
	a.loaded = true
	a.reloading = false
	a.progress, a.progressMax = 0, 0
	a.loadTime = msg.LoadTime
	a.loadedAt = time.Now()
	a.loadErr = msg.Err

	a.table = msg.Table
	if a.table == nil || msg.Err != nil {
		a.table = model.EmptyTable()
	}
	if a.followDefaults || a.criteria.Centers == nil {
		a.criteria = a.initialCriteria()
	}
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.filterForm != nil {
			a.filterForm = a.filterForm.WithWidth(a.formWidth()).WithHeight(a.formHeight())
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.filterForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.applyData(msg)

		// Activate first-run setup after the first load
		if a.needSetup {
			a.setupVals = SetupDefaults(loadConfigOrDefault())
			a.setupVals.LedgerFile = a.opts.Path
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.filterForm != nil {
		return a.updateFilterForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// Open forms and search mode intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.filterForm != nil {
		return a.updateFilterForm(msg)
	}
	if a.activeTab == tabEntries && a.entries.searching {
		return a.updateEntriesSearch(msg)
	}

	// Help toggle
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}

	// Dismiss help
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a.reload()
	}

	// Nothing to navigate until a ledger loads
	if a.loadErr != nil {
		return a, nil
	}

	if a.activeTab == tabEntries {
		if handled, next := a.updateEntriesKey(key); handled {
			return next, nil
		}
	}

	switch key {
	case "f":
		return a.openFilterForm()
	case "x":
		a.criteria = a.initialCriteria()
		a.followDefaults = true
		a.notice = "filters reset"
		a.recompute()
	case "d":
		if a.activeTab == tabCompare {
			a.compareDim = (a.compareDim + 1) % 3
			a.recompute()
		}
	case "+", "=":
		if a.opts.TopN < maxTopN {
			a.opts.TopN++
			a.recompute()
		}
	case "-":
		if a.opts.TopN > 1 {
			a.opts.TopN--
			a.recompute()
		}
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabEntries && a.entries.cursor > 0 {
			a.entries.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabEntries && a.entries.cursor < len(a.entryRows())-1 {
			a.entries.cursor++
		}
	case tea.MouseButtonLeft:
		// The tab bar is the first line
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) reload() (tea.Model, tea.Cmd) {
	if a.reloading {
		return a, nil
	}
	a.reloading = true
	a.notice = ""
	return a, loadDataCmd(a.loader, a.opts.Path, a.loadSub)
}

func (a App) openFilterForm() (tea.Model, tea.Cmd) {
	a.filterVals = newFilterValues(a.criteria)
	a.filterForm = newFilterForm(a.table, a.filterVals).
		WithWidth(a.formWidth()).
		WithHeight(a.formHeight())
	return a, a.filterForm.Init()
}

func (a App) updateFilterForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.filterForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.filterForm = f
	}

	switch a.filterForm.State {
	case huh.StateCompleted:
		c, err := a.filterVals.criteria()
		a.filterForm = nil
		if err != nil {
			a.notice = err.Error()
			return a, nil
		}
		a.criteria = c
		a.followDefaults = false
		a.notice = ""
		a.recompute()
		return a, nil
	case huh.StateAborted:
		a.filterForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.needSetup = false
		a.setupForm = nil
		return a.saveSetupConfig()
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// saveSetupConfig persists the wizard answers and applies them to the
// running dashboard, reloading when the ledger path changed.
func (a App) saveSetupConfig() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	if err := a.setupVals.Apply(&cfg); err != nil {
		a.notice = err.Error()
		return a, nil
	}
	if err := config.Save(cfg); err != nil {
		a.notice = "could not save config: " + err.Error()
	} else {
		a.notice = "settings saved"
	}

	theme.SetActive(cfg.Appearance.Theme)
	a.opts.TopN = cfg.General.TopN
	a.recompute()

	if cfg.General.LedgerFile != a.opts.Path {
		a.opts.Path = cfg.General.LedgerFile
		a.followDefaults = true
		return a.reload()
	}
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	return min(max(a.width-8, 40), 100)
}

func (a App) formHeight() int {
	return max(a.height-6, 10)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.filterForm != nil {
		return a.viewFilterForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  despesas needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ despesas"))
	b.WriteString(subtitleStyle.Render(" · " + filepath.Base(a.opts.Path)))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Reading ledger\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Opening ledger..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewFilterForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	body := titleStyle.Render("◈ Filters") + "\n\n" + a.filterForm.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Blue).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o c s e", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move through entries"},
			{"g G", "First / last entry"},
			{"^d ^u", "Half-page scroll"},
		}},
		{"Data", []struct{ key, desc string }{
			{"f", "Edit filters"},
			{"x", "Reset filters"},
			{"/", "Search entries"},
			{"d", "Cycle comparison grouping"},
			{"+ -", "Ranking size"},
			{"r", "Reload ledger"},
		}},
		{"General", []struct{ key, desc string }{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + filter pills
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderFilterPills(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusInfo())

	// 3. Content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderLoadError(cw)
	case a.filtered.Empty():
		content = a.renderNoData(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabCompare:
			content = a.renderCompareTab(cw)
		case tabShare:
			content = a.renderShareTab(cw)
		case tabEntries:
			content = a.renderEntriesTab(cw, contentH)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderFilterPills(w int) string {
	t := theme.Active

	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(pillStyle.Render(" "))
	for i, pill := range a.criteria.Describe(a.table) {
		if i > 0 {
			b.WriteString(pillStyle.Render(" │ "))
		}
		label, value, _ := strings.Cut(pill, ": ")
		b.WriteString(pillStyle.Render(label + " "))
		b.WriteString(accentStyle.Render(value))
	}
	b.WriteString(pillStyle.Render(" │ top "))
	b.WriteString(accentStyle.Render(fmt.Sprintf("%d", a.opts.TopN)))

	return lipgloss.NewStyle().Background(t.Surface).Width(w).Render(components.Truncate(b.String(), w))
}

func (a App) statusHints() string {
	if a.loadErr != nil {
		return "[r]etry  [?]help  [q]uit"
	}
	hints := "[f]ilter  [x]reset  [r]eload  [?]help  [q]uit"
	if a.activeTab == tabEntries {
		hints = "[/]search  " + hints
	}
	return hints
}

func (a App) statusInfo() string {
	parts := []string{filepath.Base(a.opts.Path)}
	if a.notice != "" {
		parts = append([]string{a.notice}, parts...)
	}
	if a.loadErr == nil {
		rows := cli.FormatNumber(int64(a.filtered.Len()))
		if a.filtered.Len() != a.table.Len() {
			rows += " of " + cli.FormatNumber(int64(a.table.Len()))
		}
		parts = append(parts, rows+" rows")
	}
	if a.reloading {
		parts = append(parts, "reloading...")
	} else if !a.loadedAt.IsZero() {
		parts = append(parts, fmt.Sprintf("loaded %s (%.1fs)", humanize.Time(a.loadedAt), a.loadTime.Seconds()))
	}
	return strings.Join(parts, " · ")
}

func (a App) renderLoadError(cw int) string {
	t := theme.Active
	w := min(cw, 100)

	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(components.CardInnerWidth(w))
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := msgStyle.Render(pipeline.UserMessage(a.loadErr)) + "\n\n" +
		hintStyle.Render("Fix the file and press r to reload.")
	return components.ErrorCard("Could not load ledger", body, w)
}

func (a App) renderNoData(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	msg := "No entries match the current filters. Press f to change them or x to reset."
	if a.table.Empty() {
		msg = "The ledger has no entries."
	}
	return components.ContentCard("No data", muted.Render(msg), min(cw, 100))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd starts a ledger load in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(loader *pipeline.Loader, path string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Progress callback: non-blocking send so the parser isn't stalled.
			// If the channel is full, we skip this update; the next one catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			t, err := loader.LoadPath(path, progressFn)
			sub <- DataLoadedMsg{Table: t, Err: err, LoadTime: time.Since(start)}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
func (a App) tabAtX(x int) int {
	return components.TabAtX(x, a.activeTab)
}
