package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/logging"
	"github.com/fundex/despesas/internal/source"
	"github.com/fundex/despesas/internal/tui"
	"github.com/fundex/despesas/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	opts := tui.Options{
		Path:     ledgerPath(cfg),
		TopN:     topN(cfg),
		Centers:  flagCenters,
		Accounts: flagAccounts,
	}
	var err error
	if flagFrom != "" {
		if opts.Start, err = source.ParseDate(flagFrom); err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if flagTo != "" {
		if opts.End, err = source.ParseDate(flagTo); err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
	}

	// Log lines would corrupt the alternate screen.
	loader, closeFn := newLoader(cfg, logging.Discard())
	defer closeFn()

	app := tui.NewApp(loader, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
