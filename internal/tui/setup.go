package tui

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/fundex/despesas/internal/config"
	"github.com/fundex/despesas/internal/source"
	"github.com/fundex/despesas/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues backs the setup form fields.
type SetupValues struct {
	LedgerFile string
	Theme      string
	TopN       string
	DiskCache  bool
}

// SetupDefaults seeds the form from cfg.
func SetupDefaults(cfg config.Config) *SetupValues {
	return &SetupValues{
		LedgerFile: cfg.General.LedgerFile,
		Theme:      cfg.Appearance.Theme,
		TopN:       strconv.Itoa(cfg.General.TopN),
		DiskCache:  cfg.Cache.Persistent,
	}
}

// NewSetupForm builds the settings wizard shared by `despesas setup` and
// the dashboard's first run.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to despesas").
				Description("Expense ledger dashboard.\nThese settings are saved to "+config.Path()+"."),
			huh.NewInput().
				Title("Ledger file").
				Description("An .xlsx or .csv file, or a folder of them.").
				Placeholder("despesas.xlsx").
				Value(&vals.LedgerFile).
				Validate(validateLedgerPath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
			huh.NewInput().
				Title("Ranking size").
				Description("How many cost centers and accounts the rankings show.").
				Value(&vals.TopN).
				Validate(validateTopN),
			huh.NewConfirm().
				Title("Keep a disk cache of parsed ledgers?").
				Description("Large spreadsheets reopen faster across runs.").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.DiskCache),
		),
	).WithShowHelp(true)
}

// Apply copies the form values into cfg.
func (v *SetupValues) Apply(cfg *config.Config) error {
	if err := validateLedgerPath(v.LedgerFile); err != nil {
		return err
	}
	n, err := parseTopN(v.TopN)
	if err != nil {
		return err
	}
	cfg.General.LedgerFile = strings.TrimSpace(v.LedgerFile)
	cfg.General.TopN = n
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	cfg.Cache.Persistent = v.DiskCache
	return nil
}

// validateLedgerPath accepts a directory or a file with a supported
// extension. The file itself may not exist yet.
func validateLedgerPath(s string) error {
	p := strings.TrimSpace(s)
	if p == "" {
		return errors.New("ledger file is required")
	}
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		return nil
	}
	_, err := source.DetectFormat(p)
	return err
}

func validateTopN(s string) error {
	_, err := parseTopN(s)
	return err
}

func parseTopN(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errors.New("enter a whole number of at least 1")
	}
	return n, nil
}
