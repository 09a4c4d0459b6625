package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/config"
	"github.com/fundex/despesas/internal/logging"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"
	"github.com/fundex/despesas/internal/source"
	"github.com/fundex/despesas/internal/store"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

var (
	flagFile      string
	flagCenters   []string
	flagAccounts  []string
	flagFrom      string
	flagTo        string
	flagTop       int
	flagDiskCache bool
	flagNoCache   bool
	flagQuiet     bool
	flagLogLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "despesas",
	Short: "Expense ledger reports",
	Long: "Summarize an expense ledger (.xlsx or .csv): realized against forecast\n" +
		"by cost center, account and month.",
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\n  %s\n\n", cli.RenderWarning(pipeline.UserMessage(err)))
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagFile, "file", "f", "", "Ledger file or directory (default from config or $DESPESAS_FILE)")
	pf.StringArrayVarP(&flagCenters, "center", "c", nil, "Cost center to keep (repeatable)")
	pf.StringArrayVarP(&flagAccounts, "account", "a", nil, "Account to keep (repeatable)")
	pf.StringVar(&flagFrom, "from", "", "First date to include (dd/mm/yyyy or yyyy-mm-dd)")
	pf.StringVar(&flagTo, "to", "", "Last date to include (dd/mm/yyyy or yyyy-mm-dd)")
	pf.IntVarP(&flagTop, "top", "n", 0, "Ranking size (default from config)")
	pf.BoolVar(&flagDiskCache, "disk-cache", false, "Mirror parsed ledgers in the SQLite cache")
	pf.BoolVar(&flagNoCache, "no-cache", false, "Bypass every cache and reparse the ledger")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config file, warning and using defaults when it is broken.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(err.Error()))
	}
	return cfg
}

func newLogger(cfg config.Config) *log.Logger {
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	return logging.New(os.Stderr, level)
}

// ledgerPath resolves the input: --file, then $DESPESAS_FILE, then config.
func ledgerPath(cfg config.Config) string {
	if flagFile != "" {
		return flagFile
	}
	return config.GetLedgerFile(cfg)
}

func topN(cfg config.Config) int {
	if flagTop > 0 {
		return flagTop
	}
	return cfg.General.TopN
}

// openStore opens the disk mirror when it is enabled. A store that can't be
// opened is reported and skipped; loading still works without it.
func openStore(cfg config.Config, logger *log.Logger) *store.Cache {
	if flagNoCache || !(flagDiskCache || cfg.Cache.Persistent) {
		return nil
	}
	path := config.CachePath(cfg)
	st, err := store.Open(path)
	if err != nil {
		logger.Warn("disk cache unavailable", "path", path, "err", err)
		return nil
	}
	return st
}

// newLoader wires the in-memory cache and optional disk mirror. The
// returned func releases the mirror.
func newLoader(cfg config.Config, logger *log.Logger) (*pipeline.Loader, func()) {
	if flagNoCache {
		return pipeline.NewLoader(nil, nil, logger), func() {}
	}
	st := openStore(cfg, logger)
	closeFn := func() {
		if st != nil {
			_ = st.Close()
		}
	}
	return pipeline.NewLoader(pipeline.NewCache(), st, logger), closeFn
}

// loadData is the shared data loading path used by the report commands.
func loadData() (*model.Table, config.Config, error) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	loader, closeFn := newLoader(cfg, logger)
	defer closeFn()

	path := ledgerPath(cfg)
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Reading %s...\n", path)
	}

	// The parser reports every few hundred rows; each report redraws the bar.
	progressFn := func(current, total int) {
		if !flagQuiet {
			fmt.Fprint(os.Stderr, progressLine(current, total))
		}
	}

	t, err := loader.LoadPath(path, progressFn)
	if err != nil {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr)
		}
		return t, cfg, err
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "\r%s  Loaded %s rows from %s\n", ansi.EraseLineRight,
			cli.FormatNumber(int64(t.Len())), filepath.Base(path))
	}
	return t, cfg, nil
}

// progressLine is the carriage-return line redrawn while a ledger parses.
func progressLine(current, total int) string {
	return "\r  Parsing " + cli.RenderProgressBar(current, total, 24)
}

// applyFilters narrows t by the filter flags. Values that match nothing are
// reported with the closest known value.
func applyFilters(t *model.Table) (*model.Table, pipeline.Criteria, error) {
	c := pipeline.DefaultCriteria(t)

	if len(flagCenters) > 0 {
		c.Centers = pipeline.NewSet(flagCenters...)
		warnUnknown("cost center", c.Centers, t.Centers())
	}
	if len(flagAccounts) > 0 {
		c.Accounts = pipeline.NewSet(flagAccounts...)
		warnUnknown("account", c.Accounts, t.Accounts())
	}

	var err error
	if flagFrom != "" {
		if c.Start, err = source.ParseDate(flagFrom); err != nil {
			return nil, c, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if flagTo != "" {
		if c.End, err = source.ParseDate(flagTo); err != nil {
			return nil, c, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.Start.After(c.End) {
		return nil, c, fmt.Errorf("--from %s is after --to %s", cli.FormatDate(c.Start), cli.FormatDate(c.End))
	}

	return pipeline.Filter(t, c), c, nil
}

func warnUnknown(kind string, s pipeline.Set, known []string) {
	for _, u := range pipeline.UnknownValues(s, known) {
		msg := fmt.Sprintf("no %s named %q", kind, u.Value)
		if u.Suggestion != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", u.Suggestion)
		}
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning(msg))
	}
}

// loadFiltered runs loadData then applyFilters, printing the filter pills.
func loadFiltered() (*model.Table, config.Config, error) {
	t, cfg, err := loadData()
	if err != nil {
		return nil, cfg, err
	}
	filtered, c, err := applyFilters(t)
	if err != nil {
		return nil, cfg, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderMuted(strings.Join(c.Describe(t), " │ ")))
	}
	return filtered, cfg, nil
}
