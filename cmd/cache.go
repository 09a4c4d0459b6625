package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/config"
	"github.com/fundex/despesas/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or reset the SQLite ledger cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cache size and tracked files",
	RunE:  runCacheStatus,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [file...]",
	Short: "Remove cached ledgers, all of them when no file is named",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openCache() (*store.Cache, error) {
	cfg := loadConfig()
	st, err := store.Open(config.CachePath(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return st, nil
}

func runCacheStatus(_ *cobra.Command, _ []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("reading cache stats: %w", err)
	}
	tracked, err := st.GetTrackedFiles()
	if err != nil {
		return fmt.Errorf("reading tracked files: %w", err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CACHE  " + st.Path()))
	fmt.Println()

	updated := "never"
	if !stats.Newest.IsZero() {
		updated = humanize.Time(stats.Newest)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Files", cli.FormatNumber(int64(stats.Files))},
			{"Rows", cli.FormatNumber(int64(stats.Rows))},
			{"Size", humanize.Bytes(uint64(stats.SizeBytes))},
			{"Updated", updated},
		},
	}))

	if len(tracked) == 0 {
		return nil
	}

	paths := make([]string, 0, len(tracked))
	for p := range tracked {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	rows := make([][]string, 0, len(paths))
	for _, p := range paths {
		info := tracked[p]
		rows = append(rows, []string{
			filepath.Base(p),
			cli.FormatNumber(int64(info.RowCount)),
			humanize.Bytes(uint64(info.SizeBytes)),
			humanize.Time(info.ParsedAt),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Tracked Files",
		Headers: []string{"File", "Rows", "Size", "Parsed"},
		Rows:    rows,
	}))
	return nil
}

func runCacheClear(_ *cobra.Command, args []string) error {
	st, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if len(args) == 0 {
		if err := st.Clear(); err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		fmt.Printf("  Cache cleared: %s\n", st.Path())
		return nil
	}

	removed, err := forgetFiles(st, args)
	if err != nil {
		return err
	}
	fmt.Printf("  Removed %d of %d files from %s\n", removed, len(args), st.Path())
	return nil
}

// forgetFiles drops the named ledgers from the cache and reports how many
// were tracked.
func forgetFiles(st *store.Cache, paths []string) (int, error) {
	tracked, err := st.GetTrackedFiles()
	if err != nil {
		return 0, fmt.Errorf("reading tracked files: %w", err)
	}

	removed := 0
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return removed, err
		}
		if _, ok := tracked[abs]; !ok {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarning("not cached: "+p))
			continue
		}
		if err := st.DeleteFile(abs); err != nil {
			return removed, fmt.Errorf("removing %s: %w", p, err)
		}
		removed++
	}
	return removed, nil
}
