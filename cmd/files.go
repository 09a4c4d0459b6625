package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/config"
	"github.com/fundex/despesas/internal/source"
	"github.com/fundex/despesas/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files [dir]",
	Short: "List the ledger files in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

func runFiles(_ *cobra.Command, args []string) error {
	cfg := loadConfig()

	dir := ""
	if len(args) > 0 {
		dir = args[0]
	} else {
		dir = ledgerDir(ledgerPath(cfg))
	}

	files, err := source.ScanDir(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("\n  No .xlsx or .csv files in %s\n\n", dir)
		return nil
	}

	tracked := trackedFiles(cfg)

	rows := make([][]string, 0, len(files))
	var total int64
	for _, f := range files {
		rows = append(rows, []string{
			f.Name,
			string(f.Format),
			humanize.Bytes(uint64(f.Size)),
			humanize.Time(f.ModTime),
			cachedState(tracked, f),
		})
		total += f.Size
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{fmt.Sprintf("%d files", len(files)), "", humanize.Bytes(uint64(total)), "", ""})

	fmt.Println()
	fmt.Println(cli.RenderTitle("LEDGER FILES  " + dir))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"File", "Format", "Size", "Modified", "Cached"},
		Rows:    rows,
	}))
	return nil
}

// ledgerDir returns path itself when it is a directory, else its parent.
func ledgerDir(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// trackedFiles reads the disk mirror when one exists. It never creates it.
func trackedFiles(cfg config.Config) map[string]store.FileInfo {
	path := config.CachePath(cfg)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		return nil
	}
	defer func() { _ = st.Close() }()

	tracked, err := st.GetTrackedFiles()
	if err != nil {
		return nil
	}
	return tracked
}

func cachedState(tracked map[string]store.FileInfo, f source.DiscoveredFile) string {
	abs, err := filepath.Abs(f.Path)
	if err != nil {
		return "-"
	}
	info, ok := tracked[abs]
	switch {
	case !ok:
		return "-"
	case info.MtimeNs != f.ModTime.UnixNano() || info.SizeBytes != f.Size:
		return "stale"
	default:
		return cli.FormatNumber(int64(info.RowCount)) + " rows"
	}
}
