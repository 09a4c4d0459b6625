package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Ledger file:  %s\n", cfg.General.LedgerFile)
	if env := config.GetLedgerFile(cfg); env != cfg.General.LedgerFile {
		fmt.Printf("    Overridden:   %s ($DESPESAS_FILE)\n", env)
	}
	fmt.Printf("    Ranking size: %d\n", cfg.General.TopN)
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Persistent: %v\n", cfg.Cache.Persistent)
	fmt.Printf("    Path:       %s\n", config.CachePath(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `despesas setup` to reconfigure.")
	return nil
}
