package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/cli"

	"github.com/spf13/cobra"
)

var flagLimit int

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List the ledger entries in file order",
	RunE:  runEntries,
}

func init() {
	entriesCmd.Flags().IntVarP(&flagLimit, "limit", "l", 50, "Maximum entries to show (0 for all)")
	rootCmd.AddCommand(entriesCmd)
}

func runEntries(_ *cobra.Command, _ []string) error {
	filtered, _, err := loadFiltered()
	if err != nil {
		return err
	}
	if filtered.Empty() {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	rows := filtered.Rows()
	shown := rows
	if flagLimit > 0 && len(shown) > flagLimit {
		shown = shown[:flagLimit]
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ENTRIES  %d of %s",
		len(shown), cli.FormatNumber(int64(len(rows))))))
	fmt.Println()

	out := make([][]string, 0, len(shown))
	for _, r := range shown {
		out = append(out, []string{
			cli.FormatDate(r.Date),
			r.CostCenter,
			r.Account,
			cli.FormatBRL(r.Realized),
			cli.FormatBRL(r.Forecast),
			cli.FormatSignedBRL(r.Variance),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Cost Center", "Account", "Realized", "Forecast", "Variance"},
		Rows:    out,
	}))
	return nil
}
