package cmd

import (
	"fmt"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCompareBy string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Forecast against realized for the largest groups",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&flagCompareBy, "by", "center", "Group by: center, account or month")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, _ []string) error {
	dim, err := pipeline.ParseDimension(flagCompareBy)
	if err != nil {
		return err
	}

	filtered, cfg, err := loadFiltered()
	if err != nil {
		return err
	}

	n := topN(cfg)
	if dim == pipeline.ByMonth {
		n = 0 // every month, in order
	}
	comparison := pipeline.Compare(filtered, dim, pipeline.Forecast, pipeline.Realized, pipeline.Realized, n)
	if len(comparison) == 0 {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("FORECAST VS REALIZED  by " + strings.ToLower(dim.Label())))
	fmt.Println()

	peak := 0.0
	for _, c := range comparison {
		peak = max(peak, c.Primary.InexactFloat64(), c.Secondary.InexactFloat64())
	}

	rows := make([][]string, 0, len(comparison))
	for _, c := range comparison {
		key := c.Key
		if dim == pipeline.ByMonth {
			key = cli.FormatMonth(key)
		}
		exec := 0.0
		if !c.Primary.IsZero() {
			exec = c.Secondary.Div(c.Primary).InexactFloat64()
		}
		outcome := model.OutcomeOf(c.Gap())
		rows = append(rows, []string{
			key,
			cli.FormatBRL(c.Primary),
			cli.FormatBRL(c.Secondary),
			cli.FormatBRL(c.Gap()),
			cli.FormatPercent(exec),
			cli.RenderOutcome(outcome.String(), outcome == model.Overrun),
			cli.RenderBar(c.Secondary.InexactFloat64(), peak, 16),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{dim.Label(), "Forecast", "Realized", "Variance", "Executed", "Outcome", ""},
		Rows:    rows,
	}))

	return nil
}
