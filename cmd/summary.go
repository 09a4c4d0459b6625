package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline figures: realized, forecast and variance",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	filtered, _, err := loadFiltered()
	if err != nil {
		return err
	}

	if filtered.Empty() {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	s := pipeline.Summarize(filtered)
	months := pipeline.GroupBy(filtered, pipeline.ByMonth, pipeline.Realized)

	fmt.Println()
	fmt.Println(cli.RenderTitle("EXPENSES  " + cli.FormatPeriod(s.First, s.Last)))
	fmt.Println()

	trend := make([]float64, len(months))
	for i, m := range months {
		trend[i] = m.Value.InexactFloat64()
	}

	rows := [][]string{
		{"Realized", cli.FormatBRL(s.TotalRealized)},
		{"Forecast", cli.FormatBRL(s.TotalForecast)},
		{"Variance", cli.FormatBRL(s.Variance)},
		{"Outcome", cli.RenderOutcome(s.Outcome().String(), s.Outcome() == model.Overrun)},
		{"Executed", cli.FormatPercent(s.Execution())},
		{"---"},
		{"Entries", cli.FormatNumber(int64(s.Rows))},
		{"Cost Centers", cli.FormatNumber(int64(s.Centers))},
		{"Accounts", cli.FormatNumber(int64(s.Accounts))},
		{"Months", cli.FormatNumber(int64(s.Months))},
		{"---"},
		{"Monthly Trend", cli.RenderSparkline(trend)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	return nil
}
