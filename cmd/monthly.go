package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month-by-month expense against forecast",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	filtered, _, err := loadFiltered()
	if err != nil {
		return err
	}

	months := pipeline.Compare(filtered, pipeline.ByMonth, pipeline.Forecast, pipeline.Realized, pipeline.Realized, 0)
	if len(months) == 0 {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY EXPENSES"))
	fmt.Println()

	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Secondary.InexactFloat64())
	}

	rows := make([][]string, 0, len(months)+2)
	for _, m := range months {
		outcome := model.OutcomeOf(m.Gap())
		rows = append(rows, []string{
			cli.FormatMonth(m.Key),
			cli.FormatBRL(m.Secondary),
			cli.FormatBRL(m.Primary),
			cli.FormatBRL(m.Gap()),
			cli.RenderOutcome(outcome.String(), outcome == model.Overrun),
			cli.RenderBar(m.Secondary.InexactFloat64(), peak, 20),
		})
	}

	s := pipeline.Summarize(filtered)
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{
		"TOTAL",
		cli.FormatBRL(s.TotalRealized),
		cli.FormatBRL(s.TotalForecast),
		cli.FormatBRL(s.Variance),
		cli.RenderOutcome(s.Outcome().String(), s.Outcome() == model.Overrun),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Realized", "Forecast", "Variance", "Outcome", ""},
		Rows:    rows,
	}))

	return nil
}
