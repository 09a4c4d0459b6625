package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagMetric string

var centersCmd = &cobra.Command{
	Use:   "centers",
	Short: "Cost centers ranked by expense",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRanking(pipeline.ByCostCenter, flagMetric)
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Accounts ranked by expense",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runRanking(pipeline.ByAccount, flagMetric)
	},
}

func init() {
	for _, c := range []*cobra.Command{centersCmd, accountsCmd} {
		c.Flags().StringVarP(&flagMetric, "metric", "m", "realized", "Rank by: realized, forecast, variance or signed")
	}
	rootCmd.AddCommand(centersCmd)
	rootCmd.AddCommand(accountsCmd)
}

func runRanking(dim pipeline.Dimension, metricName string) error {
	metric, err := pipeline.ParseMetric(metricName)
	if err != nil {
		return err
	}

	filtered, cfg, err := loadFiltered()
	if err != nil {
		return err
	}

	groups := pipeline.GroupBy(filtered, dim, metric)
	if len(groups) == 0 {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	n := topN(cfg)
	top := pipeline.TopN(pipeline.Shares(groups), n)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TOP %d %sS BY %s", len(top), strings.ToUpper(dim.Label()), strings.ToUpper(metric.Label()))))
	fmt.Println()

	peak := max(top[0].Value.InexactFloat64(), 0)
	rows := make([][]string, 0, len(top)+2)
	covered := 0.0
	for i, g := range top {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			g.Key,
			cli.FormatBRL(g.Value),
			cli.FormatPercent(g.Share),
			cli.RenderBar(g.Value.InexactFloat64(), peak, 20),
		})
		covered += g.Share
	}

	rows = append(rows, []string{"---"})
	if rest := len(groups) - len(top); rest > 0 {
		rows = append(rows, []string{"", fmt.Sprintf("Others (%d)", rest), "", cli.FormatPercent(1 - covered), ""})
	}
	rows = append(rows, []string{"", "TOTAL", cli.FormatBRL(pipeline.Total(filtered, metric)), "100,0%", ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", dim.Label(), metric.Label(), "Share", ""},
		Rows:    rows,
	}))

	return nil
}
