package cmd

import (
	"fmt"

	"github.com/fundex/despesas/internal/cli"
	"github.com/fundex/despesas/internal/model"
	"github.com/fundex/despesas/internal/pipeline"

	"github.com/spf13/cobra"
)

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Percentage of expense by cost center and top accounts",
	RunE:  runShare,
}

func init() {
	rootCmd.AddCommand(shareCmd)
}

func runShare(_ *cobra.Command, _ []string) error {
	filtered, cfg, err := loadFiltered()
	if err != nil {
		return err
	}
	if filtered.Empty() {
		fmt.Println("\n  No entries match the selected filters.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SHARE OF EXPENSE  total " + cli.FormatBRL(pipeline.Total(filtered, pipeline.Realized))))
	fmt.Println()

	centers := pipeline.TopN(pipeline.Shares(pipeline.GroupBy(filtered, pipeline.ByCostCenter, pipeline.Realized)), 0)
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Cost Center",
		Headers: []string{"Cost Center", "Realized", "Share", ""},
		Rows:    shareRows(centers, 0),
	}))

	n := topN(cfg)
	accounts := pipeline.Shares(pipeline.GroupBy(filtered, pipeline.ByAccount, pipeline.Realized))
	top := pipeline.TopN(accounts, n)
	rows := shareRows(top, len(accounts)-len(top))
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Top %d Accounts", len(top)),
		Headers: []string{"Account", "Realized", "Share", ""},
		Rows:    rows,
	}))

	return nil
}

// shareRows renders ranked groups, closing with an "Others" line when
// rest groups were left out.
func shareRows(groups []model.GroupTotal, rest int) [][]string {
	rows := make([][]string, 0, len(groups)+2)
	covered := 0.0
	for _, g := range groups {
		rows = append(rows, []string{
			g.Key,
			cli.FormatBRL(g.Value),
			cli.FormatPercent(g.Share),
			cli.RenderBar(g.Share, 1, 25),
		})
		covered += g.Share
	}
	if rest > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{fmt.Sprintf("Others (%d)", rest), "", cli.FormatPercent(1 - covered), cli.RenderBar(1-covered, 1, 25)})
	}
	return rows
}
