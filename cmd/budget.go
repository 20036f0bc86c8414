package cmd

import (
	"fmt"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget vs actual reconciliation",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	path := findFile(flagBudgetFile, result.Files, source.KindBudget)
	if path == "" {
		fmt.Println("\n  No budget file found.")
		fmt.Printf("  Drop a budget CSV (Account, Budget Amount) into %s or pass --budget-file.\n", resolveDataDir(cfg))
		return nil
	}

	rows, skipped, err := source.ParseBudgetRows(path)
	if err != nil {
		return err
	}

	lines, totals := pipeline.Reconcile(result.Ledger, rows, pipeline.ReconcilePolicy{
		IncludeUnbudgeted: cfg.Budget.IncludeUnbudgeted,
	})

	if len(lines) == 0 {
		fmt.Println("\n  Budget file has no usable rows.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET VS ACTUAL"))
	fmt.Println()

	tableRows := make([][]string, 0, len(lines)+2)
	for _, l := range lines {
		flag := ""
		if l.Over() {
			flag = "over"
		}
		tableRows = append(tableRows, []string{
			l.Category,
			cli.FormatMoney(l.Budgeted),
			cli.FormatMoney(l.Actual),
			cli.FormatMoney(l.Variance),
			flag,
		})
	}
	tableRows = append(tableRows, []string{"---"})
	tableRows = append(tableRows, []string{
		"TOTAL",
		cli.FormatMoney(totals.TotalBudgeted),
		cli.FormatMoney(totals.TotalActual),
		cli.FormatMoney(totals.TotalVariance),
		"",
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Budget", "Actual", "Variance", ""},
		Rows:    tableRows,
	}))

	if totals.OverCount > 0 {
		fmt.Printf("  %s\n", cli.RenderWarn(fmt.Sprintf("%d of %d categories over budget", totals.OverCount, totals.LineCount)))
	}
	warnSkipped(skipped)
	fmt.Println()

	return nil
}
