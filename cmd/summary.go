package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/pipeline"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Financial health summary",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	if result.Ledger.Count() == 0 {
		fmt.Println("\n  No transactions found.")
		fmt.Printf("  Drop a transactions CSV into %s and try again.\n", resolveDataDir(cfg))
		return nil
	}

	summary := pipeline.Aggregate(result.Ledger, pipelineOptions(cfg))

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL SUMMARY  %s", strings.ToUpper(resolveClient(cfg)))))
	fmt.Println()

	rows := [][]string{
		{"Total Income", cli.FormatMoney(summary.TotalIncome)},
		{"Total Expenses", cli.FormatMoney(summary.TotalExpenses)},
		{"Net Cash Flow", cli.FormatMoney(summary.NetCashFlow)},
		{"Cash on Hand", cli.FormatMoney(summary.CashOnHand)},
		{"---"},
		{"Days Cash on Hand", cli.FormatDays(summary.DaysCashOnHand)},
		{"Program Expense Ratio", cli.FormatPercent(summary.ProgramExpenseRatio)},
		{"---"},
		{"Personnel Expense", cli.FormatMoney(summary.PersonnelExpense)},
		{"Program Expense", cli.FormatMoney(summary.ProgramExpense)},
		{"Other Expense", cli.FormatMoney(summary.OtherExpense)},
		{"---"},
		{"Transactions", cli.FormatNumber(int64(summary.TransactionCount))},
		{"Months Observed", cli.FormatNumber(int64(summary.Months))},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Monthly cash flow shape, oldest to newest.
	flows := pipeline.AggregateMonths(result.Ledger)
	if len(flows) > 1 {
		vals := make([]float64, len(flows))
		for i, f := range flows {
			vals[i], _ = f.Net.Float64()
		}
		fmt.Printf("  Monthly net  %s  (%s to %s)\n",
			cli.RenderSparkline(vals),
			cli.FormatMonth(flows[0].Month),
			cli.FormatMonth(flows[len(flows)-1].Month))
	}

	warnSkipped(result.SkippedRows)
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarn(e.Error()))
	}
	fmt.Println()

	return nil
}
