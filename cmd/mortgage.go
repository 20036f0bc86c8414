package cmd

import (
	"fmt"
	"time"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"

	"github.com/spf13/cobra"
)

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Mortgage portfolio and delinquency status",
	RunE:  runMortgage,
}

func init() {
	rootCmd.AddCommand(mortgageCmd)
}

func runMortgage(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}

	path := findFile(flagLoansFile, result.Files, source.KindMortgage)
	if path == "" {
		fmt.Println("\n  No mortgage file found.")
		fmt.Printf("  Drop a loans CSV (Borrower, Loan ID, Amount Due, Amount Paid, Due Date) into %s or pass --loans-file.\n",
			resolveDataDir(cfg))
		return nil
	}

	rows, skipped, err := source.ParseMortgageRows(path)
	if err != nil {
		return err
	}

	portfolio := pipeline.ClassifyLoans(rows, time.Now(), cfg.Thresholds.DelinquencyDays)
	if portfolio.LoanCount == 0 {
		fmt.Println("\n  Mortgage file has no usable rows.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MORTGAGE PORTFOLIO"))
	fmt.Println()

	tableRows := make([][]string, 0, portfolio.LoanCount)
	for _, loan := range portfolio.Loans {
		status := "current"
		if loan.IsDelinquent {
			status = "DELINQUENT"
		}
		tableRows = append(tableRows, []string{
			loan.Borrower,
			loan.LoanID,
			cli.FormatMoney(loan.Balance),
			cli.FormatDate(loan.DueDate),
			cli.FormatDaysLate(loan.DaysLate),
			status,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Borrower", "Loan", "Balance", "Due Date", "Days Late", "Status"},
		Rows:    tableRows,
	}))

	fmt.Printf("  Outstanding balance: %s across %d loans\n",
		cli.FormatMoney(portfolio.TotalOutstandingBalance), portfolio.LoanCount)
	if portfolio.DelinquentCount > 0 {
		fmt.Printf("  %s\n", cli.RenderWarn(fmt.Sprintf("%d delinquent (past %d days)",
			portfolio.DelinquentCount, cfg.Thresholds.DelinquencyDays)))
	} else {
		fmt.Println("  No delinquent loans.")
	}
	warnSkipped(skipped)
	fmt.Println()

	return nil
}
