package cmd

import (
	"fmt"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/pipeline"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagDonationPct  float64
	flagGrantPct     float64
	flagPersonnelPct float64
	flagProgramPct   float64
	flagOneTimeCost  float64
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "What-if projection over the current ledger",
	RunE:  runScenario,
}

func init() {
	addScenarioFlags(scenarioCmd)
	rootCmd.AddCommand(scenarioCmd)
}

// addScenarioFlags registers the projection parameters; the report command
// reuses the same set.
func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagDonationPct, "donation", 0, "Donation change percent (signed)")
	cmd.Flags().Float64Var(&flagGrantPct, "grant", 0, "Grant change percent (signed)")
	cmd.Flags().Float64Var(&flagPersonnelPct, "personnel", 0, "Personnel expense change percent (signed)")
	cmd.Flags().Float64Var(&flagProgramPct, "program", 0, "Program expense change percent (signed)")
	cmd.Flags().Float64Var(&flagOneTimeCost, "one-time", 0, "One-time cost (non-negative)")
}

func scenarioParams() model.ScenarioParameters {
	return model.ScenarioParameters{
		DonationChangePct:  flagDonationPct,
		GrantChangePct:     flagGrantPct,
		PersonnelChangePct: flagPersonnelPct,
		ProgramChangePct:   flagProgramPct,
		OneTimeCost:        decimal.NewFromFloat(flagOneTimeCost),
	}
}

func runScenario(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	result, err := loadData(cfg)
	if err != nil {
		return err
	}
	if result.Ledger.Count() == 0 {
		fmt.Println("\n  No transactions found.")
		return nil
	}

	params := scenarioParams()
	proj, err := pipeline.Project(result.Ledger, params, pipelineOptions(cfg))
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SCENARIO PROJECTION"))
	fmt.Println()

	paramRows := [][]string{
		{"Donations", cli.FormatSignedPct(params.DonationChangePct)},
		{"Grants", cli.FormatSignedPct(params.GrantChangePct)},
		{"Personnel", cli.FormatSignedPct(params.PersonnelChangePct)},
		{"Program", cli.FormatSignedPct(params.ProgramChangePct)},
		{"One-time Cost", cli.FormatMoney(params.OneTimeCost)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Parameters",
		Headers: []string{"Lever", "Change"},
		Rows:    paramRows,
	}))

	splitRows := [][]string{
		{"Personnel", cli.FormatMoney(proj.PersonnelExpense)},
		{"Program", cli.FormatMoney(proj.ProgramExpense)},
		{"Other", cli.FormatMoney(proj.OtherExpense)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Expense Split (baseline)",
		Headers: []string{"Bucket", "Amount"},
		Rows:    splitRows,
	}))

	baselineExpenses := proj.PersonnelExpense.Add(proj.ProgramExpense).Add(proj.OtherExpense)
	projRows := [][]string{
		{"Income", cli.FormatMoney(proj.BaselineIncome), cli.FormatMoney(proj.ProjectedIncome),
			cli.FormatDelta(proj.ProjectedIncome, proj.BaselineIncome)},
		{"Expenses", cli.FormatMoney(baselineExpenses), cli.FormatMoney(proj.ProjectedExpenses),
			cli.FormatDelta(proj.ProjectedExpenses, baselineExpenses)},
		{"---"},
		{"Net Cash Flow", cli.FormatMoney(proj.BaselineNet), cli.FormatMoney(proj.ProjectedNet),
			cli.FormatDelta(proj.ProjectedNet, proj.BaselineNet)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Projection",
		Headers: []string{"", "Baseline", "Projected", "Delta"},
		Rows:    projRows,
	}))

	if proj.ProjectedNet.IsNegative() {
		fmt.Printf("  %s\n", cli.RenderWarn("Projected net cash flow is negative under these parameters."))
	}

	warnSkipped(result.SkippedRows)
	fmt.Println()

	return nil
}
