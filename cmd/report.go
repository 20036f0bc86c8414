package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/delivery"
	"github.com/fundsight/fundsight/internal/export"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagReportPDF       string
	flagReportXLSX      string
	flagReportSend      bool
	flagReportRecipient string
	flagReportNotes     string
)

const exportTimeout = 60 * time.Second

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the board report, export it, and optionally email it",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportPDF, "pdf", "", "Write the board report PDF to this path")
	reportCmd.Flags().StringVar(&flagReportXLSX, "xlsx", "", "Write the report workbook to this path")
	reportCmd.Flags().BoolVar(&flagReportSend, "send", false, "Email the PDF to the configured recipient")
	reportCmd.Flags().StringVar(&flagReportRecipient, "recipient", "", "Override the configured recipient address")
	reportCmd.Flags().StringVar(&flagReportNotes, "notes", "", "Free-text notes for the report body")
	addScenarioFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	client := resolveClient(cfg)

	result, err := loadData(cfg)
	if err != nil {
		return err
	}
	if result.Ledger.Count() == 0 {
		return errors.New("no transactions found; a report needs at least one valid record")
	}

	opts := pipelineOptions(cfg)
	summary := pipeline.Aggregate(result.Ledger, opts)

	// A zero-parameter scenario adds nothing the summary doesn't already say.
	var scenario *model.ScenarioProjection
	if params := scenarioParams(); !params.IsZero() {
		proj, err := pipeline.Project(result.Ledger, params, opts)
		if err != nil {
			return err
		}
		scenario = &proj
	}

	// Section parses are file-specific: a bad budget file drops its section
	// with a warning, it never sinks the whole report.
	var (
		budgetLines []model.BudgetLine
		budgetSum   *model.BudgetSummary
		mortgage    *model.MortgagePortfolio
	)
	if path := findFile(flagBudgetFile, result.Files, source.KindBudget); path != "" {
		rows, _, err := source.ParseBudgetRows(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarn("budget section skipped: "+err.Error()))
		} else {
			lines, totals := pipeline.Reconcile(result.Ledger, rows, pipeline.ReconcilePolicy{
				IncludeUnbudgeted: cfg.Budget.IncludeUnbudgeted,
			})
			budgetLines = lines
			budgetSum = &totals
		}
	}
	if path := findFile(flagLoansFile, result.Files, source.KindMortgage); path != "" {
		rows, _, err := source.ParseMortgageRows(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s\n", cli.RenderWarn("mortgage section skipped: "+err.Error()))
		} else {
			p := pipeline.ClassifyLoans(rows, time.Now(), cfg.Thresholds.DelinquencyDays)
			mortgage = &p
		}
	}

	notes := flagReportNotes
	if notes == "" {
		notes = cfg.Report.Notes
	}

	report := pipeline.BuildReport(pipeline.ReportInputs{
		Client:    client,
		Summary:   summary,
		Scenario:  scenario,
		Budget:    budgetLines,
		BudgetSum: budgetSum,
		Mortgage:  mortgage,
		Notes:     notes,
		Preparer:  cfg.General.Preparer,
	})
	sections := cfg.Report.Sections

	pdfPath := flagReportPDF
	if pdfPath == "" && flagReportSend {
		pdfPath = filepath.Join(os.TempDir(), "fundsight_report.pdf")
	}

	ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
	defer cancel()

	if pdfPath != "" {
		if err := export.WritePDF(ctx, report, sections, pdfPath); err != nil {
			return fmt.Errorf("pdf export: %w", err)
		}
		fmt.Printf("  PDF written to %s\n", pdfPath)
	}
	if flagReportXLSX != "" {
		if err := export.WriteXLSX(report, sections, flagReportXLSX); err != nil {
			return fmt.Errorf("xlsx export: %w", err)
		}
		fmt.Printf("  Workbook written to %s\n", flagReportXLSX)
	}

	entry := store.ReportEntry{
		ID:          report.ID,
		Client:      report.Client,
		CreatedAt:   report.GeneratedAt,
		NetCashFlow: report.Summary.NetCashFlow,
		PDFPath:     pdfPath,
		XLSXPath:    flagReportXLSX,
	}
	saveHistory := func(e store.ReportEntry) {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			logger.Warn().Err(err).Msg("report history unavailable")
			return
		}
		defer func() { _ = cache.Close() }()
		if err := cache.SaveReportEntry(e); err != nil {
			logger.Warn().Err(err).Msg("saving report history")
		}
	}

	if !flagReportSend {
		saveHistory(entry)
		fmt.Printf("  Report %s built for %s (net cash flow %s)\n",
			report.ID[:8], client, cli.FormatMoney(summary.NetCashFlow))
		return nil
	}

	recipient := flagReportRecipient
	if recipient == "" {
		recipient = cfg.SMTP.Recipient
	}
	if recipient == "" {
		saveHistory(entry)
		return errors.New("no recipient: pass --recipient or set smtp.recipient in config")
	}

	sender := delivery.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port,
		config.GetSMTPUsername(), config.GetSMTPPassword())
	msg := delivery.BoardMessage(client, cfg.SMTP.From, recipient, pdfPath)

	entry.Recipient = recipient
	if err := sender.Send(ctx, msg); err != nil {
		entry.DeliveryError = err.Error()
		saveHistory(entry)
		var derr *delivery.DeliveryError
		if errors.As(err, &derr) && derr.Retryable {
			return fmt.Errorf("delivery failed (retry with the same flags): %w", err)
		}
		return fmt.Errorf("delivery failed: %w", err)
	}

	entry.Delivered = true
	saveHistory(entry)
	fmt.Printf("  Report sent to %s\n", recipient)
	return nil
}
