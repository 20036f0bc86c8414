package cmd

import (
	"fmt"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show data files, cache state, and report history",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()
	dataDir := resolveDataDir(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle("FUNDSIGHT STATUS"))
	fmt.Println()

	fmt.Printf("  Client:      %s\n", resolveClient(cfg))
	fmt.Printf("  Data dir:    %s\n", dataDir)
	fmt.Printf("  Config file: %s", config.ConfigPath())
	if config.Exists() {
		fmt.Println()
	} else {
		fmt.Println("  (not created yet, using defaults)")
	}
	fmt.Println()

	files, err := source.ScanDir(dataDir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dataDir, err)
	}

	if len(files) == 0 {
		fmt.Println("  No data files found.")
		fmt.Println("  Expected CSV/XLSX tables: transactions, budget, mortgage, tags.")
	} else {
		counts := source.CountByKind(files)
		rows := make([][]string, 0, len(files))
		for _, f := range files {
			rows = append(rows, []string{
				f.Path,
				f.Kind.String(),
				cli.FormatNumber(f.Size),
				cli.FormatDate(f.ModTime),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Data Files (%d transactions, %d budget, %d mortgage, %d tags)", counts[source.KindTransactions], counts[source.KindBudget], counts[source.KindMortgage], counts[source.KindTags]),
			Headers: []string{"File", "Kind", "Bytes", "Modified"},
			Rows:    rows,
		}))
	}

	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		fmt.Printf("  Cache: unavailable (%v)\n", err)
		return nil
	}
	defer func() { _ = cache.Close() }()

	fileCount, _ := cache.FileCount()
	recordCount, _ := cache.RecordCount()
	fmt.Printf("  Cache: %s (%d files, %s records)\n",
		pipeline.CachePath(), fileCount, cli.FormatNumber(int64(recordCount)))
	fmt.Println()

	entries, err := cache.ListReportEntries(5)
	if err != nil || len(entries) == 0 {
		fmt.Println("  No reports generated yet. Run `fundsight report` to build one.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		delivery := "not sent"
		switch {
		case e.Delivered:
			delivery = "sent to " + e.Recipient
		case e.DeliveryError != "":
			delivery = "failed"
		}
		rows = append(rows, []string{
			e.ID[:8],
			e.Client,
			cli.FormatDate(e.CreatedAt),
			cli.FormatMoney(e.NetCashFlow),
			delivery,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Recent Reports",
		Headers: []string{"ID", "Client", "Date", "Net", "Delivery"},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}
