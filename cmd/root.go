package cmd

import (
	"fmt"
	"os"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/logging"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagDataDir      string
	flagClient       string
	flagTransactions string
	flagBudgetFile   string
	flagLoansFile    string
	flagTagsFile     string
	flagNoCache      bool
	flagQuiet        bool
	flagVerbose      bool
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "fundsight",
	Short: "Nonprofit financial health CLI",
	Long:  "Turn accounting exports into financial health metrics, what-if projections, budget variance, and board reports.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger = logging.New(flagVerbose)
		config.LoadEnv()
	},
	RunE: runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Client data directory (default from config, then ./data)")
	rootCmd.PersistentFlags().StringVarP(&flagClient, "client", "c", "", "Client name for titles and reports")
	rootCmd.PersistentFlags().StringVar(&flagTransactions, "transactions", "", "Use a single transactions file instead of scanning the data dir")
	rootCmd.PersistentFlags().StringVar(&flagBudgetFile, "budget-file", "", "Budget file (default: first discovered)")
	rootCmd.PersistentFlags().StringVar(&flagLoansFile, "loans-file", "", "Mortgage file (default: first discovered)")
	rootCmd.PersistentFlags().StringVar(&flagTagsFile, "tags-file", "", "Tag lookup file (default: first discovered)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse everything")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
}

// loadConfigOrDefault loads the config file, falling back to defaults so a
// corrupted config never blocks a read-only command.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("config unreadable, using defaults")
		return config.DefaultConfig()
	}
	return cfg
}

func resolveDataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.GetDataDir(cfg)
}

func resolveClient(cfg config.Config) string {
	if flagClient != "" {
		return flagClient
	}
	if cfg.General.Client != "" {
		return cfg.General.Client
	}
	return "Client"
}

func pipelineOptions(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Keywords:    cfg.Keywords,
		DaysInMonth: cfg.Thresholds.DaysInMonth,
	}
}

// loadData is the shared ledger loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData(cfg config.Config) (*pipeline.LoadResult, error) {
	// Single-file mode bypasses discovery and cache entirely.
	if flagTransactions != "" {
		return loadSingleFile(flagTransactions)
	}

	dataDir := resolveDataDir(cfg)
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", dataDir)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
	}

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(dataDir, cache, progressFn)
			if err == nil {
				if !flagQuiet && cr.TotalFiles > 0 {
					if cr.Reparsed == 0 {
						fmt.Fprintf(os.Stderr, "\r  Loaded %d records from cache (%d files)    \n",
							cr.Ledger.Count(), cr.TotalFiles)
					} else {
						fmt.Fprintf(os.Stderr, "\r  %d cached + %d reparsed files, %d records    \n",
							cr.CacheHits, cr.Reparsed, cr.Ledger.Count())
					}
				}
				return &cr.LoadResult, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "\n  Cache error, falling back to full parse\n")
			}
		}
	}

	result, err := pipeline.Load(dataDir, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %d files, %d records    \n",
			result.ParsedFiles, result.Ledger.Count())
	}

	return result, nil
}

func loadSingleFile(path string) (*pipeline.LoadResult, error) {
	var tags map[string]string
	if flagTagsFile != "" {
		tags = source.ParseTagTable(flagTagsFile)
	}

	pr := source.ParseTransactions(path, tags)
	if pr.Err != nil {
		return nil, pr.Err
	}

	result := &pipeline.LoadResult{
		Tags:        tags,
		TotalFiles:  1,
		ParsedFiles: 1,
		SkippedRows: pr.Skipped,
	}
	result.Ledger.Records = pr.Records
	return result, nil
}

// findFile resolves an explicit flag or falls back to the first discovered
// file of the given kind.
func findFile(override string, files []source.DiscoveredFile, kind source.FileKind) string {
	if override != "" {
		return override
	}
	for _, f := range files {
		if f.Kind == kind {
			return f.Path
		}
	}
	return ""
}

func warnSkipped(skipped int) {
	if skipped > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d rows skipped (unparseable date or amount)\n", skipped)
	}
}
