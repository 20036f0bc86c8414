package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/source"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg := loadConfigOrDefault()
	dataDir := resolveDataDir(cfg)

	files, _ := source.ScanDir(dataDir)

	fmt.Println()
	fmt.Println("  Welcome to fundsight!")
	fmt.Println()
	if len(files) > 0 {
		counts := source.CountByKind(files)
		fmt.Printf("  Found %d data files in %s (%d transactions, %d budget, %d mortgage)\n\n",
			len(files), dataDir,
			counts[source.KindTransactions], counts[source.KindBudget], counts[source.KindMortgage])
	}

	// 1. Client name
	fmt.Println("  1. Client / organization name")
	fmt.Println("     Used in report titles and email subjects.")
	if cfg.General.Client != "" {
		fmt.Printf("     Current: %s\n", cfg.General.Client)
	}
	fmt.Print("     > ")
	client, _ := reader.ReadString('\n')
	if client = strings.TrimSpace(client); client != "" {
		cfg.General.Client = client
	}
	fmt.Println()

	// 2. Data directory
	fmt.Println("  2. Data directory")
	fmt.Printf("     Where the accounting exports live. [%s]\n", dataDir)
	fmt.Print("     > ")
	dir, _ := reader.ReadString('\n')
	if dir = strings.TrimSpace(dir); dir != "" {
		cfg.General.DataDir = dir
	}
	fmt.Println()

	// 3. Preparer
	fmt.Println("  3. Preparer name (signature block, optional)")
	fmt.Print("     > ")
	preparer, _ := reader.ReadString('\n')
	if preparer = strings.TrimSpace(preparer); preparer != "" {
		cfg.General.Preparer = preparer
	}
	fmt.Println()

	// 4. Board recipient
	fmt.Println("  4. Board report recipient email")
	fmt.Println("     SMTP credentials come from FUNDSIGHT_SMTP_USERNAME/PASSWORD.")
	if cfg.SMTP.Recipient != "" {
		fmt.Printf("     Current: %s\n", cfg.SMTP.Recipient)
	}
	fmt.Print("     > ")
	recipient, _ := reader.ReadString('\n')
	if recipient = strings.TrimSpace(recipient); recipient != "" {
		cfg.SMTP.Recipient = recipient
		if cfg.SMTP.From == "" {
			cfg.SMTP.From = recipient
		}
	}
	fmt.Println()

	// 5. Theme
	fmt.Println("  5. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Flexoki Light")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "flexoki-light"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `fundsight setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
