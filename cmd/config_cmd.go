package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/fundsight/fundsight/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	RunE:  runConfigEdit,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configResetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Client:   %s\n", cfg.General.Client)
	fmt.Printf("    Data dir: %s\n", config.GetDataDir(cfg))
	if cfg.General.Preparer != "" {
		fmt.Printf("    Preparer: %s\n", cfg.General.Preparer)
	}
	fmt.Println()

	fmt.Println("  [Keywords]")
	fmt.Printf("    Personnel: %s\n", strings.Join(cfg.Keywords.Personnel, ", "))
	fmt.Printf("    Program:   %s\n", strings.Join(cfg.Keywords.Program, ", "))
	fmt.Println()

	fmt.Println("  [Thresholds]")
	fmt.Printf("    Delinquency days: %d\n", cfg.Thresholds.DelinquencyDays)
	fmt.Printf("    Days in month:    %d\n", cfg.Thresholds.DaysInMonth)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Include unbudgeted: %v\n", cfg.Budget.IncludeUnbudgeted)
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Sections: scenario=%v budget=%v mortgage=%v\n",
		cfg.Report.Sections.Scenario, cfg.Report.Sections.Budget, cfg.Report.Sections.Mortgage)
	if cfg.Report.Notes != "" {
		fmt.Printf("    Notes:    %s\n", cfg.Report.Notes)
	}
	fmt.Println()

	fmt.Println("  [SMTP]")
	if cfg.SMTP.Host != "" {
		fmt.Printf("    Server:    %s:%d\n", cfg.SMTP.Host, cfg.SMTP.Port)
	} else {
		fmt.Println("    Server:    not configured")
	}
	if cfg.SMTP.Recipient != "" {
		fmt.Printf("    Recipient: %s\n", cfg.SMTP.Recipient)
	}
	if user := config.GetSMTPUsername(); user != "" {
		fmt.Printf("    Username:  %s\n", maskSecret(user))
	} else {
		fmt.Println("    Username:  not configured")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `fundsight setup` to reconfigure.")
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func runConfigEdit(_ *cobra.Command, _ []string) error {
	if !config.Exists() {
		if err := config.Save(config.DefaultConfig()); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, config.ConfigPath())
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("running %s: %w", editor, err)
	}

	// Validate what the user saved
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config invalid after edit: %w", err)
	}
	fmt.Println("  Config saved and valid.")
	return nil
}

func runConfigReset(_ *cobra.Command, _ []string) error {
	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Reset config to defaults at %s\n", config.ConfigPath())
	return nil
}
