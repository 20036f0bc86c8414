package tui

import (
	"fmt"
	"strings"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects first-run wizard answers.
type setupValues struct {
	client    string
	dataDir   string
	recipient string
	theme     string
}

// newSetupForm builds the first-run wizard shown when no config file
// exists yet. result may describe an empty directory; the note adjusts.
func newSetupForm(result *pipeline.LoadResult, dataDir string, vals *setupValues) *huh.Form {
	vals.dataDir = dataDir
	vals.theme = theme.Active.Name

	note := fmt.Sprintf("No data files found in %s yet. You can point fundsight at the right directory below.", dataDir)
	if result != nil && len(result.Files) > 0 {
		counts := source.CountByKind(result.Files)
		note = fmt.Sprintf("Found %d data files in %s (%d transactions, %d budget, %d mortgage).",
			len(result.Files), dataDir,
			counts[source.KindTransactions], counts[source.KindBudget], counts[source.KindMortgage])
	}

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, t := range theme.All {
		themeOpts[i] = huh.NewOption(t.Name, t.Name)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fundsight").
				Description(note),
			huh.NewInput().
				Title("Client / organization name").
				Description("Used in report titles and email subjects.").
				Value(&vals.client),
			huh.NewInput().
				Title("Data directory").
				Description("Where the accounting exports live.").
				Value(&vals.dataDir),
			huh.NewInput().
				Title("Board report recipient (optional)").
				Description("Email address reports are sent to.").
				Value(&vals.recipient),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&vals.theme),
		),
	)
}

func (a *App) saveSetupConfig() {
	cfg := a.cfg

	if v := strings.TrimSpace(a.setupVals.client); v != "" {
		cfg.General.Client = v
	}
	if v := strings.TrimSpace(a.setupVals.dataDir); v != "" {
		cfg.General.DataDir = v
	}
	if v := strings.TrimSpace(a.setupVals.recipient); v != "" {
		cfg.SMTP.Recipient = v
	}
	if a.setupVals.theme != "" {
		cfg.Appearance.Theme = a.setupVals.theme
		theme.SetActive(a.setupVals.theme)
	}

	if err := config.Save(cfg); err == nil {
		a.cfg = cfg
	}
}
