package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/tui/components"
	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldClient = iota
	settingsFieldDataDir
	settingsFieldPreparer
	settingsFieldTheme
	settingsFieldDelinquencyDays
	settingsFieldRecipient
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldClient:
		ti.Placeholder = "Homes of Hope"
		ti.SetValue(cfg.General.Client)
	case settingsFieldDataDir:
		ti.Placeholder = "data"
		ti.SetValue(cfg.General.DataDir)
	case settingsFieldPreparer:
		ti.Placeholder = "Jane Treasurer"
		ti.SetValue(cfg.General.Preparer)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark or flexoki-light"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldDelinquencyDays:
		ti.Placeholder = "60"
		ti.SetValue(strconv.Itoa(cfg.Thresholds.DelinquencyDays))
	case settingsFieldRecipient:
		ti.Placeholder = "board@example.org"
		ti.SetValue(cfg.SMTP.Recipient)
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10, 0 disables)"
		ti.SetValue(strconv.Itoa(cfg.TUI.RefreshIntervalSec))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldClient:
		cfg.General.Client = val
	case settingsFieldDataDir:
		cfg.General.DataDir = val
	case settingsFieldPreparer:
		cfg.General.Preparer = val
	case settingsFieldTheme:
		found := false
		for _, t := range theme.All {
			if t.Name == val {
				found = true
				break
			}
		}
		if found {
			cfg.Appearance.Theme = val
			theme.SetActive(val)
		}
	case settingsFieldDelinquencyDays:
		var d int
		if _, err := fmt.Sscanf(val, "%d", &d); err == nil && d >= 0 {
			cfg.Thresholds.DelinquencyDays = d
		}
	case settingsFieldRecipient:
		cfg.SMTP.Recipient = val
	case settingsFieldRefreshInterval:
		var interval int
		if _, err := fmt.Sscanf(val, "%d", &interval); err == nil && (interval == 0 || interval >= 10) {
			cfg.TUI.RefreshIntervalSec = interval
			a.refreshInterval = time.Duration(interval) * time.Second
			a.autoRefresh = interval > 0
		}
	}

	a.settings.saveErr = config.Save(cfg)
	if a.settings.saveErr == nil {
		a.cfg = cfg
		a.recompute()
	}
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	orEmpty := func(s string) string {
		if s == "" {
			return "(not set)"
		}
		return s
	}

	refresh := "off"
	if cfg.TUI.RefreshIntervalSec > 0 {
		refresh = fmt.Sprintf("%ds", cfg.TUI.RefreshIntervalSec)
	}

	fields := []field{
		{"Client", orEmpty(cfg.General.Client)},
		{"Data Directory", config.GetDataDir(cfg)},
		{"Preparer", orEmpty(cfg.General.Preparer)},
		{"Theme", cfg.Appearance.Theme},
		{"Delinquency Days", strconv.Itoa(cfg.Thresholds.DelinquencyDays)},
		{"Board Recipient", orEmpty(cfg.SMTP.Recipient)},
		{"Refresh Interval", refresh},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			// Selected row with marker and highlight
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			// Normal row
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// General info card
	transactions := 0
	if a.result != nil {
		transactions = a.result.Ledger.Count()
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Transactions loaded: ") + valueStyle.Render(cli.FormatNumber(int64(transactions))) + "\n")
	infoBody.WriteString(labelStyle.Render("Load time:           ") + valueStyle.Render(fmt.Sprintf("%.1fs", a.loadTime.Seconds())) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:         ") + valueStyle.Render(config.ConfigPath()))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
