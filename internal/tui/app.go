// Package tui provides the interactive Bubble Tea dashboard for fundsight.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/pipeline"
	"github.com/fundsight/fundsight/internal/source"
	"github.com/fundsight/fundsight/internal/store"
	"github.com/fundsight/fundsight/internal/tui/components"
	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// LedgerLoadedMsg is sent when the data pipeline finishes.
type LedgerLoadedMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

// RefreshMsg is sent when a background data refresh completes.
type RefreshMsg struct {
	Result   *pipeline.LoadResult
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	result   *pipeline.LoadResult
	loaded   bool
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Pre-computed from the current ledger
	summary    model.FinancialSummary
	flows      []model.MonthlyFlow
	categories []model.CategoryTotal

	budgetLines []model.BudgetLine
	budgetSum   model.BudgetSummary
	budgetFile  string

	portfolio    model.MortgagePortfolio
	mortgageFile string

	scenario    model.ScenarioProjection
	scenarioErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	scen     scenarioState
	budget   budgetState
	mortgage mortgageState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading — channel-based progress subscription
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg // progress + completion messages from loader goroutine

	cfg      config.Config
	useCache bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config, useCache, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval > 0 && refreshInterval < 10*time.Second {
		refreshInterval = 30 * time.Second // minimum 10s, default 30s
	}

	return App{
		cfg:             cfg,
		useCache:        useCache,
		needSetup:       needSetup,
		autoRefresh:     refreshInterval > 0,
		refreshInterval: refreshInterval,
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadLedgerCmd(config.GetDataDir(a.cfg), a.useCache, a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a *App) recompute() {
	if a.result == nil {
		return
	}

	opts := pipeline.Options{Keywords: a.cfg.Keywords, DaysInMonth: a.cfg.Thresholds.DaysInMonth}

	a.summary = pipeline.Aggregate(a.result.Ledger, opts)
	a.flows = pipeline.AggregateMonths(a.result.Ledger)
	a.categories = pipeline.AggregateCategories(a.result.Ledger, opts)

	// Budget reconciliation, when a budget table is present
	a.budgetLines = nil
	a.budgetSum = model.BudgetSummary{}
	a.budgetFile = firstOfKind(a.result.Files, source.KindBudget)
	if a.budgetFile != "" {
		if rows, _, err := source.ParseBudgetRows(a.budgetFile); err == nil {
			policy := pipeline.ReconcilePolicy{IncludeUnbudgeted: a.cfg.Budget.IncludeUnbudgeted}
			a.budgetLines, a.budgetSum = pipeline.Reconcile(a.result.Ledger, rows, policy)
		}
	}

	// Mortgage portfolio, when a loan table is present
	a.portfolio = model.MortgagePortfolio{}
	a.mortgageFile = firstOfKind(a.result.Files, source.KindMortgage)
	if a.mortgageFile != "" {
		if rows, _, err := source.ParseMortgageRows(a.mortgageFile); err == nil {
			a.portfolio = pipeline.ClassifyLoans(rows, time.Now(), a.cfg.Thresholds.DelinquencyDays)
		}
	}

	a.recomputeScenario()

	// Clamp cursors to the fresh data
	if a.budget.cursor >= len(a.budgetLines) {
		a.budget.cursor = len(a.budgetLines) - 1
	}
	if a.budget.cursor < 0 {
		a.budget.cursor = 0
	}
	if a.mortgage.cursor >= len(a.portfolio.Loans) {
		a.mortgage.cursor = len(a.portfolio.Loans) - 1
	}
	if a.mortgage.cursor < 0 {
		a.mortgage.cursor = 0
	}
}

func (a *App) recomputeScenario() {
	if a.result == nil {
		return
	}
	opts := pipeline.Options{Keywords: a.cfg.Keywords, DaysInMonth: a.cfg.Thresholds.DaysInMonth}
	a.scenario, a.scenarioErr = pipeline.Project(a.result.Ledger, a.scen.params, opts)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Forward to setup form if active
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return a.moveCursor(-1), nil
		case tea.MouseButtonWheelDown:
			return a.moveCursor(1), nil
		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Scenario tab keybindings
		if a.activeTab == tabScenario {
			if handled, next := a.updateScenarioKeys(key); handled {
				return next, nil
			}
		}

		// Budget/mortgage list navigation
		switch key {
		case "j", "down":
			return a.moveCursor(1), nil
		case "k", "up":
			return a.moveCursor(-1), nil
		case "g":
			return a.cursorTo(0), nil
		case "G":
			return a.cursorTo(1 << 30), nil
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == tabSettings && key == "enter" {
			return a.settingsStartEdit()
		}

		// Global quit
		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshLedgerCmd(config.GetDataDir(a.cfg), a.useCache)
		}

		// Toggle auto-refresh
		if key == "R" {
			a.autoRefresh = !a.autoRefresh
			return a, nil
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case LedgerLoadedMsg:
		a.result = msg.Result
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.recompute()

		// Activate first-run setup after data loads
		if a.needSetup {
			a.setupForm = newSetupForm(a.result, config.GetDataDir(a.cfg), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}

		// Auto-refresh ledger data
		if a.loaded && a.autoRefresh && !a.refreshing && a.refreshInterval > 0 {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshLedgerCmd(config.GetDataDir(a.cfg), a.useCache))
			}
		}

		return a, tea.Batch(cmds...)

	case RefreshMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Result != nil {
			a.result = msg.Result
			a.loadTime = msg.LoadTime
			a.recompute()
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

// moveCursor advances the list cursor on tabs that have one.
func (a App) moveCursor(delta int) App {
	switch a.activeTab {
	case tabBudget:
		a.budget.cursor = clamp(a.budget.cursor+delta, 0, len(a.budgetLines)-1)
	case tabMortgage:
		a.mortgage.cursor = clamp(a.mortgage.cursor+delta, 0, len(a.portfolio.Loans)-1)
	case tabSettings:
		if !a.settings.editing {
			a.settings.cursor = clamp(a.settings.cursor+delta, 0, settingsFieldCount-1)
		}
	case tabScenario:
		a.scen.cursor = clamp(a.scen.cursor+delta, 0, scenarioFieldCount-1)
	}
	return a
}

func (a App) cursorTo(pos int) App {
	switch a.activeTab {
	case tabBudget:
		a.budget.cursor = clamp(pos, 0, len(a.budgetLines)-1)
	case tabMortgage:
		a.mortgage.cursor = clamp(pos, 0, len(a.portfolio.Loans)-1)
	}
	return a
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fundsight needs at least %d columns.\n  Current width: %d\n",
		a.width,
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	countStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fundsight"))
	b.WriteString(subtitleStyle.Render(" · Nonprofit Financial Dashboard"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := 40
		if barW > w-30 {
			barW = w - 30
		}
		if barW < 20 {
			barW = 20
		}
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Parsing ledgers\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progress))))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatNumber(int64(a.progressMax))))
	} else {
		b.WriteString(spinnerStyle.Render(a.spinner.View()))
		b.WriteString(subtitleStyle.Render(" Discovering data files..."))
	}

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o s b m x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists / fields"},
		{"g G", "First / Last row"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Scenario"))
	b.WriteString("\n")
	scenBindings := []struct{ key, desc string }{
		{"h l", "Adjust parameter -/+ step"},
		{"H L", "Adjust by a larger step"},
		{"0", "Reset parameter"},
		{"z", "Reset all parameters"},
	}
	for _, bind := range scenBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Edit setting"},
		{"Esc", "Back / Cancel"},
		{"r", "Refresh data"},
		{"R", "Toggle auto-refresh"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + client pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	client := a.cfg.General.Client
	if client == "" {
		client = "Client"
	}
	pill := pillStyle.Render(" ") + pillAccentStyle.Render(client)
	if a.result != nil {
		pill += pillStyle.Render(" │ ") +
			pillAccentStyle.Render(cli.FormatNumber(int64(a.summary.TransactionCount))) +
			pillStyle.Render(" transactions")
		if a.result.SkippedRows > 0 {
			pill += pillStyle.Render(" │ ") +
				pillAccentStyle.Render(fmt.Sprintf("%d skipped", a.result.SkippedRows))
		}
	}
	pill += pillStyle.Render(" ")

	pillRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		pillRowStyle.Render(pill)

	// 2. Render status bar
	dataAge := fmt.Sprintf("%.1fs", a.loadTime.Seconds())
	if a.refreshing {
		dataAge = "refreshing..."
	}
	statusBar := components.RenderStatusBar(w, client, dataAge)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabScenario:
		content = a.renderScenarioTab(cw)
	case tabBudget:
		content = a.renderBudgetTab(cw, contentH)
	case tabMortgage:
		content = a.renderMortgageTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure the entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// Tab indices, matching components.Tabs order.
const (
	tabOverview = iota
	tabScenario
	tabBudget
	tabMortgage
	tabSettings
)

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadLedgerCmd starts the data loading pipeline in a background goroutine.
// It streams ProgressMsg updates and a final LedgerLoadedMsg through sub.
func loadLedgerCmd(dataDir string, useCache bool, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Progress callback: non-blocking send so workers aren't stalled.
			// If the channel is full, we skip this update — the next one catches up.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			// Try cached load
			if useCache {
				cache, err := store.Open(pipeline.CachePath())
				if err == nil {
					cr, loadErr := pipeline.LoadWithCache(dataDir, cache, progressFn)
					_ = cache.Close()
					if loadErr == nil {
						sub <- LedgerLoadedMsg{
							Result:   &cr.LoadResult,
							LoadTime: time.Since(start),
						}
						return
					}
				}
			}

			// Fallback: uncached load
			result, err := pipeline.Load(dataDir, progressFn)
			if err != nil {
				sub <- LedgerLoadedMsg{Result: &pipeline.LoadResult{}, LoadTime: time.Since(start)}
				return
			}
			sub <- LedgerLoadedMsg{
				Result:   result,
				LoadTime: time.Since(start),
			}
		}()

		// Block until the first message (either ProgressMsg or LedgerLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// refreshLedgerCmd refreshes ledger data in the background (no progress UI).
func refreshLedgerCmd(dataDir string, useCache bool) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		if useCache {
			cache, err := store.Open(pipeline.CachePath())
			if err == nil {
				cr, loadErr := pipeline.LoadWithCache(dataDir, cache, nil)
				_ = cache.Close()
				if loadErr == nil {
					return RefreshMsg{
						Result:   &cr.LoadResult,
						LoadTime: time.Since(start),
					}
				}
			}
		}

		result, err := pipeline.Load(dataDir, nil)
		if err != nil {
			return RefreshMsg{LoadTime: time.Since(start)}
		}
		return RefreshMsg{
			Result:   result,
			LoadTime: time.Since(start),
		}
	}
}

func firstOfKind(files []source.DiscoveredFile, kind source.FileKind) string {
	for _, f := range files {
		if f.Kind == kind {
			return f.Path
		}
	}
	return ""
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space in the tab bar
	for i, tab := range components.Tabs {
		tabW := len(tab.Name)
		if i != a.activeTab {
			tabW += 2 // "[k]" brackets around the shortcut letter
			if tab.KeyPos < 0 {
				tabW++ // key appended after the name: "Name[x]"
			}
		}

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Two columns between tabs.
		if i < len(components.Tabs)-1 {
			pos += 2
		}
	}
	return -1
}
