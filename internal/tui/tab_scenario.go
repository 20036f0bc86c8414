package tui

import (
	"fmt"
	"strings"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/tui/components"
	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	scenFieldDonation = iota
	scenFieldGrant
	scenFieldPersonnel
	scenFieldProgram
	scenFieldOneTime
	scenarioFieldCount // sentinel
)

// scenarioState tracks the what-if tab's field cursor. The parameters
// themselves live here too; they are session-only and never persisted.
type scenarioState struct {
	cursor int
	params model.ScenarioParameters
}

const oneTimeStep = 1000

// updateScenarioKeys handles scenario-tab key presses. Returns false for
// keys the tab does not consume so global bindings still apply.
func (a App) updateScenarioKeys(key string) (bool, App) {
	adjust := func(delta float64) App {
		p := &a.scen.params
		switch a.scen.cursor {
		case scenFieldDonation:
			p.DonationChangePct += delta
		case scenFieldGrant:
			p.GrantChangePct += delta
		case scenFieldPersonnel:
			p.PersonnelChangePct += delta
		case scenFieldProgram:
			p.ProgramChangePct += delta
		case scenFieldOneTime:
			cost := p.OneTimeCost.Add(decimal.NewFromFloat(delta * oneTimeStep / 5))
			if cost.IsNegative() {
				cost = decimal.Zero
			}
			p.OneTimeCost = cost
		}
		a.recomputeScenario()
		return a
	}

	switch key {
	case "h":
		return true, adjust(-5)
	case "l":
		return true, adjust(5)
	case "H":
		return true, adjust(-25)
	case "L":
		return true, adjust(25)
	case "0":
		p := &a.scen.params
		switch a.scen.cursor {
		case scenFieldDonation:
			p.DonationChangePct = 0
		case scenFieldGrant:
			p.GrantChangePct = 0
		case scenFieldPersonnel:
			p.PersonnelChangePct = 0
		case scenFieldProgram:
			p.ProgramChangePct = 0
		case scenFieldOneTime:
			p.OneTimeCost = decimal.Zero
		}
		a.recomputeScenario()
		return true, a
	case "z":
		a.scen.params = model.ScenarioParameters{}
		a.recomputeScenario()
		return true, a
	}
	return false, a
}

func (a App) renderScenarioTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)
	paramCard := components.ContentCard("What-If Parameters",
		a.renderScenarioParams(components.CardInnerWidth(halves[0])), halves[0])
	splitCard := components.ContentCard("Baseline Expense Split",
		a.renderScenarioSplit(components.CardInnerWidth(halves[1])), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("What-If Parameters",
			a.renderScenarioParams(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
	} else {
		b.WriteString(components.CardRow([]string{paramCard, splitCard}))
		b.WriteString("\n")
	}

	b.WriteString(components.ContentCard("Projection", a.renderScenarioProjection(), cw))

	if proj := a.scenario; a.scenarioErr == nil && proj.ProjectedNet.IsNegative() {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(" ⚠ Projected net cash flow is negative"))
	}

	return b.String()
}

func (a App) renderScenarioParams(innerW int) string {
	t := theme.Active
	p := a.scen.params

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	selectedValueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)
	padStyle := lipgloss.NewStyle().Background(t.SurfaceBright)

	fields := []struct {
		label string
		value string
	}{
		{"Donations", cli.FormatSignedPct(p.DonationChangePct)},
		{"Grants", cli.FormatSignedPct(p.GrantChangePct)},
		{"Personnel", cli.FormatSignedPct(p.PersonnelChangePct)},
		{"Program", cli.FormatSignedPct(p.ProgramChangePct)},
		{"One-Time Cost", cli.FormatMoney(p.OneTimeCost)},
	}

	var b strings.Builder
	for i, f := range fields {
		if i == a.scen.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label))
			value := selectedValueStyle.Render(f.value)
			b.WriteString(marker)
			b.WriteString(label)
			b.WriteString(value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := innerW - used; pad > 0 {
				b.WriteString(padStyle.Render(strings.Repeat(" ", pad)))
			}
		} else {
			b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			b.WriteString(valueStyle.Render(f.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("[h/l] ±5  [H/L] ±25  [0] reset  [z] reset all"))
	return b.String()
}

func (a App) renderScenarioSplit(innerW int) string {
	proj := a.scenario
	personnel, _ := proj.PersonnelExpense.Abs().Float64()
	program, _ := proj.ProgramExpense.Abs().Float64()
	other, _ := proj.OtherExpense.Abs().Float64()

	items := []components.HBarItem{
		{Label: "Personnel", Value: personnel, Amount: cli.FormatMoney(proj.PersonnelExpense)},
		{Label: "Program", Value: program, Amount: cli.FormatMoney(proj.ProgramExpense)},
		{Label: "Other", Value: other, Amount: cli.FormatMoney(proj.OtherExpense)},
	}
	return components.HBarList(items, theme.Active.Cyan, innerW)
}

func (a App) renderScenarioProjection() string {
	t := theme.Active

	if a.scenarioErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
		return errStyle.Render(a.scenarioErr.Error())
	}

	proj := a.scenario

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	baseStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	projected := func(d decimal.Decimal) string {
		style := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
		if d.IsNegative() {
			style = style.Foreground(t.Red)
		}
		return style.Render(fmt.Sprintf("%16s", cli.FormatMoney(d)))
	}

	baselineExpenses := proj.PersonnelExpense.Add(proj.ProgramExpense).Add(proj.OtherExpense)

	rows := []struct {
		label     string
		baseline  decimal.Decimal
		projected decimal.Decimal
	}{
		{"Income", proj.BaselineIncome, proj.ProjectedIncome},
		{"Expenses", baselineExpenses, proj.ProjectedExpenses},
		{"Net", proj.BaselineNet, proj.ProjectedNet},
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s %16s %16s %14s", "", "Baseline", "Projected", "Delta")))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", r.label)))
		b.WriteString(baseStyle.Render(fmt.Sprintf("%16s", cli.FormatMoney(r.baseline))))
		b.WriteString(baseStyle.Render(" "))
		b.WriteString(projected(r.projected))
		b.WriteString(baseStyle.Render(" "))
		b.WriteString(baseStyle.Render(fmt.Sprintf("%14s", cli.FormatDelta(r.projected, r.baseline))))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
