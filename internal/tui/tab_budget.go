package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/tui/components"
	"github.com/fundsight/fundsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// budgetState tracks the budget tab's list cursor and scroll offset.
type budgetState struct {
	cursor int
	offset int
}

func (a App) renderBudgetTab(cw, contentH int) string {
	t := theme.Active

	if a.budgetFile == "" {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Budget",
			dimStyle.Render("No budget table found in the data directory.\nDrop a file with \"budget\" in its name to reconcile."), cw)
	}
	if len(a.budgetLines) == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Budget",
			dimStyle.Render("Budget table has no reconcilable rows."), cw)
	}

	var b strings.Builder

	// Row 1: Totals
	widths := components.LayoutRow(cw, 3)
	cards := []string{
		components.MetricCard("Budgeted", cli.FormatMoney(a.budgetSum.TotalBudgeted),
			fmt.Sprintf("%d lines", a.budgetSum.LineCount), widths[0]),
		components.MetricCard("Actual", cli.FormatMoney(a.budgetSum.TotalActual),
			filepath.Base(a.budgetFile), widths[1]),
		components.MoneyCard("Variance", cli.FormatMoney(a.budgetSum.TotalVariance),
			fmt.Sprintf("%d over budget", a.budgetSum.OverCount),
			a.budgetSum.TotalVariance, widths[2]),
	}
	b.WriteString(components.CardRow(cards))
	b.WriteString("\n")

	// Row 2: Line table with cursor + utilization bars
	innerW := components.CardInnerWidth(cw)
	visible := contentH - 9 // metric cards + card chrome
	if visible < 3 {
		visible = 3
	}
	b.WriteString(components.ContentCard("Lines", a.renderBudgetLines(innerW, visible), cw))

	return b.String()
}

func (a App) renderBudgetLines(innerW, visible int) string {
	t := theme.Active
	lines := a.budgetLines

	// Keep cursor in view
	offset := a.budget.offset
	if a.budget.cursor < offset {
		offset = a.budget.cursor
	}
	if a.budget.cursor >= offset+visible {
		offset = a.budget.cursor - visible + 1
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	catW := 22
	barW := innerW - catW - 50
	if barW < 8 {
		barW = 8
	}

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %14s %14s %14s", catW, "Category", "Budgeted", "Actual", "Variance")))
	b.WriteString("\n")

	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	for i := offset; i < end; i++ {
		l := lines[i]

		style := rowStyle
		if i == a.budget.cursor {
			style = selStyle
		} else if l.Over() {
			style = overStyle
		}

		row := fmt.Sprintf("%-*s %14s %14s %14s",
			catW, truncStr(l.Category, catW),
			cli.FormatMoney(l.Budgeted),
			cli.FormatMoney(l.Actual),
			cli.FormatMoney(l.Variance))
		b.WriteString(style.Render(row))

		// Utilization bar for the selected row
		if i == a.budget.cursor && !l.Budgeted.IsZero() {
			util, _ := l.Actual.Div(l.Budgeted).Float64()
			b.WriteString("\n")
			b.WriteString(components.UtilizationBar("  spent", util, 8, barW))
		}
		b.WriteString("\n")
	}

	if len(lines) > visible {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  [j/k] scroll", a.budget.cursor+1, len(lines))))
	}

	return strings.TrimRight(b.String(), "\n")
}
