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

// mortgageState tracks the mortgage tab's list cursor and scroll offset.
type mortgageState struct {
	cursor int
	offset int
}

func (a App) renderMortgageTab(cw, contentH int) string {
	t := theme.Active

	if a.mortgageFile == "" {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Mortgage Portfolio",
			dimStyle.Render("No loan table found in the data directory.\nDrop a file with \"mortgage\" or \"loan\" in its name."), cw)
	}
	if a.portfolio.LoanCount == 0 {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard("Mortgage Portfolio",
			dimStyle.Render("Loan table has no parseable rows."), cw)
	}

	var b strings.Builder

	// Row 1: Portfolio aggregates
	widths := components.LayoutRow(cw, 3)
	delinquentCaption := "all current"
	if a.portfolio.DelinquentCount > 0 {
		delinquentCaption = "past the delinquency cutoff"
	}
	cards := []string{
		components.MetricCard("Loans", cli.FormatNumber(int64(a.portfolio.LoanCount)),
			filepath.Base(a.mortgageFile), widths[0]),
		components.MetricCard("Outstanding", cli.FormatMoney(a.portfolio.TotalOutstandingBalance),
			"due minus paid", widths[1]),
		components.MetricCard("Delinquent", cli.FormatNumber(int64(a.portfolio.DelinquentCount)),
			delinquentCaption, widths[2]),
	}
	b.WriteString(components.CardRow(cards))
	b.WriteString("\n")

	// Row 2: Loan table
	visible := contentH - 9
	if visible < 3 {
		visible = 3
	}
	b.WriteString(components.ContentCard("Loans", a.renderLoanRows(visible), cw))

	return b.String()
}

func (a App) renderLoanRows(visible int) string {
	t := theme.Active
	loans := a.portfolio.Loans

	offset := a.mortgage.offset
	if a.mortgage.cursor < offset {
		offset = a.mortgage.cursor
	}
	if a.mortgage.cursor >= offset+visible {
		offset = a.mortgage.cursor - visible + 1
	}

	headStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	lateStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	borrowerW := 20

	var b strings.Builder
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %-10s %14s %12s %10s %-10s",
		borrowerW, "Borrower", "Loan", "Balance", "Due Date", "Days Late", "Status")))
	b.WriteString("\n")

	end := offset + visible
	if end > len(loans) {
		end = len(loans)
	}
	for i := offset; i < end; i++ {
		l := loans[i]

		status := "current"
		style := rowStyle
		if l.IsDelinquent {
			status = "DELINQUENT"
			style = lateStyle
		}
		if i == a.mortgage.cursor {
			style = selStyle
		}

		b.WriteString(style.Render(fmt.Sprintf("%-*s %-10s %14s %12s %10s %-10s",
			borrowerW, truncStr(l.Borrower, borrowerW),
			truncStr(l.LoanID, 10),
			cli.FormatMoney(l.Balance),
			cli.FormatDate(l.DueDate),
			cli.FormatDaysLate(l.DaysLate),
			status)))
		b.WriteString("\n")
	}

	if len(loans) > visible {
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d  [j/k] scroll", a.mortgage.cursor+1, len(loans))))
	}

	return strings.TrimRight(b.String(), "\n")
}
