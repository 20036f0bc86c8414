package tui

import (
	"fmt"
	"strings"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/tui/components"
	"github.com/fundsight/fundsight/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	sum := a.summary
	var b strings.Builder

	// Row 1: Headline metric cards
	widths := components.LayoutRow(cw, 4)
	cards := []string{
		components.MoneyCard("Net Cash Flow", cli.FormatMoney(sum.NetCashFlow),
			fmt.Sprintf("%d months", sum.Months), sum.NetCashFlow, widths[0]),
		components.MetricCard("Cash on Hand", cli.FormatMoney(sum.CashOnHand),
			cli.FormatMoney(sum.TotalIncome)+" in", widths[1]),
		components.MetricCard("Days Cash", cli.FormatDays(sum.DaysCashOnHand),
			"at avg monthly burn", widths[2]),
		components.MetricCard("Program Ratio", cli.FormatPercent(sum.ProgramExpenseRatio),
			"of total expenses", widths[3]),
	}
	b.WriteString(components.CardRow(cards))
	b.WriteString("\n")

	// Row 2: Monthly net cash flow
	if len(a.flows) > 0 {
		innerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Net Cash Flow (%d months)", len(a.flows)),
			a.renderMonthlyFlows(innerW),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Expense split + top categories side by side
	halves := components.LayoutRow(cw, 2)
	splitCard := components.ContentCard("Expense Split",
		a.renderExpenseSplit(components.CardInnerWidth(halves[0])), halves[0])
	catCard := components.ContentCard("Top Expense Categories",
		a.renderTopCategories(components.CardInnerWidth(halves[1])), halves[1])
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Expense Split", a.renderExpenseSplit(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Top Expense Categories", a.renderTopCategories(components.CardInnerWidth(cw)), cw))
	} else {
		b.WriteString(components.CardRow([]string{splitCard, catCard}))
	}

	return b.String()
}

func (a App) renderMonthlyFlows(innerW int) string {
	vals := make([]float64, len(a.flows))
	for i, f := range a.flows {
		vals[i], _ = f.Net.Float64()
	}

	var b strings.Builder
	b.WriteString(components.Sparkline(vals, theme.Active.Blue))
	b.WriteString("\n\n")

	// Most recent months, newest last, as labeled bars
	show := a.flows
	maxRows := 6
	if len(show) > maxRows {
		show = show[len(show)-maxRows:]
	}
	items := make([]components.HBarItem, len(show))
	for i, f := range show {
		net, _ := f.Net.Float64()
		items[i] = components.HBarItem{
			Label:  cli.FormatMonth(f.Month),
			Value:  net,
			Amount: cli.FormatMoney(f.Net),
		}
	}
	b.WriteString(components.HBarList(items, theme.Active.Green, innerW))
	return b.String()
}

func (a App) renderExpenseSplit(innerW int) string {
	sum := a.summary
	personnel, _ := sum.PersonnelExpense.Abs().Float64()
	program, _ := sum.ProgramExpense.Abs().Float64()
	other, _ := sum.OtherExpense.Abs().Float64()

	items := []components.HBarItem{
		{Label: "Personnel", Value: personnel, Amount: cli.FormatMoney(sum.PersonnelExpense)},
		{Label: "Program", Value: program, Amount: cli.FormatMoney(sum.ProgramExpense)},
		{Label: "Other", Value: other, Amount: cli.FormatMoney(sum.OtherExpense)},
	}
	return components.HBarList(items, theme.Active.Cyan, innerW)
}

func (a App) renderTopCategories(innerW int) string {
	// AggregateCategories sorts by absolute amount already; take expenses only
	var items []components.HBarItem
	for _, c := range a.categories {
		if !c.Amount.IsNegative() {
			continue
		}
		v, _ := c.Amount.Abs().Float64()
		items = append(items, components.HBarItem{
			Label:  truncStr(c.Category, 18),
			Value:  v,
			Amount: cli.FormatMoney(c.Amount),
		})
		if len(items) == 6 {
			break
		}
	}
	if len(items) == 0 {
		return "no expense records"
	}
	return components.HBarList(items, theme.Active.Orange, innerW)
}
