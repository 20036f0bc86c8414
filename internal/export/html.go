// Package export renders report models into board-ready artifacts: HTML,
// PDF via headless Chrome, and XLSX workbooks.
package export

import (
	"bytes"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/cli"
	"github.com/fundsight/fundsight/internal/model"
)

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": cli.FormatMoney,
	"days":  cli.FormatDays,
	"pct": func(d decimal.Decimal) string {
		return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
	},
	"date": func(t time.Time) string {
		return t.Format("January 2, 2006")
	},
	"shortDate": cli.FormatDate,
	"daysLate":  cli.FormatDaysLate,
	"flowClass": func(d decimal.Decimal) string {
		if d.IsNegative() {
			return "neg"
		}
		return "pos"
	},
}).Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Board Summary Report - {{.Report.Client}}</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; color: #100F0F; margin: 0; font-size: 13px; }
  h1 { font-size: 22px; border-bottom: 2px solid #100F0F; padding-bottom: 8px; margin-bottom: 4px; }
  h2 { font-size: 15px; margin: 26px 0 6px; text-transform: uppercase; letter-spacing: 0.06em; }
  table { border-collapse: collapse; width: 100%; margin-top: 6px; }
  th, td { border: 1px solid #CECDC3; padding: 5px 10px; text-align: right; }
  th:first-child, td:first-child { text-align: left; }
  th { background: #F2F0E5; font-weight: bold; }
  .metrics td { border: none; padding: 3px 0; }
  .metrics td:first-child { text-align: left; }
  .metrics td:last-child { text-align: right; font-variant-numeric: tabular-nums; }
  .neg { color: #AF3029; }
  .pos { color: #66800B; }
  .muted { color: #6F6E69; font-size: 11px; }
  .notes { white-space: pre-wrap; margin-top: 6px; }
  .sigline { border-top: 1px solid #100F0F; width: 280px; padding-top: 4px; margin-top: 56px; }
</style>
</head>
<body>
<h1>Board Summary Report - {{.Report.Client}}</h1>
<p class="muted">Generated {{date .Report.GeneratedAt}}{{with .Report.ID}} &middot; Report {{.}}{{end}}</p>

{{if .Sections.Summary}}
<h2>Financial Summary</h2>
<table class="metrics">
  <tr><td>Total Income</td><td class="pos">{{money .Report.Summary.TotalIncome}}</td></tr>
  <tr><td>Total Expenses</td><td class="neg">{{money .Report.Summary.TotalExpenses}}</td></tr>
  <tr><td>Net Cash Flow</td><td class="{{flowClass .Report.Summary.NetCashFlow}}">{{money .Report.Summary.NetCashFlow}}</td></tr>
  <tr><td>Cash on Hand</td><td class="{{flowClass .Report.Summary.CashOnHand}}">{{money .Report.Summary.CashOnHand}}</td></tr>
</table>
{{end}}

{{if .Sections.Ratios}}
<h2>Health Ratios</h2>
<table class="metrics">
  <tr><td>Days Cash on Hand</td><td>{{days .Report.Summary.DaysCashOnHand}}</td></tr>
  <tr><td>Program Expense Ratio</td><td>{{pct .Report.Summary.ProgramExpenseRatio}}</td></tr>
</table>
{{end}}

{{if and .Sections.Scenario .Report.HasScenario}}
<h2>Scenario Projection</h2>
<table class="metrics">
  <tr><td>Projected Income</td><td>{{money .Report.Scenario.ProjectedIncome}}</td></tr>
  <tr><td>Projected Expenses</td><td class="neg">{{money .Report.Scenario.ProjectedExpenses}}</td></tr>
  <tr><td>Scenario Net Cash Flow</td><td class="{{flowClass .Report.Scenario.ProjectedNet}}">{{money .Report.Scenario.ProjectedNet}}</td></tr>
</table>
{{end}}

{{if and .Sections.Budget .Report.HasBudget}}
<h2>Budget vs. Actuals</h2>
<table>
  <tr><th>Category</th><th>Budgeted</th><th>Actual</th><th>Variance</th></tr>
  {{range .Report.Budget}}
  <tr>
    <td>{{.Category}}</td>
    <td>{{money .Budgeted}}</td>
    <td>{{money .Actual}}</td>
    <td{{if .Over}} class="neg"{{end}}>{{money .Variance}}</td>
  </tr>
  {{end}}
  {{with .Report.BudgetSum}}
  <tr>
    <th>Total</th>
    <th>{{money .TotalBudgeted}}</th>
    <th>{{money .TotalActual}}</th>
    <th>{{money .TotalVariance}}</th>
  </tr>
  {{end}}
</table>
{{end}}

{{if and .Sections.Mortgage .Report.HasMortgage}}
<h2>Mortgage Portfolio</h2>
<table>
  <tr><th>Borrower</th><th>Loan ID</th><th>Balance</th><th>Due Date</th><th>Days Late</th><th>Status</th></tr>
  {{range .Report.Mortgage.Loans}}
  <tr>
    <td>{{.Borrower}}</td>
    <td>{{.LoanID}}</td>
    <td>{{money .Balance}}</td>
    <td>{{shortDate .DueDate}}</td>
    <td>{{daysLate .DaysLate}}</td>
    <td{{if .IsDelinquent}} class="neg"{{end}}>{{if .IsDelinquent}}Delinquent{{else}}Current{{end}}</td>
  </tr>
  {{end}}
</table>
<p>Outstanding balance {{money .Report.Mortgage.TotalOutstandingBalance}} across {{.Report.Mortgage.LoanCount}} loans, {{.Report.Mortgage.DelinquentCount}} delinquent.</p>
{{end}}

{{if and .Sections.Notes .Report.Notes}}
<h2>Notes</h2>
<p class="notes">{{.Report.Notes}}</p>
{{end}}

{{if .Sections.SignatureBlock}}
<div class="sigline">
  {{with .Report.Preparer}}{{.}}{{else}}Prepared by{{end}}<br>
  <span class="muted">{{date .Report.GeneratedAt}}</span>
</div>
{{end}}
</body>
</html>
`

type templateData struct {
	Report   model.ReportModel
	Sections model.SectionConfig
}

// RenderHTML renders the report as a self-contained HTML document,
// honoring the section toggles.
func RenderHTML(report model.ReportModel, sections model.SectionConfig) (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, templateData{Report: report, Sections: sections}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
