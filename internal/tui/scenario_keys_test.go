package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fundsight/fundsight/internal/config"
	"github.com/fundsight/fundsight/internal/model"
	"github.com/fundsight/fundsight/internal/pipeline"
)

func testApp() App {
	rec := func(date string, category string, amount int64) model.TransactionRecord {
		d, _ := time.Parse("2006-01-02", date)
		return model.TransactionRecord{
			Date:     d,
			Category: category,
			Amount:   decimal.NewFromInt(amount),
		}
	}

	a := NewApp(config.DefaultConfig(), false, false)
	a.loaded = true
	a.result = &pipeline.LoadResult{
		Ledger: model.Ledger{Records: []model.TransactionRecord{
			rec("2025-01-05", "Donations", 10000),
			rec("2025-01-10", "Salaries & Wages", -4000),
			rec("2025-02-12", "Program Materials", -2500),
			rec("2025-02-20", "Rent", -1500),
		}},
	}
	a.activeTab = tabScenario
	a.recompute()
	return a
}

func TestScenarioProjectionRenders(t *testing.T) {
	a := testApp()
	a.width = 120
	a.height = 40
	_, a = a.updateScenarioKeys("l") // +5% donations

	out := a.renderScenarioProjection()
	for _, want := range []string{"Baseline", "Projected", "Delta", "Income", "Expenses", "Net", "+$500.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("projection output missing %q", want)
		}
	}
}

func TestScenarioAdjustKeysRecompute(t *testing.T) {
	a := testApp()

	if !a.scen.params.IsZero() {
		t.Fatal("params should start neutral")
	}
	baseline := a.scenario.ProjectedNet

	handled, a := a.updateScenarioKeys("l")
	if !handled {
		t.Fatal("l should be consumed by the scenario tab")
	}
	if a.scen.params.DonationChangePct != 5 {
		t.Fatalf("DonationChangePct = %v, want 5", a.scen.params.DonationChangePct)
	}
	if !a.scenario.ProjectedNet.GreaterThan(baseline) {
		t.Fatalf("projected net %s should rise with donations up 5%%", a.scenario.ProjectedNet)
	}

	// Reset single field
	_, a = a.updateScenarioKeys("0")
	if a.scen.params.DonationChangePct != 0 {
		t.Fatalf("0 should reset the selected field, got %v", a.scen.params.DonationChangePct)
	}
	if !a.scenario.ProjectedNet.Equal(baseline) {
		t.Fatalf("neutral params should reproduce baseline, got %s want %s",
			a.scenario.ProjectedNet, baseline)
	}
}

func TestScenarioOneTimeCostNeverNegative(t *testing.T) {
	a := testApp()
	a.scen.cursor = scenFieldOneTime

	_, a = a.updateScenarioKeys("h")
	if a.scen.params.OneTimeCost.IsNegative() {
		t.Fatalf("one-time cost went negative: %s", a.scen.params.OneTimeCost)
	}

	_, a = a.updateScenarioKeys("l")
	if !a.scen.params.OneTimeCost.Equal(decimal.NewFromInt(oneTimeStep)) {
		t.Fatalf("one-time cost = %s, want %d", a.scen.params.OneTimeCost, oneTimeStep)
	}
	if a.scenarioErr != nil {
		t.Fatalf("unexpected scenario error: %v", a.scenarioErr)
	}
}

func TestScenarioResetAll(t *testing.T) {
	a := testApp()

	_, a = a.updateScenarioKeys("L")
	a.scen.cursor = scenFieldPersonnel
	_, a = a.updateScenarioKeys("H")

	_, a = a.updateScenarioKeys("z")
	if !a.scen.params.IsZero() {
		t.Fatalf("z should reset all params, got %+v", a.scen.params)
	}
}

func TestMoveCursorClampsToData(t *testing.T) {
	a := testApp()
	a.activeTab = tabBudget

	a = a.moveCursor(-1)
	if a.budget.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 with no budget lines", a.budget.cursor)
	}

	a.budgetLines = []model.BudgetLine{{Category: "Rent"}, {Category: "Salaries"}}
	a = a.moveCursor(1)
	a = a.moveCursor(1)
	a = a.moveCursor(1)
	if a.budget.cursor != 1 {
		t.Fatalf("cursor = %d, want clamp at 1", a.budget.cursor)
	}
}
