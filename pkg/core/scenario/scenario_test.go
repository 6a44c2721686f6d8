package scenario

import (
	"math"
	"testing"

	"smb_forecast/pkg/models"
)

// Hand-built two-year forecast whose stored fields satisfy the
// recomputation identities (EBIT = revenue - cogs - opex, etc.).
func baseForecast() []models.ForecastYear {
	years := []models.ForecastYear{
		{
			Year: "FY2025-26", Revenue: 200000, COGS: 80000, GrossProfit: 120000,
			OperatingExpenses: 70000, Depreciation: 10000, CapEx: 15000,
			Inventory: 20000, AccountsReceivable: 10000, ChangeInWorkingCapital: 5000,
			TaxRate: 0.25,
		},
		{
			Year: "FY2026-27", Revenue: 220000, COGS: 88000, GrossProfit: 132000,
			OperatingExpenses: 75000, Depreciation: 10000, CapEx: 15000,
			Inventory: 22000, AccountsReceivable: 11000, ChangeInWorkingCapital: 3000,
			TaxRate: 0.25,
		},
	}
	for i := range years {
		y := &years[i]
		y.EBIT = y.Revenue - y.COGS - y.OperatingExpenses
		y.EBITDA = y.EBIT + y.Depreciation
		y.EBT = y.EBIT + y.OtherIncome - y.InterestExpense
		y.TaxExpense = y.EBT * y.TaxRate
		y.NetIncome = y.EBT - y.TaxExpense
		y.FreeCashFlow = y.NetIncome + y.Depreciation - y.CapEx - y.ChangeInWorkingCapital
	}
	return years
}

func TestApplyZeroDeltaIsIdempotent(t *testing.T) {
	base := baseForecast()
	adjusted := Apply(base, Values{})
	if len(adjusted) != len(base) {
		t.Fatalf("Expected %d years, got %d", len(base), len(adjusted))
	}
	for i := range base {
		if math.Abs(adjusted[i].Revenue-base[i].Revenue) > 1e-9 {
			t.Errorf("Year %d revenue changed: %.2f vs %.2f", i, adjusted[i].Revenue, base[i].Revenue)
		}
		if math.Abs(adjusted[i].NetIncome-base[i].NetIncome) > 1e-9 {
			t.Errorf("Year %d net income changed: %.2f vs %.2f", i, adjusted[i].NetIncome, base[i].NetIncome)
		}
		if math.Abs(adjusted[i].FreeCashFlow-base[i].FreeCashFlow) > 1e-9 {
			t.Errorf("Year %d FCF changed: %.2f vs %.2f", i, adjusted[i].FreeCashFlow, base[i].FreeCashFlow)
		}
	}
}

func TestApplyZeroDeltaKeepsUntaxedForecast(t *testing.T) {
	// A 0% tax rate means untaxed, not missing: the zero-delta
	// scenario must not re-tax it.
	base := baseForecast()
	for i := range base {
		y := &base[i]
		y.TaxRate = 0
		y.TaxExpense = 0
		y.NetIncome = y.EBT
		y.FreeCashFlow = y.NetIncome + y.Depreciation - y.CapEx - y.ChangeInWorkingCapital
	}
	adjusted := Apply(base, Values{})
	for i := range base {
		if adjusted[i].TaxRate != 0 || adjusted[i].TaxExpense != 0 {
			t.Errorf("Year %d re-taxed: rate %.4f expense %.2f", i, adjusted[i].TaxRate, adjusted[i].TaxExpense)
		}
		if math.Abs(adjusted[i].NetIncome-base[i].NetIncome) > 1e-9 {
			t.Errorf("Year %d net income changed: %.2f vs %.2f", i, adjusted[i].NetIncome, base[i].NetIncome)
		}
		if math.Abs(adjusted[i].FreeCashFlow-base[i].FreeCashFlow) > 1e-9 {
			t.Errorf("Year %d FCF changed: %.2f vs %.2f", i, adjusted[i].FreeCashFlow, base[i].FreeCashFlow)
		}
	}
}

func TestApplyRevenueGrowthCompounds(t *testing.T) {
	base := baseForecast()
	adjusted := Apply(base, Values{RevenueGrowth: 10})
	// Year 1 keeps its base revenue; year 2 grows off the adjusted
	// prior year: 200000 * 1.10 = 220000.
	if math.Abs(adjusted[0].Revenue-200000) > 1e-9 {
		t.Errorf("Year 1 revenue should be unchanged, got %.2f", adjusted[0].Revenue)
	}
	if math.Abs(adjusted[1].Revenue-220000) > 1e-9 {
		t.Errorf("Year 2 revenue: expected 220000, got %.2f", adjusted[1].Revenue)
	}
}

func TestApplyOperatingMarginScalesOpex(t *testing.T) {
	base := baseForecast()
	adjusted := Apply(base, Values{OperatingMargin: 10})
	// opex 70000 * (1 - 0.10) = 63000, EBIT = 200000 - 80000 - 63000.
	if math.Abs(adjusted[0].OperatingExpenses-63000) > 1e-9 {
		t.Errorf("Expected opex 63000, got %.2f", adjusted[0].OperatingExpenses)
	}
	if math.Abs(adjusted[0].EBIT-57000) > 1e-9 {
		t.Errorf("Expected EBIT 57000, got %.2f", adjusted[0].EBIT)
	}
}

func TestApplyTaxRateClamped(t *testing.T) {
	base := baseForecast()
	up := Apply(base, Values{TaxRate: 200})
	if up[0].TaxRate != 1 {
		t.Errorf("Tax rate should clamp to 1, got %.4f", up[0].TaxRate)
	}
	down := Apply(base, Values{TaxRate: -200})
	if down[0].TaxRate != 0 {
		t.Errorf("Tax rate should clamp to 0, got %.4f", down[0].TaxRate)
	}
}

func TestApplyCapexAndWorkingCapital(t *testing.T) {
	base := baseForecast()
	adjusted := Apply(base, Values{Capex: 20, WorkingCapitalDays: 50})
	if math.Abs(adjusted[0].CapEx-18000) > 1e-9 {
		t.Errorf("Expected capex 18000, got %.2f", adjusted[0].CapEx)
	}
	if math.Abs(adjusted[0].Inventory-30000) > 1e-9 {
		t.Errorf("Expected inventory 30000, got %.2f", adjusted[0].Inventory)
	}
	if math.Abs(adjusted[0].AccountsReceivable-15000) > 1e-9 {
		t.Errorf("Expected AR 15000, got %.2f", adjusted[0].AccountsReceivable)
	}
}

func TestComputeKPIsBaseCase(t *testing.T) {
	base := baseForecast()
	kpis := ComputeKPIs(base, Values{}, 0.10, 0.02)

	if math.Abs(kpis.Year1Revenue-200000) > 1e-9 {
		t.Errorf("Expected year 1 revenue 200000, got %.2f", kpis.Year1Revenue)
	}
	// Only 2 forecast years: final-year revenue is not reported.
	if kpis.Year5Revenue != 0 {
		t.Errorf("Expected no year-5 revenue for a 2-year forecast, got %.2f", kpis.Year5Revenue)
	}
	// Gross margin 120000/200000 = 60%.
	if math.Abs(kpis.Year1GrossMargin-60) > 1e-6 {
		t.Errorf("Expected gross margin 60, got %.4f", kpis.Year1GrossMargin)
	}
	wantCumulative := base[0].FreeCashFlow + base[1].FreeCashFlow
	if math.Abs(kpis.CumulativeFCF-wantCumulative) > 1e-9 {
		t.Errorf("Expected cumulative FCF %.2f, got %.2f", wantCumulative, kpis.CumulativeFCF)
	}
	if kpis.IRR == nil {
		t.Error("Expected an IRR estimate")
	}
}

func TestComparisonIncludesBase(t *testing.T) {
	base := baseForecast()
	results := Comparison(base, map[string]Values{
		"best":  {RevenueGrowth: 15, OperatingMargin: 10},
		"worst": {RevenueGrowth: -10, OperatingMargin: -10},
	}, 0.10, 0.02)

	for _, name := range []string{"base", "best", "worst"} {
		if _, ok := results[name]; !ok {
			t.Fatalf("Missing scenario %q", name)
		}
	}
	if results["best"].NPV <= results["base"].NPV {
		t.Errorf("Best case NPV %.2f should exceed base %.2f", results["best"].NPV, results["base"].NPV)
	}
	if results["worst"].NPV >= results["base"].NPV {
		t.Errorf("Worst case NPV %.2f should trail base %.2f", results["worst"].NPV, results["base"].NPV)
	}
}

func TestAnalysisRankedByImpact(t *testing.T) {
	base := baseForecast()
	result := Analysis(base, map[string]RangeConfig{
		"revenueGrowth":   {Low: -20, High: 20},
		"operatingMargin": {Low: -5, High: 5},
		"wacc":            {Low: -10, High: 10},
	}, 0.10, 0.02)

	if len(result.TornadoData) != 3 {
		t.Fatalf("Expected 3 tornado entries, got %d", len(result.TornadoData))
	}
	for i := 1; i < len(result.TornadoData); i++ {
		prev := math.Abs(result.TornadoData[i-1].HighImpact - result.TornadoData[i-1].LowImpact)
		cur := math.Abs(result.TornadoData[i].HighImpact - result.TornadoData[i].LowImpact)
		if cur > prev+1e-9 {
			t.Errorf("Tornado not ranked by swing: %.4f before %.4f", prev, cur)
		}
	}
	if len(result.SensitivityMatrix) != 6 {
		t.Fatalf("Expected 6 matrix rows, got %d", len(result.SensitivityMatrix))
	}
	for _, row := range result.SensitivityMatrix {
		if len(row.Values) != 4 {
			t.Errorf("Expected 4 cells per row, got %d", len(row.Values))
		}
	}
}
