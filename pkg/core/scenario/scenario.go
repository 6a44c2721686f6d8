// Package scenario applies named percentage deltas to a base
// forecast and recomputes valuation KPIs from the adjusted figures.
package scenario

import (
	"math"
	"sort"

	"smb_forecast/pkg/core/sensitivity"
	"smb_forecast/pkg/core/valuation"
	"smb_forecast/pkg/models"
)

// Matrix grid used by the combined analysis view.
var (
	analysisWACCRange   = []float64{0.07, 0.08, 0.09, 0.10, 0.11, 0.12}
	analysisGrowthRange = []float64{0.01, 0.02, 0.03, 0.04}
)

// Apply produces the adjusted forecast for one scenario. Revenue
// growth compounds off the previous adjusted year; a zero delta
// leaves the base revenue path untouched, so a zero-valued scenario
// reproduces the base forecast exactly. Deltas arrive as whole
// percents.
func Apply(base []models.ForecastYear, v Values) []models.ForecastYear {
	if len(base) == 0 {
		return []models.ForecastYear{}
	}

	revenueGrowth := v.RevenueGrowth / 100
	marginShift := v.OperatingMargin / 100
	capexShift := v.Capex / 100
	workingCapShift := v.WorkingCapitalDays / 100
	taxShift := v.TaxRate / 100

	adjusted := make([]models.ForecastYear, 0, len(base))
	for i, year := range base {
		if i > 0 && revenueGrowth != 0 {
			year.Revenue = adjusted[i-1].Revenue * (1 + revenueGrowth)
		}

		if year.Revenue > 0 {
			year.OperatingExpenses = math.Max(0, year.OperatingExpenses*(1-marginShift))
			year.EBIT = year.Revenue - year.COGS - year.OperatingExpenses
		}

		year.CapEx *= 1 + capexShift
		year.Inventory *= 1 + workingCapShift
		year.AccountsReceivable *= 1 + workingCapShift

		// The builder always emits a tax rate, so 0 means untaxed, not
		// missing. Only the shift is applied.
		year.TaxRate = math.Max(0, math.Min(1, year.TaxRate+taxShift))

		year.EBT = year.EBIT + year.OtherIncome - year.InterestExpense
		year.TaxExpense = year.EBT * year.TaxRate
		year.NetIncome = year.EBT - year.TaxExpense
		year.FreeCashFlow = year.NetIncome + year.Depreciation - year.CapEx - year.ChangeInWorkingCapital

		adjusted = append(adjusted, year)
	}
	return adjusted
}

// ComputeKPIs applies the scenario and derives its valuation metrics.
// The scenario's wacc delta scales the base discount rate in percent.
// NPV here is undiscounted-terminal: only the explicit forecast flows
// count, so scenarios stay comparable without a terminal-value guess.
func ComputeKPIs(base []models.ForecastYear, v Values, baseDiscountRate, baseTerminalGrowth float64) KPIs {
	adjusted := Apply(base, v)

	fcf := make([]float64, len(adjusted))
	for i, year := range adjusted {
		fcf[i] = year.FreeCashFlow
	}

	adjustedRate := baseDiscountRate * (1 + v.WACC/100)

	npv := valuation.NPV(fcf, adjustedRate)

	// A forecast whose first year is already cash positive has no sign
	// change, so IRR is solved against a flipped initial flow.
	irrFlows := fcf
	if len(fcf) > 0 && fcf[0] > 0 {
		irrFlows = append([]float64{-math.Abs(fcf[0])}, fcf[1:]...)
	}
	irrRate, _ := valuation.IRR(irrFlows)
	irr := &irrRate

	var payback *float64
	if p, ok := valuation.PaybackPeriod(fcf); ok {
		payback = &p
	}

	cumulative := 0.0
	for _, cf := range fcf {
		cumulative += cf
	}

	kpis := KPIs{
		NPV:              npv,
		IRR:              irr,
		PaybackPeriod:    payback,
		CumulativeFCF:    cumulative,
		FreeCashFlows:    fcf,
		AdjustedForecast: adjusted,
	}
	if len(adjusted) > 0 {
		first := adjusted[0]
		kpis.Year1Revenue = first.Revenue
		if len(adjusted) >= 5 {
			kpis.Year5Revenue = adjusted[len(adjusted)-1].Revenue
		}
		if first.Revenue > 0 {
			kpis.Year1GrossMargin = first.GrossProfit / first.Revenue * 100
			kpis.Year1NetMargin = first.NetIncome / first.Revenue * 100
		}
	}
	return kpis
}

// Comparison evaluates the base case plus the named scenario configs
// (conventionally "best" and "worst") against one base forecast.
func Comparison(base []models.ForecastYear, configs map[string]Values, baseDiscountRate, baseTerminalGrowth float64) map[string]KPIs {
	results := make(map[string]KPIs, len(configs)+1)
	results["base"] = ComputeKPIs(base, Values{}, baseDiscountRate, baseTerminalGrowth)
	for name, values := range configs {
		results[name] = ComputeKPIs(base, values, baseDiscountRate, baseTerminalGrowth)
	}
	return results
}

// Analysis sweeps each variable across its low/high range, ranks the
// resulting NPV swings for a tornado chart, and attaches the fixed
// discount-rate by terminal-growth matrix.
func Analysis(base []models.ForecastYear, ranges map[string]RangeConfig, baseDiscountRate, baseTerminalGrowth float64) AnalysisResult {
	baseKPIs := ComputeKPIs(base, Values{}, baseDiscountRate, baseTerminalGrowth)
	baseNPV := baseKPIs.NPV

	variables := make([]string, 0, len(ranges))
	for name := range ranges {
		variables = append(variables, name)
	}
	sort.Strings(variables)

	tornado := make([]RankedTornadoEntry, 0, len(variables))
	for _, name := range variables {
		rc := ranges[name]
		lowKPIs := ComputeKPIs(base, singleVariable(name, rc.Low), baseDiscountRate, baseTerminalGrowth)
		highKPIs := ComputeKPIs(base, singleVariable(name, rc.High), baseDiscountRate, baseTerminalGrowth)

		lowImpact, highImpact := 0.0, 0.0
		if baseNPV != 0 {
			lowImpact = (lowKPIs.NPV - baseNPV) / baseNPV * 100
			highImpact = (highKPIs.NPV - baseNPV) / baseNPV * 100
		}
		tornado = append(tornado, RankedTornadoEntry{
			Variable:   name,
			LowImpact:  lowImpact,
			HighImpact: highImpact,
			LowNPV:     lowKPIs.NPV,
			HighNPV:    highKPIs.NPV,
			BaseNPV:    baseNPV,
		})
	}
	sort.SliceStable(tornado, func(i, j int) bool {
		return math.Abs(tornado[i].HighImpact-tornado[i].LowImpact) > math.Abs(tornado[j].HighImpact-tornado[j].LowImpact)
	})

	matrix := sensitivity.Matrix(baseKPIs.FreeCashFlows, analysisWACCRange, analysisGrowthRange,
		func(lastFCF, growth, rate float64) float64 {
			return valuation.TerminalValue(valuation.TerminalValueInput{
				Method:         valuation.TVPerpetuity,
				FinalFCF:       lastFCF,
				DiscountRate:   rate,
				TerminalGrowth: growth,
			})
		})

	return AnalysisResult{TornadoData: tornado, SensitivityMatrix: matrix}
}

func singleVariable(name string, value float64) Values {
	var v Values
	switch name {
	case "revenueGrowth":
		v.RevenueGrowth = value
	case "operatingMargin":
		v.OperatingMargin = value
	case "capex":
		v.Capex = value
	case "workingCapitalDays":
		v.WorkingCapitalDays = value
	case "taxRate":
		v.TaxRate = value
	case "wacc":
		v.WACC = value
	case "terminalGrowth":
		v.TerminalGrowth = value
	}
	return v
}
