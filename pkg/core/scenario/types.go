package scenario

import (
	"smb_forecast/pkg/core/sensitivity"
	"smb_forecast/pkg/models"
)

// Values are the percentage deltas of one named scenario, as sent by
// clients (a value of 10 means +10%). A zero value leaves the
// corresponding base figure untouched.
type Values struct {
	RevenueGrowth      float64 `json:"revenueGrowth"`
	OperatingMargin    float64 `json:"operatingMargin"`
	Capex              float64 `json:"capex"`
	WorkingCapitalDays float64 `json:"workingCapitalDays"`
	TaxRate            float64 `json:"taxRate"`
	WACC               float64 `json:"wacc"`
	TerminalGrowth     float64 `json:"terminalGrowth"`
}

// KPIs are the valuation metrics of one scenario. IRR and
// PaybackPeriod are nil when undefined so clients can render "N/A".
type KPIs struct {
	NPV              float64               `json:"npv"`
	IRR              *float64              `json:"irr"`
	PaybackPeriod    *float64              `json:"payback_period"`
	CumulativeFCF    float64               `json:"cumulative_fcf"`
	Year1Revenue     float64               `json:"year_1_revenue"`
	Year5Revenue     float64               `json:"year_5_revenue"`
	Year1GrossMargin float64               `json:"year_1_gross_margin"`
	Year1NetMargin   float64               `json:"year_1_net_margin"`
	FreeCashFlows    []float64             `json:"free_cash_flows"`
	AdjustedForecast []models.ForecastYear `json:"adjusted_forecast"`
}

// RangeConfig bounds one variable in a sensitivity sweep.
type RangeConfig struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// RankedTornadoEntry is one variable's NPV swing, with impacts
// expressed as percent deviation from the base NPV.
type RankedTornadoEntry struct {
	Variable   string  `json:"variable"`
	LowImpact  float64 `json:"low_impact"`
	HighImpact float64 `json:"high_impact"`
	LowNPV     float64 `json:"low_npv"`
	HighNPV    float64 `json:"high_npv"`
	BaseNPV    float64 `json:"base_npv"`
}

// AnalysisResult bundles the ranked tornado with the fixed-grid
// discount-rate by growth matrix.
type AnalysisResult struct {
	TornadoData       []RankedTornadoEntry    `json:"tornado_data"`
	SensitivityMatrix []sensitivity.MatrixRow `json:"sensitivity_matrix"`
}
