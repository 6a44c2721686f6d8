package models

// ValuationSummary is the headline valuation block of a calculation.
// IRR and PaybackPeriod are nil when undefined (no sign change, or
// payback never occurs).
type ValuationSummary struct {
	EnterpriseValue float64  `json:"enterprise_value"`
	EquityValue     float64  `json:"equity_value"`
	IRR             *float64 `json:"irr"`
	NPV             float64  `json:"npv"`
	PaybackPeriod   *float64 `json:"payback_period"`
}

// DCFDetail echoes the discounting inputs alongside the result so the
// client can re-render assumptions without a second request.
type DCFDetail struct {
	DCFValue       float64   `json:"dcf_value"`
	DiscountRate   float64   `json:"discount_rate"`
	TerminalValue  float64   `json:"terminal_value"`
	TerminalGrowth float64   `json:"terminal_growth"`
	FreeCashFlows  []float64 `json:"free_cash_flows"`
	TVMethod       string    `json:"tv_method"`
	TVMetric       string    `json:"tv_metric"`
	TVMultiple     float64   `json:"tv_multiple"`
	TVCustomValue  float64   `json:"tv_custom_value"`
	TVYear         int       `json:"tv_year"`
}
