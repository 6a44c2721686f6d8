package valuation

// BuildUpInput holds the WACC build-up parameters. Rates and weights
// arrive as whole percents (e.g. 4.5 for 4.5%) except TaxRate, which
// is a decimal fraction.
type BuildUpInput struct {
	RiskFreeRate     float64
	Beta             float64
	MarketPremium    float64
	CostOfDebt       float64
	TaxRate          float64
	EquityPct        float64
	DebtPct          float64
	CostOfEquityOnly bool
}

// BuildUpResult reports the intermediate build-up components in
// percent and the final discount rate as a decimal.
type BuildUpResult struct {
	CostOfEquity       float64
	AfterTaxCostOfDebt float64
	WACC               float64
	DiscountRate       float64
}

// BuildUp derives a discount rate from CAPM-style build-up inputs.
//
// FORMULA: CoE  = rf + beta × MRP
//
//	WACC = E% × CoE + D% × CoD × (1 - t)
//
// When CostOfEquityOnly is set the discount rate is the cost of
// equity alone (useful for all-equity small businesses).
func BuildUp(in BuildUpInput) BuildUpResult {
	costOfEquity := in.RiskFreeRate + in.Beta*in.MarketPremium
	afterTaxCostOfDebt := in.CostOfDebt * (1 - in.TaxRate)
	wacc := in.EquityPct/100*costOfEquity + in.DebtPct/100*afterTaxCostOfDebt

	discountRate := wacc / 100
	if in.CostOfEquityOnly {
		discountRate = costOfEquity / 100
	}
	return BuildUpResult{
		CostOfEquity:       costOfEquity,
		AfterTaxCostOfDebt: afterTaxCostOfDebt,
		WACC:               wacc,
		DiscountRate:       discountRate,
	}
}
