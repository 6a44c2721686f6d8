package valuation

// TVMethod selects how the terminal value is derived.
type TVMethod string

const (
	TVPerpetuity  TVMethod = "perpetuity"
	TVExitMultip  TVMethod = "exit-multiple"
	TVLiquidation TVMethod = "liquidation"
	TVNone        TVMethod = "none"
)

// TerminalValueInput carries everything the terminal value methods
// might need. Only the fields relevant to the chosen method are read.
type TerminalValueInput struct {
	Method         TVMethod
	FinalFCF       float64 // last explicit forecast year FCF
	DiscountRate   float64
	TerminalGrowth float64
	Metric         float64 // exit-multiple base (EBITDA, revenue, ...)
	Multiple       float64
	CustomValue    float64 // liquidation / custom terminal value
}

// DCFInput bundles the explicit forecast cash flows with the discount
// and terminal assumptions for a small-business DCF.
type DCFInput struct {
	FreeCashFlows  []float64
	DiscountRate   float64
	TerminalGrowth float64
	Terminal       TerminalValueInput
}

// DCFOutput is the result of a full DCF run.
type DCFOutput struct {
	DCFValue      float64
	TerminalValue float64
	TVYear        int
}
