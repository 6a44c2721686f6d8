package sensitivity

// TVFunc computes a terminal value from the final-year cash flow, a
// terminal growth rate, and a discount rate. Passing the terminal
// value policy in as a closure keeps the grid math independent of the
// chosen terminal value method.
type TVFunc func(lastFCF, growth, discountRate float64) float64

// MatrixCell is one (growth, dcf) evaluation inside a matrix row.
type MatrixCell struct {
	Growth float64 `json:"growth"`
	DCF    float64 `json:"dcf"`
}

// MatrixRow holds every growth evaluation for one discount rate.
type MatrixRow struct {
	WACC   float64      `json:"wacc"`
	Values []MatrixCell `json:"values"`
}

// ImpactType selects how a tornado variable perturbs the valuation.
type ImpactType string

const (
	ImpactFCF    ImpactType = "fcf"    // scales the whole FCF series
	ImpactWACC   ImpactType = "wacc"   // substitutes the discount rate
	ImpactGrowth ImpactType = "growth" // substitutes terminal growth
)

// VariableImpact describes the low/high flex of one tornado variable.
// For fcf the bounds are multipliers; for wacc and growth they are
// the substituted rates themselves.
type VariableImpact struct {
	Variable string
	Low      float64
	High     float64
	Type     ImpactType
}

// TornadoEntry is the DCF value under the low and high flex of one
// variable, with every other input held at base.
type TornadoEntry struct {
	Variable string  `json:"variable"`
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Base     float64 `json:"base"`
}
