// Package amortization produces level-payment loan schedules.
package amortization

// Row is one payment period of an amortization table.
type Row struct {
	Period           int     `json:"period"`
	BeginningBalance float64 `json:"beginning_balance"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	EndingBalance    float64 `json:"ending_balance"`
}

// GenerateTable builds the full amortization table for a level-payment
// loan. With a zero rate the principal is split evenly across periods.
// The final row retires the remaining balance exactly so the table
// always ends at zero.
//
// FORMULA: pmt = P × r / (1 - (1+r)^-n)
// Where:
//
//	P = principal
//	r = annualRate / periodsPerYear
//	n = years × periodsPerYear
func GenerateTable(principal, annualRate float64, years, periodsPerYear int) []Row {
	nPeriods := years * periodsPerYear
	if nPeriods <= 0 || principal <= 0 {
		return []Row{}
	}
	periodRate := annualRate / float64(periodsPerYear)

	var payment float64
	if periodRate == 0 {
		payment = principal / float64(nPeriods)
	} else {
		pow := 1.0
		for i := 0; i < nPeriods; i++ {
			pow *= 1 + periodRate
		}
		payment = principal * periodRate * pow / (pow - 1)
	}

	table := make([]Row, 0, nPeriods)
	balance := principal
	for p := 1; p <= nPeriods; p++ {
		interest := balance * periodRate
		principalPaid := payment - interest
		rowPayment := payment
		if p == nPeriods {
			// Retire the loan exactly, absorbing float drift.
			principalPaid = balance
			rowPayment = balance + interest
		}
		table = append(table, Row{
			Period:           p,
			BeginningBalance: balance,
			Payment:          rowPayment,
			Interest:         interest,
			Principal:        principalPaid,
			EndingBalance:    balance - principalPaid,
		})
		balance -= principalPaid
	}
	return table
}
