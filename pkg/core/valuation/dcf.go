// Package valuation contains the discounted cash flow toolkit for
// small-business forecasts: terminal value, DCF, NPV, IRR, payback
// and owner ROI. All functions are pure and safe for concurrent use.
package valuation

import "math"

// TerminalValue computes the terminal value under the configured
// method. An unknown method yields 0.
//
// FORMULA (perpetuity): TV = FCF_n × (1 + g) / (r - g)
// Where:
//
//	FCF_n = final explicit-year free cash flow
//	g     = terminal growth rate
//	r     = discount rate
//
// The Gordon model blows up as r approaches g, so the perpetuity
// branch requires r - g > 0.001 and returns 0 otherwise.
func TerminalValue(in TerminalValueInput) float64 {
	switch in.Method {
	case TVPerpetuity:
		if in.DiscountRate-in.TerminalGrowth > 0.001 {
			return in.FinalFCF * (1 + in.TerminalGrowth) / (in.DiscountRate - in.TerminalGrowth)
		}
		return 0
	case TVExitMultip:
		return in.Metric * in.Multiple
	case TVLiquidation:
		return in.CustomValue
	default:
		return 0
	}
}

// DCFValue discounts an explicit free-cash-flow series plus an
// optional terminal value. Flows are one-indexed: the first flow
// lands at the end of year 1.
//
// FORMULA: DCF = Σ_{t=1..n} FCF_t / (1+r)^t + TV / (1+r)^tvYear
//
// A tvYear of 0 places the terminal value at the end of the explicit
// series.
func DCFValue(freeCashFlows []float64, discountRate, terminalValue float64, tvYear int) float64 {
	dcf := 0.0
	for t, fcf := range freeCashFlows {
		dcf += fcf / math.Pow(1+discountRate, float64(t+1))
	}
	if terminalValue != 0 {
		if tvYear <= 0 {
			tvYear = len(freeCashFlows)
		}
		dcf += terminalValue / math.Pow(1+discountRate, float64(tvYear))
	}
	return dcf
}

// NPV is the net present value of a cash-flow series whose first
// element occurs at t=0 (undiscounted). This zero-indexing is the
// conventional treatment of an upfront outlay and intentionally
// differs from DCFValue.
//
// FORMULA: NPV = Σ_{t=0..n} CF_t / (1+r)^t
func NPV(cashFlows []float64, discountRate float64) float64 {
	npv := 0.0
	for t, cf := range cashFlows {
		npv += cf / math.Pow(1+discountRate, float64(t))
	}
	return npv
}

// IRR solves NPV(rate) = 0 by Newton-Raphson from a 10% guess. The
// second return reports convergence; on a flat derivative or
// iteration cap the last estimate is returned with ok=false, so
// callers should treat an unconverged IRR as approximate.
func IRR(cashFlows []float64) (float64, bool) {
	const (
		guess   = 0.1
		maxIter = 100
		tol     = 1e-6
	)
	rate := guess
	for i := 0; i < maxIter; i++ {
		npv := 0.0
		dNPV := 0.0
		for t, cf := range cashFlows {
			npv += cf / math.Pow(1+rate, float64(t))
			dNPV += -float64(t) * cf / math.Pow(1+rate, float64(t+1))
		}
		if math.Abs(npv) < tol {
			return rate, true
		}
		if dNPV == 0 {
			break
		}
		rate -= npv / dNPV
	}
	return rate, false
}

// PaybackPeriod walks the cumulative cash flow and returns the
// fractional number of years after the initial outlay at which it
// turns non-negative, interpolating linearly within the crossing
// year. ok is false when the flows never recover.
func PaybackPeriod(cashFlows []float64) (float64, bool) {
	cumulative := 0.0
	for i, cf := range cashFlows {
		prev := cumulative
		cumulative += cf
		if prev < 0 && cumulative >= 0 {
			if cf != 0 {
				return float64(i-1) - prev/cf, true
			}
			return float64(i - 1), true
		}
	}
	return 0, false
}

// OwnerROI is the total return on everything the owner has put in.
//
// FORMULA: ROI = (Σ returns - Σ investments) / Σ investments
func OwnerROI(ownerInvestments, ownerReturns []float64) float64 {
	totalInvested := 0.0
	for _, v := range ownerInvestments {
		totalInvested += v
	}
	if totalInvested == 0 {
		return 0
	}
	totalReturned := 0.0
	for _, v := range ownerReturns {
		totalReturned += v
	}
	return (totalReturned - totalInvested) / totalInvested
}
