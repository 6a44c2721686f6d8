// Package depreciation computes per-asset annual depreciation
// schedules under the four standard book methods.
package depreciation

import "time"

// StraightLine spreads (cost - salvage) evenly over the useful life.
//
// FORMULA: d_k = (C - S) / L
func StraightLine(cost float64, usefulLife int, salvage float64) []float64 {
	if usefulLife <= 0 {
		return nil
	}
	annual := (cost - salvage) / float64(usefulLife)
	sched := make([]float64, usefulLife)
	for i := range sched {
		sched[i] = annual
	}
	return sched
}

// DoubleDeclining applies twice the straight-line rate to the opening
// book value each year, never depreciating below salvage. Once book
// value reaches salvage the remaining years are zero.
//
// FORMULA: d_k = book_k × (2 / L), clamped so book_k - d_k ≥ S
func DoubleDeclining(cost float64, usefulLife int, salvage float64) []float64 {
	if usefulLife <= 0 {
		return nil
	}
	rate := 2 / float64(usefulLife)
	book := cost
	sched := make([]float64, 0, usefulLife)
	for year := 0; year < usefulLife; year++ {
		d := book * rate
		if book-d < salvage {
			d = book - salvage
		}
		if d < 0 {
			d = 0
		}
		sched = append(sched, d)
		book -= d
		if book <= salvage {
			break
		}
	}
	for len(sched) < usefulLife {
		sched = append(sched, 0)
	}
	return sched
}

// SumOfYearsDigits front-loads depreciation by weighting each year by
// its remaining life over the digit sum L(L+1)/2.
//
// FORMULA: d_k = (L - k + 1) / (L(L+1)/2) × (C - S), k 1-indexed
func SumOfYearsDigits(cost float64, usefulLife int, salvage float64) []float64 {
	if usefulLife <= 0 {
		return nil
	}
	digitSum := float64(usefulLife*(usefulLife+1)) / 2
	sched := make([]float64, usefulLife)
	for year := 0; year < usefulLife; year++ {
		remaining := float64(usefulLife - year)
		sched[year] = remaining / digitSum * (cost - salvage)
	}
	return sched
}

// UnitsOfProduction depreciates in proportion to actual usage. When
// lifetime units or the usage schedule are missing the whole schedule
// is zero; depreciation then simply never accrues for the asset.
//
// FORMULA: d_k = (C - S) / totalUnits × units_k
func UnitsOfProduction(cost, totalUnits float64, unitsPerYear []float64, salvage float64) []float64 {
	sched := make([]float64, len(unitsPerYear))
	if totalUnits == 0 || len(unitsPerYear) == 0 {
		return sched
	}
	perUnit := (cost - salvage) / totalUnits
	for i, u := range unitsPerYear {
		sched[i] = perUnit * u
	}
	return sched
}

// PartialYearFraction is the share of the first fiscal year an asset
// was held, from its purchase month and the fiscal-year start month.
func PartialYearFraction(purchaseMonth, fiscalMonth time.Month) float64 {
	var monthsHeld int
	if purchaseMonth >= fiscalMonth {
		monthsHeld = 12 - (int(purchaseMonth) - int(fiscalMonth))
	} else {
		monthsHeld = int(fiscalMonth) - int(purchaseMonth)
	}
	frac := float64(monthsHeld) / 12
	if frac > 1 {
		frac = 1
	}
	if frac < 0 {
		frac = 0
	}
	return frac
}

// Schedule dispatches on the asset's method and applies the
// first-period partial-year scaling (except units-of-production,
// which already tracks actual usage).
func Schedule(asset AssetInput) []float64 {
	var sched []float64
	switch asset.Method {
	case MethodDoubleDeclining:
		sched = DoubleDeclining(asset.Cost, asset.UsefulLife, asset.Salvage)
	case MethodSumOfYearsDigits:
		sched = SumOfYearsDigits(asset.Cost, asset.UsefulLife, asset.Salvage)
	case MethodUnitsOfProduction:
		return UnitsOfProduction(asset.Cost, asset.TotalUnits, asset.UnitsPerYear, asset.Salvage)
	default:
		sched = StraightLine(asset.Cost, asset.UsefulLife, asset.Salvage)
	}
	if len(sched) > 0 && asset.FirstYearFraction > 0 {
		sched[0] *= asset.FirstYearFraction
	}
	return sched
}
