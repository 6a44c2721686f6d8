// Package sensitivity builds the two standard what-if views over a
// DCF valuation: the discount-rate by terminal-growth matrix and the
// single-variable tornado.
package sensitivity

import (
	"smb_forecast/pkg/core/valuation"

	"golang.org/x/sync/errgroup"
)

// Matrix evaluates the DCF value over the Cartesian product of
// discount rates and terminal growth rates. Rows are computed
// concurrently; cells share only read-only inputs so no
// synchronization beyond the group wait is needed. Row order follows
// waccRange and cell order follows growthRange.
func Matrix(freeCashFlows, waccRange, growthRange []float64, tvFunc TVFunc) []MatrixRow {
	lastFCF := 0.0
	if len(freeCashFlows) > 0 {
		lastFCF = freeCashFlows[len(freeCashFlows)-1]
	}

	matrix := make([]MatrixRow, len(waccRange))
	var g errgroup.Group
	for i, wacc := range waccRange {
		i, wacc := i, wacc
		g.Go(func() error {
			row := MatrixRow{WACC: wacc, Values: make([]MatrixCell, 0, len(growthRange))}
			for _, growth := range growthRange {
				tv := tvFunc(lastFCF, growth, wacc)
				dcf := valuation.DCFValue(freeCashFlows, wacc, tv, 0)
				row.Values = append(row.Values, MatrixCell{Growth: growth, DCF: dcf})
			}
			matrix[i] = row
			return nil
		})
	}
	g.Wait()
	return matrix
}

// Tornado computes the DCF value under the low and high flex of each
// variable in turn, holding everything else at base. Entries come
// back in input order; ranking by swing is the caller's concern.
func Tornado(freeCashFlows []float64, baseRate, baseGrowth float64, impacts []VariableImpact, tvFunc TVFunc) []TornadoEntry {
	lastFCF := 0.0
	if len(freeCashFlows) > 0 {
		lastFCF = freeCashFlows[len(freeCashFlows)-1]
	}
	baseTV := tvFunc(lastFCF, baseGrowth, baseRate)
	baseDCF := valuation.DCFValue(freeCashFlows, baseRate, baseTV, 0)

	entries := make([]TornadoEntry, 0, len(impacts))
	for _, impact := range impacts {
		var dcfLow, dcfHigh float64
		switch impact.Type {
		case ImpactFCF:
			fcfLow := scale(freeCashFlows, impact.Low)
			fcfHigh := scale(freeCashFlows, impact.High)
			lastLow, lastHigh := 0.0, 0.0
			if n := len(freeCashFlows); n > 0 {
				lastLow = fcfLow[n-1]
				lastHigh = fcfHigh[n-1]
			}
			dcfLow = valuation.DCFValue(fcfLow, baseRate, tvFunc(lastLow, baseGrowth, baseRate), 0)
			dcfHigh = valuation.DCFValue(fcfHigh, baseRate, tvFunc(lastHigh, baseGrowth, baseRate), 0)
		case ImpactWACC:
			dcfLow = valuation.DCFValue(freeCashFlows, impact.Low, tvFunc(lastFCF, baseGrowth, impact.Low), 0)
			dcfHigh = valuation.DCFValue(freeCashFlows, impact.High, tvFunc(lastFCF, baseGrowth, impact.High), 0)
		case ImpactGrowth:
			dcfLow = valuation.DCFValue(freeCashFlows, baseRate, tvFunc(lastFCF, impact.Low, baseRate), 0)
			dcfHigh = valuation.DCFValue(freeCashFlows, baseRate, tvFunc(lastFCF, impact.High, baseRate), 0)
		default:
			dcfLow, dcfHigh = baseDCF, baseDCF
		}
		entries = append(entries, TornadoEntry{
			Variable: impact.Variable,
			Low:      dcfLow,
			High:     dcfHigh,
			Base:     baseDCF,
		})
	}
	return entries
}

func scale(series []float64, factor float64) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v * factor
	}
	return out
}
