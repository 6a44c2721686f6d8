// Package montecarlo estimates the NPV distribution of a forecast by
// resampling the discount rate and terminal growth within caller
// supplied ranges.
package montecarlo

import (
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"smb_forecast/pkg/core/valuation"
)

// SimulationInput configures one simulation batch. Ranges are
// [low, high] uniform sampling bounds. Runs defaults to 1000 when
// non-positive. A zero Seed draws one from the clock; fixing it makes
// the histogram reproducible.
type SimulationInput struct {
	FreeCashFlows       []float64
	DiscountRateRange   [2]float64
	TerminalGrowthRange [2]float64
	Runs                int
	Seed                int64
}

// Bin is one histogram bucket of the NPV distribution.
type Bin struct {
	Bin   string `json:"bin"`
	Count int    `json:"count"`
}

var (
	binEdges  = []float64{0, 100_000, 200_000, 300_000, 400_000, 500_000}
	binLabels = []string{"<0", "0-100k", "100k-200k", "200k-300k", "300k-400k", "400k-500k", ">500k"}
)

// Simulate runs the trials across a worker pool and returns the
// fixed-bin NPV histogram. Trials are independent; each worker owns a
// derived RNG and a local count slice, merged after the group waits,
// so counts always sum to Runs.
func Simulate(input SimulationInput) []Bin {
	runs := input.Runs
	if runs <= 0 {
		runs = 1000
	}
	seed := input.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	lastFCF := 0.0
	if len(input.FreeCashFlows) > 0 {
		lastFCF = input.FreeCashFlows[len(input.FreeCashFlows)-1]
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > runs {
		workers = runs
	}
	perWorker := runs / workers
	remainder := runs % workers

	counts := make([][]int, workers)
	var g errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			local := make([]int, len(binLabels))
			for i := 0; i < n; i++ {
				dr := uniform(rng, input.DiscountRateRange)
				tg := uniform(rng, input.TerminalGrowthRange)
				tv := valuation.TerminalValue(valuation.TerminalValueInput{
					Method:         valuation.TVPerpetuity,
					FinalFCF:       lastFCF,
					DiscountRate:   dr,
					TerminalGrowth: tg,
				})
				flows := append(append([]float64{}, input.FreeCashFlows...), tv)
				npv := valuation.NPV(flows, dr)
				local[binIndex(npv)]++
			}
			counts[w] = local
			return nil
		})
	}
	g.Wait()

	histogram := make([]Bin, len(binLabels))
	for i, label := range binLabels {
		total := 0
		for w := range counts {
			total += counts[w][i]
		}
		histogram[i] = Bin{Bin: label, Count: total}
	}
	return histogram
}

func uniform(rng *rand.Rand, bounds [2]float64) float64 {
	return bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
}

func binIndex(npv float64) int {
	for i, edge := range binEdges {
		if npv < edge {
			return i
		}
	}
	return len(binEdges)
}
