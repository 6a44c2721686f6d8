package montecarlo

import (
	"reflect"
	"testing"
)

func TestSimulateCountsSumToRuns(t *testing.T) {
	hist := Simulate(SimulationInput{
		FreeCashFlows:       []float64{50000, 55000, 60000},
		DiscountRateRange:   [2]float64{0.08, 0.12},
		TerminalGrowthRange: [2]float64{0.01, 0.03},
		Runs:                5000,
		Seed:                42,
	})
	if len(hist) != 7 {
		t.Fatalf("Expected 7 bins, got %d", len(hist))
	}
	total := 0
	for _, b := range hist {
		if b.Count < 0 {
			t.Errorf("Bin %s has negative count %d", b.Bin, b.Count)
		}
		total += b.Count
	}
	if total != 5000 {
		t.Errorf("Counts should sum to 5000, got %d", total)
	}
}

func TestSimulateDeterministicWithSeed(t *testing.T) {
	input := SimulationInput{
		FreeCashFlows:       []float64{40000, 45000},
		DiscountRateRange:   [2]float64{0.09, 0.11},
		TerminalGrowthRange: [2]float64{0.015, 0.025},
		Runs:                2000,
		Seed:                7,
	}
	a := Simulate(input)
	b := Simulate(input)
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed should produce identical histograms")
	}
}

func TestSimulateDefaultsRuns(t *testing.T) {
	hist := Simulate(SimulationInput{
		FreeCashFlows:       []float64{10000},
		DiscountRateRange:   [2]float64{0.08, 0.12},
		TerminalGrowthRange: [2]float64{0.01, 0.03},
		Seed:                1,
	})
	total := 0
	for _, b := range hist {
		total += b.Count
	}
	if total != 1000 {
		t.Errorf("Default runs should be 1000, got %d", total)
	}
}

func TestSimulateEmptyFCF(t *testing.T) {
	// No cash flows: every NPV is the discounted zero terminal value,
	// so everything lands in the 0-100k bin.
	hist := Simulate(SimulationInput{
		DiscountRateRange:   [2]float64{0.08, 0.12},
		TerminalGrowthRange: [2]float64{0.01, 0.03},
		Runs:                100,
		Seed:                3,
	})
	for _, b := range hist {
		if b.Bin == "0-100k" {
			if b.Count != 100 {
				t.Errorf("Expected all 100 trials in 0-100k, got %d", b.Count)
			}
		} else if b.Count != 0 {
			t.Errorf("Bin %s should be empty, got %d", b.Bin, b.Count)
		}
	}
}

func TestSimulateBinLabels(t *testing.T) {
	hist := Simulate(SimulationInput{
		FreeCashFlows:       []float64{100},
		DiscountRateRange:   [2]float64{0.1, 0.1},
		TerminalGrowthRange: [2]float64{0.02, 0.02},
		Runs:                1,
		Seed:                1,
	})
	want := []string{"<0", "0-100k", "100k-200k", "200k-300k", "300k-400k", "400k-500k", ">500k"}
	for i, b := range hist {
		if b.Bin != want[i] {
			t.Errorf("Bin %d: expected label %q, got %q", i, want[i], b.Bin)
		}
	}
}
