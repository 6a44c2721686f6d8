package sensitivity

import (
	"math"
	"testing"

	"smb_forecast/pkg/core/valuation"
)

func perpetuityTV(lastFCF, growth, rate float64) float64 {
	return valuation.TerminalValue(valuation.TerminalValueInput{
		Method:         valuation.TVPerpetuity,
		FinalFCF:       lastFCF,
		DiscountRate:   rate,
		TerminalGrowth: growth,
	})
}

func TestMatrixShape(t *testing.T) {
	fcf := []float64{100, 110, 121}
	waccs := []float64{0.08, 0.10, 0.12}
	growths := []float64{0.01, 0.02, 0.03, 0.04}

	matrix := Matrix(fcf, waccs, growths, perpetuityTV)
	if len(matrix) != len(waccs) {
		t.Fatalf("Expected %d rows, got %d", len(waccs), len(matrix))
	}
	for i, row := range matrix {
		if row.WACC != waccs[i] {
			t.Errorf("Row %d: expected wacc %.2f, got %.2f", i, waccs[i], row.WACC)
		}
		if len(row.Values) != len(growths) {
			t.Errorf("Row %d: expected %d cells, got %d", i, len(growths), len(row.Values))
		}
		for j, cell := range row.Values {
			if cell.Growth != growths[j] {
				t.Errorf("Cell (%d,%d): expected growth %.2f, got %.2f", i, j, growths[j], cell.Growth)
			}
		}
	}
}

func TestMatrixCellValue(t *testing.T) {
	// Single cell at wacc=0.10, growth=0.02 must equal the direct DCF.
	fcf := []float64{100, 110, 121}
	matrix := Matrix(fcf, []float64{0.10}, []float64{0.02}, perpetuityTV)
	tv := perpetuityTV(121, 0.02, 0.10)
	want := valuation.DCFValue(fcf, 0.10, tv, 0)
	got := matrix[0].Values[0].DCF
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected cell DCF %.4f, got %.4f", want, got)
	}
	if math.Abs(got-1431.98) > 0.05 {
		t.Errorf("Expected cell DCF ~1431.98, got %.2f", got)
	}
}

func TestMatrixEmptyFCF(t *testing.T) {
	matrix := Matrix(nil, []float64{0.1}, []float64{0.02}, perpetuityTV)
	if len(matrix) != 1 || len(matrix[0].Values) != 1 {
		t.Fatal("Expected 1x1 matrix")
	}
	if matrix[0].Values[0].DCF != 0 {
		t.Errorf("Expected 0 DCF for empty series, got %.4f", matrix[0].Values[0].DCF)
	}
}

func TestTornadoOrderAndBase(t *testing.T) {
	fcf := []float64{100, 110, 121}
	impacts := []VariableImpact{
		{Variable: "Revenue Growth", Low: 0.8, High: 1.2, Type: ImpactFCF},
		{Variable: "Discount Rate", Low: 0.12, High: 0.08, Type: ImpactWACC},
		{Variable: "Terminal Growth", Low: 0.01, High: 0.03, Type: ImpactGrowth},
	}
	entries := Tornado(fcf, 0.10, 0.02, impacts, perpetuityTV)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Variable != impacts[i].Variable {
			t.Errorf("Entry %d: expected %q, got %q", i, impacts[i].Variable, e.Variable)
		}
		if math.Abs(e.Base-entries[0].Base) > 1e-9 {
			t.Errorf("All entries should share the base DCF")
		}
	}
	// FCF flex is linear: low = 0.8 × base, high = 1.2 × base.
	base := entries[0].Base
	if math.Abs(entries[0].Low-0.8*base) > 1e-6 {
		t.Errorf("FCF low: expected %.4f, got %.4f", 0.8*base, entries[0].Low)
	}
	if math.Abs(entries[0].High-1.2*base) > 1e-6 {
		t.Errorf("FCF high: expected %.4f, got %.4f", 1.2*base, entries[0].High)
	}
	// Higher discount rate lowers DCF.
	if entries[1].Low >= entries[1].High {
		t.Errorf("WACC 0.12 should value below WACC 0.08: low=%.2f high=%.2f", entries[1].Low, entries[1].High)
	}
}
