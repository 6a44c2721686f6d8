package validate

import (
	"math"
	"testing"
)

func TestCalculateYoY(t *testing.T) {
	// (120 - 100) / 100 * 100 = 20%
	if got := CalculateYoY(120, 100); math.Abs(got-20) > 1e-9 {
		t.Errorf("Expected 20, got %v", got)
	}
	if got := CalculateYoY(80, 100); math.Abs(got-(-20)) > 1e-9 {
		t.Errorf("Expected -20, got %v", got)
	}
	if got := CalculateYoY(0, 0); got != 0 {
		t.Errorf("Expected 0 for zero-to-zero, got %v", got)
	}
	if got := CalculateYoY(50, 0); !math.IsInf(got, 1) {
		t.Errorf("Expected +Inf for growth from zero, got %v", got)
	}
}

func TestCalculateCAGR(t *testing.T) {
	// 100 -> 200 over 3 years: 2^(1/3) - 1 = 25.99%
	got := CalculateCAGR(100, 200, 3)
	if math.Abs(got-25.992) > 0.01 {
		t.Errorf("Expected 25.992, got %v", got)
	}
	if got := CalculateCAGR(0, 200, 3); got != 0 {
		t.Errorf("Expected 0 for zero start, got %v", got)
	}
	if got := CalculateCAGR(100, 200, 0); got != 0 {
		t.Errorf("Expected 0 for zero years, got %v", got)
	}
}

func TestCheckBalanceEquation(t *testing.T) {
	check := CheckBalanceEquation(1000, 400, 600, 0.01)
	if !check.IsBalanced {
		t.Errorf("Expected balanced, got diff %v", check.Difference)
	}
	check = CheckBalanceEquation(1000, 400, 550, 0.01)
	if check.IsBalanced {
		t.Error("Expected unbalanced")
	}
	if math.Abs(check.Difference-50) > 1e-9 {
		t.Errorf("Expected difference 50, got %v", check.Difference)
	}
}

func TestCheckCashFlowEquation(t *testing.T) {
	check := CheckCashFlowEquation(500, -200, 100, 400, 0.01)
	if !check.IsBalanced {
		t.Errorf("Expected balanced, got diff %v", check.Difference)
	}
	check = CheckCashFlowEquation(500, -200, 100, 350, 0.01)
	if check.IsBalanced {
		t.Error("Expected unbalanced for misreported net change")
	}
}
