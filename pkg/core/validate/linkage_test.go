package validate

import (
	"testing"

	"smb_forecast/pkg/core/statement"
	"smb_forecast/pkg/models"
)

func builtResult(t *testing.T, drawings models.FloatList) *statement.Result {
	t.Helper()
	taxRate := models.FlexFloat(25)
	years := models.FlexFloat(3)
	inputs := &models.BusinessInputs{
		Products: []models.ProductLine{
			{Name: "Widget", Price: 100, Cost: 40, Units: 10},
		},
		Expenses: []models.ExpenseItem{
			{Name: "Rent", Amount: 100},
		},
		SelfFunding:     1000,
		TaxRate:         &taxRate,
		ForecastPeriod:  &years,
		FiscalYearStart: "January",
		CurrentDate:     "2026-02-01",
		OwnerDrawings:   drawings,
	}
	result, err := statement.Build(models.SectorRetail, inputs, statement.DefaultConfig())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return result
}

func TestStatementsArticulate(t *testing.T) {
	result := builtResult(t, nil)
	reports := ValidateStatements(result, nil, DefaultTolerance)
	if len(reports) != 3 {
		t.Fatalf("Expected 3 yearly reports, got %d", len(reports))
	}
	for _, report := range reports {
		if !report.AllPassed {
			t.Errorf("Year %s failed: %v", report.Year, report.FailedChecks)
		}
		if report.ISToCF == nil || report.CFToBS == nil || report.ISToBSRetainedEarnings == nil {
			t.Errorf("Year %s missing a linkage block", report.Year)
		}
	}
}

func TestArticulationWithDrawings(t *testing.T) {
	result := builtResult(t, models.FloatList{500})
	// Scalar drawings repeat every year; passing them makes the
	// retained earnings linkage close.
	reports := ValidateStatements(result, []float64{500, 500, 500}, DefaultTolerance)
	for _, report := range reports {
		if !report.AllPassed {
			t.Errorf("Year %s failed: %v", report.Year, report.FailedChecks)
		}
	}
	// Without the drawings the RE movement no longer matches NI.
	reports = ValidateStatements(result, nil, DefaultTolerance)
	if reports[0].AllPassed {
		t.Error("Expected retained earnings mismatch when drawings are omitted")
	}
}

func TestDetectsBrokenCashChain(t *testing.T) {
	result := builtResult(t, nil)
	result.CashFlow[1].ClosingCashBalance += 123
	reports := ValidateStatements(result, nil, DefaultTolerance)
	if reports[1].AllPassed {
		t.Error("Expected tampered closing balance to fail validation")
	}
	if reports[1].CFToBS.IsLinked {
		t.Error("Expected cash linkage to flag the mismatch")
	}
}
