package main

import (
	"fmt"
	"math"

	"smb_forecast/pkg/core/statement"
	"smb_forecast/pkg/core/validate"
	"smb_forecast/pkg/core/valuation"
	"smb_forecast/pkg/models"
)

// Runs the full engine on an inline sample business and cross-checks
// the valuation math against hand-computed figures. Useful after any
// change to the builder or the DCF layer.
func main() {
	taxRate := models.FlexFloat(25)
	forecast := models.FlexFloat(5)
	loanRate := models.FlexFloat(8)
	loanYears := models.FlexFloat(5)

	inputs := &models.BusinessInputs{
		Products: []models.ProductLine{
			{Name: "Espresso", Price: 4.5, Cost: 1.2, Units: 3000, GrowthRate: 5},
			{Name: "Pastry", Price: 3.0, Cost: 1.0, Units: 1500, GrowthRate: 3},
		},
		Expenses: []models.ExpenseItem{
			{Name: "Rent", Amount: 2500},
			{Name: "Wages", Amount: 6000, GrowthRate: 3},
			{Name: "Utilities", Amount: 400},
		},
		Equipment: []models.EquipmentItem{
			{Name: "Espresso machine", Cost: 18000, UsefulLife: 6, PurchaseDate: "2026-07-01"},
		},
		Loans: []models.LoanItem{
			{Name: "Startup loan", Amount: 40000, Rate: &loanRate, Years: &loanYears},
		},
		CreditSales:     models.CreditSales{Percent: 20, CollectionDays: 30},
		AccountsPayable: models.PayableTerms{Days: 30},
		InventoryDays:   14,
		SelfFunding:     25000,
		TaxRate:         &taxRate,
		ForecastPeriod:  &forecast,
		FiscalYearStart: "January",
		CurrentDate:     "2026-01-15",
	}

	result, err := statement.Build(models.SectorRetail, inputs, statement.DefaultConfig())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("====================================================================================================")
	fmt.Println("                            SAMPLE CAFE  3-STATEMENT FORECAST")
	fmt.Println("====================================================================================================")
	fmt.Printf("%-28s", "LINE ITEM")
	for _, inc := range result.IncomeStatement {
		fmt.Printf(" | %14s", inc.Year)
	}
	fmt.Println()
	fmt.Println("----------------------------------------------------------------------------------------------------")

	pRow := func(label string, pick func(models.IncomeStatementYear) float64) {
		fmt.Printf("%-28s", label)
		for _, inc := range result.IncomeStatement {
			fmt.Printf(" | %14.0f", pick(inc))
		}
		fmt.Println()
	}
	pRow("Revenue", func(y models.IncomeStatementYear) float64 { return y.Revenue })
	pRow("COGS", func(y models.IncomeStatementYear) float64 { return y.COGS })
	pRow("Gross Profit", func(y models.IncomeStatementYear) float64 { return y.GrossProfit })
	pRow("Operating Expenses", func(y models.IncomeStatementYear) float64 { return y.OperatingExpenses })
	pRow("EBITDA", func(y models.IncomeStatementYear) float64 { return y.EBITDA })
	pRow("Depreciation", func(y models.IncomeStatementYear) float64 { return y.DepreciationAmortization })
	pRow("EBIT", func(y models.IncomeStatementYear) float64 { return y.EBIT })
	pRow("Interest Expense", func(y models.IncomeStatementYear) float64 { return y.InterestExpense })
	pRow("Taxes", func(y models.IncomeStatementYear) float64 { return y.Taxes })
	pRow("Net Income", func(y models.IncomeStatementYear) float64 { return y.NetIncome })

	fmt.Println("====================================================================================================")
	fmt.Println("                            CASH POSITION")
	fmt.Println("====================================================================================================")
	for _, cf := range result.CashFlow {
		fmt.Printf("%-14s | opening %12.0f | operating %12.0f | investing %12.0f | financing %12.0f | closing %12.0f\n",
			cf.Year, cf.OpeningCashBalance, cf.NetCashFromOperatingActivities,
			cf.NetCashFromInvestingActivities, cf.NetCashFromFinancingActivities, cf.ClosingCashBalance)
	}

	fmt.Println("====================================================================================================")
	fmt.Println("                            STATEMENT ARTICULATION")
	fmt.Println("====================================================================================================")
	articulated := true
	for _, report := range validate.ValidateStatements(result, nil, validate.DefaultTolerance) {
		status := "OK"
		if !report.AllPassed {
			status = "FAIL"
			articulated = false
		}
		fmt.Printf("%-14s [%s]", report.Year, status)
		for _, failure := range report.FailedChecks {
			fmt.Printf("  %s", failure)
		}
		fmt.Println()
	}

	fmt.Println("====================================================================================================")
	fmt.Println("                            VALUATION CROSS-CHECKS")
	fmt.Println("====================================================================================================")

	pass := true
	check := func(label string, got, want, tol float64) {
		status := "OK"
		if math.Abs(got-want) > tol {
			status = "FAIL"
			pass = false
		}
		fmt.Printf("%-40s got %14.4f  want %14.4f  [%s]\n", label, got, want, status)
	}

	// Gordon growth on a hand-picked series: 100*(1.02)/(0.10-0.02) = 1275
	tv := valuation.TerminalValue(valuation.TerminalValueInput{
		Method:         valuation.TVPerpetuity,
		FinalFCF:       100,
		DiscountRate:   0.10,
		TerminalGrowth: 0.02,
	})
	check("Terminal value (perpetuity)", tv, 1275.0, 0.01)

	// NPV of [-100, 110] at 10% is exactly 0.
	check("NPV break-even", valuation.NPV([]float64{-100, 110}, 0.10), 0, 1e-9)

	// IRR of [-100, 110] is 10%.
	if irr, ok := valuation.IRR([]float64{-100, 110}); ok {
		check("IRR single period", irr, 0.10, 1e-6)
	} else {
		fmt.Println("IRR single period did not converge  [FAIL]")
		pass = false
	}

	// [-100, 50, 60]: recovered 5/6 into year 2 -> 1.8333.
	if pb, ok := valuation.PaybackPeriod([]float64{-100, 50, 60}); ok {
		check("Payback interpolation", pb, 1.8333, 0.001)
	} else {
		fmt.Println("Payback never recovers  [FAIL]")
		pass = false
	}

	// DCF of the engine's own FCF reconciles with a manual discounting.
	fcf := result.FreeCashFlows()
	engineTV := 0.0
	if len(fcf) > 0 {
		last := fcf[len(fcf)-1]
		engineTV = last * 1.02 / (0.10 - 0.02)
	}
	dcf := valuation.DCFValue(fcf, 0.10, engineTV, len(fcf))
	manual := 0.0
	for i, cf := range fcf {
		manual += cf / math.Pow(1.10, float64(i+1))
	}
	manual += engineTV / math.Pow(1.10, float64(len(fcf)))
	check("DCF vs manual discounting", dcf, manual, 0.01)

	fmt.Println("====================================================================================================")
	pass = pass && articulated
	if pass {
		fmt.Println("ALL CHECKS PASSED")
	} else {
		fmt.Println("CHECKS FAILED: see rows marked FAIL")
	}
}
