package statement

import (
	"math"
	"time"

	"smb_forecast/pkg/core/amortization"
	"smb_forecast/pkg/core/depreciation"
	"smb_forecast/pkg/models"
)

// Build produces the full statement bundle for one business. The
// income statement and balance sheet cover the base year plus the
// forecast horizon; the cash flow statement and forecast table cover
// the forecast years only. Only input validation errors are returned;
// numeric edge cases degrade to zeros.
func Build(sector models.Sector, inputs *models.BusinessInputs, cfg Config) (*Result, error) {
	driver, err := NewDriver(sector, inputs)
	if err != nil {
		return nil, err
	}
	if err := driver.Validate(); err != nil {
		return nil, err
	}

	taxRate := inputs.TaxRate.ValueOr(cfg.DefaultTaxRate*100) / 100
	forecastYears := int(inputs.ForecastPeriod.ValueOr(float64(cfg.DefaultForecastYears)))
	if forecastYears < 1 {
		forecastYears = 1
	}
	totalYears := forecastYears + 1

	fiscalMonth := fiscalStartMonth(inputs.FiscalYearStart)
	now := parseDate(inputs.CurrentDate, time.Now())
	baseYear := fiscalYearOf(now, fiscalMonth)
	years := yearLabels(baseYear, totalYears, inputs.FiscalYearStart)

	rates := inputs.GlobalInterestRates
	shortRate := rates.ShortTerm.ValueOr(cfg.ShortTermRate*100) / 100
	longRate := rates.LongTerm.ValueOr(cfg.LongTermRate*100) / 100
	investmentRate := rates.Investment.ValueOr(cfg.InvestmentRate*100) / 100

	// ---- CapEx and depreciation ----
	capex := make([]float64, totalYears)
	deprByYear := make([]float64, totalYears)
	for _, eq := range inputs.Equipment {
		purchase := parseDate(eq.PurchaseDate, now)
		purchaseIdx := fiscalYearOf(purchase, fiscalMonth) - baseYear
		if purchaseIdx < 0 {
			purchaseIdx = 0
		}
		if purchaseIdx < totalYears {
			capex[purchaseIdx] += eq.Cost.V()
		}
		usefulLife := int(eq.UsefulLife.V())
		if usefulLife <= 0 {
			usefulLife = 5
		}
		asset := depreciation.AssetInput{
			Cost:         eq.Cost.V(),
			UsefulLife:   usefulLife,
			Method:       depreciation.Method(eq.DepreciationMethod),
			Salvage:      eq.SalvageValue.V(),
			TotalUnits:   eq.TotalUnits.V(),
			UnitsPerYear: []float64(eq.UnitsPerYear),
		}
		if asset.Method != depreciation.MethodUnitsOfProduction {
			asset.FirstYearFraction = depreciation.PartialYearFraction(purchase.Month(), fiscalMonth)
		}
		for i, d := range depreciation.Schedule(asset) {
			if idx := purchaseIdx + i; idx < totalYears {
				deprByYear[idx] += d
			}
		}
	}

	// ---- Revenue, COGS and operating expense forecasts ----
	revenue := make([]float64, totalYears)
	cogs := make([]float64, totalYears)
	opex := make([]float64, totalYears)
	for y := 0; y < totalYears; y++ {
		revenue[y], cogs[y] = driver.RevenueAndCOGS(y)
		for _, e := range inputs.Expenses {
			opex[y] += e.Amount.V() * 12 * growthFactor(growthOrDefault(e.GrowthRate.V(), inputs.ExpenseGrowth.V()), y)
		}
	}

	var otherIncome, otherCosts float64
	for _, o := range inputs.Other {
		if o.IsIncome {
			otherIncome += o.Amount.V()
		} else {
			otherCosts += o.Amount.V()
		}
	}

	var investmentIncome float64
	for _, inv := range inputs.Investments {
		if !inv.Income {
			continue
		}
		if amt := inv.IncomeAmount.V(); amt > 0 {
			investmentIncome += amt
		} else {
			investmentIncome += inv.Amount.V() * investmentRate
		}
	}

	var baseLoans float64
	for _, l := range inputs.Loans {
		baseLoans += l.Amount.V()
	}

	// ---- Income statement ----
	income := make([]models.IncomeStatementYear, totalYears)
	for i := 0; i < totalYears; i++ {
		gross := revenue[i] - cogs[i]
		ebitda := gross - opex[i] + otherIncome + investmentIncome - otherCosts
		da := deprByYear[i]
		ebit := ebitda - da
		ebt := ebit
		taxes := 0.0
		if ebt > 0 {
			taxes = ebt * taxRate
		}
		income[i] = models.IncomeStatementYear{
			Year:                     years[i],
			Revenue:                  revenue[i],
			COGS:                     cogs[i],
			GrossProfit:              gross,
			OperatingExpenses:        opex[i],
			OtherIncome:              otherIncome,
			InvestmentIncome:         investmentIncome,
			OtherCosts:               otherCosts,
			EBITDA:                   ebitda,
			DepreciationAmortization: da,
			EBIT:                     ebit,
			EBT:                      ebt,
			Taxes:                    taxes,
			NetIncome:                ebt - taxes,
		}
	}

	// ---- Loan amortization ----
	interestByYear := make([]float64, totalYears)
	principalByYear := make([]float64, totalYears)
	shortTermDebt := make([]float64, totalYears)
	longTermDebt := make([]float64, totalYears)
	var amortTables [][]amortization.Row
	for _, loan := range inputs.Loans {
		amount := loan.Amount.V()
		if amount <= 0 {
			continue
		}
		term := loan.TermOr(forecastYears)
		var rate float64
		if rates.UseForLoans {
			if term <= 1 {
				rate = shortRate
			} else {
				rate = longRate
			}
		} else {
			rate = loan.RateOr(cfg.LoanRate*100) / 100
		}
		startIdx := 0
		if loan.StartDate != "" {
			startIdx = fiscalYearOf(parseDate(loan.StartDate, now), fiscalMonth) - baseYear
			if startIdx < 0 {
				startIdx = 0
			}
		}
		table := amortization.GenerateTable(amount, rate, term, 1)
		amortTables = append(amortTables, table)
		remaining := amount
		for i, row := range table {
			idx := startIdx + i
			if idx >= forecastYears {
				continue
			}
			interestByYear[idx] += row.Interest
			principalByYear[idx] += row.Principal
			// Short-term debt is next year's principal; long-term is
			// whatever of the balance falls due later.
			next := 0.0
			if i+1 < len(table) {
				next = table[i+1].Principal
			}
			shortTermDebt[idx] += next
			longTermDebt[idx] += math.Max(remaining-next, 0)
			remaining -= row.Principal
		}
	}

	// Fold loan interest into the forecast-year income statements.
	for i := 0; i < forecastYears; i++ {
		income[i].InterestExpense = interestByYear[i]
		income[i].EBT -= interestByYear[i]
		taxes := 0.0
		if income[i].EBT > 0 {
			taxes = income[i].EBT * taxRate
		}
		income[i].Taxes = taxes
		income[i].NetIncome = income[i].EBT - taxes
	}

	// ---- Investment cash flows, keyed by fiscal year index ----
	invOutflow := make([]float64, totalYears)
	invInflow := make([]float64, totalYears)
	invMade := make([]float64, totalYears)
	invReturned := make([]float64, totalYears)
	for _, inv := range inputs.Investments {
		amount := inv.Amount.V()
		invYear := int(inv.Date.ValueOr(float64(now.Year())))
		maturityYear := inv.Maturity.Resolve(invYear)
		if idx := invYear - baseYear; idx >= 0 && idx < totalYears {
			invOutflow[idx] += amount
			invMade[idx] += amount
		}
		if idx := maturityYear - baseYear; idx >= 0 && idx < totalYears {
			invInflow[idx] += amount + inv.ExpectedReturn.V()
			invReturned[idx] += amount
		}
	}
	outstanding := make([]float64, totalYears)
	running := 0.0
	for i := range outstanding {
		running += invMade[i] - invReturned[i]
		outstanding[i] = running
	}

	// ---- Working capital ----
	creditPct := inputs.CreditSales.Percent.V() / 100
	arDays := inputs.CreditSales.CollectionDays.V()
	apDays := inputs.AccountsPayable.Days.V()
	invDays := inputs.InventoryDays.V()
	hasInventory := driver.HasInventory()
	arFor := func(i int) float64 {
		if arDays > 0 {
			return revenue[i] * creditPct * arDays / 365
		}
		return 0
	}
	apFor := func(i int) float64 {
		if apDays > 0 {
			return cogs[i] * apDays / 365
		}
		return 0
	}
	invFor := func(i int) float64 {
		if hasInventory && invDays > 0 {
			return cogs[i] * invDays / 365
		}
		return 0
	}

	// ---- Cash flow statement (indirect method) ----
	loanProceeds := make([]float64, totalYears)
	loanProceeds[0] = baseLoans
	selfFunding := inputs.SelfFunding.V()
	openingCash := selfFunding + baseLoans - capex[0]
	cashFlow := make([]models.CashFlowYear, 0, forecastYears)
	changeWC := make([]float64, forecastYears)
	prevAR, prevAP, prevInv := 0.0, 0.0, 0.0
	for i := 0; i < forecastYears; i++ {
		ni := income[i].NetIncome
		da := income[i].DepreciationAmortization
		ar, ap, inv := arFor(i), apFor(i), invFor(i)
		changeAR, changeAP, changeInv := ar-prevAR, ap-prevAP, inv-prevInv
		prevAR, prevAP, prevInv = ar, ap, inv
		changeWC[i] = changeAR + changeInv - changeAP

		operatingItems := []models.CashFlowItem{
			{Label: "Net Income", Amount: ni},
			{Label: "+ Depreciation", Amount: da},
			{Label: "± Change in Accounts Receivable", Amount: -changeAR},
			{Label: "± Change in Accounts Payable", Amount: changeAP},
			{Label: "± Change in Inventory", Amount: -changeInv},
		}
		netOperating := ni + da - changeAR + changeAP - changeInv

		investingItems := []models.CashFlowItem{
			{Label: "‣ Purchase of Equipment (CapEx)", Amount: -capex[i]},
		}
		if invOutflow[i] != 0 {
			investingItems = append(investingItems, models.CashFlowItem{Label: "‣ Investments Made", Amount: -invOutflow[i]})
		}
		if invInflow[i] != 0 {
			investingItems = append(investingItems, models.CashFlowItem{Label: "‣ Investment Maturities/Returns", Amount: invInflow[i]})
		}
		netInvesting := 0.0
		for _, item := range investingItems {
			netInvesting += item.Amount
		}

		repayment := -principalByYear[i]
		financingItems := []models.CashFlowItem{
			{Label: "‣ Loan Received", Amount: loanProceeds[i]},
			{Label: "‣ Loan Repayment", Amount: repayment},
		}
		netFinancing := loanProceeds[i] + repayment

		netChange := netOperating + netInvesting + netFinancing
		closing := openingCash + netChange
		cashFlow = append(cashFlow, models.CashFlowYear{
			Year:                           years[i],
			OperatingActivities:            operatingItems,
			NetCashFromOperatingActivities: netOperating,
			InvestingActivities:            investingItems,
			NetCashFromInvestingActivities: netInvesting,
			FinancingActivities:            financingItems,
			NetCashFromFinancingActivities: netFinancing,
			NetChangeInCash:                netChange,
			OpeningCashBalance:             openingCash,
			ClosingCashBalance:             closing,
		})
		openingCash = closing
	}

	// ---- Balance sheet ----
	drawings := driver.OwnerDrawings(totalYears)
	ppe := capex[0]
	balance := make([]models.BalanceSheetYear, 0, totalYears)
	priorRE := 0.0
	for i := 0; i < totalYears; i++ {
		cash := selfFunding + baseLoans - capex[0]
		if i < len(cashFlow) {
			cash = cashFlow[i].ClosingCashBalance
		}
		ar, ap, inv := arFor(i), apFor(i), invFor(i)
		re := priorRE + income[i].NetIncome - drawings[i]
		balance = append(balance, models.BalanceSheetYear{
			Year: years[i],
			Assets: models.BalanceSheetAssets{
				Cash:               cash,
				AccountsReceivable: ar,
				Inventory:          inv,
				PPE:                ppe,
				Investments:        outstanding[i],
				TotalAssets:        cash + ar + inv + ppe + outstanding[i],
			},
			Liabilities: models.BalanceSheetLiabilities{
				AccountsPayable:  ap,
				ShortTermDebt:    shortTermDebt[i],
				LongTermDebt:     longTermDebt[i],
				TotalLiabilities: ap + shortTermDebt[i] + longTermDebt[i],
			},
			Equity: models.BalanceSheetEquity{
				ShareCapital:     selfFunding,
				RetainedEarnings: re,
				TotalEquity:      selfFunding + re,
			},
		})
		priorRE = re
	}

	// ---- Forecast table ----
	// Fields are bundled so EBIT, EBT and FCF recompute exactly from
	// the stored figures (the scenario layer depends on this).
	forecast := make([]models.ForecastYear, 0, forecastYears)
	for i := 0; i < forecastYears; i++ {
		inc := income[i]
		bundledOpex := inc.OperatingExpenses + inc.DepreciationAmortization + inc.OtherCosts
		bundledOther := inc.OtherIncome + inc.InvestmentIncome
		ebit := inc.Revenue - inc.COGS - bundledOpex
		fy := models.ForecastYear{
			Year:                   years[i],
			Revenue:                inc.Revenue,
			COGS:                   inc.COGS,
			GrossProfit:            inc.GrossProfit,
			OperatingExpenses:      bundledOpex,
			OtherIncome:            bundledOther,
			InterestExpense:        inc.InterestExpense,
			Depreciation:           inc.DepreciationAmortization,
			EBIT:                   ebit,
			EBITDA:                 ebit + inc.DepreciationAmortization,
			CapEx:                  capex[i],
			Inventory:              invFor(i),
			AccountsReceivable:     arFor(i),
			ChangeInWorkingCapital: changeWC[i],
			TaxRate:                taxRate,
			EBT:                    inc.EBT,
			TaxExpense:             inc.Taxes,
			NetIncome:              inc.NetIncome,
		}
		fy.FreeCashFlow = fy.NetIncome + fy.Depreciation - fy.CapEx - fy.ChangeInWorkingCapital
		forecast = append(forecast, fy)
	}

	// ---- Flattened amortization table ----
	var amortEntries []AmortizationEntry
	for idx, table := range amortTables {
		for _, row := range table {
			amortEntries = append(amortEntries, AmortizationEntry{Row: row, LoanIndex: idx})
		}
	}

	result := &Result{
		IncomeStatement:   income,
		BalanceSheet:      balance,
		CashFlow:          cashFlow,
		Forecast:          forecast,
		KPIs:              buildKPIs(income, balance),
		Projections:       buildProjections(income, forecast),
		RevenueBreakdown:  driver.RevenueBreakdown(),
		ExpenseBreakdown:  expenseBreakdown(inputs.Expenses),
		CashflowBreakdown: cashflowBreakdown(cashFlow),
		AmortizationTable: amortEntries,
	}
	return result, nil
}
