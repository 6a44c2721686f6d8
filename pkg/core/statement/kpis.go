package statement

import (
	"fmt"
	"hash/fnv"

	"smb_forecast/pkg/models"
)

// buildKPIs derives first-year ratios. Zero denominators yield 0.
func buildKPIs(income []models.IncomeStatementYear, balance []models.BalanceSheetYear) models.KPISet {
	if len(income) == 0 || len(balance) == 0 {
		return models.KPISet{}
	}
	inc := income[0]
	bal := balance[0]

	kpis := models.KPISet{CurrentRatio: 1}
	if inc.Revenue != 0 {
		kpis.GrossMargin = inc.GrossProfit / inc.Revenue * 100
		kpis.OperatingMargin = inc.EBIT / inc.Revenue * 100
		kpis.NetMargin = inc.NetIncome / inc.Revenue * 100
	}
	if bal.Equity.TotalEquity != 0 {
		kpis.DebtToEquity = bal.Liabilities.TotalLiabilities / bal.Equity.TotalEquity
		kpis.ROE = inc.NetIncome / bal.Equity.TotalEquity * 100
	}
	if bal.Assets.TotalAssets != 0 {
		kpis.ROA = inc.NetIncome / bal.Assets.TotalAssets * 100
	}
	return kpis
}

// buildProjections assembles the chart series over the forecast years.
func buildProjections(income []models.IncomeStatementYear, forecast []models.ForecastYear) models.Projections {
	p := models.Projections{
		Years:        make([]string, 0, len(forecast)),
		Revenue:      make([]float64, 0, len(forecast)),
		NetIncome:    make([]float64, 0, len(forecast)),
		EBITDA:       make([]float64, 0, len(forecast)),
		FreeCashFlow: make([]float64, 0, len(forecast)),
	}
	for i, fy := range forecast {
		p.Years = append(p.Years, fy.Year)
		p.Revenue = append(p.Revenue, fy.Revenue)
		p.NetIncome = append(p.NetIncome, fy.NetIncome)
		p.FreeCashFlow = append(p.FreeCashFlow, fy.FreeCashFlow)
		if i < len(income) {
			p.EBITDA = append(p.EBITDA, income[i].EBITDA)
		} else {
			p.EBITDA = append(p.EBITDA, 0)
		}
	}
	return p
}

// expenseBreakdown groups the annualized expenses by name with a
// stable hash-derived chart color per category.
func expenseBreakdown(expenses []models.ExpenseItem) []models.ExpenseBreakdownEntry {
	totals := make(map[string]float64)
	order := make([]string, 0, len(expenses))
	for _, e := range expenses {
		name := e.Name
		if name == "" {
			name = "Other"
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += e.Amount.V() * 12
	}
	grand := 0.0
	for _, v := range totals {
		grand += v
	}
	if grand == 0 {
		grand = 1
	}
	entries := make([]models.ExpenseBreakdownEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, models.ExpenseBreakdownEntry{
			Category: name,
			Amount:   totals[name],
			Percent:  totals[name] / grand,
			Color:    categoryColor(name),
		})
	}
	return entries
}

func categoryColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprintf("#%06x", h.Sum32()%0xFFFFFF)
}

// cashflowBreakdown flattens each year's activity totals for the
// stacked chart view.
func cashflowBreakdown(cashFlow []models.CashFlowYear) []models.CashflowBreakdownEntry {
	entries := make([]models.CashflowBreakdownEntry, 0, len(cashFlow))
	for _, cf := range cashFlow {
		entries = append(entries, models.CashflowBreakdownEntry{
			Month:     cf.Year,
			Operating: cf.NetCashFromOperatingActivities,
			Investing: cf.NetCashFromInvestingActivities,
			Financing: cf.NetCashFromFinancingActivities,
		})
	}
	return entries
}
