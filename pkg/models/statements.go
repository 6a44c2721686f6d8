package models

import "encoding/json"

// IncomeStatementYear is one year of the projected income statement.
type IncomeStatementYear struct {
	Year                     string  `json:"year"`
	Revenue                  float64 `json:"revenue"`
	COGS                     float64 `json:"cogs"`
	GrossProfit              float64 `json:"gross_profit"`
	OperatingExpenses        float64 `json:"operating_expenses"`
	OtherIncome              float64 `json:"other_income"`
	InvestmentIncome         float64 `json:"investment_income"`
	OtherCosts               float64 `json:"other_costs"`
	EBITDA                   float64 `json:"ebitda"`
	DepreciationAmortization float64 `json:"depreciation_amortization"`
	EBIT                     float64 `json:"ebit"`
	InterestExpense          float64 `json:"interest_expense"`
	EBT                      float64 `json:"ebt"`
	Taxes                    float64 `json:"taxes"`
	NetIncome                float64 `json:"net_income"`
}

type BalanceSheetAssets struct {
	Cash               float64 `json:"cash"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	Inventory          float64 `json:"inventory"`
	PPE                float64 `json:"ppe"`
	Investments        float64 `json:"investments"`
	TotalAssets        float64 `json:"total_assets"`
}

type BalanceSheetLiabilities struct {
	AccountsPayable  float64 `json:"accounts_payable"`
	ShortTermDebt    float64 `json:"short_term_debt"`
	LongTermDebt     float64 `json:"long_term_debt"`
	TotalLiabilities float64 `json:"total_liabilities"`
}

type BalanceSheetEquity struct {
	ShareCapital     float64 `json:"share_capital"`
	RetainedEarnings float64 `json:"retained_earnings"`
	TotalEquity      float64 `json:"total_equity"`
}

// BalanceSheetYear is one year of the projected balance sheet.
// TotalAssets and TotalLiabilities+TotalEquity are summed
// independently and are not forced to match.
type BalanceSheetYear struct {
	Year        string                  `json:"year"`
	Assets      BalanceSheetAssets      `json:"assets"`
	Liabilities BalanceSheetLiabilities `json:"liabilities"`
	Equity      BalanceSheetEquity      `json:"equity"`
}

// CashFlowItem is a labelled statement line. It serializes as a
// [label, amount] pair, matching the statement renderer's contract.
type CashFlowItem struct {
	Label  string
	Amount float64
}

func (c CashFlowItem) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{c.Label, c.Amount})
}

func (c *CashFlowItem) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &c.Label); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Amount)
}

// CashFlowYear is one year of the indirect-method cash flow statement.
// ClosingCashBalance = OpeningCashBalance + NetChangeInCash, and the
// next year's opening balance equals this year's closing balance.
type CashFlowYear struct {
	Year                           string         `json:"year"`
	OperatingActivities            []CashFlowItem `json:"operating_activities"`
	NetCashFromOperatingActivities float64        `json:"net_cash_from_operating_activities"`
	InvestingActivities            []CashFlowItem `json:"investing_activities"`
	NetCashFromInvestingActivities float64        `json:"net_cash_from_investing_activities"`
	FinancingActivities            []CashFlowItem `json:"financing_activities"`
	NetCashFromFinancingActivities float64        `json:"net_cash_from_financing_activities"`
	NetChangeInCash                float64        `json:"net_change_in_cash"`
	OpeningCashBalance             float64        `json:"opening_cash_balance"`
	ClosingCashBalance             float64        `json:"closing_cash_balance"`
}

// ForecastYear carries the per-year figures the valuation and scenario
// layers operate on. The fields are mutually consistent:
//
//	EBIT = Revenue - COGS - OperatingExpenses
//	EBT  = EBIT + OtherIncome - InterestExpense
//	FreeCashFlow = NetIncome + Depreciation - CapEx - ChangeInWorkingCapital
//
// OperatingExpenses here bundles cash opex, depreciation and other
// operating costs; OtherIncome bundles other and investment income.
// That keeps scenario recomputation closed over these fields.
type ForecastYear struct {
	Year                   string  `json:"year"`
	Revenue                float64 `json:"revenue"`
	COGS                   float64 `json:"cogs"`
	GrossProfit            float64 `json:"gross_profit"`
	OperatingExpenses      float64 `json:"operating_expenses"`
	OtherIncome            float64 `json:"other_income"`
	InterestExpense        float64 `json:"interest_expense"`
	Depreciation           float64 `json:"depreciation"`
	EBIT                   float64 `json:"ebit"`
	EBITDA                 float64 `json:"ebitda"`
	CapEx                  float64 `json:"capex"`
	Inventory              float64 `json:"inventory"`
	AccountsReceivable     float64 `json:"accounts_receivable"`
	ChangeInWorkingCapital float64 `json:"change_in_working_capital"`
	TaxRate                float64 `json:"tax_rate"`
	EBT                    float64 `json:"ebt"`
	TaxExpense             float64 `json:"tax_expense"`
	NetIncome              float64 `json:"net_income"`
	FreeCashFlow           float64 `json:"free_cash_flow"`
}

// KPISet holds first-forecast-year ratios. Zero denominators yield 0.
type KPISet struct {
	GrossMargin     float64 `json:"gross_margin"`
	OperatingMargin float64 `json:"operating_margin"`
	NetMargin       float64 `json:"net_margin"`
	CurrentRatio    float64 `json:"current_ratio"`
	DebtToEquity    float64 `json:"debt_to_equity"`
	ROE             float64 `json:"roe"`
	ROA             float64 `json:"roa"`
}

// Projections are chart-ready series over the forecast horizon.
type Projections struct {
	Years        []string  `json:"years"`
	Revenue      []float64 `json:"revenue"`
	NetIncome    []float64 `json:"net_income"`
	EBITDA       []float64 `json:"ebitda"`
	FreeCashFlow []float64 `json:"free_cash_flow"`
}

// BreakdownEntry is a category/value pair for the revenue breakdown.
type BreakdownEntry struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type ExpenseBreakdownEntry struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
}

type CashflowBreakdownEntry struct {
	Month     string  `json:"month"`
	Operating float64 `json:"operating"`
	Investing float64 `json:"investing"`
	Financing float64 `json:"financing"`
}
