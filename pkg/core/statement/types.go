// Package statement turns a business's operating assumptions into a
// year-sequenced three statement forecast: income statement, balance
// sheet, cash flow, plus the summary tables the valuation layer
// consumes.
package statement

import (
	"fmt"

	"smb_forecast/pkg/core/amortization"
	"smb_forecast/pkg/models"
)

// Config carries the engine-wide defaults. Rates are decimals.
type Config struct {
	DefaultTaxRate       float64 `yaml:"default_tax_rate"`
	DefaultForecastYears int     `yaml:"default_forecast_years"`
	ShortTermRate        float64 `yaml:"short_term_rate"`
	LongTermRate         float64 `yaml:"long_term_rate"`
	InvestmentRate       float64 `yaml:"investment_rate"`
	LoanRate             float64 `yaml:"loan_rate"`
	DiscountRate         float64 `yaml:"discount_rate"`
	TerminalGrowth       float64 `yaml:"terminal_growth"`
}

// DefaultConfig returns the stock assumptions used when no config
// file is loaded.
func DefaultConfig() Config {
	return Config{
		DefaultTaxRate:       0.25,
		DefaultForecastYears: 5,
		ShortTermRate:        0.05,
		LongTermRate:         0.06,
		InvestmentRate:       0.04,
		LoanRate:             0.06,
		DiscountRate:         0.10,
		TerminalGrowth:       0.02,
	}
}

// InvalidInputError reports an input set the engine cannot forecast
// from. It is the only error class raised out of the builder; numeric
// edge cases degrade to zeros instead.
type InvalidInputError struct {
	Field string
	Msg   string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Msg)
}

// AmortizationEntry is one loan schedule row tagged with the index of
// the loan it belongs to, so multiple loans flatten into one table.
type AmortizationEntry struct {
	amortization.Row
	LoanIndex int `json:"loan_index"`
}

// Result is the full statement bundle for one calculation.
type Result struct {
	IncomeStatement   []models.IncomeStatementYear    `json:"income_statement"`
	BalanceSheet      []models.BalanceSheetYear       `json:"balance_sheet"`
	CashFlow          []models.CashFlowYear           `json:"cash_flow"`
	Forecast          []models.ForecastYear           `json:"forecast"`
	KPIs              models.KPISet                   `json:"kpis"`
	Projections       models.Projections              `json:"projections"`
	RevenueBreakdown  []models.BreakdownEntry         `json:"revenue_breakdown"`
	ExpenseBreakdown  []models.ExpenseBreakdownEntry  `json:"expense_breakdown"`
	CashflowBreakdown []models.CashflowBreakdownEntry `json:"cashflow_breakdown"`
	AmortizationTable []AmortizationEntry             `json:"amortization_table"`
}

// FreeCashFlows extracts the FCF series the valuation engines consume.
func (r *Result) FreeCashFlows() []float64 {
	fcf := make([]float64, len(r.Forecast))
	for i, year := range r.Forecast {
		fcf[i] = year.FreeCashFlow
	}
	return fcf
}

// RevenueDriver normalizes one sector's revenue inputs. The builder
// itself is sector-blind: everything sector-specific flows through
// this interface.
type RevenueDriver interface {
	// Validate rejects input the sector cannot forecast from.
	Validate() error
	// RevenueAndCOGS returns the year's total revenue and cost of
	// goods sold, with per-line growth compounded from year 0.
	RevenueAndCOGS(year int) (revenue, cogs float64)
	// RevenueBreakdown lists year-0 revenue per line item.
	RevenueBreakdown() []models.BreakdownEntry
	// HasInventory reports whether the sector carries stock.
	HasInventory() bool
	// OwnerDrawings resolves the per-year cash taken out by the owner.
	OwnerDrawings(years int) []float64
}
