package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Sector selects which revenue-driver logic applies to a calculation.
type Sector string

const (
	SectorRetail  Sector = "retail"
	SectorService Sector = "service"
	SectorSaaS    Sector = "saas"
)

// FlexFloat unmarshals from a JSON number, a numeric string, "" or null.
// Form frontends routinely send numbers as strings and blanks for
// untouched fields; anything unparseable collapses to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// V returns the plain float64 value.
func (f FlexFloat) V() float64 { return float64(f) }

// ValueOr returns def for a nil pointer, otherwise the pointed-to
// value. A pointer distinguishes "field absent" from an explicit 0.
func (f *FlexFloat) ValueOr(def float64) float64 {
	if f == nil {
		return def
	}
	return float64(*f)
}

// FloatList accepts either a single number or an array of numbers.
// Owner drawings arrive both ways: a flat per-year amount or an
// explicit per-year schedule.
type FloatList []float64

func (l *FloatList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []FlexFloat
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]float64, len(items))
		for i, v := range items {
			out[i] = v.V()
		}
		*l = out
		return nil
	}
	var single FlexFloat
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = FloatList{single.V()}
	return nil
}

// IsScalar reports whether the list came in as a single flat amount.
func (l FloatList) IsScalar() bool { return len(l) == 1 }

// UnitsList accepts an array of numbers, an array of numeric strings,
// or a single comma-separated string ("1200, 1500, 900").
type UnitsList []float64

func (u *UnitsList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*u = nil
		return nil
	}
	if strings.HasPrefix(s, "[") {
		var items []FlexFloat
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make([]float64, len(items))
		for i, v := range items {
			out[i] = v.V()
		}
		*u = out
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out []float64
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			v = 0
		}
		out = append(out, v)
	}
	*u = out
	return nil
}

// Maturity is an investment's exit point: a calendar year (2028), a
// duration in years (values below 1900 are treated as offsets from the
// investment date), or an ISO date string ("2028-06-01").
type Maturity struct {
	raw string
}

func (m *Maturity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	m.raw = s
	return nil
}

func (m Maturity) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.raw)
}

// MaturityFromYear builds a Maturity for a known calendar year.
func MaturityFromYear(year int) Maturity {
	return Maturity{raw: strconv.Itoa(year)}
}

// Resolve returns the calendar year the investment matures, falling
// back to the investment year when the field is absent or malformed.
func (m Maturity) Resolve(investmentYear int) int {
	if m.raw == "" {
		return investmentYear
	}
	if n, err := strconv.Atoi(m.raw); err == nil {
		if n < 1900 {
			return investmentYear + n
		}
		return n
	}
	if i := strings.Index(m.raw, "-"); i > 0 {
		if y, err := strconv.Atoi(m.raw[:i]); err == nil {
			return y
		}
	}
	return investmentYear
}

// ProductLine is one retail revenue line. Units are per month unless
// the request sets revenueInputType to "annual".
type ProductLine struct {
	Name       string    `json:"name"`
	Price      FlexFloat `json:"price"`
	Cost       FlexFloat `json:"cost"` // unit cost
	Units      FlexFloat `json:"units"`
	GrowthRate FlexFloat `json:"growthRate"` // % per year
}

// ServiceLine is one service revenue line, priced per client.
type ServiceLine struct {
	Name    string    `json:"name"`
	Price   FlexFloat `json:"price"`
	Cost    FlexFloat `json:"cost"` // delivery cost per client
	Clients FlexFloat `json:"clients"`
	Growth  FlexFloat `json:"growth"` // % per year
}

// PlanLine is one SaaS subscription plan.
type PlanLine struct {
	Name        string    `json:"name"`
	Price       FlexFloat `json:"price"`
	CostPerUser FlexFloat `json:"costPerUser"`
	Users       FlexFloat `json:"users"`
	Growth      FlexFloat `json:"growth"` // % per year
}

// ExpenseItem is a recurring monthly operating expense.
type ExpenseItem struct {
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Amount     FlexFloat `json:"amount"` // per month
	GrowthRate FlexFloat `json:"growthRate"`
}

// EquipmentItem is a depreciable asset purchase.
type EquipmentItem struct {
	Name               string    `json:"name"`
	Cost               FlexFloat `json:"cost"`
	UsefulLife         FlexFloat `json:"usefulLife"` // years, default 5
	DepreciationMethod string    `json:"depreciationMethod"`
	SalvageValue       FlexFloat `json:"salvageValue"`
	TotalUnits         FlexFloat `json:"totalUnits"`   // units-of-production only
	UnitsPerYear       UnitsList `json:"unitsPerYear"` // units-of-production only
	PurchaseDate       string    `json:"purchaseDate"` // ISO date
}

// LoanItem is a business loan repaid on an annual annuity schedule.
// Rate/InterestRate and Years/RepaymentPeriod are interchangeable
// aliases; different frontend versions send different names.
type LoanItem struct {
	Name            string     `json:"name"`
	Amount          FlexFloat  `json:"amount"`
	Rate            *FlexFloat `json:"rate"`         // % per year
	InterestRate    *FlexFloat `json:"interestRate"` // alias for rate
	Years           *FlexFloat `json:"years"`
	RepaymentPeriod *FlexFloat `json:"repaymentPeriod"` // alias for years
	StartDate       string     `json:"startDate"`       // ISO date
}

// RateOr resolves the loan's annual rate in percent.
func (l LoanItem) RateOr(def float64) float64 {
	if l.Rate != nil && l.Rate.V() != 0 {
		return l.Rate.V()
	}
	if l.InterestRate != nil && l.InterestRate.V() != 0 {
		return l.InterestRate.V()
	}
	return def
}

// TermOr resolves the loan's repayment term in years.
func (l LoanItem) TermOr(def int) int {
	if l.Years != nil && int(l.Years.V()) != 0 {
		return int(l.Years.V())
	}
	if l.RepaymentPeriod != nil && int(l.RepaymentPeriod.V()) != 0 {
		return int(l.RepaymentPeriod.V())
	}
	return def
}

// OtherItem is a flat recurring income or cost outside the main lines.
type OtherItem struct {
	Name     string    `json:"name"`
	Amount   FlexFloat `json:"amount"`
	IsIncome bool      `json:"isIncome"`
}

// InvestmentItem is cash placed outside the business for a period.
type InvestmentItem struct {
	Name           string     `json:"name"`
	Amount         FlexFloat  `json:"amount"`
	Date           *FlexFloat `json:"date"` // calendar year; default current year
	Maturity       Maturity   `json:"maturity"`
	ExpectedReturn FlexFloat  `json:"expectedReturn"`
	Income         bool       `json:"income"`       // whether it pays periodic income
	IncomeAmount   FlexFloat  `json:"incomeAmount"` // per year; 0 means derive from the global rate
}

// GlobalInterestRates are shared rate settings, all in percent.
type GlobalInterestRates struct {
	ShortTerm   *FlexFloat `json:"shortTerm"`
	LongTerm    *FlexFloat `json:"longTerm"`
	Investment  *FlexFloat `json:"investment"`
	UseForLoans bool       `json:"useForLoans"`
}

// CreditSales configures receivables: the share of revenue sold on
// credit and the average collection period.
type CreditSales struct {
	Percent        FlexFloat `json:"percent"`
	CollectionDays FlexFloat `json:"collectionDays"`
}

// PayableTerms configures the average supplier payment period.
type PayableTerms struct {
	Days FlexFloat `json:"days"`
}

// BusinessInputs is the full set of operating assumptions for one
// calculation. It is immutable for the duration of the call; the
// engine holds no state between requests.
type BusinessInputs struct {
	Products    []ProductLine    `json:"products"`
	Services    []ServiceLine    `json:"services"`
	Plans       []PlanLine       `json:"plans"`
	Expenses    []ExpenseItem    `json:"expenses"`
	Equipment   []EquipmentItem  `json:"equipment"`
	Loans       []LoanItem       `json:"loans"`
	Other       []OtherItem      `json:"other"`
	Investments []InvestmentItem `json:"investments"`

	GlobalInterestRates GlobalInterestRates `json:"globalInterestRates"`
	CreditSales         CreditSales         `json:"creditSales"`
	AccountsPayable     PayableTerms        `json:"accountsPayable"`
	InventoryDays       FlexFloat           `json:"inventoryDays"`

	SelfFunding      FlexFloat  `json:"selfFunding"`
	TaxRate          *FlexFloat `json:"taxRate"`        // percent, default 25
	ForecastPeriod   *FlexFloat `json:"forecastPeriod"` // years, default 5
	RevenueInputType string     `json:"revenueInputType"`
	RevenueGrowth    FlexFloat  `json:"revenueGrowth"` // percent; fills in for lines without their own rate
	ExpenseGrowth    FlexFloat  `json:"expenseGrowth"` // percent; fills in for expenses without their own rate
	FiscalYearStart  string     `json:"fiscalYearStart"`
	CurrentDate      string     `json:"currentDate"` // ISO date, defaults to today
	OwnerDrawings    FloatList  `json:"ownerDrawings"`
}
