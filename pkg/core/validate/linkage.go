// Cross-statement linkage validation: the three statements must
// articulate year by year, even though the small-business balance
// sheet itself is allowed to stay unbalanced.
package validate

import (
	"fmt"
	"math"

	"smb_forecast/pkg/core/statement"
)

// DefaultTolerance absorbs float rounding in statement articulation.
const DefaultTolerance = 0.01

// LinkageReport contains the cross-statement checks for one year.
type LinkageReport struct {
	Year                   string                `json:"year"`
	ISToCF                 *NetIncomeLinkage     `json:"is_to_cf"`    // IS -> CF
	CFToBS                 *CashLinkage          `json:"cf_to_bs"`    // CF -> BS
	ISToBSRetainedEarnings *RetainedEarningsLink `json:"is_to_bs_re"` // IS -> BS
	AllPassed              bool                  `json:"all_passed"`
	FailedChecks           []string              `json:"failed_checks,omitempty"`
}

// NetIncomeLinkage validates: IS Net Income == CF operating start line.
type NetIncomeLinkage struct {
	ISNetIncome   float64 `json:"is_net_income"`
	CFNetIncStart float64 `json:"cf_net_income_start"`
	Difference    float64 `json:"difference"`
	IsLinked      bool    `json:"is_linked"`
	Tolerance     float64 `json:"tolerance"`
}

// CashLinkage validates: CF closing cash == BS cash, and the net
// change reconciles with opening and closing balances.
type CashLinkage struct {
	CFCashEnding   float64 `json:"cf_cash_ending"`
	BSCash         float64 `json:"bs_cash"`
	DifferenceCash float64 `json:"difference_cash"`

	CFNetChange    float64 `json:"cf_net_change"`
	BalanceChange  float64 `json:"balance_change"` // closing - opening
	DifferenceNC   float64 `json:"difference_net_change"`

	IsLinked  bool    `json:"is_linked"`
	Tolerance float64 `json:"tolerance"`
}

// RetainedEarningsLink validates: delta RE == Net Income - Drawings.
type RetainedEarningsLink struct {
	NetIncome        float64 `json:"net_income"`
	OwnerDrawings    float64 `json:"owner_drawings"`
	ExpectedREChange float64 `json:"expected_re_change"` // NI - drawings
	ActualREChange   float64 `json:"actual_re_change"`
	Difference       float64 `json:"difference"`
	IsLinked         bool    `json:"is_linked"`
	Tolerance        float64 `json:"tolerance"`
}

// ValidateStatements runs every linkage check over the forecast
// years of one statement bundle. drawings may be nil when the owner
// takes nothing out; otherwise it is the per-year cash withdrawn.
func ValidateStatements(result *statement.Result, drawings []float64, tolerance float64) []LinkageReport {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	reports := make([]LinkageReport, 0, len(result.CashFlow))
	priorRE := 0.0
	for i, cf := range result.CashFlow {
		report := LinkageReport{Year: cf.Year, AllPassed: true}

		if i < len(result.IncomeStatement) {
			ni := result.IncomeStatement[i].NetIncome
			cfStart := 0.0
			if len(cf.OperatingActivities) > 0 {
				cfStart = cf.OperatingActivities[0].Amount
			}
			link := &NetIncomeLinkage{
				ISNetIncome:   ni,
				CFNetIncStart: cfStart,
				Difference:    ni - cfStart,
				Tolerance:     tolerance,
			}
			link.IsLinked = math.Abs(link.Difference) <= tolerance
			report.ISToCF = link
			if !link.IsLinked {
				report.AllPassed = false
				report.FailedChecks = append(report.FailedChecks,
					fmt.Sprintf("net income %.2f does not open the cash flow (%.2f)", ni, cfStart))
			}
		}

		if i < len(result.BalanceSheet) {
			bsCash := result.BalanceSheet[i].Assets.Cash
			link := &CashLinkage{
				CFCashEnding:   cf.ClosingCashBalance,
				BSCash:         bsCash,
				DifferenceCash: cf.ClosingCashBalance - bsCash,
				CFNetChange:    cf.NetChangeInCash,
				BalanceChange:  cf.ClosingCashBalance - cf.OpeningCashBalance,
				Tolerance:      tolerance,
			}
			link.DifferenceNC = link.CFNetChange - link.BalanceChange
			link.IsLinked = math.Abs(link.DifferenceCash) <= tolerance && math.Abs(link.DifferenceNC) <= tolerance
			report.CFToBS = link
			if !link.IsLinked {
				report.AllPassed = false
				report.FailedChecks = append(report.FailedChecks,
					fmt.Sprintf("cash flow closing %.2f does not tie to balance sheet cash %.2f", cf.ClosingCashBalance, bsCash))
			}
		}

		if i < len(result.BalanceSheet) && i < len(result.IncomeStatement) {
			drawn := 0.0
			if i < len(drawings) {
				drawn = drawings[i]
			}
			actualRE := result.BalanceSheet[i].Equity.RetainedEarnings
			link := &RetainedEarningsLink{
				NetIncome:        result.IncomeStatement[i].NetIncome,
				OwnerDrawings:    drawn,
				ExpectedREChange: result.IncomeStatement[i].NetIncome - drawn,
				ActualREChange:   actualRE - priorRE,
				Tolerance:        tolerance,
			}
			link.Difference = link.ActualREChange - link.ExpectedREChange
			link.IsLinked = math.Abs(link.Difference) <= tolerance
			report.ISToBSRetainedEarnings = link
			priorRE = actualRE
			if !link.IsLinked {
				report.AllPassed = false
				report.FailedChecks = append(report.FailedChecks,
					fmt.Sprintf("retained earnings moved %.2f, expected %.2f", link.ActualREChange, link.ExpectedREChange))
			}
		}

		reports = append(reports, report)
	}
	return reports
}
