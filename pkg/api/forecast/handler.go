package forecast

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"smb_forecast/pkg/core/montecarlo"
	"smb_forecast/pkg/core/scenario"
	"smb_forecast/pkg/core/sensitivity"
	"smb_forecast/pkg/core/statement"
	"smb_forecast/pkg/core/utils"
	"smb_forecast/pkg/core/valuation"
	"smb_forecast/pkg/models"
)

var engineCfg statement.Config

func InitHandler(cfg statement.Config) {
	engineCfg = cfg
}

// ApiResponse is the standard envelope for the calculate endpoint.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Shareholder is one equity holder as sent by the frontend.
type Shareholder struct {
	Name    string           `json:"name"`
	Amount  models.FlexFloat `json:"amount"`
	Percent models.FlexFloat `json:"percent"`
}

// OwnerSalary is the owner's compensation, quoted per frequency.
type OwnerSalary struct {
	Amount    models.FlexFloat `json:"amount"`
	Frequency string           `json:"frequency"` // monthly, weekly, annual
}

// CalculateRequest is the full calculate payload: the business inputs
// plus the valuation knobs layered on top. Costs is a legacy alias
// some frontend builds send instead of expenses.
type CalculateRequest struct {
	models.BusinessInputs
	CompanyType string               `json:"company_type"`
	Costs       []models.ExpenseItem `json:"costs"`

	DiscountRate   *float64 `json:"discountRate"`
	TerminalGrowth *float64 `json:"terminalGrowth"`

	// WACC build-up (all rates in percent).
	UseWaccBuildUp      bool             `json:"useWaccBuildUp"`
	UseCostOfEquityOnly bool             `json:"useCostOfEquityOnly"`
	RfRate              models.FlexFloat `json:"rfRate"`
	Beta                models.FlexFloat `json:"beta"`
	MarketPremium       models.FlexFloat `json:"marketPremium"`
	CostOfDebt          models.FlexFloat `json:"costOfDebt"`
	TaxRateWacc         models.FlexFloat `json:"taxRateWacc"`
	EquityPct           models.FlexFloat `json:"equityPct"`
	DebtPct             models.FlexFloat `json:"debtPct"`

	// Terminal value selection.
	TVMethod      string            `json:"tvMethod"`
	TVMetric      string            `json:"tvMetric"`
	TVMultiple    models.FlexFloat  `json:"tvMultiple"`
	TVCustomValue models.FlexFloat  `json:"tvCustomValue"`
	TVYear        *models.FlexFloat `json:"tvYear"`

	Shareholders []Shareholder `json:"shareholders"`
	OwnerSalary  *OwnerSalary  `json:"ownerSalary"`
}

// NamedValue is one expense line in the response-level breakdown.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ShareholderSummary is the response shape for one shareholder.
type ShareholderSummary struct {
	Name   string  `json:"name"`
	Shares float64 `json:"shares"` // ownership percent
	Value  float64 `json:"value"`  // invested amount
}

// EquityData groups ownership info for the equity tab.
type EquityData struct {
	Shareholders []ShareholderSummary `json:"shareholders"`
	OwnerSalary  float64              `json:"ownerSalary"` // annualized
}

// CalculateResponse embeds the statement bundle and layers the
// valuation blocks on top. The outer ExpenseBreakdown intentionally
// shadows the statement-level one: the frontend pie chart wants the
// raw request lines, not the annualized grouping.
type CalculateResponse struct {
	*statement.Result
	Valuation         models.ValuationSummary    `json:"valuation"`
	DCF               models.DCFDetail           `json:"dcf"`
	SensitivityMatrix []sensitivity.MatrixRow    `json:"sensitivityMatrix"`
	TornadoData       []sensitivity.TornadoEntry `json:"tornadoData"`
	ExpenseBreakdown  []NamedValue               `json:"expense_breakdown"`
	Equity            EquityData                 `json:"equity"`
}

// Fixed grids for the valuation heatmap.
var (
	waccRange   = []float64{0.07, 0.08, 0.09, 0.10, 0.11, 0.12}
	growthRange = []float64{0.01, 0.02, 0.03, 0.04}
)

// perpetuityTV is the Gordon growth terminal value with a guard
// against a degenerate denominator.
func perpetuityTV(lastFCF, g, wacc float64) float64 {
	if wacc-g <= 0.001 {
		return 0
	}
	return lastFCF * (1 + g) / (wacc - g)
}

func allowCORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// decodeRequest reads the body and parses it leniently: frontend
// builds have shipped payloads with trailing commas and comments.
func decodeRequest(r *http.Request, out interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if _, err := utils.SmartParse(string(body), out); err != nil {
		return err
	}
	return nil
}

func HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if allowCORS(w, r) {
		return
	}
	reqID := uuid.New().String()[:8]

	var req CalculateRequest
	if err := decodeRequest(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ApiResponse{Success: false, Error: err.Error()})
		return
	}

	sector := models.Sector(req.CompanyType)
	if sector == "" {
		sector = models.SectorService
	}
	fmt.Printf("[MODELS] %s calculate company_type=%s\n", reqID, sector)

	// Legacy alias: some builds send costs instead of expenses.
	if len(req.Expenses) == 0 && len(req.Costs) > 0 {
		req.Expenses = req.Costs
	}

	result, err := statement.Build(sector, &req.BusinessInputs, engineCfg)
	if err != nil {
		fmt.Printf("[MODELS] %s rejected: %v\n", reqID, err)
		writeJSON(w, http.StatusOK, ApiResponse{Success: false, Error: err.Error()})
		return
	}

	fcf := result.FreeCashFlows()

	// ---- Discount rate ----
	discountRate := engineCfg.DiscountRate
	if req.UseWaccBuildUp {
		taxRateWacc := req.TaxRateWacc.V() / 100
		if req.TaxRateWacc.V() == 0 {
			taxRateWacc = req.TaxRate.ValueOr(engineCfg.DefaultTaxRate*100) / 100
		}
		buildUp := valuation.BuildUp(valuation.BuildUpInput{
			RiskFreeRate:     req.RfRate.V(),
			Beta:             req.Beta.V(),
			MarketPremium:    req.MarketPremium.V(),
			CostOfDebt:       req.CostOfDebt.V(),
			TaxRate:          taxRateWacc,
			EquityPct:        req.EquityPct.V(),
			DebtPct:          req.DebtPct.V(),
			CostOfEquityOnly: req.UseCostOfEquityOnly,
		})
		discountRate = buildUp.DiscountRate
	} else if req.DiscountRate != nil {
		discountRate = *req.DiscountRate
	}
	terminalGrowth := engineCfg.TerminalGrowth
	if req.TerminalGrowth != nil {
		terminalGrowth = *req.TerminalGrowth
	}

	// ---- Terminal value ----
	tvMethod := req.TVMethod
	if tvMethod == "" {
		tvMethod = string(valuation.TVPerpetuity)
	}
	tvMetric := req.TVMetric
	if tvMetric == "" {
		tvMetric = "EBITDA"
	}
	tvYear := len(fcf)
	if req.TVYear != nil && int(req.TVYear.V()) != 0 {
		tvYear = int(req.TVYear.V())
	}
	lastFCF := 0.0
	if len(fcf) > 0 {
		lastFCF = fcf[len(fcf)-1]
	}
	terminalValue := valuation.TerminalValue(valuation.TerminalValueInput{
		Method:         valuation.TVMethod(tvMethod),
		FinalFCF:       lastFCF,
		DiscountRate:   discountRate,
		TerminalGrowth: terminalGrowth,
		Metric:         tvMetricValue(tvMetric, result.Forecast),
		Multiple:       req.TVMultiple.V(),
		CustomValue:    req.TVCustomValue.V(),
	})

	dcfValue := valuation.DCFValue(fcf, discountRate, terminalValue, tvYear)
	npv := valuation.NPV(fcf, discountRate)

	var irrPtr *float64
	irrFlows := fcf
	if len(fcf) > 0 && fcf[0] > 0 {
		flipped := make([]float64, len(fcf))
		flipped[0] = -fcf[0]
		copy(flipped[1:], fcf[1:])
		irrFlows = flipped
	}
	if irr, ok := valuation.IRR(irrFlows); ok {
		irrPtr = &irr
	}
	var paybackPtr *float64
	if pb, ok := valuation.PaybackPeriod(fcf); ok {
		paybackPtr = &pb
	}

	// ---- Sensitivity heatmap and tornado ----
	matrix := sensitivity.Matrix(fcf, waccRange, growthRange, perpetuityTV)
	impacts := []sensitivity.VariableImpact{
		{Variable: "Revenue Growth", Low: 0.95, High: 1.05, Type: sensitivity.ImpactFCF},
		{Variable: "EBITDA Margin", Low: 0.9, High: 1.1, Type: sensitivity.ImpactFCF},
		{Variable: "WACC", Low: maxFloat(0.01, discountRate-0.01), High: discountRate + 0.01, Type: sensitivity.ImpactWACC},
		{Variable: "Terminal Growth", Low: maxFloat(0.0, terminalGrowth-0.01), High: terminalGrowth + 0.01, Type: sensitivity.ImpactGrowth},
	}
	tornado := sensitivity.Tornado(fcf, discountRate, terminalGrowth, impacts, perpetuityTV)

	// ---- Equity bridge ----
	var cash, longTermDebt float64
	if len(result.BalanceSheet) > 0 {
		cash = result.BalanceSheet[0].Assets.Cash
		longTermDebt = result.BalanceSheet[0].Liabilities.LongTermDebt
	}
	netDebt := longTermDebt - cash
	enterpriseValue := dcfValue
	equityValue := enterpriseValue - netDebt

	resp := CalculateResponse{
		Result: result,
		Valuation: models.ValuationSummary{
			EnterpriseValue: enterpriseValue,
			EquityValue:     equityValue,
			IRR:             irrPtr,
			NPV:             npv,
			PaybackPeriod:   paybackPtr,
		},
		DCF: models.DCFDetail{
			DCFValue:       dcfValue,
			DiscountRate:   discountRate,
			TerminalValue:  terminalValue,
			TerminalGrowth: terminalGrowth,
			FreeCashFlows:  fcf,
			TVMethod:       tvMethod,
			TVMetric:       tvMetric,
			TVMultiple:     req.TVMultiple.V(),
			TVCustomValue:  req.TVCustomValue.V(),
			TVYear:         tvYear,
		},
		SensitivityMatrix: matrix,
		TornadoData:       tornado,
		ExpenseBreakdown:  expenseLines(req.Expenses),
		Equity:            equityData(req.Shareholders, req.OwnerSalary),
	}
	fmt.Printf("[MODELS] %s done: dcf=%.2f npv=%.2f\n", reqID, dcfValue, npv)
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: resp})
}

// tvMetricValue pulls the exit-multiple base from the final forecast
// year.
func tvMetricValue(metric string, forecast []models.ForecastYear) float64 {
	if len(forecast) == 0 {
		return 0
	}
	last := forecast[len(forecast)-1]
	switch metric {
	case "EBIT":
		return last.EBIT
	case "Revenue":
		return last.Revenue
	case "NetIncome":
		return last.NetIncome
	default:
		return last.EBITDA
	}
}

func expenseLines(expenses []models.ExpenseItem) []NamedValue {
	lines := make([]NamedValue, 0, len(expenses))
	for _, e := range expenses {
		name := e.Category
		if name == "" {
			name = e.Name
		}
		if name == "" {
			name = "Unknown"
		}
		lines = append(lines, NamedValue{Name: name, Value: e.Amount.V()})
	}
	return lines
}

func equityData(shareholders []Shareholder, salary *OwnerSalary) EquityData {
	data := EquityData{Shareholders: []ShareholderSummary{}}
	for _, s := range shareholders {
		if s.Name == "" {
			continue
		}
		data.Shareholders = append(data.Shareholders, ShareholderSummary{
			Name:   s.Name,
			Shares: s.Percent.V(),
			Value:  s.Amount.V(),
		})
	}
	if salary != nil && salary.Amount.V() != 0 {
		switch salary.Frequency {
		case "weekly":
			data.OwnerSalary = salary.Amount.V() * 52
		case "annual", "yearly":
			data.OwnerSalary = salary.Amount.V()
		default: // monthly
			data.OwnerSalary = salary.Amount.V() * 12
		}
	}
	return data
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// MonteCarloRequest bounds the NPV simulation.
type MonteCarloRequest struct {
	FreeCashFlows       []float64 `json:"free_cash_flows"`
	DiscountRateRange   []float64 `json:"discount_rate_range"`
	TerminalGrowthRange []float64 `json:"terminal_growth_range"`
	Runs                int       `json:"runs"`
	Seed                int64     `json:"seed"`
}

func HandleMonteCarlo(w http.ResponseWriter, r *http.Request) {
	if allowCORS(w, r) {
		return
	}
	var req MonteCarloRequest
	if err := decodeRequest(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	drRange := rangeOrDefault(req.DiscountRateRange, [2]float64{0.08, 0.12})
	tgRange := rangeOrDefault(req.TerminalGrowthRange, [2]float64{0.01, 0.03})
	fmt.Printf("[MODELS] monte-carlo runs=%d dr=[%.3f,%.3f] tg=[%.3f,%.3f]\n",
		req.Runs, drRange[0], drRange[1], tgRange[0], tgRange[1])
	histogram := montecarlo.Simulate(montecarlo.SimulationInput{
		FreeCashFlows:       req.FreeCashFlows,
		DiscountRateRange:   drRange,
		TerminalGrowthRange: tgRange,
		Runs:                req.Runs,
		Seed:                req.Seed,
	})
	writeJSON(w, http.StatusOK, map[string]interface{}{"npvDistribution": histogram})
}

func rangeOrDefault(bounds []float64, def [2]float64) [2]float64 {
	if len(bounds) == 2 {
		return [2]float64{bounds[0], bounds[1]}
	}
	return def
}

// scenarioRequest is shared by the scenario endpoints; each one reads
// the fields it needs.
type scenarioRequest struct {
	BaseForecast       []models.ForecastYear           `json:"base_forecast"`
	ScenarioConfigs    map[string]scenario.Values      `json:"scenario_configs"`
	ScenarioValues     scenario.Values                 `json:"scenario_values"`
	SensitivityRanges  map[string]scenario.RangeConfig `json:"sensitivity_ranges"`
	BaseDiscountRate   *float64                        `json:"base_discount_rate"`
	BaseTerminalGrowth *float64                        `json:"base_terminal_growth"`
}

func (s *scenarioRequest) rates() (float64, float64) {
	rate, growth := 0.1, 0.02
	if s.BaseDiscountRate != nil {
		rate = *s.BaseDiscountRate
	}
	if s.BaseTerminalGrowth != nil {
		growth = *s.BaseTerminalGrowth
	}
	return rate, growth
}

func HandleScenarioCalculate(w http.ResponseWriter, r *http.Request) {
	if allowCORS(w, r) {
		return
	}
	var req scenarioRequest
	if err := decodeRequest(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(req.BaseForecast) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Base forecast is required"})
		return
	}
	rate, growth := req.rates()
	fmt.Printf("[MODELS] scenario-calculate scenarios=%d years=%d\n", len(req.ScenarioConfigs), len(req.BaseForecast))
	results := scenario.Comparison(req.BaseForecast, req.ScenarioConfigs, rate, growth)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios":            results,
		"base_discount_rate":   rate,
		"base_terminal_growth": growth,
	})
}

func HandleSingleScenario(w http.ResponseWriter, r *http.Request) {
	if allowCORS(w, r) {
		return
	}
	var req scenarioRequest
	if err := decodeRequest(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(req.BaseForecast) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Base forecast is required"})
		return
	}
	rate, growth := req.rates()
	kpis := scenario.ComputeKPIs(req.BaseForecast, req.ScenarioValues, rate, growth)
	writeJSON(w, http.StatusOK, kpis)
}

func HandleSensitivityAnalysis(w http.ResponseWriter, r *http.Request) {
	if allowCORS(w, r) {
		return
	}
	var req scenarioRequest
	if err := decodeRequest(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(req.BaseForecast) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Base forecast is required"})
		return
	}
	rate, growth := req.rates()
	fmt.Printf("[MODELS] sensitivity-analysis variables=%d years=%d\n", len(req.SensitivityRanges), len(req.BaseForecast))
	result := scenario.Analysis(req.BaseForecast, req.SensitivityRanges, rate, growth)
	writeJSON(w, http.StatusOK, result)
}
