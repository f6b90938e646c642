package models

// CompareResponse is the response from a scenario comparison run.
type CompareResponse struct {
	Status  string               `json:"status"`
	Horizon HorizonInfo          `json:"horizon"`
	PVSale  PVScenarioResult     `json:"pv_sale"`
	Mining  MiningScenarioResult `json:"mining"`
	Carbon  *CarbonResult        `json:"carbon,omitempty"`
}

type HorizonInfo struct {
	StartYear int `json:"start_year"`
	EndYear   int `json:"end_year"`
}

// PVScenarioResult carries the grid-sale scenario's payback, summary and
// optional ledger.
type PVScenarioResult struct {
	Payback ScenarioPayback `json:"payback"`
	Summary ScenarioSummary `json:"summary"`
	Ledger  []PVLedgerRow   `json:"ledger,omitempty"`
}

// MiningScenarioResult is the mining counterpart of PVScenarioResult.
type MiningScenarioResult struct {
	Payback ScenarioPayback   `json:"payback"`
	Summary ScenarioSummary   `json:"summary"`
	Ledger  []MiningLedgerRow `json:"ledger,omitempty"`
}

// ScenarioPayback is the payback year, or never=true when the horizon ends
// with cumulative cashflow still negative.
type ScenarioPayback struct {
	Year  int  `json:"year,omitempty"`
	Never bool `json:"never"`
}

type ScenarioSummary struct {
	Years                int     `json:"years"`
	TotalEnergyMWh       float64 `json:"total_energy_mwh"`
	TotalRevenueUSD      float64 `json:"total_revenue_usd"`
	TotalOpexUSD         float64 `json:"total_opex_usd"`
	NetPositionUSD       float64 `json:"net_position_usd"`
	BestYear             int     `json:"best_year"`
	BestYearCashflowUSD  float64 `json:"best_year_cashflow_usd"`
	WorstYear            int     `json:"worst_year"`
	WorstYearCashflowUSD float64 `json:"worst_year_cashflow_usd"`
	TotalBTCMined        float64 `json:"total_btc_mined,omitempty"`
}

// PVLedgerRow is one year of the grid-sale ledger.
type PVLedgerRow struct {
	Year           int     `json:"year"`
	EnergyMWh      float64 `json:"energy_mwh"`
	RevenueUSD     float64 `json:"revenue_usd"`
	OpexUSD        float64 `json:"opex_usd"`
	CashflowUSD    float64 `json:"cashflow_usd"`
	CumCashflowUSD float64 `json:"cum_cashflow_usd"`
}

// MiningLedgerRow is one year of the mining ledger.
type MiningLedgerRow struct {
	Year           int     `json:"year"`
	EnergyUsedMWh  float64 `json:"energy_used_mwh"`
	BTCMined       float64 `json:"btc_mined"`
	BTCPriceUSD    float64 `json:"btc_price_usd"`
	RevenueUSD     float64 `json:"revenue_usd"`
	OpexUSD        float64 `json:"opex_usd"`
	CashflowUSD    float64 `json:"cashflow_usd"`
	CumCashflowUSD float64 `json:"cum_cashflow_usd"`
}

// CarbonResult reports avoided emissions over the horizon.
type CarbonResult struct {
	AvoidedTonsPerYear float64      `json:"avoided_tons_per_year"`
	TotalTons          float64      `json:"total_tons"`
	Series             []CarbonRow  `json:"series,omitempty"`
}

type CarbonRow struct {
	Year           int     `json:"year"`
	CumulativeTons float64 `json:"cumulative_tons"`
}

// ParameterInfo describes one configurable knob for UI clients.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ParametersResponse lists the effective configuration and its knobs.
type ParametersResponse struct {
	Plant      map[string]interface{} `json:"plant"`
	Market     map[string]interface{} `json:"market"`
	Mining     map[string]interface{} `json:"mining"`
	Horizon    HorizonInfo            `json:"horizon"`
	Parameters []ParameterInfo        `json:"parameters"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
