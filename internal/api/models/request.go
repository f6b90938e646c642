package models

// CompareRequest is the body for running a scenario comparison. Every block
// is optional: omitted fields keep the server's configured values, so an
// empty body runs the reference study as-is.
type CompareRequest struct {
	Plant   *PlantOverrides   `json:"plant,omitempty"`
	Market  *MarketOverrides  `json:"market,omitempty"`
	Mining  *MiningOverrides  `json:"mining,omitempty"`
	Horizon *HorizonOverrides `json:"horizon,omitempty"`
	Data    *DataOverrides    `json:"data,omitempty"`
	Options CompareOptions    `json:"options,omitempty"`
}

// PlantOverrides adjusts the PV plant; zero fields are ignored.
type PlantOverrides struct {
	Name            string  `json:"name,omitempty"`
	PowerMWp        float64 `json:"power_mwp,omitempty"`
	BaselineMWh     float64 `json:"baseline_mwh,omitempty"`
	DegradationRate float64 `json:"degradation_rate,omitempty"`
	CapexUSD        float64 `json:"capex_usd,omitempty"`
	OpexUSD         float64 `json:"opex_usd,omitempty"`
}

type MarketOverrides struct {
	SalePriceUSDPerKWh float64 `json:"sale_price_usd_kwh,omitempty"`
}

type MiningOverrides struct {
	FarmPowerMW       float64 `json:"farm_power_mw,omitempty"`
	PUE               float64 `json:"pue,omitempty"`
	EfficiencyJPerTH  float64 `json:"efficiency_j_per_th,omitempty"`
	MaxConsumptionMWh float64 `json:"max_consumption_mwh,omitempty"`
}

type HorizonOverrides struct {
	StartYear int `json:"start_year,omitempty"`
	EndYear   int `json:"end_year,omitempty"`
}

// DataOverrides points the run at different source files on the server.
type DataOverrides struct {
	PVFile         string `json:"pv_file,omitempty"`
	BTCFile        string `json:"btc_file,omitempty"`
	DifficultyFile string `json:"difficulty_file,omitempty"`
	HashrateFile   string `json:"hashrate_file,omitempty"`
}

// CompareOptions controls response verbosity.
type CompareOptions struct {
	IncludeLedgers bool `json:"include_ledgers,omitempty"`
	IncludeCarbon  bool `json:"include_carbon,omitempty"`
}
