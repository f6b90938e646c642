package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pv-mining-sim/internal/analysis"
	"pv-mining-sim/internal/api/models"
	"pv-mining-sim/internal/config"
)

// ParametersHandler exposes the server's effective configuration so UI
// clients can pre-fill override forms.
type ParametersHandler struct {
	base *config.Config
}

func NewParametersHandler(base *config.Config) *ParametersHandler {
	return &ParametersHandler{base: base}
}

// GetParameters handles GET /api/v1/parameters
func (h *ParametersHandler) GetParameters(c *gin.Context) {
	cfg := h.base

	resp := models.ParametersResponse{
		Plant: map[string]interface{}{
			"name":             cfg.Plant.Name,
			"power_mwp":        cfg.Plant.PowerMWp,
			"baseline_mwh":     cfg.Plant.BaselineMWh,
			"degradation_rate": cfg.Plant.DegradationRate,
			"capex_usd":        cfg.Plant.CapexUSD,
			"opex_usd":         cfg.Plant.OpexUSD,
		},
		Market: map[string]interface{}{
			"sale_price_usd_kwh": cfg.Market.SalePriceUSDPerKWh,
		},
		Mining: map[string]interface{}{
			"farm_power_mw":       cfg.Mining.FarmPowerMW,
			"pue":                 cfg.Mining.PUE,
			"efficiency_j_per_th": cfg.Mining.EfficiencyJPerTH,
			"max_consumption_mwh": cfg.Mining.MaxConsumptionMWh,
		},
		Horizon: models.HorizonInfo{
			StartYear: cfg.Horizon.StartYear,
			EndYear:   cfg.Horizon.EndYear,
		},
		Parameters: []models.ParameterInfo{
			{Name: "plant.power_mwp", Type: "float", Description: "PV plant nameplate power in MWp", Default: cfg.Plant.PowerMWp},
			{Name: "plant.baseline_mwh", Type: "float", Description: "First-year production baseline in MWh", Default: cfg.Plant.BaselineMWh},
			{Name: "plant.degradation_rate", Type: "float", Description: "Annual panel degradation rate (fraction)", Default: cfg.Plant.DegradationRate},
			{Name: "plant.capex_usd", Type: "float", Description: "Upfront plant investment in USD", Default: cfg.Plant.CapexUSD},
			{Name: "plant.opex_usd", Type: "float", Description: "Annual operating cost in USD", Default: cfg.Plant.OpexUSD},
			{Name: "market.sale_price_usd_kwh", Type: "float", Description: "Grid sale price in USD per kWh", Default: cfg.Market.SalePriceUSDPerKWh},
			{Name: "mining.farm_power_mw", Type: "float", Description: "Mining farm electrical power in MW", Default: cfg.Mining.FarmPowerMW},
			{Name: "mining.pue", Type: "float", Description: "Power usage effectiveness of the farm (>= 1)", Default: cfg.Mining.PUE},
			{Name: "mining.efficiency_j_per_th", Type: "float", Description: "Miner efficiency in joules per terahash", Default: cfg.Mining.EfficiencyJPerTH},
			{Name: "mining.max_consumption_mwh", Type: "float", Description: "Annual farm consumption cap in MWh", Default: cfg.Mining.MaxConsumptionMWh},
			{Name: "horizon.start_year", Type: "int", Description: "First simulated year", Default: cfg.Horizon.StartYear},
			{Name: "horizon.end_year", Type: "int", Description: "Last simulated year (inclusive)", Default: cfg.Horizon.EndYear},
		},
	}

	c.JSON(http.StatusOK, resp)
}

// GetCarbon handles GET /api/v1/carbon
func (h *ParametersHandler) GetCarbon(c *gin.Context) {
	carbon := analysis.CarbonBalance{
		AvoidedTonsPerYear: h.base.Environment.CO2AvoidedTonsPerYear,
	}
	horizon := h.base.ToHorizon()

	series := carbon.Series(horizon)
	rows := make([]models.CarbonRow, len(series))
	for i, y := range series {
		rows[i] = models.CarbonRow{Year: y.Year, CumulativeTons: y.CumulativeTons}
	}

	c.JSON(http.StatusOK, models.CarbonResult{
		AvoidedTonsPerYear: carbon.Annual(),
		TotalTons:          carbon.Cumulative(horizon.Len()),
		Series:             rows,
	})
}
