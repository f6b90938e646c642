package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pv-mining-sim/internal/analysis"
	"pv-mining-sim/internal/api/models"
	"pv-mining-sim/internal/config"
	"pv-mining-sim/internal/data"
	"pv-mining-sim/internal/model"
	"pv-mining-sim/internal/sim"
)

// CompareHandler runs scenario comparisons against the server's base
// configuration, with optional per-request overrides.
type CompareHandler struct {
	base *config.Config
	log  *zap.Logger
}

func NewCompareHandler(base *config.Config, log *zap.Logger) *CompareHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &CompareHandler{base: base, log: log}
}

// RunCompare handles POST /api/v1/compare. An empty body runs the base
// configuration unchanged.
func (h *CompareHandler) RunCompare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg := h.applyOverrides(req)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	store := data.NewStore(data.SourceConfig{
		PVFile:              cfg.Data.PVFile,
		BTCFile:             cfg.Data.BTCFile,
		DifficultyFile:      cfg.Data.DifficultyFile,
		HashrateFile:        cfg.Data.HashrateFile,
		ExpectedBaselineMWh: cfg.Plant.BaselineMWh,
	}, h.log)

	snap, err := store.Load(cfg.ToHorizon())
	if err != nil {
		status := http.StatusInternalServerError
		code := "DATA_LOAD_ERROR"
		var insuff *model.InsufficientDataError
		if errors.As(err, &insuff) {
			status = http.StatusBadRequest
			code = "INSUFFICIENT_DATA"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return
	}

	comparator := &sim.Comparator{
		PV:      cfg.ToPVParams(),
		Mining:  cfg.ToMiningParams(),
		Rewards: cfg.RewardSchedule(),
		Horizon: cfg.ToHorizon(),
	}
	result, err := comparator.Run(snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, h.buildResponse(cfg, result, req.Options))
}

// applyOverrides copies the base config and overlays the non-zero request
// fields onto it.
func (h *CompareHandler) applyOverrides(req models.CompareRequest) *config.Config {
	cfg := *h.base

	if p := req.Plant; p != nil {
		cfg.Plant = config.MergePlant(cfg.Plant, config.PlantConfig{
			Name:            p.Name,
			PowerMWp:        p.PowerMWp,
			BaselineMWh:     p.BaselineMWh,
			DegradationRate: p.DegradationRate,
			CapexUSD:        p.CapexUSD,
			OpexUSD:         p.OpexUSD,
		})
	}
	if m := req.Market; m != nil && m.SalePriceUSDPerKWh != 0 {
		cfg.Market.SalePriceUSDPerKWh = m.SalePriceUSDPerKWh
	}
	if m := req.Mining; m != nil {
		if m.FarmPowerMW != 0 {
			cfg.Mining.FarmPowerMW = m.FarmPowerMW
		}
		if m.PUE != 0 {
			cfg.Mining.PUE = m.PUE
		}
		if m.EfficiencyJPerTH != 0 {
			cfg.Mining.EfficiencyJPerTH = m.EfficiencyJPerTH
		}
		if m.MaxConsumptionMWh != 0 {
			cfg.Mining.MaxConsumptionMWh = m.MaxConsumptionMWh
		}
	}
	if hz := req.Horizon; hz != nil {
		if hz.StartYear != 0 {
			cfg.Horizon.StartYear = hz.StartYear
		}
		if hz.EndYear != 0 {
			cfg.Horizon.EndYear = hz.EndYear
		}
	}
	if d := req.Data; d != nil {
		if d.PVFile != "" {
			cfg.Data.PVFile = d.PVFile
		}
		if d.BTCFile != "" {
			cfg.Data.BTCFile = d.BTCFile
		}
		if d.DifficultyFile != "" {
			cfg.Data.DifficultyFile = d.DifficultyFile
		}
		if d.HashrateFile != "" {
			cfg.Data.HashrateFile = d.HashrateFile
		}
	}
	return &cfg
}

func (h *CompareHandler) buildResponse(cfg *config.Config, result *sim.Comparison, opts models.CompareOptions) models.CompareResponse {
	resp := models.CompareResponse{
		Status: "completed",
		Horizon: models.HorizonInfo{
			StartYear: cfg.Horizon.StartYear,
			EndYear:   cfg.Horizon.EndYear,
		},
		PVSale: models.PVScenarioResult{
			Payback: toPayback(result.PVSalePayback),
			Summary: toSummary(analysis.SummarizePVSale(result.PVSale)),
		},
		Mining: models.MiningScenarioResult{
			Payback: toPayback(result.MiningPayback),
			Summary: toSummary(analysis.SummarizeMining(result.Mining)),
		},
	}

	if opts.IncludeLedgers {
		resp.PVSale.Ledger = convertPVLedger(result.PVSale)
		resp.Mining.Ledger = convertMiningLedger(result.Mining)
	}

	if opts.IncludeCarbon {
		carbon := analysis.CarbonBalance{
			AvoidedTonsPerYear: cfg.Environment.CO2AvoidedTonsPerYear,
		}
		horizon := cfg.ToHorizon()
		series := carbon.Series(horizon)
		rows := make([]models.CarbonRow, len(series))
		for i, y := range series {
			rows[i] = models.CarbonRow{Year: y.Year, CumulativeTons: y.CumulativeTons}
		}
		resp.Carbon = &models.CarbonResult{
			AvoidedTonsPerYear: carbon.Annual(),
			TotalTons:          carbon.Cumulative(horizon.Len()),
			Series:             rows,
		}
	}

	return resp
}

func toPayback(p sim.PaybackResult) models.ScenarioPayback {
	return models.ScenarioPayback{Year: p.Year, Never: p.Never}
}

func toSummary(s analysis.ScenarioSummary) models.ScenarioSummary {
	return models.ScenarioSummary{
		Years:                s.Years,
		TotalEnergyMWh:       s.TotalEnergyMWh,
		TotalRevenueUSD:      s.TotalRevenueUSD,
		TotalOpexUSD:         s.TotalOpexUSD,
		NetPositionUSD:       s.NetPositionUSD,
		BestYear:             s.BestYear,
		BestYearCashflowUSD:  s.BestYearCashflowUSD,
		WorstYear:            s.WorstYear,
		WorstYearCashflowUSD: s.WorstYearCashflowUSD,
		TotalBTCMined:        s.TotalBTCMined,
	}
}

func convertPVLedger(records []sim.PVYearRecord) []models.PVLedgerRow {
	rows := make([]models.PVLedgerRow, len(records))
	for i, r := range records {
		rows[i] = models.PVLedgerRow{
			Year:           r.Year,
			EnergyMWh:      r.EnergyMWh,
			RevenueUSD:     r.RevenueUSD,
			OpexUSD:        r.OpexUSD,
			CashflowUSD:    r.CashflowUSD,
			CumCashflowUSD: r.CumCashflowUSD,
		}
	}
	return rows
}

func convertMiningLedger(records []sim.MiningYearRecord) []models.MiningLedgerRow {
	rows := make([]models.MiningLedgerRow, len(records))
	for i, r := range records {
		rows[i] = models.MiningLedgerRow{
			Year:           r.Year,
			EnergyUsedMWh:  r.EnergyUsedMWh,
			BTCMined:       r.BTCMined,
			BTCPriceUSD:    r.BTCPriceUSD,
			RevenueUSD:     r.RevenueUSD,
			OpexUSD:        r.OpexUSD,
			CashflowUSD:    r.CashflowUSD,
			CumCashflowUSD: r.CumCashflowUSD,
		}
	}
	return rows
}
