package data

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"pv-mining-sim/internal/model"
)

// Chart keys inside the difficulty and hash-rate files.
const (
	ChartDifficulty = "difficulty"
	ChartHashrate   = "hash-rate"
)

// SourceConfig names the external sources the store reads once per run.
type SourceConfig struct {
	PVFile         string
	BTCFile        string
	DifficultyFile string
	HashrateFile   string

	// ExpectedBaselineMWh enables the baseline sanity check; 0 disables it.
	// BaselineTolerance is a fraction of the expected value (default 1%).
	ExpectedBaselineMWh float64
	BaselineTolerance   float64
}

// DataValidationError reports a measured PV baseline that deviates materially
// from the expected reference. It is logged as a warning, never fatal: the
// run proceeds with the measured total.
type DataValidationError struct {
	ExpectedMWh float64
	MeasuredMWh float64
	Tolerance   float64
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("pv baseline total %.1f MWh deviates from expected %.1f MWh by more than %.1f%%",
		e.MeasuredMWh, e.ExpectedMWh, e.Tolerance*100)
}

// Snapshot is the read-only result of a load: every series covers every
// horizon year. Downstream components hold the snapshot; the store keeps no
// state of its own after Load returns.
type Snapshot struct {
	Horizon model.Horizon

	PVMonthly     []MonthlyProduction
	PVBaselineMWh float64

	BTCPrice        model.YearlySeries
	Difficulty      model.YearlySeries
	NetworkHashrate model.YearlySeries
}

// Store loads and validates the historical series for one analysis run.
type Store struct {
	cfg SourceConfig
	log *zap.Logger
}

func NewStore(cfg SourceConfig, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.BaselineTolerance == 0 {
		cfg.BaselineTolerance = 0.01
	}
	return &Store{cfg: cfg, log: log}
}

// Load reads every source, aggregates sub-annual observations to yearly
// means, and extends each series to the horizon by forward-fill.
func (s *Store) Load(h model.Horizon) (*Snapshot, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	monthly, baseline, err := LoadPVBaselineCSV(s.cfg.PVFile)
	if err != nil {
		return nil, err
	}
	if verr := s.validateBaseline(baseline); verr != nil {
		s.log.Warn("pv baseline validation failed, continuing with measured total",
			zap.Float64("measured_mwh", verr.MeasuredMWh),
			zap.Float64("expected_mwh", verr.ExpectedMWh),
			zap.Error(verr),
		)
	}
	s.log.Info("pv baseline loaded",
		zap.Int("months", len(monthly)),
		zap.Float64("total_mwh", baseline),
	)

	btcObs, err := LoadBTCPriceCSV(s.cfg.BTCFile)
	if err != nil {
		return nil, err
	}
	btcPrice, err := model.AggregateYearly(btcObs).ExtendToHorizon("btc_price", h)
	if err != nil {
		return nil, err
	}

	diffObs, err := LoadChartJSON(s.cfg.DifficultyFile, ChartDifficulty)
	if err != nil {
		return nil, err
	}
	difficulty, err := model.AggregateYearly(diffObs).ExtendToHorizon("difficulty", h)
	if err != nil {
		return nil, err
	}

	hrObs, err := LoadChartJSON(s.cfg.HashrateFile, ChartHashrate)
	if err != nil {
		return nil, err
	}
	hashrate, err := model.AggregateYearly(hrObs).ExtendToHorizon("network_hashrate", h)
	if err != nil {
		return nil, err
	}

	s.log.Info("historical series extended to horizon",
		zap.Int("start_year", h.StartYear),
		zap.Int("end_year", h.EndYear),
	)

	return &Snapshot{
		Horizon:         h,
		PVMonthly:       monthly,
		PVBaselineMWh:   baseline,
		BTCPrice:        btcPrice,
		Difficulty:      difficulty,
		NetworkHashrate: hashrate,
	}, nil
}

func (s *Store) validateBaseline(measured float64) *DataValidationError {
	expected := s.cfg.ExpectedBaselineMWh
	if expected <= 0 {
		return nil
	}
	if math.Abs(measured-expected) <= s.cfg.BaselineTolerance*expected {
		return nil
	}
	return &DataValidationError{
		ExpectedMWh: expected,
		MeasuredMWh: measured,
		Tolerance:   s.cfg.BaselineTolerance,
	}
}
