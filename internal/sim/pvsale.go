package sim

import (
	"fmt"

	"pv-mining-sim/internal/model"
)

// PVSaleScenario folds the sell-everything-to-grid cashflow over the horizon.
// Steps are strictly sequential: each year's cumulative position depends on
// the previous one, so years cannot be reordered or parallelized.
type PVSaleScenario struct {
	Params  model.PVParams
	Horizon model.Horizon

	cum     float64
	records []PVYearRecord
	done    bool
}

func NewPVSaleScenario(params model.PVParams, h model.Horizon) (*PVSaleScenario, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("pv params invalid: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("horizon invalid: %w", err)
	}
	s := &PVSaleScenario{Params: params, Horizon: h}
	s.Reset()
	return s, nil
}

// Reset puts the accumulator back to -CAPEX and clears the ledger. It must
// run before each independent run; Run calls it itself.
func (s *PVSaleScenario) Reset() {
	s.cum = -s.Params.CapexUSD
	s.records = nil
	s.done = false
}

// Step simulates one year and appends its record. Years must be stepped in
// increasing order.
func (s *PVSaleScenario) Step(year int) PVYearRecord {
	energy := s.Params.Production(year, s.Horizon.StartYear)
	revenue := s.Params.SaleRevenue(energy)
	cashflow := revenue - s.Params.OpexUSD
	s.cum += cashflow

	rec := PVYearRecord{
		Year:           year,
		EnergyMWh:      energy,
		RevenueUSD:     revenue,
		OpexUSD:        s.Params.OpexUSD,
		CashflowUSD:    cashflow,
		CumCashflowUSD: s.cum,
	}
	s.records = append(s.records, rec)
	return rec
}

// Run executes the scenario over the whole horizon in year order.
func (s *PVSaleScenario) Run() []PVYearRecord {
	s.Reset()
	for y := s.Horizon.StartYear; y <= s.Horizon.EndYear; y++ {
		s.Step(y)
	}
	s.done = true
	return s.records
}

func (s *PVSaleScenario) Records() []PVYearRecord {
	return s.records
}

// EnergyByYear returns the per-year production of the last run, in horizon
// order. This is the coupling point the mining scenario consumes.
func (s *PVSaleScenario) EnergyByYear() ([]float64, error) {
	if !s.done {
		return nil, &NotRunError{Scenario: "pv-sale"}
	}
	out := make([]float64, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.EnergyMWh)
	}
	return out, nil
}

// PaybackYear scans the ledger in year order for the first non-negative
// cumulative position.
func (s *PVSaleScenario) PaybackYear() (PaybackResult, error) {
	if !s.done {
		return PaybackResult{}, &NotRunError{Scenario: "pv-sale"}
	}
	for _, r := range s.records {
		if r.CumCashflowUSD >= 0 {
			return PaybackResult{Year: r.Year}, nil
		}
	}
	return PaybackResult{Never: true}, nil
}
