package sim

import (
	"fmt"

	"pv-mining-sim/internal/model"
)

// MiningScenario folds the mine-with-PV-energy cashflow over the horizon.
// CAPEX and OPEX are shared with the PV build-out: the farm reuses the same
// plant. The scenario consumes, but never mutates, the PV scenario's output.
type MiningScenario struct {
	Params  model.MiningParams
	Rewards model.RewardSchedule
	Horizon model.Horizon

	CapexUSD float64
	OpexUSD  float64

	BTCPrice   model.YearlySeries
	Difficulty model.YearlySeries

	cum     float64
	records []MiningYearRecord
	done    bool
}

func NewMiningScenario(
	params model.MiningParams,
	rewards model.RewardSchedule,
	h model.Horizon,
	capexUSD, opexUSD float64,
	btcPrice, difficulty model.YearlySeries,
) (*MiningScenario, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("mining params invalid: %w", err)
	}
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("horizon invalid: %w", err)
	}
	if len(rewards) == 0 {
		return nil, fmt.Errorf("reward schedule is empty")
	}
	if capexUSD < 0 || opexUSD < 0 {
		return nil, fmt.Errorf("capex and opex must be >= 0")
	}
	s := &MiningScenario{
		Params:     params,
		Rewards:    rewards,
		Horizon:    h,
		CapexUSD:   capexUSD,
		OpexUSD:    opexUSD,
		BTCPrice:   btcPrice,
		Difficulty: difficulty,
	}
	s.Reset()
	return s, nil
}

// Reset puts the accumulator back to -CAPEX and clears the ledger.
func (s *MiningScenario) Reset() {
	s.cum = -s.CapexUSD
	s.records = nil
	s.done = false
}

// Step simulates one year given that year's available PV energy. BTC yield
// assumes 100% miner uptime and is not limited by supply; the energy-used
// figure is capped at the farm's rated draw for reporting only.
func (s *MiningScenario) Step(year int, pvEnergyMWh float64) (MiningYearRecord, error) {
	difficulty, err := s.Difficulty.ValueAt("difficulty", year)
	if err != nil {
		return MiningYearRecord{}, err
	}
	price, err := s.BTCPrice.ValueAt("btc_price", year)
	if err != nil {
		return MiningYearRecord{}, err
	}

	btc, err := s.Params.BTCMined(year, difficulty, s.Rewards)
	if err != nil {
		return MiningYearRecord{}, fmt.Errorf("year %d: %w", year, err)
	}

	revenue := btc * price
	cashflow := revenue - s.OpexUSD
	s.cum += cashflow

	rec := MiningYearRecord{
		Year:           year,
		EnergyUsedMWh:  s.Params.EnergyUsed(pvEnergyMWh),
		BTCMined:       btc,
		BTCPriceUSD:    price,
		RevenueUSD:     revenue,
		OpexUSD:        s.OpexUSD,
		CashflowUSD:    cashflow,
		CumCashflowUSD: s.cum,
	}
	s.records = append(s.records, rec)
	return rec, nil
}

// Run executes the scenario, consuming one PV production value per horizon
// year in increasing-year order.
func (s *MiningScenario) Run(pvEnergyByYear []float64) ([]MiningYearRecord, error) {
	if len(pvEnergyByYear) != s.Horizon.Len() {
		return nil, fmt.Errorf("need %d pv energy values, got %d", s.Horizon.Len(), len(pvEnergyByYear))
	}
	s.Reset()
	for i, year := range s.Horizon.Years() {
		if _, err := s.Step(year, pvEnergyByYear[i]); err != nil {
			return nil, err
		}
	}
	s.done = true
	return s.records, nil
}

func (s *MiningScenario) Records() []MiningYearRecord {
	return s.records
}

// PaybackYear has the same contract as the PV-sale scenario's.
func (s *MiningScenario) PaybackYear() (PaybackResult, error) {
	if !s.done {
		return PaybackResult{}, &NotRunError{Scenario: "mining"}
	}
	for _, r := range s.records {
		if r.CumCashflowUSD >= 0 {
			return PaybackResult{Year: r.Year}, nil
		}
	}
	return PaybackResult{Never: true}, nil
}
