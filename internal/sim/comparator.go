package sim

import (
	"fmt"

	"pv-mining-sim/internal/data"
	"pv-mining-sim/internal/model"
)

// Comparator runs both scenarios over the same horizon and data snapshot and
// surfaces comparable metrics. It holds no state across calls.
type Comparator struct {
	PV      model.PVParams
	Mining  model.MiningParams
	Rewards model.RewardSchedule
	Horizon model.Horizon
}

// Comparison is the analysis output handed to the presentation layer.
type Comparison struct {
	PVSale []PVYearRecord
	Mining []MiningYearRecord

	PVSalePayback PaybackResult
	MiningPayback PaybackResult
}

// Run executes the PV-sale scenario first, then feeds its per-year energy
// into the mining scenario. The two runs are sequential by data dependency.
func (c *Comparator) Run(snap *data.Snapshot) (*Comparison, error) {
	if snap == nil {
		return nil, fmt.Errorf("snapshot is nil")
	}

	pvParams := c.PV
	if snap.PVBaselineMWh > 0 {
		// The measured baseline total wins over the configured reference.
		pvParams.BaselineMWh = snap.PVBaselineMWh
	}

	pv, err := NewPVSaleScenario(pvParams, c.Horizon)
	if err != nil {
		return nil, err
	}
	pvRecords := pv.Run()
	pvPayback, err := pv.PaybackYear()
	if err != nil {
		return nil, err
	}
	energy, err := pv.EnergyByYear()
	if err != nil {
		return nil, err
	}

	mining, err := NewMiningScenario(
		c.Mining, c.Rewards, c.Horizon,
		pvParams.CapexUSD, pvParams.OpexUSD,
		snap.BTCPrice, snap.Difficulty,
	)
	if err != nil {
		return nil, err
	}
	miningRecords, err := mining.Run(energy)
	if err != nil {
		return nil, err
	}
	miningPayback, err := mining.PaybackYear()
	if err != nil {
		return nil, err
	}

	return &Comparison{
		PVSale:        pvRecords,
		Mining:        miningRecords,
		PVSalePayback: pvPayback,
		MiningPayback: miningPayback,
	}, nil
}
