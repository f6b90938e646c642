package model

import (
	"errors"
	"math"
)

// SecondsPerYear is the mean tropical year, matching the reward formula's
// time horizon rather than any specific calendar year.
const SecondsPerYear = 365.25 * 24 * 3600

// MiningParams defines the mining farm fed by the PV plant.
// Units:
// - FarmPowerMW: nameplate facility power
// - PUE: power-usage-effectiveness divisor (>= 1)
// - EfficiencyJPerTH: miner efficiency in joules per terahash
// - MaxConsumptionMWh: rated annual energy draw of the farm
type MiningParams struct {
	FarmPowerMW       float64
	PUE               float64
	EfficiencyJPerTH  float64
	MaxConsumptionMWh float64
}

func (m MiningParams) Validate() error {
	if m.FarmPowerMW <= 0 {
		return errors.New("FarmPowerMW must be > 0")
	}
	if m.PUE < 1 {
		return errors.New("PUE must be >= 1")
	}
	if m.EfficiencyJPerTH <= 0 {
		return errors.New("EfficiencyJPerTH must be > 0")
	}
	if m.MaxConsumptionMWh <= 0 {
		return errors.New("MaxConsumptionMWh must be > 0")
	}
	return nil
}

// SystemHashrateHs derives the farm hashrate in H/s from nameplate power:
// net miner power = farm power / PUE, then W / (J/TH) gives TH/s.
func (m MiningParams) SystemHashrateHs() float64 {
	minerPowerW := m.FarmPowerMW * 1e6 / m.PUE
	return minerPowerW / m.EfficiencyJPerTH * 1e12
}

// BTCMined returns the expected BTC mined over a year:
//
//	BTC = HR * seconds_per_year * average_reward(year) / (difficulty * 2^32)
//
// The model assumes 100% miner uptime, so yield is independent of how much
// PV energy was actually available; only the energy accounting is capped.
func (m MiningParams) BTCMined(year int, difficulty float64, rewards RewardSchedule) (float64, error) {
	if difficulty <= 0 {
		return 0, errors.New("difficulty must be > 0")
	}
	if len(rewards) == 0 {
		return 0, errors.New("reward schedule is empty")
	}
	reward := rewards.AverageBlockReward(year)
	return m.SystemHashrateHs() * SecondsPerYear * reward / (difficulty * math.Pow(2, 32)), nil
}

// EnergyUsed caps consumption at the farm's rated annual draw. The figure is
// informational: it feeds the ledger, not the yield.
func (m MiningParams) EnergyUsed(pvAvailableMWh float64) float64 {
	return math.Min(m.MaxConsumptionMWh, pvAvailableMWh)
}
