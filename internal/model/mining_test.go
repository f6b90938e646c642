package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paperMiningParams() MiningParams {
	return MiningParams{
		FarmPowerMW:       9.3,
		PUE:               1.1,
		EfficiencyJPerTH:  39.5,
		MaxConsumptionMWh: 80766,
	}
}

func TestSystemHashrate(t *testing.T) {
	m := paperMiningParams()

	// 9.3 MW / 1.1 PUE = 8.4545 MW at the miners; / 39.5 J/TH -> TH/s.
	want := (9.3e6 / 1.1) / 39.5 * 1e12
	assert.InDelta(t, want, m.SystemHashrateHs(), want*1e-12)
}

func TestBTCMined(t *testing.T) {
	m := paperMiningParams()
	r := DefaultRewardSchedule()

	difficulty := 20e12
	got, err := m.BTCMined(2021, difficulty, r)
	require.NoError(t, err)

	want := m.SystemHashrateHs() * SecondsPerYear * 6.25 / (difficulty * math.Pow(2, 32))
	assert.InDelta(t, want, got, want*1e-12)
	assert.Greater(t, got, 0.0)
}

func TestBTCMinedHalvingYearBetweenEpochYields(t *testing.T) {
	m := paperMiningParams()
	r := DefaultRewardSchedule()
	difficulty := 15e12

	got2020, err := m.BTCMined(2020, difficulty, r)
	require.NoError(t, err)
	pre, err := m.BTCMined(2019, difficulty, r)
	require.NoError(t, err)
	post, err := m.BTCMined(2021, difficulty, r)
	require.NoError(t, err)

	assert.Greater(t, got2020, post)
	assert.Less(t, got2020, pre)
}

func TestBTCMinedErrors(t *testing.T) {
	m := paperMiningParams()

	_, err := m.BTCMined(2021, 0, DefaultRewardSchedule())
	assert.Error(t, err)

	_, err = m.BTCMined(2021, 20e12, RewardSchedule{})
	assert.Error(t, err)
}

func TestEnergyUsedCap(t *testing.T) {
	m := paperMiningParams()

	// Supply above the farm's rated draw: capped.
	assert.InDelta(t, 80766, m.EnergyUsed(90000), 0)
	// Supply below: passed through.
	assert.InDelta(t, 50000, m.EnergyUsed(50000), 0)
}

func TestMiningParamsValidate(t *testing.T) {
	require.NoError(t, paperMiningParams().Validate())

	bad := paperMiningParams()
	bad.FarmPowerMW = 0
	assert.Error(t, bad.Validate())

	bad = paperMiningParams()
	bad.PUE = 0.9
	assert.Error(t, bad.Validate())

	bad = paperMiningParams()
	bad.EfficiencyJPerTH = 0
	assert.Error(t, bad.Validate())

	bad = paperMiningParams()
	bad.MaxConsumptionMWh = 0
	assert.Error(t, bad.Validate())
}
