package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochReward(t *testing.T) {
	r := DefaultRewardSchedule()

	assert.InDelta(t, 50, r.EpochReward(2009), 0)
	assert.InDelta(t, 50, r.EpochReward(2011), 0)
	assert.InDelta(t, 25, r.EpochReward(2012), 0)
	assert.InDelta(t, 12.5, r.EpochReward(2019), 0)
	assert.InDelta(t, 6.25, r.EpochReward(2020), 0)
	assert.InDelta(t, 6.25, r.EpochReward(2023), 0)
	assert.InDelta(t, 3.125, r.EpochReward(2024), 0)
	assert.InDelta(t, 3.125, r.EpochReward(2045), 0)

	// Before the first epoch: fall back to its reward.
	assert.InDelta(t, 50, r.EpochReward(2008), 0)
}

func TestAverageBlockReward2020(t *testing.T) {
	r := DefaultRewardSchedule()

	// Halving on 2020-05-11: 131 days at 12.5, 235 days at 6.25 over a
	// 366-day leap year.
	want := (12.5*131 + 6.25*235) / 366
	got := r.AverageBlockReward(2020)

	assert.InDelta(t, want, got, 1e-12)
	assert.Greater(t, got, 6.25)
	assert.Less(t, got, 12.5)
}

func TestAverageBlockReward2024(t *testing.T) {
	r := DefaultRewardSchedule()

	// Halving on 2024-04-20: 110 days at 6.25, 256 days at 3.125 (leap year).
	want := (6.25*110 + 3.125*256) / 366
	got := r.AverageBlockReward(2024)

	assert.InDelta(t, want, got, 1e-12)
	assert.Greater(t, got, 3.125)
	assert.Less(t, got, 6.25)
}

func TestAverageBlockRewardFlatYears(t *testing.T) {
	r := DefaultRewardSchedule()

	// Non-halving years equal their epoch reward exactly.
	for year, want := range map[int]float64{
		2018: 12.5,
		2019: 12.5,
		2021: 6.25,
		2023: 6.25,
		2025: 3.125,
		2045: 3.125,
	} {
		assert.InDelta(t, want, r.AverageBlockReward(year), 0, "year %d", year)
	}
}

func TestAverageBlockRewardCustomScheduleWithoutEpoch(t *testing.T) {
	// 2020 has a protocol halving date, but this schedule defines no epoch
	// starting that year, so no blend is possible: flat lookup applies.
	r := RewardSchedule{2016: 12.5}
	assert.InDelta(t, 12.5, r.AverageBlockReward(2020), 0)
}

func TestEpochRewardEmptySchedule(t *testing.T) {
	var r RewardSchedule

	assert.Zero(t, r.EpochReward(2020))
	assert.Zero(t, r.AverageBlockReward(2020))
}

func TestDaysInYear(t *testing.T) {
	require.Equal(t, 366, daysInYear(2020))
	require.Equal(t, 365, daysInYear(2021))
	require.Equal(t, 366, daysInYear(2024))
}
