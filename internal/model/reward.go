package model

import (
	"sort"
	"time"
)

// RewardSchedule maps halving-epoch start years to the per-block BTC reward
// in effect from that epoch on. Looking up a year picks the latest epoch
// start that is <= the year.
type RewardSchedule map[int]float64

// DefaultRewardSchedule covers the protocol epochs through the 2024 halving.
// Years past the last epoch keep its reward (conservative extrapolation,
// consistent with forward-filling the market series).
func DefaultRewardSchedule() RewardSchedule {
	return RewardSchedule{
		2009: 50,
		2012: 25,
		2016: 12.5,
		2020: 6.25,
		2024: 3.125,
	}
}

// halvingDates holds the protocol halving dates, keyed by year. A year listed
// here gets a day-weighted average reward instead of the flat epoch value.
var halvingDates = map[int]time.Time{
	2012: time.Date(2012, time.November, 28, 0, 0, 0, 0, time.UTC),
	2016: time.Date(2016, time.July, 9, 0, 0, 0, 0, time.UTC),
	2020: time.Date(2020, time.May, 11, 0, 0, 0, 0, time.UTC),
	2024: time.Date(2024, time.April, 20, 0, 0, 0, 0, time.UTC),
}

// EpochReward returns the flat per-block reward of the epoch containing year.
// Years before the first epoch fall back to the first epoch's reward; an
// empty schedule yields zero.
func (r RewardSchedule) EpochReward(year int) float64 {
	if len(r) == 0 {
		return 0
	}
	starts := make([]int, 0, len(r))
	for s := range r {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	chosen := starts[0]
	for _, s := range starts {
		if year >= s {
			chosen = s
		} else {
			break
		}
	}
	return r[chosen]
}

// AverageBlockReward returns the mean per-block reward over a calendar year.
// For a year containing a halving the pre- and post-halving rewards are
// weighted by the day count on each side of the halving date (leap years use
// 366 days). All other years get their epoch's flat reward.
func (r RewardSchedule) AverageBlockReward(year int) float64 {
	halving, hasDate := halvingDates[year]
	_, hasEpoch := r[year]
	if !hasDate || !hasEpoch {
		return r.EpochReward(year)
	}

	after := r.EpochReward(year)
	before := after * 2

	daysBefore := float64(halving.YearDay() - 1)
	total := float64(daysInYear(year))
	daysAfter := total - daysBefore

	return (before*daysBefore + after*daysAfter) / total
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
