package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Horizon is the inclusive range of simulated calendar years.
// It is fixed for the life of a run.
type Horizon struct {
	StartYear int
	EndYear   int
}

func (h Horizon) Validate() error {
	if h.StartYear <= 0 || h.EndYear <= 0 {
		return errors.New("horizon years must be positive")
	}
	if h.StartYear > h.EndYear {
		return errors.New("horizon start year must be <= end year")
	}
	return nil
}

func (h Horizon) Len() int {
	return h.EndYear - h.StartYear + 1
}

func (h Horizon) Contains(year int) bool {
	return year >= h.StartYear && year <= h.EndYear
}

// Years returns every year in the horizon in increasing order.
func (h Horizon) Years() []int {
	out := make([]int, 0, h.Len())
	for y := h.StartYear; y <= h.EndYear; y++ {
		out = append(out, y)
	}
	return out
}

// YearlySeries maps a calendar year to one scalar value (price, difficulty,
// hashrate). Values are yearly arithmetic means of the raw observations.
type YearlySeries map[int]float64

// MissingYearError reports a lookup outside the years a series covers.
// It should not occur after a successful horizon extension, but lookups
// check anyway rather than silently defaulting.
type MissingYearError struct {
	Series string
	Year   int
}

func (e *MissingYearError) Error() string {
	return fmt.Sprintf("series %q has no value for year %d", e.Series, e.Year)
}

// InsufficientDataError reports a series that cannot be extended to the
// horizon: either it is empty, or a horizon year has no earlier observation
// to forward-fill from.
type InsufficientDataError struct {
	Series string
	Year   int // 0 when the series is empty
}

func (e *InsufficientDataError) Error() string {
	if e.Year == 0 {
		return fmt.Sprintf("series %q has no observations", e.Series)
	}
	return fmt.Sprintf("series %q has no value at or before year %d to fill from", e.Series, e.Year)
}

// Observation is a single timestamped raw data point from an external source.
type Observation struct {
	Time  time.Time
	Value float64
}

// AggregateYearly buckets observations by calendar year and reduces each
// bucket to its arithmetic mean.
func AggregateYearly(obs []Observation) YearlySeries {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, o := range obs {
		y := o.Time.UTC().Year()
		sums[y] += o.Value
		counts[y]++
	}
	out := make(YearlySeries, len(sums))
	for y, sum := range sums {
		out[y] = sum / float64(counts[y])
	}
	return out
}

// Years returns the covered years in increasing order.
func (s YearlySeries) Years() []int {
	out := make([]int, 0, len(s))
	for y := range s {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// ValueAt looks up a year, surfacing a MissingYearError instead of a zero.
func (s YearlySeries) ValueAt(name string, year int) (float64, error) {
	v, ok := s[year]
	if !ok {
		return 0, &MissingYearError{Series: name, Year: year}
	}
	return v, nil
}

// ExtendToHorizon returns a copy of the series with every horizon year
// populated. A missing year takes the value of the most recent year strictly
// before it that is present (forward-fill; never interpolated, never trended).
// The input is not modified, and re-extending identical input yields an
// identical result.
func (s YearlySeries) ExtendToHorizon(name string, h Horizon) (YearlySeries, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, &InsufficientDataError{Series: name}
	}

	years := s.Years()
	if _, ok := s[h.StartYear]; !ok && years[0] > h.StartYear {
		return nil, &InsufficientDataError{Series: name, Year: h.StartYear}
	}

	out := make(YearlySeries, len(s)+h.Len())
	for y, v := range s {
		out[y] = v
	}

	last := 0.0
	haveLast := false
	for y := years[0]; y <= h.EndYear; y++ {
		if v, ok := out[y]; ok {
			last = v
			haveLast = true
			continue
		}
		if y < h.StartYear {
			continue
		}
		if !haveLast {
			return nil, &InsufficientDataError{Series: name, Year: y}
		}
		out[y] = last
	}
	return out, nil
}
