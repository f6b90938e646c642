package analysis

import "pv-mining-sim/internal/model"

// CarbonBalance models avoided grid emissions at a constant annual rate.
// The rate is an external study input; no emissions degradation is applied.
type CarbonBalance struct {
	AvoidedTonsPerYear float64
}

// CarbonYear is one row of the cumulative avoided-emissions series.
type CarbonYear struct {
	Year           int
	AnnualTons     float64
	CumulativeTons float64
}

func (c CarbonBalance) Annual() float64 {
	return c.AvoidedTonsPerYear
}

// Cumulative returns tons avoided over the first n years of operation.
func (c CarbonBalance) Cumulative(years int) float64 {
	if years < 0 {
		return 0
	}
	return float64(years) * c.AvoidedTonsPerYear
}

// Series expands the balance over a horizon, one record per year.
func (c CarbonBalance) Series(h model.Horizon) []CarbonYear {
	out := make([]CarbonYear, 0, h.Len())
	for i, y := range h.Years() {
		out = append(out, CarbonYear{
			Year:           y,
			AnnualTons:     c.AvoidedTonsPerYear,
			CumulativeTons: c.Cumulative(i + 1),
		})
	}
	return out
}
