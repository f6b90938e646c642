package analysis

import "pv-mining-sim/internal/sim"

// ScenarioSummary aggregates a ledger into the headline figures the
// presentation layer shows next to the payback year.
type ScenarioSummary struct {
	Years int

	TotalEnergyMWh  float64
	TotalRevenueUSD float64
	TotalOpexUSD    float64

	// NetPositionUSD is the final cumulative cashflow (CAPEX included).
	NetPositionUSD float64

	BestYear            int
	BestYearCashflowUSD float64

	WorstYear            int
	WorstYearCashflowUSD float64

	// Mining only.
	TotalBTCMined float64
}

func SummarizePVSale(records []sim.PVYearRecord) ScenarioSummary {
	s := ScenarioSummary{Years: len(records)}
	for i, r := range records {
		s.TotalEnergyMWh += r.EnergyMWh
		s.TotalRevenueUSD += r.RevenueUSD
		s.TotalOpexUSD += r.OpexUSD
		s.track(i, r.Year, r.CashflowUSD)
	}
	if len(records) > 0 {
		s.NetPositionUSD = records[len(records)-1].CumCashflowUSD
	}
	return s
}

func SummarizeMining(records []sim.MiningYearRecord) ScenarioSummary {
	s := ScenarioSummary{Years: len(records)}
	for i, r := range records {
		s.TotalEnergyMWh += r.EnergyUsedMWh
		s.TotalRevenueUSD += r.RevenueUSD
		s.TotalOpexUSD += r.OpexUSD
		s.TotalBTCMined += r.BTCMined
		s.track(i, r.Year, r.CashflowUSD)
	}
	if len(records) > 0 {
		s.NetPositionUSD = records[len(records)-1].CumCashflowUSD
	}
	return s
}

func (s *ScenarioSummary) track(idx, year int, cashflow float64) {
	if idx == 0 || cashflow > s.BestYearCashflowUSD {
		s.BestYear = year
		s.BestYearCashflowUSD = cashflow
	}
	if idx == 0 || cashflow < s.WorstYearCashflowUSD {
		s.WorstYear = year
		s.WorstYearCashflowUSD = cashflow
	}
}
