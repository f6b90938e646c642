package sim

import "strconv"

// PVYearRecord is one row of per-year output for the grid-sale scenario.
// Records are immutable once appended; the ledger is the primary artifact
// for "what happened" in a run.
type PVYearRecord struct {
	Year int

	EnergyMWh  float64
	RevenueUSD float64
	OpexUSD    float64

	CashflowUSD    float64
	CumCashflowUSD float64
}

// MiningYearRecord is one row of per-year output for the mining scenario.
type MiningYearRecord struct {
	Year int

	EnergyUsedMWh float64
	BTCMined      float64
	BTCPriceUSD   float64

	RevenueUSD float64
	OpexUSD    float64

	CashflowUSD    float64
	CumCashflowUSD float64
}

// PaybackResult reports the first horizon year whose cumulative cashflow is
// non-negative. Never is set when the horizon ends still under water.
type PaybackResult struct {
	Year  int
	Never bool
}

func (p PaybackResult) String() string {
	if p.Never {
		return "never"
	}
	return strconv.Itoa(p.Year)
}

// NotRunError is returned when results are queried before Run completed.
type NotRunError struct {
	Scenario string
}

func (e *NotRunError) Error() string {
	return e.Scenario + ": results queried before run completed"
}
