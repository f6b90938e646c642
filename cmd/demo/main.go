package main

import (
	"fmt"
	"os"

	"pv-mining-sim/internal/config"
	"pv-mining-sim/internal/data"
	"pv-mining-sim/internal/model"
	"pv-mining-sim/internal/sim"
)

// Runs the reference comparison against a synthetic market: flat BTC price
// and difficulty over the whole horizon. No data files needed.
func main() {
	cfg := config.Default()
	horizon := cfg.ToHorizon()

	price := make(model.YearlySeries)
	difficulty := make(model.YearlySeries)
	hashrate := make(model.YearlySeries)
	for _, year := range horizon.Years() {
		price[year] = 40_000
		difficulty[year] = 25e12
		hashrate[year] = 180e18
	}

	snap := &data.Snapshot{
		Horizon:         horizon,
		PVBaselineMWh:   cfg.Plant.BaselineMWh,
		BTCPrice:        price,
		Difficulty:      difficulty,
		NetworkHashrate: hashrate,
	}

	comparator := &sim.Comparator{
		PV:      cfg.ToPVParams(),
		Mining:  cfg.ToMiningParams(),
		Rewards: cfg.RewardSchedule(),
		Horizon: horizon,
	}
	result, err := comparator.Run(snap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Grid sale ledger:")
	fmt.Printf("%6s %12s %14s %16s\n", "year", "MWh", "cashflow", "cumulative")
	for _, r := range result.PVSale {
		fmt.Printf("%6d %12.1f %14.2f %16.2f\n", r.Year, r.EnergyMWh, r.CashflowUSD, r.CumCashflowUSD)
	}
	fmt.Printf("Payback: %s\n\n", result.PVSalePayback.String())

	fmt.Println("Mining ledger:")
	fmt.Printf("%6s %12s %10s %14s %16s\n", "year", "MWh", "BTC", "cashflow", "cumulative")
	for _, r := range result.Mining {
		fmt.Printf("%6d %12.1f %10.4f %14.2f %16.2f\n", r.Year, r.EnergyUsedMWh, r.BTCMined, r.CashflowUSD, r.CumCashflowUSD)
	}
	fmt.Printf("Payback: %s\n", result.MiningPayback.String())
}
