package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pv-mining-sim/internal/analysis"
	"pv-mining-sim/internal/config"
	"pv-mining-sim/internal/data"
	"pv-mining-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "compare":
		cmdCompare(os.Args[2:])
	case "carbon":
		cmdCarbon(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli compare --config examples/config.yaml --out-dir results")
	fmt.Println("  cli carbon --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - compare runs the grid-sale and mining scenarios over the horizon")
	fmt.Println("    and writes one yearly ledger CSV per scenario")
	fmt.Println("  - carbon prints the cumulative avoided-CO2 series")
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (empty = study defaults)")
	outDir := fs.String("out-dir", "results", "Directory for ledger CSVs")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	store := data.NewStore(data.SourceConfig{
		PVFile:              cfg.Data.PVFile,
		BTCFile:             cfg.Data.BTCFile,
		DifficultyFile:      cfg.Data.DifficultyFile,
		HashrateFile:        cfg.Data.HashrateFile,
		ExpectedBaselineMWh: cfg.Plant.BaselineMWh,
	}, nil)
	snap, err := store.Load(cfg.ToHorizon())
	if err != nil {
		panic(err)
	}

	comparator := &sim.Comparator{
		PV:      cfg.ToPVParams(),
		Mining:  cfg.ToMiningParams(),
		Rewards: cfg.RewardSchedule(),
		Horizon: cfg.ToHorizon(),
	}
	result, err := comparator.Run(snap)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	pvPath := filepath.Join(*outDir, "pv_sale.csv")
	miningPath := filepath.Join(*outDir, "mining.csv")
	if err := sim.WritePVSaleCSV(pvPath, result.PVSale); err != nil {
		panic(err)
	}
	if err := sim.WriteMiningCSV(miningPath, result.Mining); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote %d rows to %s\n", len(result.PVSale), pvPath)
	fmt.Printf("Wrote %d rows to %s\n", len(result.Mining), miningPath)
	fmt.Println("")

	printScenario("Grid sale", analysis.SummarizePVSale(result.PVSale), result.PVSalePayback)
	printScenario("Mining", analysis.SummarizeMining(result.Mining), result.MiningPayback)
}

func cmdCarbon(args []string) {
	fs := flag.NewFlagSet("carbon", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (empty = study defaults)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	carbon := analysis.CarbonBalance{
		AvoidedTonsPerYear: cfg.Environment.CO2AvoidedTonsPerYear,
	}
	horizon := cfg.ToHorizon()

	fmt.Printf("Avoided CO2: %.0f t/year\n", carbon.Annual())
	for _, row := range carbon.Series(horizon) {
		fmt.Printf("  %d  %12.0f t\n", row.Year, row.CumulativeTons)
	}
	fmt.Printf("Total over %d years: %.0f t\n", horizon.Len(), carbon.Cumulative(horizon.Len()))
}

func printScenario(name string, s analysis.ScenarioSummary, payback sim.PaybackResult) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  Payback year:   %s\n", payback.String())
	fmt.Printf("  Net position:   $%.2f\n", s.NetPositionUSD)
	fmt.Printf("  Total revenue:  $%.2f over %d years\n", s.TotalRevenueUSD, s.Years)
	fmt.Printf("  Total energy:   %.1f MWh\n", s.TotalEnergyMWh)
	if s.TotalBTCMined > 0 {
		fmt.Printf("  Total BTC:      %.4f\n", s.TotalBTCMined)
	}
	fmt.Printf("  Best year:      %d ($%.2f)\n", s.BestYear, s.BestYearCashflowUSD)
	fmt.Printf("  Worst year:     %d ($%.2f)\n", s.WorstYear, s.WorstYearCashflowUSD)
	fmt.Println("")
}
