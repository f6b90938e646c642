package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WritePVSaleCSV writes the grid-sale ledger as CSV, one row per year.
func WritePVSaleCSV(path string, records []PVYearRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"energy_mwh",
		"revenue_usd",
		"opex_usd",
		"cashflow_usd",
		"cum_cashflow_usd",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.EnergyMWh),
			fmtFloat(r.RevenueUSD),
			fmtFloat(r.OpexUSD),
			fmtFloat(r.CashflowUSD),
			fmtFloat(r.CumCashflowUSD),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteMiningCSV writes the mining ledger as CSV, one row per year.
func WriteMiningCSV(path string, records []MiningYearRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"energy_used_mwh",
		"btc_mined",
		"btc_price_usd",
		"revenue_usd",
		"opex_usd",
		"cashflow_usd",
		"cum_cashflow_usd",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.EnergyUsedMWh),
			fmtFloat(r.BTCMined),
			fmtFloat(r.BTCPriceUSD),
			fmtFloat(r.RevenueUSD),
			fmtFloat(r.OpexUSD),
			fmtFloat(r.CashflowUSD),
			fmtFloat(r.CumCashflowUSD),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
