package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MonthlyProduction is one row of the plant's baseline-year production table.
type MonthlyProduction struct {
	Period    string
	EnergyMWh float64
}

// LoadPVBaselineCSV reads the monthly energy-production table for the plant's
// first operational year and returns the rows plus their total. The total is
// the reference for all future-year extrapolation.
//
// Expected columns: a period label and an energy amount. The energy column is
// located by header name ("energy_ac_mwh", "energy_mwh" or "energy"); if none
// matches, the last column is used.
func LoadPVBaselineCSV(path string) ([]MonthlyProduction, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open pv production file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse pv production file: %w", err)
	}
	if len(rows) < 2 {
		return nil, 0, fmt.Errorf("pv production file %s has no data rows", path)
	}

	header := rows[0]
	energyCol := len(header) - 1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "energy_ac_mwh", "energy_mwh", "energy":
			energyCol = i
		}
	}

	out := make([]MonthlyProduction, 0, len(rows)-1)
	total := 0.0
	for i, row := range rows[1:] {
		if len(row) <= energyCol {
			return nil, 0, fmt.Errorf("pv production row %d has %d columns, need %d", i+2, len(row), energyCol+1)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[energyCol]), 64)
		if err != nil {
			return nil, 0, fmt.Errorf("pv production row %d: invalid energy %q", i+2, row[energyCol])
		}
		out = append(out, MonthlyProduction{
			Period:    strings.TrimSpace(row[0]),
			EnergyMWh: v,
		})
		total += v
	}
	return out, total, nil
}
