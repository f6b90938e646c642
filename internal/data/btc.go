package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pv-mining-sim/internal/model"
)

// btcTimeLayouts are tried in order when parsing price timestamps. Exports
// from market-data providers vary between plain dates and full timestamps.
var btcTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadBTCPriceCSV reads a daily/periodic Bitcoin price table (columns:
// timestamp, price) into raw observations. Rows with unparsable timestamps
// or prices are skipped; the caller aggregates to yearly means.
func LoadBTCPriceCSV(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open btc price file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse btc price file: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("btc price file %s has no data rows", path)
	}

	header := rows[0]
	timeCol, priceCol := 0, 1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "snapped_at", "timestamp", "date":
			timeCol = i
		case "price", "close":
			priceCol = i
		}
	}

	out := make([]model.Observation, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= timeCol || len(row) <= priceCol {
			continue
		}
		ts, ok := parseBTCTime(strings.TrimSpace(row[timeCol]))
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[priceCol]), 64)
		if err != nil {
			continue
		}
		out = append(out, model.Observation{Time: ts, Value: price})
	}
	return out, nil
}

func parseBTCTime(s string) (time.Time, bool) {
	for _, layout := range btcTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
