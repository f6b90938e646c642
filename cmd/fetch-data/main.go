package main

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pv-mining-sim/internal/data"
)

// Fetches the difficulty and hash-rate charts from blockchain.info and writes
// them as keyed JSON files the store can load offline.
func main() {
	outDir := flag.String("out-dir", "data", "Directory for chart JSON files")
	timespan := flag.String("timespan", "all", "Chart timespan (e.g. all, 5years)")
	baseURL := flag.String("base-url", "", "Charts API base URL (empty = default)")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal("failed to create output dir", zap.String("dir", *outDir), zap.Error(err))
	}

	client := data.NewBlockchainClient(*baseURL, log)

	charts := map[string]string{
		data.ChartDifficulty: "difficulty.json",
		data.ChartHashrate:   "hash-rate.json",
	}
	for chart, file := range charts {
		resp, err := client.FetchChart(data.ChartQuery{Chart: chart, Timespan: *timespan})
		if err != nil {
			log.Fatal("chart fetch failed", zap.String("chart", chart), zap.Error(err))
		}

		path := filepath.Join(*outDir, file)
		if err := writeChart(path, chart, resp.Values); err != nil {
			log.Fatal("chart write failed", zap.String("path", path), zap.Error(err))
		}
		log.Info("chart written",
			zap.String("chart", chart),
			zap.String("path", path),
			zap.Int("points", len(resp.Values)),
		)
	}
}

// writeChart stores the series keyed by chart name, the shape LoadChartJSON
// reads back.
func writeChart(path, chart string, points []data.ChartPoint) error {
	doc := map[string][]data.ChartPoint{chart: points}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
