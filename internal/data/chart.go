package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pv-mining-sim/internal/model"
)

// ChartPoint is one observation of a network time-series chart:
// milliseconds since epoch and a value.
type ChartPoint struct {
	X int64   `json:"x"`
	Y float64 `json:"y"`
}

// ParseChart decodes a chart JSON document into raw observations. Files are
// either keyed by chart name ({"difficulty": [...]}) or carry the API's
// "values" field; both shapes are accepted.
func ParseChart(raw []byte, key string) ([]model.Observation, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse chart document: %w", err)
	}

	payload, ok := doc[key]
	if !ok {
		payload, ok = doc["values"]
	}
	if !ok {
		return nil, fmt.Errorf("chart document has neither %q nor \"values\"", key)
	}

	var points []ChartPoint
	if err := json.Unmarshal(payload, &points); err != nil {
		return nil, fmt.Errorf("failed to parse chart %q points: %w", key, err)
	}

	out := make([]model.Observation, 0, len(points))
	for _, p := range points {
		out = append(out, model.Observation{
			Time:  time.UnixMilli(p.X).UTC(),
			Value: p.Y,
		})
	}
	return out, nil
}

// LoadChartJSON reads a chart file (difficulty, hash-rate) from disk.
func LoadChartJSON(path, key string) ([]model.Observation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}
	return ParseChart(raw, key)
}
