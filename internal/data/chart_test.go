package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChartKeyed(t *testing.T) {
	raw := []byte(`{"difficulty":[{"x":1559347200000,"y":7.4e12},{"x":1612137600000,"y":2.0e13}]}`)

	obs, err := ParseChart(raw, ChartDifficulty)
	require.NoError(t, err)
	require.Len(t, obs, 2)

	assert.Equal(t, time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), obs[0].Time)
	assert.InDelta(t, 7.4e12, obs[0].Value, 1)
	assert.Equal(t, 2021, obs[1].Time.Year())
}

func TestParseChartValuesFallback(t *testing.T) {
	// API responses carry "values" instead of the chart name.
	raw := []byte(`{"status":"ok","name":"Hash Rate","values":[{"x":1559347200000,"y":5.2e7}]}`)

	obs, err := ParseChart(raw, ChartHashrate)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.InDelta(t, 5.2e7, obs[0].Value, 1e-3)
}

func TestParseChartErrors(t *testing.T) {
	_, err := ParseChart([]byte(`{"unrelated":[]}`), ChartDifficulty)
	assert.Error(t, err)

	_, err = ParseChart([]byte(`not json`), ChartDifficulty)
	assert.Error(t, err)

	_, err = ParseChart([]byte(`{"difficulty":"nope"}`), ChartDifficulty)
	assert.Error(t, err)
}
