package data

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-mining-sim/internal/model"
)

const pvCSV = `period,energy_ac_mwh
2020-01,5890
2020-02,6100
2020-03,6900
2020-04,7100
2020-05,7300
2020-06,7200
2020-07,7400
2020-08,7300
2020-09,6900
2020-10,6600
2020-11,6200
2020-12,6000
`

const btcCSV = `snapped_at,price,market_cap,total_volume
2019-06-01 00:00:00 UTC,8000,1,1
2019-12-01 00:00:00 UTC,7000,1,1
2020-03-01 00:00:00 UTC,9000,1,1
2020-09-01 00:00:00 UTC,11000,1,1
2021-04-01 00:00:00 UTC,50000,1,1
`

func writeSources(t *testing.T) SourceConfig {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	// 2019-06-01 and 2021-02-01 in ms since epoch.
	difficultyJSON := fmt.Sprintf(`{"difficulty":[{"x":%d,"y":%g},{"x":%d,"y":%g}]}`,
		int64(1559347200000), 7.4e12, int64(1612137600000), 2.0e13)
	hashrateJSON := fmt.Sprintf(`{"hash-rate":[{"x":%d,"y":%g}]}`,
		int64(1559347200000), 5.2e7)

	return SourceConfig{
		PVFile:              write("pv_production.csv", pvCSV),
		BTCFile:             write("btc-usd.csv", btcCSV),
		DifficultyFile:      write("difficulty.json", difficultyJSON),
		HashrateFile:        write("hash-rate.json", hashrateJSON),
		ExpectedBaselineMWh: 80890,
	}
}

func TestStoreLoadCoversHorizon(t *testing.T) {
	h := model.Horizon{StartYear: 2020, EndYear: 2045}
	store := NewStore(writeSources(t), nil)

	snap, err := store.Load(h)
	require.NoError(t, err)

	require.Len(t, snap.PVMonthly, 12)
	assert.InDelta(t, 80890, snap.PVBaselineMWh, 1e-9)

	// Every required series has a value for every horizon year.
	for y := h.StartYear; y <= h.EndYear; y++ {
		_, err := snap.BTCPrice.ValueAt("btc_price", y)
		assert.NoError(t, err, "btc price year %d", y)
		_, err = snap.Difficulty.ValueAt("difficulty", y)
		assert.NoError(t, err, "difficulty year %d", y)
		_, err = snap.NetworkHashrate.ValueAt("network_hashrate", y)
		assert.NoError(t, err, "hashrate year %d", y)
	}

	// Yearly aggregation is an arithmetic mean.
	assert.InDelta(t, 7500, snap.BTCPrice[2019], 1e-9)
	assert.InDelta(t, 10000, snap.BTCPrice[2020], 1e-9)

	// Future years forward-fill the last known value.
	assert.InDelta(t, 50000, snap.BTCPrice[2045], 1e-9)
	assert.InDelta(t, 2.0e13, snap.Difficulty[2045], 1e2)
	assert.InDelta(t, 5.2e7, snap.NetworkHashrate[2045], 1e-3)
}

func TestStoreLoadIdempotent(t *testing.T) {
	h := model.Horizon{StartYear: 2020, EndYear: 2045}
	store := NewStore(writeSources(t), nil)

	a, err := store.Load(h)
	require.NoError(t, err)
	b, err := store.Load(h)
	require.NoError(t, err)

	assert.Equal(t, a.BTCPrice, b.BTCPrice)
	assert.Equal(t, a.Difficulty, b.Difficulty)
	assert.Equal(t, a.NetworkHashrate, b.NetworkHashrate)
	assert.Equal(t, a.PVBaselineMWh, b.PVBaselineMWh)
}

func TestStoreLoadBaselineMismatchIsNonFatal(t *testing.T) {
	cfg := writeSources(t)
	cfg.ExpectedBaselineMWh = 100000 // measured total is ~81k: >1% off

	snap, err := NewStore(cfg, nil).Load(model.Horizon{StartYear: 2020, EndYear: 2025})
	require.NoError(t, err)
	// The run proceeds with the measured total.
	assert.InDelta(t, 80890, snap.PVBaselineMWh, 1e-9)
}

func TestStoreLoadEmptySeriesFails(t *testing.T) {
	cfg := writeSources(t)
	empty := filepath.Join(t.TempDir(), "difficulty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"difficulty":[]}`), 0o644))
	cfg.DifficultyFile = empty

	_, err := NewStore(cfg, nil).Load(model.Horizon{StartYear: 2020, EndYear: 2045})
	var insufficient *model.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "difficulty", insufficient.Series)
}

func TestValidateBaseline(t *testing.T) {
	s := NewStore(SourceConfig{ExpectedBaselineMWh: 80890}, nil)

	assert.Nil(t, s.validateBaseline(80890))
	assert.Nil(t, s.validateBaseline(80890*1.009))
	assert.Nil(t, s.validateBaseline(80890*0.991))
	assert.NotNil(t, s.validateBaseline(80890*1.02))
	assert.NotNil(t, s.validateBaseline(80890*0.98))

	// Disabled check never flags.
	off := NewStore(SourceConfig{}, nil)
	assert.Nil(t, off.validateBaseline(12345))
}
