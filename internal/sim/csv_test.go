package sim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePVSaleCSV(t *testing.T) {
	s, err := NewPVSaleScenario(paperPVParams(), paperHorizon())
	require.NoError(t, err)
	records := s.Run()

	path := filepath.Join(t.TempDir(), "pv_sale.csv")
	require.NoError(t, WritePVSaleCSV(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, []string{"year", "energy_mwh", "revenue_usd", "opex_usd", "cashflow_usd", "cum_cashflow_usd"}, rows[0])
	assert.Equal(t, "2020", rows[1][0])
}

func TestWriteMiningCSV(t *testing.T) {
	s := newTestMiningScenario(t, 42_000_000, 902_263)
	records, err := s.Run(flatEnergy(paperHorizon(), 80_000))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "mining.csv")
	require.NoError(t, WriteMiningCSV(path, records))

	rows := readCSV(t, path)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, "btc_mined", rows[0][2])
	assert.Equal(t, "2045", rows[len(rows)-1][0])
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
