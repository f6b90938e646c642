package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pv-mining-sim/internal/api/models"
	"pv-mining-sim/internal/config"
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
2020-03-01 00:00:00 UTC,9000,1,1
2020-09-01 00:00:00 UTC,11000,1,1
2021-04-01 00:00:00 UTC,50000,1,1
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	cfg := config.Default()
	cfg.Data = config.DataConfig{
		PVFile:         write("pv_production.csv", pvCSV),
		BTCFile:        write("btc-usd.csv", btcCSV),
		DifficultyFile: write("difficulty.json", `{"difficulty":[{"x":1583020800000,"y":1.5e13}]}`),
		HashrateFile:   write("hash-rate.json", `{"hash-rate":[{"x":1583020800000,"y":1.2e8}]}`),
	}
	return &cfg
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	router := gin.New()
	compare := NewCompareHandler(cfg, nil)
	params := NewParametersHandler(cfg)
	router.POST("/api/v1/compare", compare.RunCompare)
	router.GET("/api/v1/parameters", params.GetParameters)
	router.GET("/api/v1/carbon", params.GetCarbon)
	return router
}

func doCompare(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/compare", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunCompareEmptyBody(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 2020, resp.Horizon.StartYear)
	assert.Equal(t, 2045, resp.Horizon.EndYear)
	assert.Equal(t, 26, resp.PVSale.Summary.Years)
	assert.Equal(t, 26, resp.Mining.Summary.Years)

	// Reference parameters pay the plant back through grid sales in 2026.
	assert.False(t, resp.PVSale.Payback.Never)
	assert.Equal(t, 2026, resp.PVSale.Payback.Year)

	// Ledgers are off by default.
	assert.Empty(t, resp.PVSale.Ledger)
	assert.Empty(t, resp.Mining.Ledger)
	assert.Nil(t, resp.Carbon)
}

func TestRunCompareWithOptions(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, `{"options":{"include_ledgers":true,"include_carbon":true}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.PVSale.Ledger, 26)
	require.Len(t, resp.Mining.Ledger, 26)
	assert.Equal(t, 2020, resp.PVSale.Ledger[0].Year)
	assert.Equal(t, 2045, resp.Mining.Ledger[25].Year)

	require.NotNil(t, resp.Carbon)
	assert.InDelta(t, 50_000, resp.Carbon.AvoidedTonsPerYear, 0)
	assert.InDelta(t, 1_300_000, resp.Carbon.TotalTons, 1e-6)
	assert.Len(t, resp.Carbon.Series, 26)
}

func TestRunCompareOverrides(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, `{"horizon":{"end_year":2030},"market":{"sale_price_usd_kwh":0.2}}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 2030, resp.Horizon.EndYear)
	assert.Equal(t, 11, resp.PVSale.Summary.Years)
	// Doubled-plus sale price pays back earlier than the reference 2026.
	assert.False(t, resp.PVSale.Payback.Never)
	assert.Less(t, resp.PVSale.Payback.Year, 2026)
}

func TestRunCompareMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, `{"horizon":`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestRunCompareInvalidConfig(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, `{"mining":{"pue":0.5}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
}

func TestRunCompareMissingDataFile(t *testing.T) {
	router := newTestRouter(t)

	w := doCompare(t, router, `{"data":{"btc_file":"/nonexistent/btc.csv"}}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATA_LOAD_ERROR", resp.Error.Code)
}

func TestGetParameters(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/parameters", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ParametersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.InDelta(t, 50.91, resp.Plant["power_mwp"].(float64), 1e-9)
	assert.InDelta(t, 1.1, resp.Mining["pue"].(float64), 1e-9)
	assert.Equal(t, 2020, resp.Horizon.StartYear)
	assert.NotEmpty(t, resp.Parameters)
}

func TestGetCarbon(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carbon", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CarbonResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.InDelta(t, 50_000, resp.AvoidedTonsPerYear, 0)
	assert.InDelta(t, 1_300_000, resp.TotalTons, 1e-6)
	require.Len(t, resp.Series, 26)
	assert.Equal(t, 2045, resp.Series[25].Year)
}
