package data

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charts/difficulty", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("timespan"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok","name":"Difficulty","unit":"","period":"day","values":[{"x":1559347200000,"y":7.4e12}]}`))
	}))
	defer srv.Close()

	client := NewBlockchainClient(srv.URL, nil)
	resp, err := client.FetchChart(ChartQuery{Chart: ChartDifficulty})
	require.NoError(t, err)
	require.Len(t, resp.Values, 1)
	assert.InDelta(t, 7.4e12, resp.Values[0].Y, 1)
}

func TestFetchChartErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/charts/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/charts/limited":
			w.Header().Set("Retry-After", "60")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	client := NewBlockchainClient(srv.URL, nil)

	_, err := client.FetchChart(ChartQuery{Chart: "missing"})
	var apiErr *ChartAPIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNKNOWN_CHART", apiErr.Code)

	_, err = client.FetchChart(ChartQuery{Chart: "limited"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", apiErr.Code)
	assert.Equal(t, "60", apiErr.RetryAfter)

	_, err = client.FetchChart(ChartQuery{Chart: "broken"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "API_ERROR", apiErr.Code)

	_, err = client.FetchChart(ChartQuery{})
	assert.Error(t, err)
}
