package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// BlockchainClient fetches network chart series (difficulty, hash-rate) from
// the blockchain.info charts API.
type BlockchainClient struct {
	BaseURL string
	Client  *http.Client

	log *zap.Logger
}

// NewBlockchainClient creates a charts client. If baseURL is empty, defaults
// to "https://api.blockchain.info".
func NewBlockchainClient(baseURL string, log *zap.Logger) *BlockchainClient {
	if baseURL == "" {
		baseURL = "https://api.blockchain.info"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BlockchainClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// ChartQuery defines parameters for fetching one chart.
type ChartQuery struct {
	Chart    string // e.g. "difficulty", "hash-rate"
	Timespan string // e.g. "all", "5years" (default: "all")
}

// ChartResponse matches the charts API response shape.
type ChartResponse struct {
	Status string       `json:"status"`
	Name   string       `json:"name"`
	Unit   string       `json:"unit"`
	Period string       `json:"period"`
	Values []ChartPoint `json:"values"`
}

// ChartAPIError represents an error from the charts API.
type ChartAPIError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // for rate limit errors
}

func (e *ChartAPIError) Error() string {
	return e.Message
}

// FetchChart fetches one chart series.
//
// If caching is enabled (ENABLE_CHART_CACHE=true), responses may be served
// from a local dev-only cache; see cache.go.
func (c *BlockchainClient) FetchChart(q ChartQuery) (*ChartResponse, error) {
	if q.Chart == "" {
		return nil, fmt.Errorf("chart is required")
	}
	if q.Timespan == "" {
		q.Timespan = "all"
	}

	cache := GetChartCache()
	cacheKey := GenerateChartCacheKey(q)
	if cache != nil {
		if cached, found := cache.Get(cacheKey); found {
			c.log.Info("chart cache hit",
				zap.String("chart", q.Chart),
				zap.Int("points", len(cached.Values)),
			)
			return cached, nil
		}
	}

	u, err := url.Parse(c.BaseURL + "/charts/" + q.Chart)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	qp := u.Query()
	qp.Set("timespan", q.Timespan)
	qp.Set("format", "json")
	qp.Set("sampled", "false")
	u.RawQuery = qp.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Info("chart request",
		zap.String("chart", q.Chart),
		zap.String("timespan", q.Timespan),
	)

	start := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.log.Error("chart request failed",
			zap.String("chart", q.Chart),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	c.log.Info("chart response",
		zap.String("chart", q.Chart),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue.
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ChartAPIError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	case http.StatusNotFound:
		return nil, &ChartAPIError{
			StatusCode: resp.StatusCode,
			Code:       "UNKNOWN_CHART",
			Message:    fmt.Sprintf("unknown chart %q", q.Chart),
		}
	default:
		return nil, &ChartAPIError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result ChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Info("chart fetched",
		zap.String("chart", q.Chart),
		zap.Int("points", len(result.Values)),
	)

	if cache != nil {
		cache.Set(cacheKey, &result)
	}

	return &result, nil
}
