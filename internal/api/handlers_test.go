package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyseek/polyseek/internal/aggregator"
	"github.com/polyseek/polyseek/internal/analysis"
	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/polymarket"
	"github.com/polyseek/polyseek/internal/reddit"
)

func newTestServer(t *testing.T, gammaBody string, gammaStatus int) *Server {
	t.Helper()

	gamma := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(gammaStatus)
		w.Write([]byte(gammaBody))
	}))
	t.Cleanup(gamma.Close)

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(dead.Close)

	markets := polymarket.NewClient(gamma.URL)
	rd := reddit.NewClient(reddit.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		AuthBaseURL:  dead.URL,
		APIBaseURL:   dead.URL,
	})
	analyzer := analysis.NewAnalyzer(llm.NewClient(llm.Config{
		APIKey:  "test",
		BaseURL: dead.URL,
	}), analysis.DefaultConfig())
	agg := aggregator.New(markets, rd, analyzer, nil, aggregator.DefaultConfig())

	return NewServer(agg, markets, rd, ":0")
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t, `[{
		"id": "1",
		"slug": "my-slug",
		"title": "T",
		"description": "D",
		"probabilities": {"Yes": 0.7, "No": 0.3}
	}]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/analyze",
		`{"url": "https://polymarket.com/event/my-slug"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Market struct {
			Slug        string  `json:"slug"`
			Probability float64 `json:"probability"`
		} `json:"market"`
		Analysis struct {
			BullishArguments []string `json:"bullishArguments"`
		} `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "my-slug", resp.Market.Slug)
	assert.InDelta(t, 0.7, resp.Market.Probability, 1e-9)
	assert.NotEmpty(t, resp.Analysis.BullishArguments)
}

func TestAnalyzeEndpointInvalidURL(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/analyze", `{"url": "not-a-url"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Polymarket URL", errorMessage(t, rec))
}

func TestAnalyzeEndpointMissingURL(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/analyze", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "URL is required", errorMessage(t, rec))
}

func TestAnalyzeEndpointMarketNotFound(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/analyze",
		`{"url": "https://polymarket.com/event/missing"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Market not found", errorMessage(t, rec))
}

func TestAnalyzeEndpointMultiOutcomeMarket(t *testing.T) {
	srv := newTestServer(t, `[{
		"id": "1",
		"slug": "election",
		"title": "T",
		"description": "D",
		"markets": [{"id": "a"}, {"id": "b"}]
	}]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodPost, "/analyze",
		`{"url": "https://polymarket.com/event/election"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Markets with multiple outcomes are not supported", errorMessage(t, rec))
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, `oops`, http.StatusBadGateway)

	rec := doRequest(t, srv, http.MethodPost, "/analyze",
		`{"url": "https://polymarket.com/event/anything"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to analyze market", errorMessage(t, rec))
}

func TestMarketEndpointPassThrough(t *testing.T) {
	srv := newTestServer(t, `[{"id": "1", "slug": "raw", "customField": 42}]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodGet, "/market?slug=raw", "")

	require.Equal(t, http.StatusOK, rec.Code)
	// The provider payload passes through untouched, unknown fields
	// included.
	assert.JSONEq(t, `{"id": "1", "slug": "raw", "customField": 42}`, rec.Body.String())
}

func TestMarketEndpointMissingSlug(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodGet, "/market", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Slug parameter is required", errorMessage(t, rec))
}

func TestRedditEndpointMissingQuery(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodGet, "/reddit", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Query parameter is required", errorMessage(t, rec))
}

func TestRedditEndpointUpstreamFailure(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodGet, "/reddit?query=fed+rates", "")

	// Reddit auth is unreachable in this setup.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch Reddit posts", errorMessage(t, rec))
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, `[]`, http.StatusOK)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}
