package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/polyseek/polyseek/internal/aggregator"
	"github.com/polyseek/polyseek/internal/polymarket"
	"github.com/polyseek/polyseek/internal/reddit"
)

// Handlers holds the API handlers.
type Handlers struct {
	aggregator *aggregator.Aggregator
	markets    *polymarket.Client
	reddit     *reddit.Client
}

// NewHandlers creates new API handlers.
func NewHandlers(agg *aggregator.Aggregator, markets *polymarket.Client, rd *reddit.Client) *Handlers {
	return &Handlers{aggregator: agg, markets: markets, reddit: rd}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func getLimit(r *http.Request, defaultLimit int) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// Analyze runs the full pipeline for a Polymarket event URL and returns
// the composed report.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		respondError(w, http.StatusBadRequest, "URL is required")
		return
	}

	report, err := h.aggregator.Analyze(r.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, polymarket.ErrInvalidURL):
			respondError(w, http.StatusBadRequest, "Invalid Polymarket URL")
		case errors.Is(err, polymarket.ErrMarketNotFound):
			respondError(w, http.StatusNotFound, "Market not found")
		case errors.Is(err, polymarket.ErrMultipleOutcomes):
			respondError(w, http.StatusBadRequest, "Markets with multiple outcomes are not supported")
		case errors.Is(err, polymarket.ErrInvalidMarketData):
			respondError(w, http.StatusBadRequest, "Invalid market data")
		default:
			respondError(w, http.StatusInternalServerError, "Failed to analyze market")
		}
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetMarket returns the raw Gamma event payload for a slug, unmodified.
func (h *Handlers) GetMarket(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "Slug parameter is required")
		return
	}

	raw, err := h.markets.GetRawEvent(r.Context(), slug)
	if err != nil {
		if errors.Is(err, polymarket.ErrMarketNotFound) {
			respondError(w, http.StatusNotFound, "Market not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch market data")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// GetRedditPosts runs a keyword search over the default subreddits.
func (h *Handlers) GetRedditPosts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query parameter is required")
		return
	}
	limit := getLimit(r, 10)

	posts, err := h.reddit.SearchPosts(r.Context(), query, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch Reddit posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "polyseek",
	})
}
