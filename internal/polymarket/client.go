// Package polymarket provides a client for Polymarket's Gamma API and
// normalizes its heterogeneous event payloads into the report's Market
// shape.
package polymarket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/models"
)

// DefaultBaseURL is the Gamma API base URL.
const DefaultBaseURL = "https://gamma-api.polymarket.com"

// Client provides access to the Gamma events endpoint. Every call is
// attempted exactly once; there are no retries anywhere in the pipeline.
type Client struct {
	gamma *resty.Client
}

// NewClient creates a new Polymarket client. An empty baseURL selects
// the public Gamma API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		gamma: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second).
			SetHeader("Accept", "application/json"),
	}
}

// flexFloat decodes provider numerics that arrive as either JSON numbers
// or numeric strings ("12345.67").
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(n)
	return nil
}

// eventPayload mirrors the subset of the Gamma event object the pipeline
// consumes. The provider is inconsistent about slug/ticker and
// image/imageUrl; both spellings are accepted.
type eventPayload struct {
	ID               string               `json:"id"`
	Slug             string               `json:"slug"`
	Ticker           string               `json:"ticker"`
	Title            string               `json:"title"`
	Description      string               `json:"description"`
	Question         string               `json:"question"`
	EndDate          string               `json:"endDate"`
	ResolutionSource string               `json:"resolutionSource"`
	Image            string               `json:"image"`
	ImageURL         string               `json:"imageUrl"`
	Volume           flexFloat            `json:"volume"`
	Liquidity        flexFloat            `json:"liquidity"`
	Probabilities    map[string]flexFloat `json:"probabilities"`
	Prices           map[string]flexFloat `json:"prices"`
	Markets          []json.RawMessage    `json:"markets"`
}

// GetRawEvent fetches the provider's event payload for a slug without
// normalization, for the pass-through /market endpoint.
func (c *Client) GetRawEvent(ctx context.Context, slug string) (json.RawMessage, error) {
	return c.fetchEvent(ctx, slug)
}

// GetMarketBySlug fetches an event by slug and normalizes it into a
// Market. Events grouping more than one sub-market are rejected with
// ErrMultipleOutcomes before any transformation.
func (c *Client) GetMarketBySlug(ctx context.Context, slug string) (*models.Market, error) {
	raw, err := c.fetchEvent(ctx, slug)
	if err != nil {
		return nil, err
	}

	var ev eventPayload
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMarketData, err)
	}

	market, err := normalizeEvent(&ev)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("slug", market.Slug).
		Float64("probability", market.Probability).
		Int("outcomes", len(market.Outcomes)).
		Msg("Market normalized")

	return market, nil
}

func (c *Client) fetchEvent(ctx context.Context, slug string) (json.RawMessage, error) {
	log.Debug().Str("slug", slug).Msg("Fetching event from Gamma API")

	resp, err := c.gamma.R().
		SetContext(ctx).
		SetQueryParam("slug", slug).
		Get("/events")

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode() == 404:
		return nil, ErrMarketNotFound
	case resp.StatusCode() != 200:
		return nil, fmt.Errorf("%w: events API returned %d", ErrUpstream, resp.StatusCode())
	}

	// The provider returns either an array of events or a single object.
	body := bytes.TrimSpace(resp.Body())
	var first json.RawMessage
	if len(body) > 0 && body[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(body, &arr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMarketData, err)
		}
		if len(arr) == 0 {
			return nil, ErrMarketNotFound
		}
		first = arr[0]
	} else {
		first = body
	}

	if len(first) == 0 || string(bytes.TrimSpace(first)) == "null" {
		return nil, ErrMarketNotFound
	}
	return first, nil
}

func normalizeEvent(ev *eventPayload) (*models.Market, error) {
	if len(ev.Markets) > 1 {
		return nil, ErrMultipleOutcomes
	}
	if ev.ID == "" || ev.Title == "" || ev.Description == "" {
		return nil, ErrInvalidMarketData
	}

	outcomes := buildOutcomes(ev)

	probability := 0.0
	for _, o := range outcomes {
		if o.Probability > probability {
			probability = o.Probability
		}
	}

	slug := ev.Slug
	if slug == "" {
		slug = ev.Ticker
	}
	image := ev.ImageURL
	if image == "" {
		image = ev.Image
	}
	question := ev.Question
	if question == "" {
		question = ev.Title
	}

	return &models.Market{
		ID:               ev.ID,
		Slug:             slug,
		Title:            ev.Title,
		Description:      ev.Description,
		Question:         question,
		Outcomes:         outcomes,
		Volume:           float64(ev.Volume),
		Liquidity:        float64(ev.Liquidity),
		Probability:      probability,
		EndDate:          ev.EndDate,
		ResolutionSource: ev.ResolutionSource,
		ImageURL:         image,
	}, nil
}

// buildOutcomes normalizes whichever outcome shape the provider sent: a
// probabilities map, a prices map, or neither (synthetic 50/50 Yes/No).
func buildOutcomes(ev *eventPayload) []models.Outcome {
	source := ev.Probabilities
	if len(source) == 0 {
		source = ev.Prices
	}

	if len(source) == 0 {
		half := float64(ev.Volume) / 2
		return []models.Outcome{
			{ID: "1", Title: "Yes", Price: 0.5, Probability: 0.5, Volume: half},
			{ID: "2", Title: "No", Price: 0.5, Probability: 0.5, Volume: half},
		}
	}

	perOutcome := float64(ev.Volume) / float64(len(source))
	outcomes := make([]models.Outcome, 0, len(source))
	for title, value := range source {
		outcomes = append(outcomes, models.Outcome{
			ID:          title,
			Title:       title,
			Price:       float64(value),
			Probability: float64(value),
			Volume:      perOutcome,
		})
	}

	// Map order is random; keep the response stable with Yes/No first.
	sort.Slice(outcomes, func(i, j int) bool {
		ri, rj := outcomeRank(outcomes[i].Title), outcomeRank(outcomes[j].Title)
		if ri != rj {
			return ri < rj
		}
		return outcomes[i].Title < outcomes[j].Title
	})

	return outcomes
}

func outcomeRank(title string) int {
	switch {
	case strings.EqualFold(title, "yes"):
		return 0
	case strings.EqualFold(title, "no"):
		return 1
	default:
		return 2
	}
}
