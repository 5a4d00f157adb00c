// Package reddit provides a search client for Reddit's OAuth API.
// Authentication uses the client-credentials grant with a lazily
// refreshed bearer token; searches fan out over a fixed subreddit list
// and results are deduplicated by URL.
package reddit

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/models"
)

const (
	DefaultAuthBaseURL = "https://www.reddit.com"
	DefaultAPIBaseURL  = "https://oauth.reddit.com"
	DefaultUserAgent   = "PolySeek/1.0"

	// Strategy fan-out bounds: at most 5 subreddits by up to 3 queries.
	maxStrategySubreddits = 5
	maxStrategyQueries    = 3
)

// DefaultSubreddits is the fixed community list searched for every
// binary-market query.
var DefaultSubreddits = []string{"politics", "news", "economy", "worldnews", "usanews"}

// Config holds Reddit API credentials and endpoints. The base URLs are
// overridable for tests.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	AuthBaseURL  string
	APIBaseURL   string
	Subreddits   []string
}

// Client searches Reddit with a cached bearer token. Construct one per
// process and inject it; the token cache is the only state shared
// across requests.
type Client struct {
	auth *resty.Client
	api  *resty.Client
	cfg  Config

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a new Reddit client.
func NewClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultAuthBaseURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if len(cfg.Subreddits) == 0 {
		cfg.Subreddits = DefaultSubreddits
	}

	return &Client{
		auth: resty.New().
			SetBaseURL(cfg.AuthBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
		api: resty.New().
			SetBaseURL(cfg.APIBaseURL).
			SetTimeout(15 * time.Second).
			SetHeader("User-Agent", cfg.UserAgent),
		cfg: cfg,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// authenticate returns a valid bearer token, requesting a new one only
// when the cached token is absent or expired.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	var tok tokenResponse
	resp, err := c.auth.R().
		SetContext(ctx).
		SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody("grant_type=client_credentials").
		SetResult(&tok).
		Post("/api/v1/access_token")

	if err != nil {
		return "", fmt.Errorf("reddit auth request: %w", err)
	}
	if resp.StatusCode() != 200 || tok.AccessToken == "" {
		return "", fmt.Errorf("reddit auth failed: status %d", resp.StatusCode())
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	log.Debug().Int("expires_in", tok.ExpiresIn).Msg("Reddit authentication successful")
	return c.accessToken, nil
}

// listing mirrors Reddit's search response envelope.
type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Subreddit  string  `json:"subreddit"`
				Title      string  `json:"title"`
				Permalink  string  `json:"permalink"`
				CreatedUTC float64 `json:"created_utc"`
				Ups        int     `json:"ups"`
				Selftext   string  `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchPosts searches the configured subreddits for posts matching the
// query. The query is reduced to its essential keywords first, and
// results are post-filtered against the original words so over-broad
// provider matches are dropped. A failed subreddit is skipped, not
// fatal; only an authentication failure aborts the search.
func (c *Client) SearchPosts(ctx context.Context, query string, limit int) ([]models.RedditPost, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	processed := buildSearchQuery(query)
	keywords := titleKeywords(query)

	log.Debug().
		Str("query", query).
		Str("processed", processed).
		Msg("Searching Reddit")

	var all []models.RedditPost
	for _, sub := range c.cfg.Subreddits {
		posts, err := c.searchSubreddit(ctx, token, sub, processed, limit)
		if err != nil {
			log.Warn().Err(err).Str("subreddit", sub).Msg("Subreddit search failed")
			continue
		}
		for _, p := range posts {
			if titleMatches(p.Title, keywords) {
				all = append(all, p)
			}
		}
	}

	return rankPosts(all, limit), nil
}

// SearchWithStrategy fans an LLM-generated search strategy out over its
// subreddit and query lists, bounded to 5 subreddits and 3 queries, and
// merges everything through the same dedup/rank path.
func (c *Client) SearchWithStrategy(ctx context.Context, strategy *models.SearchStrategy, limit int) ([]models.RedditPost, error) {
	token, err := c.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	subs := strategy.Subreddits
	if len(subs) == 0 {
		subs = c.cfg.Subreddits
	}
	if len(subs) > maxStrategySubreddits {
		subs = subs[:maxStrategySubreddits]
	}

	queries := strategy.SearchQueries
	if len(queries) == 0 && len(strategy.Keywords) > 0 {
		queries = []string{strings.Join(strategy.Keywords, " ")}
	}
	if len(queries) > maxStrategyQueries {
		queries = queries[:maxStrategyQueries]
	}

	var all []models.RedditPost
	for _, sub := range subs {
		for _, q := range queries {
			posts, err := c.searchSubreddit(ctx, token, sub, q, limit)
			if err != nil {
				log.Warn().Err(err).Str("subreddit", sub).Str("query", q).Msg("Strategy search failed")
				continue
			}
			all = append(all, posts...)
		}
	}

	return rankPosts(all, limit), nil
}

func (c *Client) searchSubreddit(ctx context.Context, token, subreddit, query string, limit int) ([]models.RedditPost, error) {
	var result listing
	resp, err := c.api.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"q":           query,
			"sort":        "relevance",
			"limit":       strconv.Itoa(limit),
			"t":           "month",
			"restrict_sr": "on",
		}).
		SetResult(&result).
		Get("/r/" + subreddit + "/search")

	if err != nil {
		return nil, fmt.Errorf("search r/%s: %w", subreddit, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("search r/%s: status %d", subreddit, resp.StatusCode())
	}

	posts := make([]models.RedditPost, 0, len(result.Data.Children))
	for _, child := range result.Data.Children {
		d := child.Data
		excerpt := truncateExcerpt(d.Selftext, 200)
		posts = append(posts, models.RedditPost{
			Title:       d.Title,
			URL:         "https://reddit.com" + d.Permalink,
			Subreddit:   d.Subreddit,
			Upvotes:     d.Ups,
			Sentiment:   models.ImpactNeutral,
			KeyComments: excerpt,
			Date:        time.Unix(int64(d.CreatedUTC), 0).UTC().Format(time.RFC3339),
		})
	}
	return posts, nil
}

// truncateExcerpt caps s at max bytes, backing up to a rune boundary so
// a multi-byte character is never split.
func truncateExcerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// rankPosts deduplicates by URL (first occurrence wins), sorts by
// upvotes descending, and truncates to limit.
func rankPosts(posts []models.RedditPost, limit int) []models.RedditPost {
	seen := make(map[string]struct{}, len(posts))
	unique := make([]models.RedditPost, 0, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.URL]; dup {
			continue
		}
		seen[p.URL] = struct{}{}
		unique = append(unique, p)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Upvotes > unique[j].Upvotes
	})

	if limit > 0 && len(unique) > limit {
		unique = unique[:limit]
	}
	return unique
}
