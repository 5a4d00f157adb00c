// Package aggregator orchestrates the analysis pipeline: the mandatory
// market fetch, the best-effort enrichment branches, and the final
// synthesis. Enrichment failures never fail a request; the caller
// always receives a structurally complete report.
package aggregator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/analysis"
	"github.com/polyseek/polyseek/internal/cache"
	"github.com/polyseek/polyseek/internal/models"
	"github.com/polyseek/polyseek/internal/polymarket"
	"github.com/polyseek/polyseek/internal/reddit"
)

// Config holds the per-branch timeouts and bounds of the deployed
// variant. The market timeout guards the mandatory path; each
// enrichment branch gets its own timeout and cancels its in-flight call
// on expiry.
type Config struct {
	MarketTimeout time.Duration
	EnrichTimeout time.Duration
	PostLimit     int
}

// DefaultConfig returns the deployed timeouts.
func DefaultConfig() Config {
	return Config{
		MarketTimeout: 10 * time.Second,
		EnrichTimeout: 20 * time.Second,
		PostLimit:     10,
	}
}

// Aggregator composes market data, news, and social discussion into a
// report. All dependencies are injected; it holds no state of its own.
type Aggregator struct {
	markets  *polymarket.Client
	reddit   *reddit.Client
	analyzer *analysis.Analyzer
	cache    *cache.Cache
	cfg      Config
}

// New creates an Aggregator. cache may be nil to disable caching.
func New(markets *polymarket.Client, rd *reddit.Client, analyzer *analysis.Analyzer, c *cache.Cache, cfg Config) *Aggregator {
	return &Aggregator{
		markets:  markets,
		reddit:   rd,
		analyzer: analyzer,
		cache:    c,
		cfg:      cfg,
	}
}

// Report is the composed response for one market.
type Report struct {
	Market   *models.Market        `json:"market"`
	Analysis models.MarketAnalysis `json:"analysis"`
}

// Analyze runs the full pipeline for a Polymarket event URL.
func (a *Aggregator) Analyze(ctx context.Context, rawURL string) (*Report, error) {
	slug, err := polymarket.ExtractSlug(rawURL)
	if err != nil {
		return nil, err
	}

	var cached Report
	if a.cache.Get(ctx, cache.AnalysisKey(slug), &cached) {
		log.Debug().Str("slug", slug).Msg("Serving cached report")
		return &cached, nil
	}

	market, err := a.fetchMarket(ctx, slug)
	if err != nil {
		return nil, err
	}

	// Enrichment branches run concurrently and fail independently.
	var (
		articles []models.RelatedArticle
		posts    []models.RedditPost
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		articles = a.fetchArticles(ctx, market)
	}()
	go func() {
		defer wg.Done()
		posts = a.fetchRedditPosts(ctx, market)
	}()
	wg.Wait()

	synthesis := a.analyzer.GenerateAnalysis(ctx, market, articles, posts)

	if articles == nil {
		articles = []models.RelatedArticle{}
	}
	if posts == nil {
		posts = []models.RedditPost{}
	}

	report := &Report{
		Market: market,
		Analysis: models.MarketAnalysis{
			BullishArguments: synthesis.BullishArguments,
			BearishArguments: synthesis.BearishArguments,
			RelatedArticles:  articles,
			RedditPosts:      posts,
			WhatIfScenarios:  synthesis.WhatIfScenarios,
			BullishBearishAnalysis: models.BullishBearishAnalysis{
				BullishArguments: synthesis.BullishArguments,
				BearishArguments: synthesis.BearishArguments,
				Confidence:       synthesis.Confidence,
				LastUpdated:      synthesis.LastUpdated,
			},
			// No tweet-volume computation exists; the UI expects the
			// block regardless.
			SocialMetrics: models.SocialMetrics{
				KeyInfluencers:    []string{},
				SentimentOverTime: []models.SentimentPoint{},
			},
		},
	}

	a.cache.Set(ctx, cache.AnalysisKey(slug), report, cache.AnalysisTTL)

	log.Info().
		Str("slug", slug).
		Int("articles", len(articles)).
		Int("posts", len(posts)).
		Str("confidence", synthesis.Confidence).
		Msg("Report composed")

	return report, nil
}

// fetchMarket is the mandatory step; its error propagates typed to the
// HTTP boundary.
func (a *Aggregator) fetchMarket(ctx context.Context, slug string) (*models.Market, error) {
	var cached models.Market
	if a.cache.Get(ctx, cache.MarketKey(slug), &cached) {
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.cfg.MarketTimeout)
	defer cancel()

	market, err := a.markets.GetMarketBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	a.cache.Set(ctx, cache.MarketKey(slug), market, cache.MarketTTL)
	return market, nil
}

func (a *Aggregator) fetchArticles(ctx context.Context, market *models.Market) []models.RelatedArticle {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.EnrichTimeout)
	defer cancel()

	articles, err := a.analyzer.FetchRelatedArticles(ctx, market)
	if err != nil {
		log.Warn().Err(err).Str("slug", market.Slug).Msg("Article fetch failed")
		return nil
	}
	return articles
}

// fetchRedditPosts finds social discussion for the market and runs the
// per-post sentiment pass. Binary markets use plain keyword search;
// anything else asks the LLM for a search strategy first, falling back
// to keyword search when that fails.
func (a *Aggregator) fetchRedditPosts(ctx context.Context, market *models.Market) []models.RedditPost {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.EnrichTimeout)
	defer cancel()

	var (
		posts []models.RedditPost
		err   error
	)

	if market.IsBinary() {
		posts, err = a.searchSocial(ctx, market.Title)
	} else {
		strategy, serr := a.analyzer.GenerateSearchStrategy(ctx, market)
		if serr != nil {
			log.Warn().Err(serr).Str("slug", market.Slug).Msg("Search strategy failed, using keyword search")
			posts, err = a.searchSocial(ctx, market.Title)
		} else {
			posts, err = a.reddit.SearchWithStrategy(ctx, strategy, a.cfg.PostLimit)
		}
	}
	if err != nil {
		log.Warn().Err(err).Str("slug", market.Slug).Msg("Reddit search failed")
		return nil
	}
	if len(posts) == 0 {
		return nil
	}

	// Sentiment passes fan out over the post list; a failed pass leaves
	// that post NEUTRAL.
	analyzed := make([]models.RedditPost, len(posts))
	var wg sync.WaitGroup
	for i, post := range posts {
		wg.Add(1)
		go func(i int, post models.RedditPost) {
			defer wg.Done()
			analyzed[i] = a.analyzer.AnalyzePostSentiment(ctx, market, post)
		}(i, post)
	}
	wg.Wait()

	return analyzed
}

func (a *Aggregator) searchSocial(ctx context.Context, query string) ([]models.RedditPost, error) {
	var cached []models.RedditPost
	if a.cache.Get(ctx, cache.SocialKey(query), &cached) {
		return cached, nil
	}

	posts, err := a.reddit.SearchPosts(ctx, query, a.cfg.PostLimit)
	if err != nil {
		return nil, err
	}

	a.cache.Set(ctx, cache.SocialKey(query), posts, cache.SocialTTL)
	return posts, nil
}
