// Package analysis issues the LLM prompts of the pipeline: related-news
// search, per-post sentiment, search-strategy generation, and the final
// bullish/bearish synthesis. Every operation degrades to an empty or
// deterministic default result; nothing here ever fails a request.
package analysis

import (
	"time"

	"github.com/polyseek/polyseek/internal/llm"
)

// Config enumerates the tunable differences between the pipeline
// variants: thresholds, ranking weights, and article bounds.
type Config struct {
	// MaxArticles bounds the related-article list.
	MaxArticles int

	// RelevanceThreshold drops weakly related articles. Awards-category
	// markets (detected by title keywords) use the looser threshold and
	// weigh recency higher, since awards coverage clusters close to the
	// ceremony date.
	RelevanceThreshold       float64
	AwardsRelevanceThreshold float64
	RecencyWeight            float64
	AwardsRecencyWeight      float64

	// MaxArticleAge drops stale articles regardless of relevance.
	MaxArticleAge time.Duration
}

// DefaultConfig returns the deployed variant's tuning.
func DefaultConfig() Config {
	return Config{
		MaxArticles:              3,
		RelevanceThreshold:       0.6,
		AwardsRelevanceThreshold: 0.5,
		RecencyWeight:            0.3,
		AwardsRecencyWeight:      0.4,
		MaxArticleAge:            30 * 24 * time.Hour,
	}
}

// Analyzer runs the LLM stages of the pipeline.
type Analyzer struct {
	llm *llm.Client
	cfg Config

	// now is stubbed in tests.
	now func() time.Time
}

// NewAnalyzer creates an Analyzer over the given LLM client.
func NewAnalyzer(client *llm.Client, cfg Config) *Analyzer {
	return &Analyzer{
		llm: client,
		cfg: cfg,
		now: time.Now,
	}
}
