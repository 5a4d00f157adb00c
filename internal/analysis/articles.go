package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/models"
)

const articlesSystemPrompt = `Return a JSON array of 3 most relevant recent news articles. Format:
[{
  "title": "string",
  "url": "string",
  "source": "string",
  "publishDate": "YYYY-MM-DD",
  "relevanceScore": 0.0-1.0,
  "summary": "string",
  "marketImpact": "BULLISH/BEARISH/NEUTRAL"
}]`

// awardsKeywords mark markets whose news cycle is driven by a ceremony.
var awardsKeywords = []string{"oscar", "award", "emmy", "grammy"}

// FetchRelatedArticles asks the LLM search model for recent news tied to
// the market, then filters and ranks the results. A transport failure is
// returned to the caller (which treats it as "no articles"); a parse
// failure is already "no articles" here.
func (a *Analyzer) FetchRelatedArticles(ctx context.Context, market *models.Market) ([]models.RelatedArticle, error) {
	userPrompt := fmt.Sprintf(`Find top 3 relevant articles for: %q
Description: %s
Focus on last 30 days impact on market outcome.`, market.Title, market.Description)

	content, err := a.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: articlesSystemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.1,
		MaxTokens:    2000,
		JSONMode:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}

	var articles []models.RelatedArticle
	if err := llm.UnmarshalArray(content, &articles); err != nil {
		log.Warn().Err(err).Msg("Unparseable article response, returning none")
		return nil, nil
	}

	ranked := a.filterAndRankArticles(articles, market)

	log.Debug().
		Int("fetched", len(articles)).
		Int("kept", len(ranked)).
		Msg("Related articles fetched")

	return ranked, nil
}

// filterAndRankArticles drops weakly related or stale articles and ranks
// the rest by a blend of relevance and recency.
func (a *Analyzer) filterAndRankArticles(articles []models.RelatedArticle, market *models.Market) []models.RelatedArticle {
	threshold := a.cfg.RelevanceThreshold
	recencyWeight := a.cfg.RecencyWeight
	if isAwardsMarket(market.Title) {
		threshold = a.cfg.AwardsRelevanceThreshold
		recencyWeight = a.cfg.AwardsRecencyWeight
	}

	now := a.now()
	type scored struct {
		article models.RelatedArticle
		score   float64
	}

	kept := make([]scored, 0, len(articles))
	for _, art := range articles {
		if art.RelevanceScore < threshold {
			continue
		}
		recency := 0.0
		if published, err := time.Parse("2006-01-02", art.PublishDate); err == nil {
			age := now.Sub(published)
			if age > a.cfg.MaxArticleAge {
				continue
			}
			recency = 1 - age.Seconds()/a.cfg.MaxArticleAge.Seconds()
			if recency < 0 {
				recency = 0
			}
		}
		kept = append(kept, scored{
			article: art,
			score:   art.RelevanceScore*(1-recencyWeight) + recency*recencyWeight,
		})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})

	if a.cfg.MaxArticles > 0 && len(kept) > a.cfg.MaxArticles {
		kept = kept[:a.cfg.MaxArticles]
	}

	result := make([]models.RelatedArticle, len(kept))
	for i, s := range kept {
		result[i] = s.article
	}
	return result
}

func isAwardsMarket(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range awardsKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
