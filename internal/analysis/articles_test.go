package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyseek/polyseek/internal/models"
)

func TestIsAwardsMarket(t *testing.T) {
	assert.True(t, isAwardsMarket("Will Oppenheimer win Best Picture at the Oscars?"))
	assert.True(t, isAwardsMarket("Grammy for album of the year"))
	assert.False(t, isAwardsMarket("Will BTC hit 100k?"))
}

func TestFilterAndRankArticles(t *testing.T) {
	srv := newFailingChatServer(t)
	a := newTestAnalyzer(srv)
	market := binaryMarket()

	articles := []models.RelatedArticle{
		{Title: "weak", RelevanceScore: 0.55, PublishDate: "2025-06-10"},
		{Title: "stale", RelevanceScore: 0.95, PublishDate: "2025-04-01"},
		{Title: "recent high", RelevanceScore: 0.9, PublishDate: "2025-06-14"},
		{Title: "recent mid", RelevanceScore: 0.7, PublishDate: "2025-06-12"},
		{Title: "older mid", RelevanceScore: 0.7, PublishDate: "2025-05-20"},
		{Title: "no date", RelevanceScore: 0.85},
	}

	got := a.filterAndRankArticles(articles, market)

	// Below-threshold and >30d old articles drop; the rest rank by the
	// relevance/recency blend and cap at three.
	require.Len(t, got, 3)
	assert.Equal(t, "recent high", got[0].Title)
	for _, art := range got {
		assert.NotEqual(t, "weak", art.Title)
		assert.NotEqual(t, "stale", art.Title)
	}
}

func TestFilterAndRankArticlesAwardsThreshold(t *testing.T) {
	srv := newFailingChatServer(t)
	a := newTestAnalyzer(srv)

	market := binaryMarket()
	market.Title = "Will Oppenheimer win Best Picture at the Oscars?"

	articles := []models.RelatedArticle{
		{Title: "borderline", RelevanceScore: 0.55, PublishDate: "2025-06-10"},
	}

	// 0.55 passes the looser awards threshold but not the default one.
	assert.Len(t, a.filterAndRankArticles(articles, market), 1)

	market.Title = "Will BTC hit 100k?"
	assert.Empty(t, a.filterAndRankArticles(articles, market))
}

func TestFetchRelatedArticlesUnparseableResponse(t *testing.T) {
	srv := newChatServer(t, "I could not find any relevant articles.")
	a := newTestAnalyzer(srv)

	got, err := a.FetchRelatedArticles(context.Background(), binaryMarket())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchRelatedArticlesTransportError(t *testing.T) {
	srv := newFailingChatServer(t)
	a := newTestAnalyzer(srv)

	_, err := a.FetchRelatedArticles(context.Background(), binaryMarket())
	assert.Error(t, err)
}

func TestFetchRelatedArticlesFiltersResults(t *testing.T) {
	srv := newChatServer(t, `Here you go:
[
  {"title": "On topic", "url": "https://news.example/1", "relevanceScore": 0.9, "publishDate": "2025-06-14", "marketImpact": "BULLISH"},
  {"title": "Off topic", "url": "https://news.example/2", "relevanceScore": 0.2, "publishDate": "2025-06-14", "marketImpact": "NEUTRAL"}
]`)
	a := newTestAnalyzer(srv)

	got, err := a.FetchRelatedArticles(context.Background(), binaryMarket())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "On topic", got[0].Title)
}
