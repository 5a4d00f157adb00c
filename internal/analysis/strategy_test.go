package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSearchStrategy(t *testing.T) {
	srv := newChatServer(t, `{
  "keywords": ["oscars", "best picture"],
  "subreddits": ["movies", "oscarrace"],
  "searchQueries": ["oscars best picture odds"],
  "relevantTopics": ["academy awards"]
}`)
	a := newTestAnalyzer(srv)

	strategy, err := a.GenerateSearchStrategy(context.Background(), binaryMarket())
	require.NoError(t, err)
	assert.Equal(t, []string{"oscars", "best picture"}, strategy.Keywords)
	assert.Equal(t, []string{"movies", "oscarrace"}, strategy.Subreddits)
}

func TestGenerateSearchStrategyEmptyIsError(t *testing.T) {
	srv := newChatServer(t, `{"keywords": [], "subreddits": ["movies"], "searchQueries": []}`)
	a := newTestAnalyzer(srv)

	_, err := a.GenerateSearchStrategy(context.Background(), binaryMarket())
	assert.Error(t, err)
}

func TestGenerateSearchStrategyTransportError(t *testing.T) {
	srv := newFailingChatServer(t)
	a := newTestAnalyzer(srv)

	_, err := a.GenerateSearchStrategy(context.Background(), binaryMarket())
	assert.Error(t, err)
}
