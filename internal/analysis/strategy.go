package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/models"
)

const strategySystemPrompt = `You are a search expert. Build a Reddit search strategy for a prediction market.
Return ONLY a JSON object with this structure:
{
  "keywords": ["essential search keywords"],
  "subreddits": ["up to 5 relevant subreddit names without r/"],
  "searchQueries": ["up to 3 complete search queries"],
  "relevantTopics": ["related topics worth monitoring"]
}`

// GenerateSearchStrategy asks the LLM for a search plan tailored to a
// non-binary market's outcomes. Used instead of plain keyword search
// when the outcome set is not a simple Yes/No pair.
func (a *Analyzer) GenerateSearchStrategy(ctx context.Context, market *models.Market) (*models.SearchStrategy, error) {
	titles := make([]string, len(market.Outcomes))
	for i, o := range market.Outcomes {
		titles[i] = o.Title
	}

	userPrompt := fmt.Sprintf(`Generate a search strategy for this market:
Title: %s
Description: %s
Outcomes: %s`, market.Title, market.Description, strings.Join(titles, ", "))

	content, err := a.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: strategySystemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.3,
		MaxTokens:    300,
		JSONMode:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate search strategy: %w", err)
	}

	var strategy models.SearchStrategy
	if err := llm.UnmarshalObject(content, &strategy); err != nil {
		return nil, fmt.Errorf("parse search strategy: %w", err)
	}
	if len(strategy.Keywords) == 0 && len(strategy.SearchQueries) == 0 {
		return nil, fmt.Errorf("empty search strategy")
	}
	return &strategy, nil
}
