package analysis

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/models"
)

// AnalyzePostSentiment classifies a Reddit post against the market
// question. On any failure the post is returned unchanged, keeping its
// NEUTRAL default.
func (a *Analyzer) AnalyzePostSentiment(ctx context.Context, market *models.Market, post models.RedditPost) models.RedditPost {
	systemPrompt := fmt.Sprintf(`Analyze this Reddit post's sentiment regarding the prediction market question: %q.
Return ONLY a JSON object with this structure:
{
  "sentiment": "BULLISH" | "BEARISH" | "NEUTRAL",
  "keyPoints": "Brief summary of main points"
}`, market.Title)

	userPrompt := fmt.Sprintf(`Post Title: %s
Subreddit: %s
Content: %s`, post.Title, post.Subreddit, post.KeyComments)

	content, err := a.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.3,
		MaxTokens:    150,
		JSONMode:     true,
	})
	if err != nil {
		log.Warn().Err(err).Str("post", post.Title).Msg("Post sentiment analysis failed")
		return post
	}

	var result struct {
		Sentiment string `json:"sentiment"`
		KeyPoints string `json:"keyPoints"`
	}
	if err := llm.UnmarshalObject(content, &result); err != nil {
		log.Warn().Err(err).Str("post", post.Title).Msg("Unparseable sentiment response")
		return post
	}

	switch result.Sentiment {
	case models.ImpactBullish, models.ImpactBearish, models.ImpactNeutral:
		post.Sentiment = result.Sentiment
	}
	if result.KeyPoints != "" {
		post.KeyComments = result.KeyPoints
	}
	return post
}
