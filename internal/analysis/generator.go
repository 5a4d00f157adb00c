package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/models"
)

const synthesisSystemPrompt = `You are a prediction market analyst. Analyze the market data, articles, and Reddit posts to generate a detailed analysis.
Return ONLY a JSON object with this exact structure:
{
  "bullishArguments": ["Detailed argument based on specific evidence", "Another specific argument"],
  "bearishArguments": ["Detailed counter-argument based on specific evidence", "Another specific argument"],
  "confidence": "HIGH" | "MEDIUM" | "LOW",
  "whatIfScenarios": {
    "positiveScenario": {
      "title": "If YES wins...",
      "implications": ["Specific market implication", "Another specific implication"],
      "probability": 0.5
    },
    "negativeScenario": {
      "title": "If NO wins...",
      "implications": ["Specific market implication", "Another specific implication"],
      "probability": 0.5
    }
  }
}`

// Synthesis is the bullish/bearish portion of the report.
type Synthesis struct {
	BullishArguments []string
	BearishArguments []string
	Confidence       string
	LastUpdated      string
	WhatIfScenarios  models.WhatIfScenarios
}

type synthesisResponse struct {
	BullishArguments []string `json:"bullishArguments"`
	BearishArguments []string `json:"bearishArguments"`
	Confidence       string   `json:"confidence"`
	WhatIfScenarios  *struct {
		PositiveScenario models.Scenario `json:"positiveScenario"`
		NegativeScenario models.Scenario `json:"negativeScenario"`
	} `json:"whatIfScenarios"`
}

// GenerateAnalysis synthesizes the final bullish/bearish analysis from
// the market and the gathered evidence. It never fails: any LLM or
// parse problem falls back to a deterministic analysis built from the
// evidence counts and the market's own numbers.
func (a *Analyzer) GenerateAnalysis(ctx context.Context, market *models.Market, articles []models.RelatedArticle, posts []models.RedditPost) Synthesis {
	content, err := a.llm.Chat(ctx, llm.ChatRequest{
		SystemPrompt: synthesisSystemPrompt,
		UserPrompt:   synthesisUserPrompt(market, articles, posts),
		Temperature:  0.1,
		MaxTokens:    1000,
		JSONMode:     true,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Analysis generation failed, using fallback")
		return a.fallbackSynthesis(market, articles, posts)
	}

	var resp synthesisResponse
	if err := llm.UnmarshalObject(content, &resp); err != nil {
		log.Warn().Err(err).Msg("Unparseable analysis response, using fallback")
		return a.fallbackSynthesis(market, articles, posts)
	}
	if resp.BullishArguments == nil || resp.BearishArguments == nil ||
		resp.Confidence == "" || resp.WhatIfScenarios == nil {
		log.Warn().Msg("Incomplete analysis response, using fallback")
		return a.fallbackSynthesis(market, articles, posts)
	}

	confidence := resp.Confidence
	switch confidence {
	case models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow:
	default:
		confidence = models.ConfidenceMedium
	}

	return Synthesis{
		BullishArguments: resp.BullishArguments,
		BearishArguments: resp.BearishArguments,
		Confidence:       confidence,
		LastUpdated:      a.now().UTC().Format(time.RFC3339),
		WhatIfScenarios: seedScenarios(market,
			resp.WhatIfScenarios.PositiveScenario,
			resp.WhatIfScenarios.NegativeScenario),
	}
}

func synthesisUserPrompt(market *models.Market, articles []models.RelatedArticle, posts []models.RedditPost) string {
	var sb strings.Builder

	probs := make([]string, len(market.Outcomes))
	for i, o := range market.Outcomes {
		probs[i] = fmt.Sprintf("%s: %.1f%%", o.Title, o.Probability*100)
	}

	fmt.Fprintf(&sb, `Analyze this prediction market:
Title: %s
Description: %s
Current Probabilities: %s

Recent Articles:
`, market.Title, market.Description, strings.Join(probs, ", "))

	for _, art := range articles {
		fmt.Fprintf(&sb, "- %s (Impact: %s, Score: %.2f)\n  Summary: %s\n",
			art.Title, art.MarketImpact, art.RelevanceScore, art.Summary)
	}

	sb.WriteString("\nReddit Discussion:\n")
	for _, post := range posts {
		fmt.Fprintf(&sb, "- %s (%s, %d upvotes)\n  Key Points: %s\n",
			post.Title, post.Sentiment, post.Upvotes, post.KeyComments)
	}

	sb.WriteString("\nGenerate a detailed analysis focusing on specific evidence from the articles and Reddit posts.")
	return sb.String()
}

// seedScenarios anchors scenario probabilities to the market. Whenever
// literal Yes/No outcomes exist their live probabilities are used, even
// on markets with extra outcomes; otherwise the model's own estimate is
// kept, clamped to [0,1]. The two probabilities are not renormalized to
// sum to 1.
func seedScenarios(market *models.Market, positive, negative models.Scenario) models.WhatIfScenarios {
	if market.HasYesNoPair() {
		yes, no := market.YesNoOutcomes()
		positive.Title = fmt.Sprintf("If %s wins...", yes.Title)
		positive.Probability = yes.Probability
		negative.Title = fmt.Sprintf("If %s wins...", no.Title)
		negative.Probability = no.Probability
	} else {
		positive.Probability = clamp01(positive.Probability)
		negative.Probability = clamp01(negative.Probability)
		if positive.Title == "" {
			positive.Title = "Positive Scenario"
		}
		if negative.Title == "" {
			negative.Title = "Negative Scenario"
		}
	}
	return models.WhatIfScenarios{
		PositiveScenario: positive,
		NegativeScenario: negative,
	}
}

// fallbackSynthesis builds a deterministic analysis from whatever
// evidence survived, so the caller always has a renderable report.
func (a *Analyzer) fallbackSynthesis(market *models.Market, articles []models.RelatedArticle, posts []models.RedditPost) Synthesis {
	var bullish, bearish []string
	for _, art := range articles {
		switch art.MarketImpact {
		case models.ImpactBullish:
			bullish = append(bullish, fmt.Sprintf("%s: %s", art.Title, art.Summary))
		case models.ImpactBearish:
			bearish = append(bearish, fmt.Sprintf("%s: %s", art.Title, art.Summary))
		}
	}
	for _, post := range posts {
		switch post.Sentiment {
		case models.ImpactBullish:
			bullish = append(bullish, "Reddit discussion shows support: "+post.Title)
		case models.ImpactBearish:
			bearish = append(bearish, "Reddit discussion raises concerns: "+post.Title)
		}
	}

	if len(bullish) == 0 {
		bullish = []string{
			fmt.Sprintf("Market shows significant trading volume of $%s", humanize.Commaf(market.Volume)),
			"Current probability suggests balanced sentiment",
		}
	}
	if len(bearish) == 0 {
		bearish = []string{
			"Market uncertainty reflected in trading patterns",
			"Current market conditions indicate mixed views",
		}
	}
	if len(bullish) > 3 {
		bullish = bullish[:3]
	}
	if len(bearish) > 3 {
		bearish = bearish[:3]
	}

	confidence := models.ConfidenceLow
	switch {
	case len(articles) > 2:
		confidence = models.ConfidenceHigh
	case len(articles) > 0:
		confidence = models.ConfidenceMedium
	}

	yes, no := market.YesNoOutcomes()

	return Synthesis{
		BullishArguments: bullish,
		BearishArguments: bearish,
		Confidence:       confidence,
		LastUpdated:      a.now().UTC().Format(time.RFC3339),
		WhatIfScenarios: models.WhatIfScenarios{
			PositiveScenario: models.Scenario{
				Title: fmt.Sprintf("If %s wins...", yes.Title),
				Implications: []string{
					fmt.Sprintf("Market confidence in %s outcome will be validated", yes.Title),
					fmt.Sprintf("Trading volume of $%s indicates strong interest", humanize.Commaf(yes.Volume)),
				},
				Probability: yes.Probability,
			},
			NegativeScenario: models.Scenario{
				Title: fmt.Sprintf("If %s wins...", no.Title),
				Implications: []string{
					fmt.Sprintf("Market sentiment for %s outcome will be confirmed", no.Title),
					fmt.Sprintf("Current liquidity of $%s shows significant market participation", humanize.Commaf(market.Liquidity)),
				},
				Probability: no.Probability,
			},
		},
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
