package models

// Market-impact / sentiment classifications.
const (
	ImpactBullish = "BULLISH"
	ImpactBearish = "BEARISH"
	ImpactNeutral = "NEUTRAL"
)

// Confidence levels for a synthesized analysis.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// RelatedArticle is a news article tied to a market, sourced from the
// LLM search model.
type RelatedArticle struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Source         string  `json:"source"`
	PublishDate    string  `json:"publishDate"`
	RelevanceScore float64 `json:"relevanceScore"`
	Summary        string  `json:"summary"`
	MarketImpact   string  `json:"marketImpact"`
}

// RedditPost is a social post found for a market. URL is the dedup key.
type RedditPost struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Subreddit   string `json:"subreddit"`
	Upvotes     int    `json:"upvotes"`
	Sentiment   string `json:"sentiment"`
	KeyComments string `json:"keyComments"`
	Date        string `json:"date"`
}

// Scenario is a projected narrative conditioned on one outcome winning.
type Scenario struct {
	Title        string   `json:"title"`
	Implications []string `json:"implications"`
	Probability  float64  `json:"probability"`
}

// WhatIfScenarios pairs the positive and negative projections. The two
// probabilities are not required to sum to 1; when the market has live
// Yes/No outcomes they carry those probabilities as-is.
type WhatIfScenarios struct {
	PositiveScenario Scenario `json:"positiveScenario"`
	NegativeScenario Scenario `json:"negativeScenario"`
}

// BullishBearishAnalysis holds the argument lists and confidence level.
type BullishBearishAnalysis struct {
	BullishArguments []string `json:"bullishArguments"`
	BearishArguments []string `json:"bearishArguments"`
	Confidence       string   `json:"confidence"`
	LastUpdated      string   `json:"lastUpdated"`
}

// SentimentPoint is one sample of the (currently unpopulated) sentiment
// timeline.
type SentimentPoint struct {
	Timestamp string  `json:"timestamp"`
	Sentiment float64 `json:"sentiment"`
	Volume    float64 `json:"volume"`
}

// SocialMetrics is a placeholder block the UI expects. No tweet-volume
// computation exists; it ships zero-filled.
type SocialMetrics struct {
	TweetVolume       int              `json:"tweetVolume"`
	OverallSentiment  float64          `json:"overallSentiment"`
	KeyInfluencers    []string         `json:"keyInfluencers"`
	SentimentOverTime []SentimentPoint `json:"sentimentOverTime"`
}

// MarketAnalysis is the composed report returned to the client.
type MarketAnalysis struct {
	BullishArguments       []string               `json:"bullishArguments"`
	BearishArguments       []string               `json:"bearishArguments"`
	RelatedArticles        []RelatedArticle       `json:"relatedArticles"`
	RedditPosts            []RedditPost           `json:"redditPosts"`
	WhatIfScenarios        WhatIfScenarios        `json:"whatIfScenarios"`
	BullishBearishAnalysis BullishBearishAnalysis `json:"bullishBearishAnalysis"`
	SocialMetrics          SocialMetrics          `json:"socialMetrics"`
}

// SearchStrategy is an LLM-generated plan for finding social discussion
// about a non-binary market.
type SearchStrategy struct {
	Keywords       []string `json:"keywords"`
	Subreddits     []string `json:"subreddits"`
	SearchQueries  []string `json:"searchQueries"`
	RelevantTopics []string `json:"relevantTopics"`
}
