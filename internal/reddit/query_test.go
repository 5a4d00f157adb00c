package reddit

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyseek/polyseek/internal/models"
)

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "stop words and short words removed",
			query: "Will the Fed cut rates in March 2025?",
			want:  "fed cut rates",
		},
		{
			name:  "punctuation stripped and lowercased",
			query: "Bitcoin $100K: Yes/No?",
			want:  "bitcoin 100k yesno",
		},
		{
			name:  "context terms appended for ukraine",
			query: "Ukraine ceasefire",
			want:  "ukraine ceasefire aid congress",
		},
		{
			name:  "trump trigger capped at four terms",
			query: "Will Trump win the election?",
			want:  "trump win election campaign",
		},
		{
			name:  "duplicate words collapse",
			query: "rates rates rates decision",
			want:  "rates decision",
		},
		{
			name:  "empty after filtering",
			query: "will be in May 2025",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSearchQuery(tt.query))
		})
	}
}

func TestTitleMatches(t *testing.T) {
	keywords := titleKeywords("Will BTC hit 100k?")

	assert.True(t, titleMatches("BTC rally continues", keywords))
	assert.True(t, titleMatches("Analysts say 100k? is in reach", keywords))
	assert.False(t, titleMatches("Unrelated sports news", keywords))
}

func TestTruncateExcerpt(t *testing.T) {
	assert.Equal(t, "short", truncateExcerpt("short", 200))

	long := strings.Repeat("a", 199) + "é" // 201 bytes, rune spans the cap
	got := truncateExcerpt(long, 200)
	assert.Equal(t, strings.Repeat("a", 199), got)
	assert.True(t, utf8.ValidString(got))

	multi := strings.Repeat("é", 150) // 300 bytes
	got = truncateExcerpt(multi, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 100), got)
}

func TestRankPosts(t *testing.T) {
	posts := []models.RedditPost{
		{Title: "a", URL: "https://reddit.com/1", Upvotes: 10},
		{Title: "b", URL: "https://reddit.com/2", Upvotes: 500},
		{Title: "a dup", URL: "https://reddit.com/1", Upvotes: 9999},
		{Title: "c", URL: "https://reddit.com/3", Upvotes: 50},
	}

	ranked := rankPosts(posts, 2)

	require.Len(t, ranked, 2)
	// First URL occurrence wins the dedup, so /1 keeps 10 upvotes and
	// drops out of the top two.
	assert.Equal(t, "https://reddit.com/2", ranked[0].URL)
	assert.Equal(t, "https://reddit.com/3", ranked[1].URL)
}
