package reddit

import (
	"regexp"
	"strings"
)

// Stop words removed from search queries: common prepositions, month and
// day names, nearby years, and other time-related filler that pollutes
// Reddit relevance matching.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"will", "the", "be", "to", "in", "on", "at", "by", "for", "of", "with",
		"before", "after", "during", "until", "since",
		"january", "february", "march", "april", "may", "june", "july",
		"august", "september", "october", "november", "december",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		"year", "month", "week", "day", "today", "tomorrow", "yesterday",
		"2024", "2025", "2026",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// contextTriggers appends topic-specific terms when a keyword appears in
// the query, to steer Reddit search toward the market's actual subject.
// Ordered so the result is stable when several triggers fire.
var contextTriggers = []struct {
	keyword string
	terms   []string
}{
	{"ukraine", []string{"aid", "congress", "funding"}},
	{"trump", []string{"campaign", "republican"}},
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// buildSearchQuery reduces a market title to at most 4 search terms:
// lowercased, punctuation stripped, stop words and short words removed,
// plus any triggered context terms.
func buildSearchQuery(query string) string {
	cleaned := punctuation.ReplaceAllString(strings.ToLower(query), "")

	var keywords []string
	seen := map[string]struct{}{}
	for _, word := range strings.Fields(cleaned) {
		if _, stop := stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	for _, trigger := range contextTriggers {
		if _, ok := seen[trigger.keyword]; !ok {
			continue
		}
		for _, term := range trigger.terms {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			keywords = append(keywords, term)
		}
	}

	if len(keywords) > 4 {
		keywords = keywords[:4]
	}
	return strings.Join(keywords, " ")
}

// titleKeywords returns the raw lowercased words of the original query,
// used to post-filter provider results that match too broadly.
func titleKeywords(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// titleMatches reports whether at least one keyword appears as a
// substring of the post title.
func titleMatches(title string, keywords []string) bool {
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
