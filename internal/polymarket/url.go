package polymarket

import (
	"net/url"
	"strings"
)

// ExtractSlug pulls the market slug out of a Polymarket event URL: the
// path segment immediately following the literal "event" segment, with
// any query string stripped. Returns ErrInvalidURL before any network
// call when no slug can be found.
func ExtractSlug(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}

	segments := strings.Split(u.Path, "/")
	for i, seg := range segments {
		if seg != "event" {
			continue
		}
		if i+1 >= len(segments) {
			return "", ErrInvalidURL
		}
		slug, _, _ := strings.Cut(segments[i+1], "?")
		if slug == "" {
			return "", ErrInvalidURL
		}
		return slug, nil
	}

	return "", ErrInvalidURL
}
