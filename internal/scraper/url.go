package scraper

import (
	"regexp"
	"strings"

	"gapgram/adscraper/pkg/errors"
)

var (
	handleRe = regexp.MustCompile(`t\.me/([a-zA-Z0-9_]+)`)
	sourceRe = regexp.MustCompile(`(?i)t\.me/(?:s/)?([a-zA-Z0-9_]+)`)
)

// NormalizePreviewURL turns an arbitrary user-supplied channel reference
// (bare handle, t.me link with or without scheme, already-prefixed preview
// URL) into the canonical web preview URL https://t.me/s/<handle>.
func NormalizePreviewURL(raw string) (string, error) {
	webURL := strings.TrimSpace(raw)
	if webURL == "" {
		return "", errors.NewValidation("channel URL is required")
	}

	// Strip an existing /s/ so it is not duplicated below.
	webURL = strings.Replace(webURL, "/s/", "/", 1)

	if m := handleRe.FindStringSubmatch(webURL); m != nil {
		return "https://t.me/s/" + m[1], nil
	}
	if !strings.HasPrefix(webURL, "https://") {
		return "https://t.me/s/" + webURL, nil
	}
	return webURL, nil
}

// SourceHandle extracts the channel's own handle from the user-supplied URL,
// lowercased, tolerating a /s/ preview prefix. Returns "" when the input does
// not look like a t.me link; a bare handle input is returned as-is.
func SourceHandle(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := sourceRe.FindStringSubmatch(trimmed); m != nil {
		return strings.ToLower(m[1])
	}
	if trimmed != "" && !strings.ContainsAny(trimmed, "/: ") {
		return strings.ToLower(trimmed)
	}
	return ""
}
