package scraper

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Telegram preview pages emit a bare clock timestamp per message; markdown
// renderings sometimes carry horizontal rules instead. Either one ends a
// post block.
var separatorLineRe = regexp.MustCompile(`(?m)^[ \t]*(?:\d{1,2}:\d{2}|-{3,}|\*{3,}|_{3,})[ \t]*$`)

// Radius of the raw-markdown window used when no block contains a link.
const (
	windowBefore = 500
	windowAfter  = 200
)

// SplitPosts segments the markdown rendering into per-post blocks.
func SplitPosts(markdown string) []string {
	parts := separatorLineRe.Split(markdown, -1)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			blocks = append(blocks, p)
		}
	}
	return blocks
}

// FindPostWindow locates the text window most plausibly describing the link:
// the first block containing its literal text, or a fixed-radius slice of
// the raw markdown around its offset when segmentation missed it.
func FindPostWindow(markdown string, blocks []string, literal string, offset int) string {
	for _, block := range blocks {
		if strings.Contains(block, literal) {
			return block
		}
	}

	start := offset - windowBefore
	if start < 0 {
		start = 0
	}
	end := offset + len(literal) + windowAfter
	if end > len(markdown) {
		end = len(markdown)
	}
	// Keep the slice on rune boundaries.
	for start > 0 && !utf8.RuneStart(markdown[start]) {
		start--
	}
	for end < len(markdown) && !utf8.RuneStart(markdown[end]) {
		end++
	}
	return markdown[start:end]
}

var (
	imageMarkdownRe = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkMarkdownRe  = regexp.MustCompile(`\[[^\]]*\]\([^)]*\)`)
	bareURLRe       = regexp.MustCompile(`https?://[^\s]+`)
	markupCharsRe   = regexp.MustCompile("[*_#`]")
	blankRunsRe     = regexp.MustCompile(`\n{3,}`)
)

// CleanText strips markdown image/link syntax, raw URLs, and markdown
// control characters from a post window, leaving presentable prose.
func CleanText(text string) string {
	text = imageMarkdownRe.ReplaceAllString(text, "")
	text = linkMarkdownRe.ReplaceAllString(text, "")
	text = bareURLRe.ReplaceAllString(text, "")
	text = markupCharsRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "()", "")
	text = blankRunsRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// truncateRunes shortens s to at most n runes. Descriptions are mostly
// Persian, so byte-based slicing would cut characters in half.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}
