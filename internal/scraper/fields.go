package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	maxNameRunes = 60
	maxTextRunes = 500
	// Cleaned windows shorter than this carry no usable description.
	minTextRunes = 10
)

// FallbackName is used when neither the post text nor the handle yields a
// display name.
const FallbackName = "آگهی تلگرام"

var (
	numericLineRe   = regexp.MustCompile(`^[\d,.\s]+$`)
	timestampLineRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	// Digit-group separators are comma or space only; \s would let the
	// run straddle lines.
	memberCountRe = regexp.MustCompile(`(?i)(\d+(?:[, ]\d+)*)\s*(?:عضو|نفر|member)`)
)

// DeriveName picks a display name for a candidate: the first line of the
// cleaned text that is neither purely numeric nor a bare timestamp and is
// longer than three runes, truncated to 60. Falls back to the handle, then
// to a generic placeholder. Invite codes are never usable as names.
func DeriveName(text, handle string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || utf8.RuneCountInString(line) <= 3 {
			continue
		}
		if numericLineRe.MatchString(line) || timestampLineRe.MatchString(line) {
			continue
		}
		return truncateRunes(line, maxNameRunes)
	}
	if handle != "" {
		return truncateRunes(handle, maxNameRunes)
	}
	return FallbackName
}

// ParseMembers extracts a member count from the cleaned text: a digit run
// (thousands separators allowed) followed by a member-count unit word.
// Returns 0 when no count is present.
func ParseMembers(text string) int {
	m := memberCountRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	digits := strings.NewReplacer(",", "", " ", "").Replace(m[1])
	count, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return count
}

// AssignImage picks an image for the candidate at the given ordinal,
// cycling through the extracted images round-robin so they are reused
// rather than exhausted. Returns "" when no images were found.
func AssignImage(images []string, ordinal int) string {
	if len(images) == 0 {
		return ""
	}
	return images[ordinal%len(images)]
}

// GenericText is the templated description substituted when a post's text
// cannot be located or cleans down to nothing.
func GenericText(adType AdType, ref string) string {
	label := "گروه"
	if adType == AdTypeChannel {
		label = "کانال"
	}
	return "لینک " + label + ": " + ref
}
