package scraper

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// minHandleLen is the noise threshold: shorter handles are preview-page
// artifacts, not real channels.
const minHandleLen = 3

// Markers of real media hosts; everything else on a preview page is
// decorative (stickers, reactions, UI sprites).
var imageMediaMarkers = []string{"telesco.pe", "cdn", "telegram"}

// ExtractImages walks the parsed HTML and collects img src values that look
// like post media, de-duplicated in document order.
func ExtractImages(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var images []string
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		src, exists := s.Attr("src")
		if !exists || src == "" {
			return
		}
		if strings.Contains(src, "emoji") || strings.Contains(src, "icon") {
			return
		}
		if !looksLikeMedia(src) {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		images = append(images, src)
	})
	return images
}

func looksLikeMedia(src string) bool {
	for _, marker := range imageMediaMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}

// Link is one outbound Telegram link found in the markdown rendering.
type Link struct {
	// URL is the normalized absolute form (https://t.me/...).
	URL string
	// Handle is the channel/user handle, or "" for invite links.
	Handle string
	// Raw is the literal text as it appeared in the markdown, used to
	// locate the link's post block.
	Raw string
	// Offset is the byte offset of Raw in the markdown, for the
	// fixed-radius fallback window.
	Offset int
	// Invite marks t.me/+<code> and t.me/joinchat/<code> links.
	Invite bool
}

var (
	plainLinkRe  = regexp.MustCompile(`https?://t\.me/([a-zA-Z0-9_]+)`)
	inviteLinkRe = regexp.MustCompile(`https?://t\.me/(\+|joinchat/)([a-zA-Z0-9_-]+)`)
)

// ExtractLinks collects outbound Telegram links from the markdown in
// first-occurrence order, de-duplicated by normalized URL. The source
// channel's own handle, the literal preview-path segment "s", and
// too-short handles are dropped.
func ExtractLinks(markdown, sourceHandle string) []Link {
	var links []Link

	for _, m := range inviteLinkRe.FindAllStringSubmatchIndex(markdown, -1) {
		raw := markdown[m[0]:m[1]]
		prefix := markdown[m[2]:m[3]]
		code := markdown[m[4]:m[5]]
		links = append(links, Link{
			URL:    "https://t.me/" + prefix + code,
			Raw:    raw,
			Offset: m[0],
			Invite: true,
		})
	}

	invitePositions := make(map[int]struct{}, len(links))
	for _, l := range links {
		invitePositions[l.Offset] = struct{}{}
	}

	for _, m := range plainLinkRe.FindAllStringSubmatchIndex(markdown, -1) {
		// An invite link matched at the same position wins; "joinchat"
		// is its path prefix, not a handle.
		if _, ok := invitePositions[m[0]]; ok {
			continue
		}
		handle := markdown[m[2]:m[3]]
		if handle == "joinchat" {
			continue
		}
		links = append(links, Link{
			URL:    "https://t.me/" + handle,
			Handle: handle,
			Raw:    markdown[m[0]:m[1]],
			Offset: m[0],
		})
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Offset < links[j].Offset
	})

	seen := make(map[string]struct{}, len(links))
	kept := links[:0]
	for _, l := range links {
		if !l.Invite {
			name := strings.ToLower(l.Handle)
			if name == sourceHandle || name == "s" || len(name) < minHandleLen {
				continue
			}
		}
		key := strings.ToLower(l.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, l)
	}
	return kept
}
