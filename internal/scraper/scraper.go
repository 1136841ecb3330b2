package scraper

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"gapgram/adscraper/logger"
	"gapgram/adscraper/pkg/errors"
)

// maxFallbackAds caps the simplified whole-document pass.
const maxFallbackAds = 20

// Scraper turns a Telegram channel's public preview page into a bounded
// list of ad candidates. It is stateless: each Scrape call is one fetch
// plus in-memory text processing, with no caching across invocations.
type Scraper struct {
	fetcher Fetcher
	log     *logger.Logger
}

// New creates a scraper backed by the given page fetcher.
func New(fetcher Fetcher) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		log:     logger.ForScraper(),
	}
}

// Scrape fetches the channel's preview page and extracts candidate ads.
// The request's channel URL is required; ad type defaults to "group".
func (s *Scraper) Scrape(ctx context.Context, req Request) (*Result, error) {
	adType := req.AdType
	if adType == "" {
		adType = AdTypeGroup
	}
	if !adType.Valid() {
		return nil, errors.NewValidation("invalid ad type")
	}

	previewURL, err := NormalizePreviewURL(req.ChannelURL)
	if err != nil {
		return nil, err
	}
	sourceHandle := SourceHandle(req.ChannelURL)

	s.log.Info().
		Str("url", previewURL).
		Str("ad_type", string(adType)).
		Msg("Scraping Telegram channel")

	page, err := s.fetcher.Fetch(ctx, previewURL)
	if err != nil {
		return nil, errors.AsScrapeError(err)
	}

	images := ExtractImages(page.HTML)
	links := ExtractLinks(page.Markdown, sourceHandle)
	blocks := SplitPosts(page.Markdown)

	ads := make([]Ad, 0, len(links))
	for _, link := range links {
		window := FindPostWindow(page.Markdown, blocks, link.Raw, link.Offset)
		cleaned := truncateRunes(CleanText(window), maxTextRunes)

		text := cleaned
		if utf8.RuneCountInString(text) < minTextRunes {
			text = GenericText(adType, link.displayRef())
		}

		ads = append(ads, Ad{
			// The name comes from the original window, not the
			// substituted fallback sentence.
			Name:         DeriveName(cleaned, link.Handle),
			Text:         text,
			TelegramLink: link.URL,
			Category:     DefaultCategory,
			AdType:       adType,
			Members:      ParseMembers(text),
			ImageURL:     AssignImage(images, len(ads)),
		})
	}

	if len(ads) == 0 {
		ads = fallbackAds(page.Markdown, images, adType, sourceHandle)
	}
	if len(ads) > MaxAds {
		ads = ads[:MaxAds]
	}

	s.log.Info().
		Int("ads", len(ads)).
		Int("images", len(images)).
		Msg("Found ads from channel")

	return &Result{Ads: ads, ChannelURL: previewURL}, nil
}

// displayRef is the handle-or-link shown in generic fallback text. It never
// carries a scheme: candidate text must stay free of raw URLs.
func (l Link) displayRef() string {
	if l.Handle != "" {
		return "@" + l.Handle
	}
	return strings.TrimPrefix(l.URL, "https://")
}

var anyTelegramLinkRe = regexp.MustCompile(`https?://t\.me/[a-zA-Z0-9_+/-]+`)

// fallbackAds is the simplified whole-document pass used when block-based
// extraction found nothing: every unique t.me link outside the preview
// path becomes a minimal candidate, so a page with visible links never
// yields a spuriously empty result. Links are rebuilt from their handle or
// invite code, so message permalinks collapse onto their channel, and the
// source channel stays excluded here too.
func fallbackAds(markdown string, images []string, adType AdType, sourceHandle string) []Ad {
	seen := make(map[string]struct{})
	var ads []Ad
	for _, raw := range anyTelegramLinkRe.FindAllString(markdown, -1) {
		if strings.Contains(raw, "/s/") {
			continue
		}

		var link, name, ref string
		if m := inviteLinkRe.FindStringSubmatch(raw); m != nil {
			link = "https://t.me/" + m[1] + m[2]
			name = FallbackName
			ref = strings.TrimPrefix(link, "https://")
		} else if m := handleRe.FindStringSubmatch(raw); m != nil {
			handle := m[1]
			if strings.EqualFold(handle, sourceHandle) || strings.EqualFold(handle, "s") {
				continue
			}
			link = "https://t.me/" + handle
			name = handle
			ref = "@" + handle
		} else {
			continue
		}

		key := strings.ToLower(link)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		ads = append(ads, Ad{
			Name:         name,
			Text:         GenericText(adType, ref),
			TelegramLink: link,
			Category:     DefaultCategory,
			AdType:       adType,
			ImageURL:     AssignImage(images, len(ads)),
		})
		if len(ads) == maxFallbackAds {
			break
		}
	}
	return ads
}
