package scraper

import "context"

// AdType distinguishes Telegram groups from channels. It is chosen by the
// operator at scrape time and stamped onto every candidate of the run.
type AdType string

const (
	AdTypeGroup   AdType = "group"
	AdTypeChannel AdType = "channel"
)

// Valid reports whether t is a known ad type.
func (t AdType) Valid() bool {
	return t == AdTypeGroup || t == AdTypeChannel
}

// DefaultCategory is assigned uniformly to all candidates of one run;
// operators relabel per candidate before publishing.
const DefaultCategory = "chat"

// MaxAds caps the result list regardless of how many links were found.
const MaxAds = 30

// Ad is one candidate listing extracted from a channel preview page.
// It lives only for the duration of one scrape response and the operator's
// review; persisting it is the directory app's business.
type Ad struct {
	Name         string `json:"name"`
	Text         string `json:"text"`
	TelegramLink string `json:"telegramLink"`
	Category     string `json:"category"`
	AdType       AdType `json:"adType"`
	Members      int    `json:"members,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// Request is the invocation input for one scrape.
type Request struct {
	ChannelURL string `json:"channelUrl"`
	AdType     AdType `json:"adType,omitempty"`
}

// Result is the complete output of one successful scrape: the candidates in
// link-extraction order and the preview URL that was actually fetched.
type Result struct {
	Ads        []Ad   `json:"ads"`
	ChannelURL string `json:"channelUrl"`
}

// Page holds the two renderings of a scraped page returned by the
// fetch+convert API.
type Page struct {
	HTML     string
	Markdown string
}

// Fetcher retrieves a URL as raw HTML plus a markdown rendering.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}
