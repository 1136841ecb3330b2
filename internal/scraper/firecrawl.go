package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gapgram/adscraper/pkg/errors"
)

// FirecrawlClient fetches a page through the Firecrawl scrape API, which
// returns both the raw HTML and a markdown rendering of the target URL.
type FirecrawlClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewFirecrawlClient creates a Firecrawl-backed Fetcher.
func NewFirecrawlClient(apiURL, apiKey string, timeout time.Duration) *FirecrawlClient {
	return &FirecrawlClient{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type firecrawlRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	// Main-content-only extraction drops image tags living outside the
	// primary container, so it stays off.
	OnlyMainContent bool `json:"onlyMainContent"`
}

// firecrawlResponse tolerates both the nested (.data.html) and flat (.html)
// response shapes the API has been observed to return.
type firecrawlResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
	Data     struct {
		HTML     string `json:"html"`
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Fetch retrieves url via the Firecrawl API. The call is synchronous; any
// timeout beyond the client default must come from ctx.
func (c *FirecrawlClient) Fetch(ctx context.Context, url string) (*Page, error) {
	if c.apiKey == "" {
		return nil, errors.NewConfiguration("scraper not configured", nil)
	}

	payload, err := json.Marshal(firecrawlRequest{
		URL:             url,
		Formats:         []string{"markdown", "html", "links"},
		OnlyMainContent: false,
	})
	if err != nil {
		return nil, errors.NewNetwork("scrape failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewNetwork("scrape failed", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewNetwork("scrape failed", fmt.Errorf("failed to fetch URL: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork("scrape failed", fmt.Errorf("failed to read response body: %w", err))
	}

	var decoded firecrawlResponse
	if err := json.Unmarshal(body, &decoded); err != nil && resp.StatusCode == http.StatusOK {
		return nil, errors.NewParsing("scrape failed", fmt.Errorf("failed to decode response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Propagate the upstream status and message verbatim.
		msg := decoded.Error
		if msg == "" {
			msg = "Scrape failed"
		}
		return nil, errors.NewUpstream(resp.StatusCode, msg)
	}

	page := &Page{
		HTML:     decoded.Data.HTML,
		Markdown: decoded.Data.Markdown,
	}
	if page.HTML == "" {
		page.HTML = decoded.HTML
	}
	if page.Markdown == "" {
		page.Markdown = decoded.Markdown
	}
	return page, nil
}
