package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gapgram/adscraper/internal/scraper"
	pkgerrors "gapgram/adscraper/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	page  *scraper.Page
	err   error
	calls int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*scraper.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

type capturingPublisher struct {
	channelURL string
	batches    [][]scraper.Ad
	err        error
}

func (p *capturingPublisher) PublishBatch(channelURL string, ads []scraper.Ad) error {
	p.channelURL = channelURL
	p.batches = append(p.batches, ads)
	return p.err
}

func (p *capturingPublisher) TrimStreams() error { return nil }
func (p *capturingPublisher) Close() error       { return nil }

func postScrape(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/scrape-telegram", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleScrapeSuccess(t *testing.T) {
	fetcher := &stubFetcher{page: &scraper.Page{
		Markdown: "کانال سرگرمی ایرانیان\nhttps://t.me/funchannel",
	}}
	pub := &capturingPublisher{}
	srv := NewServer(":0", scraper.New(fetcher), pub)

	rec := postScrape(t, srv.Handler(), `{"channelUrl":"t.me/sourcechan","adType":"channel"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool         `json:"success"`
		Ads        []scraper.Ad `json:"ads"`
		ChannelURL string       `json:"channelUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://t.me/s/sourcechan", resp.ChannelURL)
	require.Len(t, resp.Ads, 1)
	assert.Equal(t, "https://t.me/funchannel", resp.Ads[0].TelegramLink)
	assert.Equal(t, scraper.AdTypeChannel, resp.Ads[0].AdType)

	// Batch handed to the import pipeline
	require.Len(t, pub.batches, 1)
	assert.Equal(t, "https://t.me/s/sourcechan", pub.channelURL)
	assert.Len(t, pub.batches[0], 1)
}

func TestHandleScrapeMissingChannelURL(t *testing.T) {
	fetcher := &stubFetcher{}
	srv := NewServer(":0", scraper.New(fetcher), nil)

	rec := postScrape(t, srv.Handler(), `{"channelUrl":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
	assert.Equal(t, 0, fetcher.calls)
}

func TestHandleScrapeInvalidBody(t *testing.T) {
	srv := NewServer(":0", scraper.New(&stubFetcher{}), nil)

	rec := postScrape(t, srv.Handler(), `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleScrapeUpstreamStatusPassthrough(t *testing.T) {
	fetcher := &stubFetcher{err: pkgerrors.NewUpstream(http.StatusTooManyRequests, "Rate limit exceeded")}
	srv := NewServer(":0", scraper.New(fetcher), nil)

	rec := postScrape(t, srv.Handler(), `{"channelUrl":"t.me/sourcechan"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Rate limit exceeded", resp.Error)
}

func TestHandleScrapePublisherFailureDoesNotFailRequest(t *testing.T) {
	fetcher := &stubFetcher{page: &scraper.Page{
		Markdown: "کانال سرگرمی ایرانیان\nhttps://t.me/funchannel",
	}}
	pub := &capturingPublisher{err: pkgerrors.NewPublisher("stream down", nil)}
	srv := NewServer(":0", scraper.New(fetcher), pub)

	rec := postScrape(t, srv.Handler(), `{"channelUrl":"t.me/sourcechan"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := NewServer(":0", scraper.New(&stubFetcher{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
