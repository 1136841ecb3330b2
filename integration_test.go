package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gapgram/adscraper/internal/scraper"
	"gapgram/adscraper/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A Firecrawl-shaped response for a channel preview page with two posts
// and two media images.
const testFirecrawlResponse = `{
	"success": true,
	"data": {
		"html": "<html><body><div class=\"tgme_widget_message\"><img src=\"https://cdn4.telesco.pe/file/one.jpg\"/></div><div class=\"tgme_widget_message\"><img src=\"https://cdn4.telesco.pe/file/two.jpg\"/></div></body></html>",
		"markdown": "کانال اخبار فوری\n2,000 عضو\nhttps://t.me/newschannel\n14:32\nگروه گفتگوی آزاد\n850 نفر\nhttps://t.me/talkgroup\n15:10"
	}
}`

func TestScrapeTelegramEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer fc-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(testFirecrawlResponse))
	}))
	defer upstream.Close()

	fetcher := scraper.NewFirecrawlClient(upstream.URL, "fc-test", 5*time.Second)
	srv := server.NewServer(":0", scraper.New(fetcher), nil)

	body := bytes.NewBufferString(`{"channelUrl":"https://t.me/sourcechan","adType":"channel"}`)
	req := httptest.NewRequest(http.MethodPost, "/scrape-telegram", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool         `json:"success"`
		Ads        []scraper.Ad `json:"ads"`
		ChannelURL string       `json:"channelUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://t.me/s/sourcechan", resp.ChannelURL)
	require.Len(t, resp.Ads, 2)

	assert.Equal(t, "https://t.me/newschannel", resp.Ads[0].TelegramLink)
	assert.Equal(t, "کانال اخبار فوری", resp.Ads[0].Name)
	assert.Equal(t, 2000, resp.Ads[0].Members)
	assert.Equal(t, "https://cdn4.telesco.pe/file/one.jpg", resp.Ads[0].ImageURL)

	assert.Equal(t, "https://t.me/talkgroup", resp.Ads[1].TelegramLink)
	assert.Equal(t, "گروه گفتگوی آزاد", resp.Ads[1].Name)
	assert.Equal(t, 850, resp.Ads[1].Members)
	assert.Equal(t, "https://cdn4.telesco.pe/file/two.jpg", resp.Ads[1].ImageURL)

	for _, ad := range resp.Ads {
		assert.Equal(t, scraper.AdTypeChannel, ad.AdType)
		assert.Equal(t, scraper.DefaultCategory, ad.Category)
	}
}
