package publisher

import "gapgram/adscraper/internal/scraper"

// Publisher hands scraped candidate batches to the directory app's import
// pipeline.
type Publisher interface {
	// PublishBatch publishes the candidates of one scrape run, keyed by
	// the preview URL they came from.
	PublishBatch(channelURL string, ads []scraper.Ad) error

	// TrimStreams trims the underlying streams to their maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}
