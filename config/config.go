package config

import (
	"os"
	"strconv"
	"time"

	"gapgram/adscraper/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// HTTP server configuration
	ListenAddr string

	// Firecrawl configuration
	FirecrawlAPIKey string
	FirecrawlAPIURL string
	FetchTimeout    time.Duration

	// Redis configuration (optional; publisher is disabled when RedisAddr is empty)
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	streamCount, _ := strconv.Atoi(getEnv("REDIS_STREAM_COUNT", "1"))
	streamMaxLen, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "60"))

	return Config{
		ListenAddr:           getEnv("LISTEN_ADDR", ":8787"),
		FirecrawlAPIKey:      getEnv("FIRECRAWL_API_KEY", ""),
		FirecrawlAPIURL:      getEnv("FIRECRAWL_API_URL", "https://api.firecrawl.dev/v1/scrape"),
		FetchTimeout:         time.Duration(fetchTimeout) * time.Second,
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		RedisDB:              redisDB,
		RedisStream:          getEnv("REDIS_STREAM", "scrapes"),
		RedisStreamCount:     streamCount,
		RedisStreamMaxLength: streamMaxLen,
		Environment:          getEnv("ADSCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for deployment mistakes. A missing
// Firecrawl credential is an ops issue, not a user input error, so it is
// caught here before the server starts taking requests.
func (c *Config) Validate() error {
	if c.FirecrawlAPIKey == "" {
		return errors.NewConfiguration("scraper not configured", nil)
	}
	if c.RedisStreamCount < 1 {
		return errors.NewConfiguration("REDIS_STREAM_COUNT must be at least 1", nil)
	}
	return nil
}

// PublisherEnabled reports whether scrape batches should be published to Redis.
func (c *Config) PublisherEnabled() bool {
	return c.RedisAddr != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
