package server

import (
	"context"
	"net/http"
	"time"

	"gapgram/adscraper/internal/scraper"
	"gapgram/adscraper/logger"
	"gapgram/adscraper/services/publisher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server exposes the scrape operation over HTTP for the directory app.
type Server struct {
	scraper *scraper.Scraper
	pub     publisher.Publisher
	http    *http.Server
	log     *logger.Logger
}

// NewServer creates the HTTP server. pub may be nil; scrape results are
// then simply not published.
func NewServer(addr string, sc *scraper.Scraper, pub publisher.Publisher) *Server {
	s := &Server{
		scraper: sc,
		pub:     pub,
		log:     logger.ForServer(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// The directory app invokes this function from the browser.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodPost, http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/scrape-telegram", s.handleScrape)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}
