package server

import (
	"encoding/json"
	"net/http"

	"gapgram/adscraper/internal/scraper"
	"gapgram/adscraper/pkg/errors"
)

// The invocation contract is always a complete success object or a complete
// failure object, nothing in between.
type successResponse struct {
	Success    bool         `json:"success"`
	Ads        []scraper.Ad `json:"ads"`
	ChannelURL string       `json:"channelUrl"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scraper.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.NewValidation("invalid request body"))
		return
	}

	result, err := s.scraper.Scrape(r.Context(), req)
	if err != nil {
		s.writeError(w, errors.AsScrapeError(err))
		return
	}

	// Publishing is best-effort: the operator still gets the candidates
	// even when the import stream is down.
	if s.pub != nil && len(result.Ads) > 0 {
		if err := s.pub.PublishBatch(result.ChannelURL, result.Ads); err != nil {
			s.log.Warn().Err(err).Msg("Failed to publish scrape batch")
		}
	}

	ads := result.Ads
	if ads == nil {
		ads = []scraper.Ad{}
	}
	writeJSON(w, http.StatusOK, successResponse{
		Success:    true,
		Ads:        ads,
		ChannelURL: result.ChannelURL,
	})
}

func (s *Server) writeError(w http.ResponseWriter, err *errors.ScrapeError) {
	s.log.Error().
		Str("type", string(err.Type)).
		Err(err).
		Msg("Scrape request failed")
	writeJSON(w, err.HTTPStatus(), errorResponse{
		Success: false,
		Error:   err.UserMessage(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
