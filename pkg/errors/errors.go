package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation represents bad caller input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents deployment misconfiguration
	ErrorTypeConfiguration ErrorType = "configuration"
	// ErrorTypeUpstream represents a non-success response from the fetch+convert API
	ErrorTypeUpstream ErrorType = "upstream"
	// ErrorTypeNetwork represents network-level failures reaching the API
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents extraction/decoding errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
)

// ScrapeError is the error type crossing the scraper's component boundary.
// Status carries the upstream HTTP status when Type is ErrorTypeUpstream.
type ScrapeError struct {
	Type    ErrorType
	Message string
	Status  int
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s - %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// UserMessage returns the string surfaced to the caller. Upstream errors
// propagate verbatim; everything else uses the component's own message.
func (e *ScrapeError) UserMessage() string {
	return e.Message
}

// HTTPStatus maps the error to the status code of the invocation contract:
// 400 for bad input, the upstream's own code when it reported one, 500
// otherwise.
func (e *ScrapeError) HTTPStatus() int {
	switch e.Type {
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeUpstream:
		if e.Status != 0 {
			return e.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewValidation creates a new validation error
func NewValidation(message string) *ScrapeError {
	return New(ErrorTypeValidation, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, message, err)
}

// NewUpstream creates an upstream error carrying the API's own status code
// and message.
func NewUpstream(status int, message string) *ScrapeError {
	e := New(ErrorTypeUpstream, message, nil)
	e.Status = status
	return e
}

// NewNetwork creates a new network error
func NewNetwork(message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, message, err)
}

// AsScrapeError returns err as a *ScrapeError, wrapping unknown errors as a
// generic failure so no raw error crosses the component boundary.
func AsScrapeError(err error) *ScrapeError {
	if se, ok := err.(*ScrapeError); ok {
		return se
	}
	return New(ErrorTypeNetwork, "scrape failed", err)
}
