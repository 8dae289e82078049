// Package provider holds the clients for the external content catalogs the
// importer pulls from. Each client gets an explicitly constructed Config
// (API key, base URL, timeout) injected at startup; nothing here reads
// ambient process-wide state, which keeps the clients swappable for fakes
// in tests.
//
// Provider failures (non-2xx, transport errors, timeouts) surface as
// model.ErrGateway so the HTTP layer can answer 502 instead of blaming the
// client request.
package provider

import (
	"time"

	"github.com/araddon/dateparse"
)

// DefaultTimeout bounds every provider call. A stuck provider fails the
// request fast instead of hanging it.
const DefaultTimeout = 10 * time.Second

// Config is the injected per-client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Summary is the shallow search result shape shared by both providers.
type Summary struct {
	ExternalId  string `json:"external_id"`
	Title       string `json:"title"`
	Year        *int   `json:"year"`
	PosterUrl   string `json:"poster_url"`
	Description string `json:"description"`
}

// Details carries everything needed to create a catalog record.
type Details struct {
	Type           string
	Source         string
	ExternalId     string
	Title          string
	OriginalTitle  string
	Year           *int
	Description    string
	PosterUrl      string
	RuntimeMinutes *int
	PageCount      *int
	Directors      []string
	Writers        []string
	Authors        []string
	Genres         []string
	Cast           []string
}

// MovieProvider is the movie catalog collaborator.
type MovieProvider interface {
	SearchMovies(query string) ([]Summary, error)
	FetchMovieDetails(externalId string) (*Details, error)
}

// BookProvider is the book catalog collaborator.
type BookProvider interface {
	SearchBooks(query string) ([]Summary, error)
	FetchBookDetails(externalId string) (*Details, error)
}

// yearOf extracts the year from whatever date string the provider returns
// ("2010-07-16", "2010", RFC3339, ...). Returns nil when the field is empty
// or unparseable.
func yearOf(date string) *int {
	if date == "" {
		return nil
	}
	t, err := dateparse.ParseAny(date)
	if err != nil {
		return nil
	}
	year := t.Year()
	return &year
}
