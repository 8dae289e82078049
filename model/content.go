package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ContentTypeMovie = "movie"
	ContentTypeBook  = "book"

	SourceTMDB        = "tmdb"
	SourceGoogleBooks = "google_books"
)

/*
Content is a catalog entry for a movie or a book

The catalog is a dedup cache over external providers: a record is created
lazily on first import and never updated afterwards, a re-import of the same
(source, external_id) pair short-circuits to the existing row. That pair is
the only identity that matters, enforced by a composite unique index.

Id: primary key
Type: "movie" or "book"
Source: provider tag, e.g. "tmdb" or "google_books"
ExternalId: the provider's own identifier, opaque to us
RuntimeMinutes: movies only
PageCount: books only
Directors/Writers/Authors/Genres/Cast: list-valued attributes stored as JSON
*/
type Content struct {
	Id             string         `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	Type           string         `gorm:"index" json:"type"`
	Source         string         `gorm:"uniqueIndex:idx_contents_source_external_id" json:"source"`
	ExternalId     string         `gorm:"uniqueIndex:idx_contents_source_external_id" json:"external_id"`
	Title          string         `json:"title"`
	OriginalTitle  string         `json:"original_title"`
	Year           *int           `json:"year"`
	Description    string         `json:"description"`
	PosterUrl      string         `json:"poster_url"`
	RuntimeMinutes *int           `json:"runtime_minutes"`
	PageCount      *int           `json:"page_count"`
	Directors      datatypes.JSON `json:"directors"`
	Writers        datatypes.JSON `json:"writers"`
	Authors        datatypes.JSON `json:"authors"`
	Genres         datatypes.JSON `json:"genres"`
	Cast           datatypes.JSON `gorm:"column:cast_members" json:"cast"`
}

// ContentWithStats is Content joined with its query-time rating aggregates.
// The aggregates are derived from rating rows on every read, there is no
// stored counter to go stale.
type ContentWithStats struct {
	Content
	AverageRating *float64 `json:"average_rating"`
	RatingCount   int64    `json:"rating_count"`
}
