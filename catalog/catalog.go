// Package catalog is the persisted content catalog: a dedup cache over the
// external providers, keyed by (source, external_id).
package catalog

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/provider"
	"github.com/mediamux/mediamux/utils"
)

type Store struct {
	db     *gorm.DB
	movies provider.MovieProvider
	books  provider.BookProvider
}

func NewStore(db *gorm.DB, movies provider.MovieProvider, books provider.BookProvider) *Store {
	return &Store{db: db, movies: movies, books: books}
}

// FindByKey looks a record up by its provider identity.
func (s *Store) FindByKey(source string, externalId string) (*model.Content, error) {
	var content model.Content
	err := s.db.Where("source = ? AND external_id = ?", source, externalId).First(&content).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(model.ErrNotFound, "no content for %s/%s", source, externalId)
		}
		return nil, err
	}
	return &content, nil
}

// Import returns the record for (source, external_id), fetching details
// from the provider and creating it on first sight. Records are never
// updated on re-import.
//
// Two concurrent imports of the same key race on the insert; the unique
// index is the authoritative guard. The loser re-reads the winner's row and
// returns it, the caller never sees a duplicate-key error.
func (s *Store) Import(source string, externalId string) (*model.Content, error) {
	existing, err := s.FindByKey(source, externalId)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	var details *provider.Details
	switch source {
	case model.SourceTMDB:
		details, err = s.movies.FetchMovieDetails(externalId)
	case model.SourceGoogleBooks:
		details, err = s.books.FetchBookDetails(externalId)
	default:
		return nil, errors.Wrap(model.ErrValidation, "unsupported source "+source)
	}
	if err != nil {
		return nil, err
	}

	content := model.Content{
		Id:             uuid.New().String(),
		Type:           details.Type,
		Source:         details.Source,
		ExternalId:     details.ExternalId,
		Title:          details.Title,
		OriginalTitle:  details.OriginalTitle,
		Year:           details.Year,
		Description:    details.Description,
		PosterUrl:      details.PosterUrl,
		RuntimeMinutes: details.RuntimeMinutes,
		PageCount:      details.PageCount,
		Directors:      toJSONList(details.Directors),
		Writers:        toJSONList(details.Writers),
		Authors:        toJSONList(details.Authors),
		Genres:         toJSONList(details.Genres),
		Cast:           toJSONList(details.Cast),
	}
	if err := s.db.Create(&content).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			// Lost the race against a concurrent import of the same key.
			return s.FindByKey(source, externalId)
		}
		return nil, err
	}
	return &content, nil
}

// Search returns catalog records matching the text query and optional type
// filter, each joined with its query-time rating aggregates (mean score and
// count over the rating rows, computed on every read).
func (s *Store) Search(query string, contentType string) ([]model.ContentWithStats, error) {
	tx := s.statsQuery()
	if query != "" {
		pattern := "%" + query + "%"
		tx = tx.Where("contents.title ILIKE ? OR contents.original_title ILIKE ?", pattern, pattern)
	}
	if contentType != "" {
		if contentType != model.ContentTypeMovie && contentType != model.ContentTypeBook {
			return nil, errors.Wrap(model.ErrValidation, "invalid content type "+contentType)
		}
		tx = tx.Where("contents.type = ?", contentType)
	}

	var results []model.ContentWithStats
	if err := tx.Order("contents.created_at DESC").Find(&results).Error; err != nil {
		return nil, errors.Wrap(err, "fail to search catalog")
	}
	return results, nil
}

// Get returns one record with its rating aggregates.
func (s *Store) Get(contentId string) (*model.ContentWithStats, error) {
	var result model.ContentWithStats
	err := s.statsQuery().Where("contents.id = ?", contentId).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown content "+contentId)
		}
		return nil, err
	}
	return &result, nil
}

func (s *Store) statsQuery() *gorm.DB {
	return s.db.Model(&model.Content{}).
		Select("contents.*, AVG(ratings.score) AS average_rating, COUNT(ratings.id) AS rating_count").
		Joins("LEFT JOIN ratings ON ratings.content_id = contents.id").
		Group("contents.id")
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	encoded, _ := json.Marshal(values)
	return datatypes.JSON(encoded)
}
