// Package library is the mutation service for library entries, ratings and
// reviews. Every qualifying mutation and its activity record are applied in
// one transaction: if the activity append fails, the domain write rolls back
// too (see feed.Recorder for the consistency contract).
package library

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mediamux/mediamux/feed"
	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

type Service struct {
	db       *gorm.DB
	recorder *feed.Recorder
}

func NewService(db *gorm.DB, recorder *feed.Recorder) *Service {
	return &Service{db: db, recorder: recorder}
}

func (s *Service) contentExists(contentId string) error {
	var count int64
	if err := s.db.Model(&model.Content{}).Where("id = ?", contentId).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errors.Wrap(model.ErrNotFound, "unknown content "+contentId)
	}
	return nil
}

// SetStatus creates a (user, content, status) library entry and its library
// activity. Re-invocation with the same triple is a no-op absorbed by the
// unique constraint: the existing row is returned and no second activity is
// emitted. A different status for the same content is a new row.
func (s *Service) SetStatus(userId string, contentId string, status string) (*model.LibraryEntry, error) {
	if !utils.ContainsString(model.LibraryStatuses, status) {
		return nil, errors.Wrap(model.ErrValidation, "invalid library status "+status)
	}
	if err := s.contentExists(contentId); err != nil {
		return nil, err
	}

	entry := model.LibraryEntry{
		Id:        uuid.New().String(),
		UserID:    userId,
		ContentID: contentId,
		Status:    status,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		_, err := s.recorder.Record(tx, feed.RecordInput{
			ActorID:      userId,
			ActivityType: model.ActivityTypeLibrary,
			ContentID:    &contentId,
		})
		return err
	})
	if err != nil {
		if utils.IsUniqueViolation(err) {
			// The triple already exists, hand back the prior row.
			var existing model.LibraryEntry
			if err := s.db.Where("user_id = ? AND content_id = ? AND status = ?", userId, contentId, status).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &entry, nil
}

// ListEntries returns a user's library, optionally filtered by status,
// newest first, content preloaded.
func (s *Service) ListEntries(userId string, status string) ([]model.LibraryEntry, error) {
	tx := s.db.Preload("Content").Where("user_id = ?", userId)
	if status != "" {
		if !utils.ContainsString(model.LibraryStatuses, status) {
			return nil, errors.Wrap(model.ErrValidation, "invalid library status "+status)
		}
		tx = tx.Where("status = ?", status)
	}
	var entries []model.LibraryEntry
	err := tx.Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// DeleteEntry removes one of the caller's own library entries.
func (s *Service) DeleteEntry(userId string, entryId string) error {
	var entry model.LibraryEntry
	if err := s.db.Where("id = ?", entryId).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(model.ErrNotFound, "unknown library entry "+entryId)
		}
		return err
	}
	if entry.UserID != userId {
		return errors.Wrap(model.ErrUnauthorized, "cannot delete another user's library entry")
	}
	return s.db.Delete(&model.LibraryEntry{}, "id = ?", entryId).Error
}

// Rate upserts the user's score for a content, keyed on (user, content):
// the first call inserts, every later call overwrites the score and
// refreshes the update time. A rating activity is emitted on every call,
// overwrites included. Repeated re-rating therefore floods the feed; that
// is the intended product behavior, do not deduplicate here.
func (s *Service) Rate(userId string, contentId string, score int) (*model.Rating, error) {
	if score < model.RatingScoreMin || score > model.RatingScoreMax {
		return nil, errors.Wrap(model.ErrValidation, "score must be between 1 and 10")
	}
	if err := s.contentExists(contentId); err != nil {
		return nil, err
	}

	var rating model.Rating
	err := s.db.Transaction(func(tx *gorm.DB) error {
		candidate := model.Rating{
			Id:        uuid.New().String(),
			UserID:    userId,
			ContentID: contentId,
			Score:     score,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "content_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"score":      score,
				"updated_at": time.Now(),
			}),
		}).Create(&candidate).Error; err != nil {
			return err
		}

		// On overwrite the surviving row keeps its original id, re-read to
		// return the authoritative state.
		if err := tx.Where("user_id = ? AND content_id = ?", userId, contentId).
			First(&rating).Error; err != nil {
			return err
		}

		_, err := s.recorder.Record(tx, feed.RecordInput{
			ActorID:      userId,
			ActivityType: model.ActivityTypeRating,
			ContentID:    &contentId,
			RatingID:     &rating.Id,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// DeleteRating removes one of the caller's ratings. Reviews and activities
// that weakly reference it keep existing with the link nulled by the store.
func (s *Service) DeleteRating(userId string, ratingId string) error {
	var rating model.Rating
	if err := s.db.Where("id = ?", ratingId).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrap(model.ErrNotFound, "unknown rating "+ratingId)
		}
		return err
	}
	if rating.UserID != userId {
		return errors.Wrap(model.ErrUnauthorized, "cannot delete another user's rating")
	}
	return s.db.Delete(&model.Rating{}, "id = ?", ratingId).Error
}

// GetRating returns the user's rating for a content, if any.
func (s *Service) GetRating(userId string, contentId string) (*model.Rating, error) {
	var rating model.Rating
	err := s.db.Where("user_id = ? AND content_id = ?", userId, contentId).First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "no rating for content "+contentId)
		}
		return nil, err
	}
	return &rating, nil
}

// CreateReview always inserts a new review row; a user may review the same
// content any number of times. The optional ratingId weakly links the
// review to one of the author's own ratings. A review activity is emitted
// on creation only, edits stay out of the feed.
func (s *Service) CreateReview(userId string, contentId string, text string, ratingId *string) (*model.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(model.ErrValidation, "review text must not be empty")
	}
	if err := s.contentExists(contentId); err != nil {
		return nil, err
	}
	if ratingId != nil {
		var rating model.Rating
		if err := s.db.Where("id = ?", *ratingId).First(&rating).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.Wrap(model.ErrNotFound, "unknown rating "+*ratingId)
			}
			return nil, err
		}
		if rating.UserID != userId {
			return nil, errors.Wrap(model.ErrUnauthorized, "cannot link another user's rating")
		}
	}

	review := model.Review{
		Id:        uuid.New().String(),
		UserID:    userId,
		ContentID: contentId,
		Text:      text,
		RatingID:  ratingId,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		_, err := s.recorder.Record(tx, feed.RecordInput{
			ActorID:      userId,
			ActivityType: model.ActivityTypeReview,
			ContentID:    &contentId,
			ReviewID:     &review.Id,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviews returns reviews, optionally restricted to one content, newest
// first, author preloaded. Reviews are world-readable.
func (s *Service) ListReviews(contentId string) ([]model.Review, error) {
	tx := s.db.Preload("User")
	if contentId != "" {
		tx = tx.Where("content_id = ?", contentId)
	}
	var reviews []model.Review
	err := tx.Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// GetReview returns a single review with its author.
func (s *Service) GetReview(reviewId string) (*model.Review, error) {
	var review model.Review
	err := s.db.Preload("User").Where("id = ?", reviewId).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(model.ErrNotFound, "unknown review "+reviewId)
		}
		return nil, err
	}
	return &review, nil
}

// UpdateReview replaces the text of the caller's own review. No activity is
// emitted for edits.
func (s *Service) UpdateReview(userId string, reviewId string, text string) (*model.Review, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.Wrap(model.ErrValidation, "review text must not be empty")
	}
	review, err := s.GetReview(reviewId)
	if err != nil {
		return nil, err
	}
	if review.UserID != userId {
		return nil, errors.Wrap(model.ErrUnauthorized, "cannot edit another user's review")
	}
	if err := s.db.Model(&model.Review{}).Where("id = ?", reviewId).
		Update("text", text).Error; err != nil {
		return nil, err
	}
	return s.GetReview(reviewId)
}

// DeleteReview removes the caller's own review. Activities that reference
// it survive with the link nulled.
func (s *Service) DeleteReview(userId string, reviewId string) error {
	review, err := s.GetReview(reviewId)
	if err != nil {
		return err
	}
	if review.UserID != userId {
		return errors.Wrap(model.ErrUnauthorized, "cannot delete another user's review")
	}
	return s.db.Delete(&model.Review{}, "id = ?", reviewId).Error
}
