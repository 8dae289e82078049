package model

import "time"

const (
	// Inclusive bounds for a rating score.
	RatingScoreMin = 1
	RatingScoreMax = 10
)

/*
Rating is a user's score for a content item, constrained to [1,10]

At most one rating per (user, content): a second submission replaces the
first via an upsert keyed on the composite unique index, refreshing
UpdatedAt. Each submission, overwrite included, still emits a fresh rating
activity.
*/
type Rating struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `gorm:"uniqueIndex:idx_ratings_user_content;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContentID string    `gorm:"uniqueIndex:idx_ratings_user_content;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content_id"`
	Content   Content   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content"`
	Score     int       `json:"score"`
}
