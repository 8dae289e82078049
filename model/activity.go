package model

import "time"

const (
	ActivityTypeRating  = "rating"
	ActivityTypeReview  = "review"
	ActivityTypeLibrary = "library"
	ActivityTypeListAdd = "list_add"
)

/*
Activity is an immutable feed-visible record of a user action

Appended synchronously with the triggering mutation (rating, review, library
change, list addition) inside the same transaction, and never updated by
ordinary flows afterwards. The only mutation it ever sees is the weak
reference nulling when a referenced rating/review/list is deleted.

Feed ordering is (created_at DESC, id DESC); the id tiebreak makes
pagination deterministic when two records share a timestamp.

UserID: the actor
ContentID: the content acted on, optional (nulled if the content goes away)
RatingID/ReviewID/ListID: optional links to the triggering row, weakly
referenced with OnDelete:SET NULL
*/
type Activity struct {
	Id           string    `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `gorm:"index:idx_activities_user_created" json:"created_at"`
	UserID       string    `gorm:"index:idx_activities_user_created;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User         User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ContentID    *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"content_id"`
	Content      *Content  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"content"`
	ActivityType string    `gorm:"index" json:"activity_type"`
	RatingID     *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"rating_id"`
	Rating       *Rating   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ReviewID     *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"review_id"`
	Review       *Review   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	ListID       *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"list_id"`
	List         *List     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
