package model

import "time"

/*
Review is free-form text a user writes about a content item

There is deliberately no uniqueness constraint: a user may review the same
content any number of times. A review may weakly link to one of the user's
ratings; deleting the rating nulls the link instead of cascading into the
review (OnDelete:SET NULL).

Only the owning user may update or delete a review, everyone may read it.
*/
type Review struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContentID string    `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content_id"`
	Content   Content   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Text      string    `json:"text"`
	RatingID  *string   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"rating_id"`
	Rating    *Rating   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
