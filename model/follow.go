package model

import "time"

/*
Follow is a directed "follower watches following" edge between two users

Unique per ordered pair, so a duplicate follow fails with a conflict rather
than silently stacking edges. Self-follow is rejected at the service layer
as a validation error. Follow actions never emit feed activity.
*/
type Follow struct {
	Id          string    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	FollowerID  string    `gorm:"uniqueIndex:idx_follows_follower_following;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"follower_id"`
	Follower    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"follower"`
	FollowingID string    `gorm:"uniqueIndex:idx_follows_follower_following;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"following_id"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"following"`
}
