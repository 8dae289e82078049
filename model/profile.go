package model

import "time"

/*
Profile is the public face of a user

Id: primary key
CreatedAt: time when entity is created
UserID:
User: account this profile belongs to, exactly one profile per user,

	created together with the account

AvatarUrl: profile image url
Bio: free-form text

Follower/following counts and the viewer relationship flags are derived at
query time from follow edges, they are not stored here.
*/
type Profile struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
	UserID    string    `gorm:"uniqueIndex;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AvatarUrl string    `json:"avatar_url"`
	Bio       string    `json:"bio"`
}
