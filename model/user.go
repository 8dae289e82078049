package model

import "time"

/*
User is an account in the user directory

Id: primary key, use to identify a user
CreatedAt: time when entity is created
Username: unique handle used for login and profile lookup
Email: unique contact address, also accepted as login identifier
PasswordHash: bcrypt hash, never serialized
*/
type User struct {
	Id           string    `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `gorm:"uniqueIndex" json:"username"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
}
