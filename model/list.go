package model

import "time"

/*
List is a user-curated, ordered collection of content items

IsPublic gates visibility: a non-owner only ever sees public lists, the
owner sees all of their own regardless of the flag.
*/
type List struct {
	Id          string     `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
	UserID      string     `gorm:"index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IsPublic    bool       `json:"is_public"`
	Items       []ListItem `json:"items"`
}

/*
ListItem places one content item in one list

A content appears at most once per list (composite unique index). Order is
an explicit integer key, new items default to append-at-end; display order
is (order, added_at) so equal keys still resolve deterministically.
*/
type ListItem struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
	ListID    string    `gorm:"uniqueIndex:idx_list_items_list_content;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"list_id"`
	List      List      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContentID string    `gorm:"uniqueIndex:idx_list_items_list_content;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content_id"`
	Content   Content   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content"`
	Order     int       `gorm:"column:item_order" json:"order"`
}
