package model

import "time"

const (
	LibraryStatusWatched   = "watched"
	LibraryStatusWatchlist = "watchlist"
	LibraryStatusRead      = "read"
	LibraryStatusToRead    = "to_read"
)

// LibraryStatuses enumerates every valid library entry status.
var LibraryStatuses = []string{
	LibraryStatusWatched,
	LibraryStatusWatchlist,
	LibraryStatusRead,
	LibraryStatusToRead,
}

/*
LibraryEntry is a user's personal status marker for a content item

A user may hold the same content in several distinct statuses at once (e.g.
watched and watchlist are two rows), but never the same (user, content,
status) triple twice. The composite unique index is the sole guard, a
repeated insert of the same triple is absorbed as a no-op by the caller.
*/
type LibraryEntry struct {
	Id        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `gorm:"uniqueIndex:idx_library_entries_user_content_status;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ContentID string    `gorm:"uniqueIndex:idx_library_entries_user_content_status;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content_id"`
	Content   Content   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"content"`
	Status    string    `gorm:"uniqueIndex:idx_library_entries_user_content_status" json:"status"`
}
