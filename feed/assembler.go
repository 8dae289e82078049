package feed

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// Assembler computes the reverse-chronological activity feed for a viewer.
type Assembler struct {
	db *gorm.DB
}

func NewAssembler(db *gorm.DB) *Assembler {
	return &Assembler{db: db}
}

// Query selects which slice of the feed to return.
//
// FilterUserID switches to "view one user's public activity log" mode: only
// that user's activities are returned, regardless of the viewer's follow
// relationships. Otherwise the feed covers the viewer plus everyone the
// viewer follows.
//
// Before is an exclusive created_at cursor for pagination; ordering is
// (created_at DESC, id DESC) so ties resolve the same way on every call.
type Query struct {
	ViewerID     string
	FilterUserID *string
	Limit        int
	Before       *time.Time
}

// GetFeed returns activities matching the query, newest first, with actor
// and content preloaded.
func (a *Assembler) GetFeed(q Query) ([]model.Activity, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	limit = utils.Min(limit, maxFeedLimit)

	tx := a.db.Model(&model.Activity{}).
		Preload("User").
		Preload("Content")

	if q.FilterUserID != nil {
		tx = tx.Where("activities.user_id = ?", *q.FilterUserID)
	} else {
		// One query with a follow-edge subselect instead of reading the
		// followee ids first and filtering second, so a follow created
		// mid-computation cannot be missed between two round trips.
		followees := a.db.Model(&model.Follow{}).
			Select("following_id").
			Where("follower_id = ?", q.ViewerID)
		tx = tx.Where("activities.user_id = ? OR activities.user_id IN (?)", q.ViewerID, followees)
	}

	if q.Before != nil {
		tx = tx.Where("activities.created_at < ?", *q.Before)
	}

	var activities []model.Activity
	if err := tx.
		Order("activities.created_at DESC, activities.id DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, errors.Wrap(err, "fail to assemble feed")
	}
	return activities, nil
}
