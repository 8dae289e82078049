// Package social maintains the follower/following graph. Edges are directed
// and unique per ordered pair; uniqueness is enforced by the store's
// composite index, not by a pre-read, so two racing follow calls resolve to
// exactly one edge and one conflict. Follow actions never emit feed
// activity.
package social

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/utils"
)

type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// Follow creates a follower->target edge. Self-follow is rejected as a
// validation error, a duplicate edge as a conflict, an unknown target as
// not found.
func (g *Graph) Follow(followerId string, targetId string) (*model.Follow, error) {
	if followerId == targetId {
		return nil, errors.Wrap(model.ErrValidation, "cannot follow yourself")
	}

	var count int64
	if err := g.db.Model(&model.User{}).Where("id = ?", targetId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrap(model.ErrNotFound, "unknown user "+targetId)
	}

	follow := model.Follow{
		Id:          uuid.New().String(),
		FollowerID:  followerId,
		FollowingID: targetId,
	}
	if err := g.db.Create(&follow).Error; err != nil {
		if utils.IsUniqueViolation(err) {
			return nil, errors.Wrap(model.ErrConflict, "already following "+targetId)
		}
		return nil, err
	}
	return &follow, nil
}

// Unfollow removes an edge by its id. Only the edge's follower may remove
// it.
func (g *Graph) Unfollow(followerId string, followId string) error {
	var follow model.Follow
	result := g.db.Where("id = ?", followId).First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return errors.Wrap(model.ErrNotFound, "unknown follow "+followId)
		}
		return result.Error
	}
	if follow.FollowerID != followerId {
		return errors.Wrap(model.ErrUnauthorized, "cannot remove another user's follow")
	}
	return g.db.Delete(&model.Follow{}, "id = ?", followId).Error
}

// UnfollowUser removes the follower->target edge if it exists.
func (g *Graph) UnfollowUser(followerId string, targetId string) error {
	result := g.db.Where("follower_id = ? AND following_id = ?", followerId, targetId).
		Delete(&model.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrap(model.ErrNotFound, "not following "+targetId)
	}
	return nil
}

// ListFollowing returns the edges where the user is the follower, target
// user preloaded.
func (g *Graph) ListFollowing(userId string) ([]model.Follow, error) {
	var follows []model.Follow
	err := g.db.Preload("Following").
		Where("follower_id = ?", userId).
		Order("created_at DESC").
		Find(&follows).Error
	return follows, err
}

// ListFollowers returns the edges where the user is being followed,
// follower user preloaded.
func (g *Graph) ListFollowers(userId string) ([]model.Follow, error) {
	var follows []model.Follow
	err := g.db.Preload("Follower").
		Where("following_id = ?", userId).
		Order("created_at DESC").
		Find(&follows).Error
	return follows, err
}

// IsFollowing reports whether a follower->target edge exists, returning the
// edge id when it does so callers can offer an unfollow affordance.
func (g *Graph) IsFollowing(followerId string, targetId string) (bool, string, error) {
	var follow model.Follow
	result := g.db.Where("follower_id = ? AND following_id = ?", followerId, targetId).
		First(&follow)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, "", nil
		}
		return false, "", result.Error
	}
	return true, follow.Id, nil
}

// FollowerCount and FollowingCount are derived at query time for profile
// views, there is no maintained counter.
func (g *Graph) FollowerCount(userId string) (int64, error) {
	var count int64
	err := g.db.Model(&model.Follow{}).Where("following_id = ?", userId).Count(&count).Error
	return count, err
}

func (g *Graph) FollowingCount(userId string) (int64, error) {
	var count int64
	err := g.db.Model(&model.Follow{}).Where("follower_id = ?", userId).Count(&count).Error
	return count, err
}
