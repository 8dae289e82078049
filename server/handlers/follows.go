package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// ListFollows handles GET /api/follows?direction=. Default lists who the
// caller follows; direction=followers flips it.
func (h *Handler) ListFollows(c *gin.Context) {
	userId := currentUser(c)

	var (
		follows []model.Follow
		err     error
	)
	switch c.Query("direction") {
	case "", "following":
		follows, err = h.Social.ListFollowing(userId)
	case "followers":
		follows, err = h.Social.ListFollowers(userId)
	default:
		abortWithError(c, errors.Wrap(model.ErrValidation, "direction must be 'following' or 'followers'"))
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, follows)
}

type followRequest struct {
	FollowingId string `json:"following_id"`
}

// CreateFollow handles POST /api/follows. Duplicate edges are conflicts,
// self-follow is a validation error.
func (h *Handler) CreateFollow(c *gin.Context) {
	var req followRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	follow, err := h.Social.Follow(currentUser(c), req.FollowingId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, follow)
}

// DeleteFollow handles DELETE /api/follows/:id.
func (h *Handler) DeleteFollow(c *gin.Context) {
	if err := h.Social.Unfollow(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
