package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// profileView is a profile flattened for the client, with the derived
// social fields attached. Follower/following counts and the viewer flags
// are computed from follow edges at request time.
type profileView struct {
	Id             string  `json:"id"`
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	AvatarUrl      string  `json:"avatar_url"`
	Bio            string  `json:"bio"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
	IsMe           bool    `json:"is_me"`
	IsFollowing    bool    `json:"is_following"`
	FollowId       *string `json:"follow_id"`
}

func (h *Handler) profileView(viewerId string, profile *model.Profile) (*profileView, error) {
	var view profileView
	if err := copier.Copy(&view, profile); err != nil {
		return nil, err
	}
	view.Username = profile.User.Username

	var err error
	view.FollowersCount, err = h.Social.FollowerCount(profile.UserID)
	if err != nil {
		return nil, err
	}
	view.FollowingCount, err = h.Social.FollowingCount(profile.UserID)
	if err != nil {
		return nil, err
	}

	if viewerId != "" {
		view.IsMe = viewerId == profile.UserID
		following, followId, err := h.Social.IsFollowing(viewerId, profile.UserID)
		if err != nil {
			return nil, err
		}
		view.IsFollowing = following
		if following {
			view.FollowId = &followId
		}
	}
	return &view, nil
}

// ListProfiles handles GET /api/profiles?username=.
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.Users.ListProfiles(c.Query("username"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	viewer := currentUser(c)
	views := make([]profileView, 0, len(profiles))
	for i := range profiles {
		view, err := h.profileView(viewer, &profiles[i])
		if err != nil {
			abortWithError(c, err)
			return
		}
		views = append(views, *view)
	}
	c.JSON(http.StatusOK, views)
}

// GetProfile handles GET /api/profiles/:username. The reserved name "me"
// resolves to the caller's own profile.
func (h *Handler) GetProfile(c *gin.Context) {
	username := c.Param("username")

	var (
		profile *model.Profile
		err     error
	)
	if username == "me" {
		viewer := currentUser(c)
		if viewer == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			return
		}
		profile, err = h.Users.ProfileByUserId(viewer)
	} else {
		profile, err = h.Users.ProfileByUsername(username)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	view, err := h.profileView(currentUser(c), profile)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type updateProfileRequest struct {
	AvatarUrl string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// UpdateMyProfile handles PUT /api/profiles/me.
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	profile, err := h.Users.UpdateProfile(currentUser(c), req.AvatarUrl, req.Bio)
	if err != nil {
		abortWithError(c, err)
		return
	}
	view, err := h.profileView(currentUser(c), profile)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
