package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/feed"
	"github.com/mediamux/mediamux/model"
)

// ListActivities handles GET /api/activities?user_id=&limit=&before=.
//
// Without user_id this is the viewer's feed: own activities plus those of
// every followed user, newest first. With user_id it is that user's public
// activity log, independent of follow relationships. `before` is an
// RFC3339 timestamp cursor for older pages.
func (h *Handler) ListActivities(c *gin.Context) {
	query := feed.Query{ViewerID: currentUser(c)}

	if userId := c.Query("user_id"); userId != "" {
		query.FilterUserID = &userId
	}
	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil || limit <= 0 {
			abortWithError(c, errors.Wrap(model.ErrValidation, "limit must be a positive integer"))
			return
		}
		query.Limit = limit
	}
	if rawBefore := c.Query("before"); rawBefore != "" {
		before, err := time.Parse(time.RFC3339, rawBefore)
		if err != nil {
			abortWithError(c, errors.Wrap(model.ErrValidation, "before must be an RFC3339 timestamp"))
			return
		}
		query.Before = &before
	}

	activities, err := h.Feed.GetFeed(query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
