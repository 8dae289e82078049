package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

type ratingRequest struct {
	ContentId string `json:"content_id"`
	Score     int    `json:"score"`
}

// CreateRating handles POST /api/ratings. The same endpoint both creates
// and overwrites: at most one rating per (user, content) exists afterwards,
// and every successful call lands a fresh rating activity in the feed.
func (h *Handler) CreateRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	rating, err := h.Library.Rate(currentUser(c), req.ContentId, req.Score)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

// DeleteRating handles DELETE /api/ratings/:id. Reviews and activities
// pointing at the rating keep existing with their link nulled.
func (h *Handler) DeleteRating(c *gin.Context) {
	if err := h.Library.DeleteRating(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
