package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// reviewView augments a review with the fields the client renders inline.
type reviewView struct {
	model.Review
	Username string `json:"username"`
	IsOwner  bool   `json:"is_owner"`
}

func (h *Handler) reviewViews(c *gin.Context, reviews []model.Review) []reviewView {
	viewer := currentUser(c)
	views := make([]reviewView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, reviewView{
			Review:   review,
			Username: review.User.Username,
			IsOwner:  viewer != "" && viewer == review.UserID,
		})
	}
	return views
}

// ListReviews handles GET /api/reviews?content=. World-readable.
func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.Library.ListReviews(c.Query("content"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.reviewViews(c, reviews))
}

// GetReview handles GET /api/reviews/:id.
func (h *Handler) GetReview(c *gin.Context) {
	review, err := h.Library.GetReview(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.reviewViews(c, []model.Review{*review})[0])
}

type createReviewRequest struct {
	ContentId string  `json:"content_id"`
	Text      string  `json:"text"`
	RatingId  *string `json:"rating_id"`
}

// CreateReview handles POST /api/reviews. Always a new row, a user may
// review the same content repeatedly.
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	review, err := h.Library.CreateReview(currentUser(c), req.ContentId, req.Text, req.RatingId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

type updateReviewRequest struct {
	Text string `json:"text"`
}

// UpdateReview handles PUT /api/reviews/:id, owner only.
func (h *Handler) UpdateReview(c *gin.Context) {
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	review, err := h.Library.UpdateReview(currentUser(c), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/:id, owner only.
func (h *Handler) DeleteReview(c *gin.Context) {
	if err := h.Library.DeleteReview(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
