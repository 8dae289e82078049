package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// ListLibraryEntries handles GET /api/library-entries?user_id=&status=.
// Without user_id it returns the caller's own library; any user's library
// is readable by id, matching the public activity log semantics.
func (h *Handler) ListLibraryEntries(c *gin.Context) {
	userId := c.Query("user_id")
	if userId == "" {
		userId = currentUser(c)
	}
	entries, err := h.Library.ListEntries(userId, c.Query("status"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

type libraryEntryRequest struct {
	ContentId string `json:"content_id"`
	Status    string `json:"status"`
}

// CreateLibraryEntry handles POST /api/library-entries. Re-posting the same
// (content, status) pair is a no-op answered with the existing entry.
func (h *Handler) CreateLibraryEntry(c *gin.Context) {
	var req libraryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	entry, err := h.Library.SetStatus(currentUser(c), req.ContentId, req.Status)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DeleteLibraryEntry handles DELETE /api/library-entries/:id.
func (h *Handler) DeleteLibraryEntry(c *gin.Context) {
	if err := h.Library.DeleteEntry(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
