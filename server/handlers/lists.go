package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// ListLists handles GET /api/lists?user_id=. Without user_id it returns
// the caller's own lists (private included); with user_id it returns the
// lists of that user visible to the caller.
func (h *Handler) ListLists(c *gin.Context) {
	viewer := currentUser(c)
	owner := c.Query("user_id")
	if owner == "" {
		owner = viewer
	}
	result, err := h.Lists.VisibleLists(viewer, owner)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type listRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

// CreateList handles POST /api/lists. Lists default to public.
func (h *Handler) CreateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	list, err := h.Lists.CreateList(currentUser(c), req.Name, req.Description, isPublic)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// GetList handles GET /api/lists/:id, items embedded in display order.
func (h *Handler) GetList(c *gin.Context) {
	list, err := h.Lists.GetList(currentUser(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateList handles PUT /api/lists/:id, owner only.
func (h *Handler) UpdateList(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	list, err := h.Lists.UpdateList(currentUser(c), c.Param("id"), req.Name, req.Description, isPublic)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteList handles DELETE /api/lists/:id, owner only.
func (h *Handler) DeleteList(c *gin.Context) {
	if err := h.Lists.DeleteList(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	ListId    string `json:"list_id"`
	ContentId string `json:"content_id"`
	Order     *int   `json:"order"`
}

// CreateListItem handles POST /api/list-items. Duplicate (list, content)
// pairs are conflicts; omitted order appends at the end.
func (h *Handler) CreateListItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	item, err := h.Lists.AddItem(currentUser(c), req.ListId, req.ContentId, req.Order)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type reorderItemRequest struct {
	Order int `json:"order"`
}

// ReorderListItem handles PATCH /api/list-items/:id.
func (h *Handler) ReorderListItem(c *gin.Context) {
	var req reorderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	item, err := h.Lists.ReorderItem(currentUser(c), c.Param("id"), req.Order)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteListItem handles DELETE /api/list-items/:id.
func (h *Handler) DeleteListItem(c *gin.Context) {
	if err := h.Lists.RemoveItem(currentUser(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
