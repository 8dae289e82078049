package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListContents handles GET /api/contents?q=&type=. Results carry the
// query-time average_rating and rating_count aggregates.
func (h *Handler) ListContents(c *gin.Context) {
	results, err := h.Catalog.Search(c.Query("q"), c.Query("type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetContent handles GET /api/contents/:id.
func (h *Handler) GetContent(c *gin.Context) {
	result, err := h.Catalog.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
