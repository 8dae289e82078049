package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/mediamux/mediamux/model"
)

// SearchExternalMovies handles GET /api/external/movies/search?q=. Results
// come straight from the provider, nothing is persisted.
func (h *Handler) SearchExternalMovies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, errors.Wrap(model.ErrValidation, "q parameter is required"))
		return
	}
	results, err := h.Movies.SearchMovies(query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// SearchExternalBooks handles GET /api/external/books/search?q=.
func (h *Handler) SearchExternalBooks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		abortWithError(c, errors.Wrap(model.ErrValidation, "q parameter is required"))
		return
	}
	results, err := h.Books.SearchBooks(query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

type importRequest struct {
	Source     string `json:"source"`
	ExternalId string `json:"external_id"`
}

// Import handles POST /api/external/import: fetches full details from the
// provider and creates the catalog record, or returns the existing one.
func (h *Handler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}
	if req.Source == "" || req.ExternalId == "" {
		abortWithError(c, errors.Wrap(model.ErrValidation, "source and external_id are required"))
		return
	}
	content, err := h.Catalog.Import(req.Source, req.ExternalId)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}
