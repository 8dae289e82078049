// Package handlers is the REST surface of the API server. Handlers stay
// thin: bind, call into the domain packages, translate domain errors to
// HTTP statuses.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/mediamux/mediamux/catalog"
	"github.com/mediamux/mediamux/feed"
	"github.com/mediamux/mediamux/library"
	"github.com/mediamux/mediamux/lists"
	"github.com/mediamux/mediamux/model"
	"github.com/mediamux/mediamux/provider"
	"github.com/mediamux/mediamux/server/middlewares"
	"github.com/mediamux/mediamux/social"
	"github.com/mediamux/mediamux/userdir"
	Logger "github.com/mediamux/mediamux/utils/log"
)

type Handler struct {
	DB      *gorm.DB
	Catalog *catalog.Store
	Library *library.Service
	Social  *social.Graph
	Feed    *feed.Assembler
	Lists   *lists.Manager
	Users   *userdir.Directory
	Movies  provider.MovieProvider
	Books   provider.BookProvider
}

// abortWithError maps the domain error taxonomy onto HTTP statuses. The
// wrapped message is safe to show, internals were already logged where they
// happened.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, model.ErrGateway):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		Logger.Log.Error("request failed: ", err)
		c.JSON(status, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

// currentUser returns the authenticated user id, or "" for anonymous
// requests behind OptionalAuth.
func currentUser(c *gin.Context) string {
	return c.GetString(middlewares.ContextUserKey)
}
