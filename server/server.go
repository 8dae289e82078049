package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"

	"github.com/mediamux/mediamux/server/handlers"
	"github.com/mediamux/mediamux/server/middlewares"
	"github.com/mediamux/mediamux/utils/flag"
)

// New builds the API router. Read endpoints for public resources run
// behind OptionalAuth so anonymous requests get read-only access;
// everything that mutates requires a bearer token and answers 401 without
// one.
func New(h *handlers.Handler) *gin.Engine {
	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(flag.ServiceName))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")

	public := api.Group("")
	public.Use(middlewares.OptionalAuth())
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/token", h.Token)
		public.POST("/auth/refresh", h.Refresh)
		public.POST("/auth/password-reset/request", h.PasswordResetRequest)
		public.POST("/auth/password-reset/confirm", h.PasswordResetConfirm)

		public.GET("/contents", h.ListContents)
		public.GET("/contents/:id", h.GetContent)

		public.GET("/reviews", h.ListReviews)
		public.GET("/reviews/:id", h.GetReview)

		public.GET("/profiles", h.ListProfiles)
		public.GET("/profiles/:username", h.GetProfile)

		public.GET("/lists/:id", h.GetList)

		public.GET("/external/movies/search", h.SearchExternalMovies)
		public.GET("/external/books/search", h.SearchExternalBooks)
	}

	authed := api.Group("")
	if !flag.ByPassAuth {
		authed.Use(middlewares.Auth())
	}
	{
		authed.GET("/auth/me", h.Me)
		authed.PUT("/profiles/me", h.UpdateMyProfile)

		authed.GET("/library-entries", h.ListLibraryEntries)
		authed.POST("/library-entries", h.CreateLibraryEntry)
		authed.DELETE("/library-entries/:id", h.DeleteLibraryEntry)

		authed.POST("/ratings", h.CreateRating)
		authed.DELETE("/ratings/:id", h.DeleteRating)

		authed.POST("/reviews", h.CreateReview)
		authed.PUT("/reviews/:id", h.UpdateReview)
		authed.DELETE("/reviews/:id", h.DeleteReview)

		authed.GET("/activities", h.ListActivities)

		authed.GET("/follows", h.ListFollows)
		authed.POST("/follows", h.CreateFollow)
		authed.DELETE("/follows/:id", h.DeleteFollow)

		authed.GET("/lists", h.ListLists)
		authed.POST("/lists", h.CreateList)
		authed.PUT("/lists/:id", h.UpdateList)
		authed.DELETE("/lists/:id", h.DeleteList)

		authed.POST("/list-items", h.CreateListItem)
		authed.PATCH("/list-items/:id", h.ReorderListItem)
		authed.DELETE("/list-items/:id", h.DeleteListItem)

		authed.POST("/external/import", h.Import)
	}

	return router
}
