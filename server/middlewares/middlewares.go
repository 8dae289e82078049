package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediamux/mediamux/userdir"
)

// ContextUserKey is where the authenticated user id lands in the gin
// context. Empty/absent means the request is anonymous.
const ContextUserKey = "user_id"

var (
	// directory validates bearer tokens. Before using any middleware in this
	// package, make sure it's initialized via Setup.
	directory *userdir.Directory
)

// Setup initializes package scoped state needed to perform middleware
// functionalities. This function must be called before any middleware is
// used.
func Setup(d *userdir.Directory) {
	directory = d
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Auth rejects requests without a valid bearer access token and records the
// token's subject in the context for handlers downstream.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "authentication required"})
			c.Abort()
			return
		}
		userId, err := directory.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid or expired token"})
			c.Abort()
			return
		}
		c.Set(ContextUserKey, userId)
		c.Next()
	}
}

// OptionalAuth records the user id when a valid token is present but lets
// anonymous requests through; public read endpoints use it to personalize
// responses for logged-in viewers.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if userId, err := directory.ParseAccessToken(token); err == nil {
				c.Set(ContextUserKey, userId)
			}
		}
		c.Next()
	}
}
