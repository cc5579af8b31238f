package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlutsenko/bookshelf/internal/config"
)

// ContextKeyUserID is where the middleware stores the authenticated user id.
const ContextKeyUserID = "auth_user_id"

// DefaultUserID is used when authentication is disabled (single-user mode).
const DefaultUserID = uint(0)

// Middleware authenticates requests with HTTP Basic credentials.
type Middleware struct {
	service *Service
	mode    config.AuthMode
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, mode config.AuthMode) *Middleware {
	return &Middleware{service: service, mode: mode}
}

// Handler returns a Gin middleware handler that authenticates requests.
func (m *Middleware) Handler() gin.HandlerFunc {
	if m.mode == config.AuthModeNone {
		return func(c *gin.Context) {
			c.Set(ContextKeyUserID, DefaultUserID)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			m.unauthorized(c)
			return
		}

		user, err := m.service.Authenticate(username, password)
		if err != nil {
			m.unauthorized(c)
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Next()
	}
}

func (m *Middleware) unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="bookshelf"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
}

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	if id, ok := c.Get(ContextKeyUserID); ok {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return DefaultUserID
}
