package middleware

import (
	"net/http" // HTTP status codes

	"plant_journal/internal/auth"   // Session resolution
	"plant_journal/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// CookieName is the session cookie carrying the signed session token
const CookieName = "plant_session"

// userKey is the gin context key holding the resolved current user
const userKey = "currentUser"

// SessionAuth resolves the session cookie to a user and stores it in the
// request context. Anonymous requests are redirected to the login page
// instead of erroring.
func SessionAuth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName) // Read the session cookie
		if err != nil {
			// No cookie, redirect to login
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		user, err := svc.CurrentUser(c.Request.Context(), token)
		if err != nil {
			// Invalid or logged-out session, redirect to login
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(userKey, user) // Store current user in context
		c.Next()             // Proceed to the next handler
	}
}

// CurrentUser returns the user resolved by SessionAuth, or nil outside a
// guarded route.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
