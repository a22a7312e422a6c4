// Package middleware provides the session-cookie authentication guard for
// the web surface.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/feature/auth/domain/entity"
	"tasktrack/internal/platform/web"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "tt_session"

const (
	// ContextUser is the Gin context key holding the authenticated *entity.User.
	ContextUser = "auth.user"

	// ContextUserID is the Gin context key holding the authenticated user's ID.
	ContextUserID = "auth.userID"
)

// SessionResolver resolves a session token to its user.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*entity.User, error)
}

// SessionRequired returns a Gin middleware guarding routes that need a
// logged-in user. Anonymous requests are redirected to the login entry point
// with a flash notice rather than failing hard.
func SessionRequired(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			web.SetNotice(c, "Please log in to continue.")
			web.Redirect(c, "/login")
			c.Abort()
			return
		}

		user, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			// Stale, expired or revoked token: drop it and start over.
			ClearSessionCookie(c)
			web.SetNotice(c, "Please log in to continue.")
			web.Redirect(c, "/login")
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// SetSessionCookie stores the session token in an HttpOnly cookie.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

// CurrentUser returns the authenticated user set by SessionRequired.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
