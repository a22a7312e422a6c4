// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/api"
	"tasktrack/internal/feature/auth/domain/entity"
	"tasktrack/internal/feature/auth/transport/http/dto"
	"tasktrack/internal/feature/auth/transport/middleware"
	"tasktrack/internal/feature/auth/usecase"
	"tasktrack/internal/platform/web"
)

// AuthUsecase defines the authentication operations used by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new account and returns it.
	Register(ctx context.Context, email, password, name string) (*entity.User, error)
	// Login authenticates by email and password and returns the user.
	Login(ctx context.Context, email, password string) (*entity.User, error)
	// IssueSession establishes a session for the user.
	IssueSession(ctx context.Context, user *entity.User, userAgent, ip string) (*entity.Session, error)
	// Logout revokes the session for the given token.
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles the web surface's registration, login and logout.
// Every POST ends in a redirect plus a flash notice; domain errors never
// surface as hard failure pages.
type AuthHandler struct {
	auth         AuthUsecase
	cookieMaxAge int
	secureCookie bool
}

// NewAuthHandler creates an AuthHandler. cookieMaxAge is the session cookie
// lifetime in seconds; secureCookie marks the cookie Secure in release mode.
func NewAuthHandler(auth AuthUsecase, cookieMaxAge int, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// Home handles the landing page.
func (h *AuthHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, api.PageResponse{Status: "ok", Notices: web.TakeNotices(c)})
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.PageResponse{Status: "register", Notices: web.TakeNotices(c)})
}

// Register handles POST /register.
// A duplicate email redirects to the login page, matching the account-exists
// flow; success logs the new user in and redirects home.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		web.SetNotice(c, "Please supply a valid email, a name and a password of at least 8 characters.")
		web.Redirect(c, "/register")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Email, form.Password, form.Name)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("register rejected: duplicate email", "email", form.Email, "remote_addr", c.ClientIP())
			web.SetNotice(c, "You've already signed up with that email, log in instead!")
			web.Redirect(c, "/login")
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		web.SetNotice(c, "Registration failed, please try again.")
		web.Redirect(c, "/register")
		return
	}

	h.establishSession(c, user, "/")
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, api.PageResponse{Status: "login", Notices: web.TakeNotices(c)})
}

// Login handles POST /login.
// Unknown email and wrong password produce the same notice; the distinction
// is only logged inside the usecase.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		web.SetNotice(c, "Please supply an email and a password.")
		web.Redirect(c, "/login")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		slog.Warn("login failed", "email", form.Email, "remote_addr", c.ClientIP())
		web.SetNotice(c, "Invalid email or password, please try again.")
		web.Redirect(c, "/login")
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	h.establishSession(c, user, "/task")
}

// Logout handles GET/POST /logout. It revokes the session, drops the cookie
// and redirects home. A missing or stale cookie is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookieName); err == nil && token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			slog.Error("logout failed", "error", err, "remote_addr", c.ClientIP())
		}
	}
	middleware.ClearSessionCookie(c)
	web.Redirect(c, "/")
}

// establishSession issues a session, sets the cookie and redirects.
func (h *AuthHandler) establishSession(c *gin.Context, user *entity.User, location string) {
	session, err := h.auth.IssueSession(c.Request.Context(), user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		slog.Error("session issue failed", "error", err, "user_id", user.ID)
		web.SetNotice(c, "Login failed, please try again.")
		web.Redirect(c, "/login")
		return
	}
	middleware.SetSessionCookie(c, session.ID, h.cookieMaxAge, h.secureCookie)
	web.Redirect(c, location)
}
