package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktrack/internal/api"
	"tasktrack/internal/feature/auth/transport/http/dto"
	"tasktrack/internal/feature/auth/usecase"
	jwtmw "tasktrack/internal/platform/jwt"
)

// TokenHandler handles the JSON API's signup and login endpoints, which use
// bearer tokens instead of session cookies. It shares the auth usecase with
// the web handlers.
type TokenHandler struct {
	auth      AuthUsecase
	generator jwtmw.Generator
}

// NewTokenHandler creates a TokenHandler with the given usecase and JWT generator.
func NewTokenHandler(auth AuthUsecase, generator jwtmw.Generator) *TokenHandler {
	return &TokenHandler{auth: auth, generator: generator}
}

// Signup handles POST /api/signup.
// - binds the JSON body and validates it
// - returns 409 on duplicate email without revealing which field failed
// - returns 201 on success
func (h *TokenHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("api signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	if _, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name); err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			slog.Warn("api signup rejected: duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
			return
		}
		slog.Error("api signup failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("api signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles POST /api/login.
// - binds the JSON body and validates it
// - returns 401 on bad credentials, without distinguishing which part failed
// - returns 200 with a signed JWT on success
func (h *TokenHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("api login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("api login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	}

	token, err := h.generator.GenerateToken(user.ID, user.Email)
	if err != nil {
		slog.Error("token generation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("api login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
