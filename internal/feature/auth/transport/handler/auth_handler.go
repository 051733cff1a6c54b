// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"watchlist_backend/internal/api"
	"watchlist_backend/internal/feature/auth/transport/http/dto"
	"watchlist_backend/internal/feature/auth/usecase"
	jwtmw "watchlist_backend/internal/platform/jwt"
)

// AuthUsecase defines the auth operations used by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler serves /signup and /login.
type AuthHandler struct {
	auth      AuthUsecase
	cookieTTL time.Duration
	secure    bool
}

// NewAuthHandler creates an AuthHandler. Successful logins also set the
// session cookie for cookieTTL; secure marks the cookie HTTPS-only.
func NewAuthHandler(auth AuthUsecase, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieTTL: cookieTTL, secure: secure}
}

// Signup handles POST /signup.
// 400 on validation errors, 409 when the user cannot be created, 201 otherwise.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err := h.auth.Signup(c.Request.Context(), req.Email, req.Password); err != nil {
		// Do not reveal whether the email exists.
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "signup failed"})
		return
	}
	slog.Info("user signup successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "ok"})
}

// Login handles POST /login.
// 400 on validation errors, 401 on bad credentials, 500 when the token cannot
// be issued, 200 with the token and session cookie otherwise.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password"})
		return
	case err != nil:
		slog.Error("login failed", "error", err, "email", req.Email)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(jwtmw.CookieName, token, int(h.cookieTTL.Seconds()), "/", "", h.secure, true)

	slog.Info("user login successful", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
