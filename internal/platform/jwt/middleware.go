package jwtmw

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"

	// CookieName is the cookie holding the access token for browser sessions.
	CookieName = "access_token"
)

var (
	errNoToken       = errors.New("missing bearer token")
	errMisconfigured = errors.New("server misconfigured")
	errInvalidToken  = errors.New("invalid token")
)

// Session is the verified identity of a request.
type Session struct {
	UserID uint
	Email  string
}

// tokenFromRequest prefers the Authorization header and falls back to the session cookie.
func tokenFromRequest(c *gin.Context) (string, bool) {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if !strings.HasPrefix(auth, "Bearer ") {
			return "", false
		}
		return strings.TrimPrefix(auth, "Bearer "), true
	}
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

// resolveSession verifies the request's token against JWT_SECRET.
func resolveSession(c *gin.Context) (Session, error) {
	tokenStr, ok := tokenFromRequest(c)
	if !ok {
		return Session{}, errNoToken
	}

	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return Session{}, errMisconfigured
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Only HMAC is accepted.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, errInvalidToken
	}

	var s Session
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		// JWT numbers are decoded as float64
		if sub, ok := claims["sub"].(float64); ok {
			s.UserID = uint(sub)
		}
		if email, ok := claims["email"].(string); ok {
			s.Email = email
		}
	}
	return s, nil
}

func setSession(c *gin.Context, s Session) {
	c.Set(ContextUserID, s.UserID)
	c.Set(ContextEmail, s.Email)
}

// AuthRequired guards JSON API routes: requests without a valid session get 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := resolveSession(c)
		switch {
		case errors.Is(err, errMisconfigured):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		setSession(c, s)
		c.Next()
	}
}

// SessionRequired guards HTML pages: requests without a valid session are
// redirected to signInPath.
func SessionRequired(signInPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := resolveSession(c)
		if err != nil {
			if errors.Is(err, errMisconfigured) {
				slog.Error("session check failed", "error", err)
			}
			c.Redirect(http.StatusFound, signInPath)
			c.Abort()
			return
		}
		setSession(c, s)
		c.Next()
	}
}

// Email returns the verified session email, or "" outside a guarded route.
func Email(c *gin.Context) string {
	return c.GetString(ContextEmail)
}
