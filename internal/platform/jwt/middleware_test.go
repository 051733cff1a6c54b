package jwtmw

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// createTokenWithSecret signs a test token for the given user.
func createTokenWithSecret(secret string, userID uint, expiration time.Duration) string {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"exp":   time.Now().Add(expiration).Unix(),
		"iat":   time.Now().Unix(),
		"email": "test@example.com",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(secret))
	return signed
}

func newTestContext(header, cookie string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}
	if cookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	return c, w
}

func TestAuthRequired_Rejects(t *testing.T) {
	const testSecret = "test-secret-key-for-invalid"
	t.Setenv(EnvKeyJWTSecret, testSecret)

	noneToken, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name   string
		header string
		cookie string
	}{
		{name: "no credentials"},
		{name: "basic auth", header: "Basic dXNlcjpwYXNz"},
		{name: "bearer lowercase", header: "bearer token123"},
		{name: "malformed token", header: "Bearer not.a.valid.token"},
		{name: "wrong secret", header: "Bearer " + createTokenWithSecret("wrong-secret", 1, time.Hour)},
		{name: "expired token", header: "Bearer " + createTokenWithSecret(testSecret, 1, -time.Hour)},
		{name: "none algorithm", header: "Bearer " + noneToken},
		{name: "bad cookie", cookie: "garbage"},
		{
			name:   "invalid header does not fall back to cookie",
			header: "Basic dXNlcjpwYXNz",
			cookie: createTokenWithSecret(testSecret, 1, time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(tt.header, tt.cookie)

			AuthRequired()(c)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestAuthRequired_MissingJWTSecret(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "")

	c, w := newTestContext("Bearer sometoken", "")
	AuthRequired()(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthRequired_ValidToken(t *testing.T) {
	const testSecret = "test-secret-key-for-valid"
	t.Setenv(EnvKeyJWTSecret, testSecret)

	tests := []struct {
		name   string
		header string
		cookie string
	}{
		{name: "bearer header", header: "Bearer " + createTokenWithSecret(testSecret, 42, time.Hour)},
		{name: "session cookie", cookie: createTokenWithSecret(testSecret, 42, time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext(tt.header, tt.cookie)

			AuthRequired()(c)

			require.False(t, c.IsAborted(), "response: %s", w.Body.String())
			userID, exists := c.Get(ContextUserID)
			require.True(t, exists)
			assert.Equal(t, uint(42), userID)
			assert.Equal(t, "test@example.com", Email(c))
		})
	}
}

func TestSessionRequired(t *testing.T) {
	const testSecret = "test-secret-key-for-pages"
	t.Setenv(EnvKeyJWTSecret, testSecret)

	t.Run("redirects without session", func(t *testing.T) {
		c, w := newTestContext("", "")

		SessionRequired("/sign-in")(c)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign-in", w.Header().Get("Location"))
		assert.True(t, c.IsAborted())
	})

	t.Run("passes with cookie", func(t *testing.T) {
		c, _ := newTestContext("", createTokenWithSecret(testSecret, 7, time.Hour))

		SessionRequired("/sign-in")(c)

		assert.False(t, c.IsAborted())
		assert.Equal(t, "test@example.com", Email(c))
	})
}

func TestEmail_OutsideGuardedRoute(t *testing.T) {
	c, _ := newTestContext("", "")
	assert.Empty(t, Email(c))
}
