package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTestToken(t *testing.T, tokenStr, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (any, error) {
		_, ok := tok.Method.(*jwt.SigningMethodHMAC)
		assert.True(t, ok, "unexpected signing method: %v", tok.Header["alg"])
		return []byte(secret), nil
	})
	require.NoError(t, err, "failed to parse token")
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok, "expected MapClaims")
	return claims
}

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("my-secret-key", time.Hour)

	require.NotNil(t, gen)
	assert.Equal(t, "my-secret-key", string(gen.secret))
	assert.Equal(t, time.Hour, gen.Expiration())
}

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     uint
		email      string
		expiration time.Duration
	}{
		{"basic user", 1, "user@example.com", time.Hour},
		{"user with special email", 42, "user+tag@example.com", time.Hour},
		{"large user id", 999999, "test@test.com", 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", tt.expiration)
			before := time.Now().Truncate(time.Second)
			tokenStr, err := gen.GenerateToken(tt.userID, tt.email)
			after := time.Now().Truncate(time.Second).Add(time.Second)
			require.NoError(t, err)

			claims := parseTestToken(t, tokenStr, "test-secret")

			assert.Equal(t, float64(tt.userID), claims["sub"])
			assert.Equal(t, tt.email, claims["email"])

			exp := int64(claims["exp"].(float64))
			assert.GreaterOrEqual(t, exp, before.Add(tt.expiration).Unix())
			assert.LessOrEqual(t, exp, after.Add(tt.expiration).Unix())

			iat := int64(claims["iat"].(float64))
			assert.GreaterOrEqual(t, iat, before.Unix())
			assert.LessOrEqual(t, iat, after.Unix())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		expiration string
		want       Config
		wantErr    bool
	}{
		{name: "defaults", secret: "s3cret", want: Config{Secret: "s3cret", Expiration: DefaultExpiration}},
		{name: "custom expiration", secret: "s3cret", expiration: "90m", want: Config{Secret: "s3cret", Expiration: 90 * time.Minute}},
		{name: "missing secret", wantErr: true},
		{name: "invalid expiration", secret: "s3cret", expiration: "soon", wantErr: true},
		{name: "negative expiration", secret: "s3cret", expiration: "-1h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvKeyJWTSecret, tt.secret)
			t.Setenv(EnvKeyJWTExpiration, tt.expiration)

			cfg, err := LoadConfig()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
