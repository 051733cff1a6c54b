// Package jwtmw issues access tokens and resolves the session carried by a request.
package jwtmw

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	EnvKeyJWTSecret     = "JWT_SECRET"
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	// DefaultExpiration applies when JWT_EXPIRATION is unset or invalid.
	DefaultExpiration = 24 * time.Hour
)

// Config holds the signing settings read from the environment.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// LoadConfig reads JWT_SECRET (required) and JWT_EXPIRATION (Go duration, default 24h).
func LoadConfig() (Config, error) {
	secret := os.Getenv(EnvKeyJWTSecret)
	if secret == "" {
		return Config{}, fmt.Errorf("%s is not set", EnvKeyJWTSecret)
	}
	cfg := Config{Secret: secret, Expiration: DefaultExpiration}
	if raw := os.Getenv(EnvKeyJWTExpiration); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q", EnvKeyJWTExpiration, raw)
		}
		cfg.Expiration = d
	}
	return cfg, nil
}

// generator signs HS256 tokens carrying sub, email, iat and exp.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// Expiration is the lifetime of issued tokens.
func (g *generator) Expiration() time.Duration {
	return g.expiration
}

// GenerateToken creates a signed JWT token for the given user.
func (g *generator) GenerateToken(userID uint, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
