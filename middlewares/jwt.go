package middlewares

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lgzarturo/bootzen/internal"
)

// jwtClaimsKey is the context key for storing parsed JWT claims.
type jwtClaimsKey struct{}

// TokenExtractor pulls a raw token out of the request.
// Returns the token and true, or "" and false when none is present.
type TokenExtractor func(c internal.Context) (string, bool)

// FromBearerToken extracts the token from the Authorization header.
func FromBearerToken() TokenExtractor {
	return func(c internal.Context) (string, bool) {
		auth := c.Header("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			return "", false
		}
		return token, true
	}
}

// FromCookie extracts the token from a cookie.
func FromCookie(name string) TokenExtractor {
	return func(c internal.Context) (string, bool) {
		v, err := c.Cookie(name)
		if err != nil || v == "" {
			return "", false
		}
		return v, true
	}
}

// FromQuery extracts the token from a query parameter.
func FromQuery(name string) TokenExtractor {
	return func(c internal.Context) (string, bool) {
		v := c.Query(name)
		return v, v != ""
	}
}

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractors   []TokenExtractor
	ValidMethods []string
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractors sets the token extractor chain.
// Extractors are tried in order; the first token found is used.
func WithJWTExtractors(extractors ...TokenExtractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractors = extractors
	}
}

// WithJWTValidMethods restricts the accepted signing algorithms.
// Default: HS256 only.
func WithJWTValidMethods(methods ...string) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.ValidMethods = methods
	}
}

// JWT returns middleware that extracts a JWT from the request, validates it
// against the HMAC secret, and stores the parsed claims in the context.
// Requests without a valid token are rejected with 401.
func JWT(secret []byte, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{
		Extractors:   []TokenExtractor{FromBearerToken()},
		ValidMethods: []string{jwt.SigningMethodHS256.Alg()},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	parser := jwt.NewParser(jwt.WithValidMethods(cfg.ValidMethods))
	keyFunc := func(t *jwt.Token) (any, error) { return secret, nil }

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			var raw string
			for _, extract := range cfg.Extractors {
				if token, ok := extract(c); ok {
					raw = token
					break
				}
			}
			if raw == "" {
				return internal.ErrUnauthorized("missing authentication token")
			}

			claims := jwt.MapClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, keyFunc); err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return internal.ErrUnauthorized("token expired", internal.WithError(err))
				}
				return internal.ErrUnauthorized("invalid token", internal.WithError(err))
			}

			c.Set(jwtClaimsKey{}, claims)

			return next(c)
		}
	}
}

// GetJWTClaims extracts parsed JWT claims from the context.
// Returns nil if the JWT middleware is not applied.
func GetJWTClaims(c internal.Context) jwt.MapClaims {
	if v, ok := c.Get(jwtClaimsKey{}).(jwt.MapClaims); ok {
		return v
	}
	return nil
}
