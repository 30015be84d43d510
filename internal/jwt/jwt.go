package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when a token is not a JWT.
var ErrOpaqueToken = errors.New("token is not a JWT")

// Claims holds the registered claims read from a stored token.
type Claims struct {
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the claims carry an exp that is not after now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

// Inspector reads claims from access tokens issued by the backend.
// The client does not hold the signing key, so signatures are not verified.
type Inspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// New creates an Inspector.
func New() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

// GetClaims parses tokenString without verifying it and returns its registered claims.
// ErrOpaqueToken is returned when the string is not a JWT.
func (i *Inspector) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	var registered jwt.RegisteredClaims
	if _, _, err := i.parser.ParseUnverified(tokenString, &registered); err != nil {
		return nil, errors.Join(ErrOpaqueToken, err)
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.IssuedAt != nil {
		iat := registered.IssuedAt.Time
		claims.IssuedAt = &iat
	}
	if registered.ExpiresAt != nil {
		exp := registered.ExpiresAt.Time
		claims.ExpiresAt = &exp
	}
	return claims, nil
}

// Validate reports an error when tokenString is an expired JWT.
// Opaque tokens carry no expiry and are accepted.
func (i *Inspector) Validate(ctx context.Context, tokenString string) error {
	if tokenString == "" {
		return errors.New("token is empty")
	}

	claims, err := i.GetClaims(ctx, tokenString)
	if errors.Is(err, ErrOpaqueToken) {
		return nil
	}
	if err != nil {
		return err
	}
	if claims.Expired(i.now()) {
		return jwt.ErrTokenExpired
	}
	return nil
}
