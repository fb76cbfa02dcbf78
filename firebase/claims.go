package firebase

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the payload of a Firebase ID token
type Claims struct {
	jwt.RegisteredClaims
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}

// GetNotBefore hides any nbf claim from the validator. Firebase ID tokens are
// accepted without a not-before check.
func (c Claims) GetNotBefore() (*jwt.NumericDate, error) {
	return nil, nil
}

// ParsedClaims is the verified view of a token handed to callers
type ParsedClaims struct {
	Subject       string
	Audience      string
	Issuer        string
	Email         string
	EmailVerified bool
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// parseClaims converts validated Claims to ParsedClaims. audience is the
// audience the token was validated against.
func parseClaims(claims *Claims, audience string) *ParsedClaims {
	parsed := &ParsedClaims{
		Subject:       claims.Subject,
		Audience:      audience,
		Issuer:        claims.Issuer,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}
	return parsed
}
