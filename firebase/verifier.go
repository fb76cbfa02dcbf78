package firebase

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
)

// Config holds the audience and issuer a token must carry
type Config struct {
	ProjectID  string
	IssuerBase string
}

// ExpectedIssuer returns the issuer string tokens for the project must carry
func (c Config) ExpectedIssuer() string {
	return c.IssuerBase + c.ProjectID
}

// Verifier validates Firebase ID tokens against a fetched signing key set.
// It holds no mutable state and is safe for concurrent use.
type Verifier struct {
	projectID string
	issuer    string
	fetcher   KeySetFetcher
	now       func() time.Time
}

// NewVerifier creates a new Firebase ID token verifier
func NewVerifier(config Config, fetcher KeySetFetcher) *Verifier {
	return &Verifier{
		projectID: config.ProjectID,
		issuer:    config.ExpectedIssuer(),
		fetcher:   fetcher,
		now:       time.Now,
	}
}

// VerifyToken validates a token and returns its parsed claims. Every failure
// wraps exactly one of the package's kind sentinels.
func (v *Verifier) VerifyToken(ctx context.Context, tokenString string) (*ParsedClaims, error) {
	kid, err := v.keyID(tokenString)
	if err != nil {
		return nil, err
	}

	keySet, err := v.fetcher.FetchKeySet(ctx)
	if err != nil {
		if errors.Is(err, ErrKeySetUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}

	publicKey, err := v.publicKey(keySet, kid)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		return nil, classifyValidationError(err)
	}
	if !token.Valid {
		return nil, ErrClaimsInvalid
	}

	return parseClaims(claims, v.projectID), nil
}

// keyID decodes the token without verifying it and returns the kid header
func (v *Verifier) keyID(tokenString string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return "", fmt.Errorf("%w: kid header not found", ErrMalformedToken)
	}

	return kid, nil
}

// publicKey locates kid in the key set and converts it to an RSA public key
func (v *Verifier) publicKey(keySet *KeySet, kid string) (*rsa.PublicKey, error) {
	if keySet == nil || keySet.Keys == nil {
		return nil, fmt.Errorf("%w: empty key set", ErrKeySetUnavailable)
	}

	key, ok := keySet.Keys.LookupKeyID(kid)
	if !ok {
		return nil, fmt.Errorf("%w: key with kid %s not found in JWKS", ErrUnknownKey, kid)
	}

	if key.KeyType() != jwa.RSA {
		return nil, fmt.Errorf("%w: key %s has type %s", ErrInvalidKeyMaterial, kid, key.KeyType())
	}

	var publicKey rsa.PublicKey
	if err := key.Raw(&publicKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKeyMaterial, err)
	}
	if publicKey.N == nil || publicKey.E == 0 {
		return nil, fmt.Errorf("%w: key %s has no modulus or exponent", ErrInvalidKeyMaterial, kid)
	}

	return &publicKey, nil
}

// classifyValidationError maps a jwt validation error onto ErrClaimsInvalid
// and, when known, its finer cause
func classifyValidationError(err error) error {
	var cause error
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		cause = ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		cause = ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		cause = ErrInvalidAudience
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		cause = ErrInvalidIssuer
	default:
		return fmt.Errorf("%w: %v", ErrClaimsInvalid, err)
	}
	return fmt.Errorf("%w: %w: %v", ErrClaimsInvalid, cause, err)
}
