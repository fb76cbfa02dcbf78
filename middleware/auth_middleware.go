package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/autotrack/vehicle-records/firebase"
	"github.com/autotrack/vehicle-records/utils"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Error codes returned by RequireAuth
const (
	CodeMissingAuthorizationHeader = "auth/missing-authorization-header"
	CodeInvalidAuthorizationHeader = "auth/invalid-authorization-header"
	CodeInvalidToken               = "auth/invalid-token"
	CodeEmailNotVerified           = "auth/email-not-verified"
)

// TokenVerifier defines the interface for verifying ID tokens
type TokenVerifier interface {
	// VerifyToken verifies a bearer token and returns its claims
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// AuthPolicy is the part of the auth configuration applied after verification
type AuthPolicy struct {
	RequireEmailVerification bool
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	verifier TokenVerifier
	policy   AuthPolicy
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, policy AuthPolicy, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		policy:   policy,
		logger:   logger,
	}
}

// RequireAuth is a middleware that requires a valid Firebase ID token in the
// Authorization header. Rejected requests never reach next.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		m.logger.Info("authenticating request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path))

		values, present := r.Header["Authorization"]
		if !present || len(values) == 0 {
			m.logger.Warn("missing authorization header",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, CodeMissingAuthorizationHeader, "Authorization header is missing")
			return
		}

		token, ok := extractBearerToken(values[0])
		if !ok {
			m.logger.Warn("invalid authorization header",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, CodeInvalidAuthorizationHeader, "Authorization header must use the Bearer scheme")
			return
		}

		claims, err := m.verifier.VerifyToken(ctx, token)
		if err != nil {
			m.logger.Error("token verification failed",
				zap.String("request_id", requestID),
				zap.String("reason", string(firebase.KindOf(err))),
				zap.String("cause", firebase.CauseOf(err)),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, CodeInvalidToken, "Invalid or expired token")
			return
		}

		if m.policy.RequireEmailVerification && !claims.EmailVerified {
			m.logger.Warn("email not verified",
				zap.String("request_id", requestID),
				zap.String("sub", claims.Subject))
			_ = utils.WriteUnauthorized(w, CodeEmailNotVerified, "Email address is not verified")
			return
		}

		ctx = WithClaims(ctx, claims)
		ctx = WithSubject(ctx, claims.Subject)

		m.logger.Info("authentication successful",
			zap.String("request_id", requestID),
			zap.String("sub", claims.Subject))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken strips a single "Bearer " prefix from the header value.
// The value must be valid UTF-8; the token itself may be empty and is left
// for the verifier to reject.
func extractBearerToken(header string) (string, bool) {
	if !utf8.ValidString(header) {
		return "", false
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	return strings.TrimPrefix(header, bearerPrefix), true
}
