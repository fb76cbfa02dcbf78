package firebase

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testProjectID  = "proj-123"
	testIssuerBase = "https://securetoken.example.com/"
	testKid        = "test-key"
)

// Test helper to generate RSA key pair
func generateTestKeyPair(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return privateKey
}

// Test helper to encode public keys as a JWKS document
func encodeJWKS(t *testing.T, keys map[string]interface{}) []byte {
	t.Helper()
	set := jwk.NewSet()
	for kid, raw := range keys {
		key, err := jwk.FromRaw(raw)
		require.NoError(t, err)
		require.NoError(t, key.Set(jwk.KeyIDKey, kid))
		require.NoError(t, set.AddKey(key))
	}
	payload, err := json.Marshal(set)
	require.NoError(t, err)
	return payload
}

// Test helper to create a mock JWKS server that counts requests
func createMockJWKSServer(t *testing.T, payload []byte, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=19800, must-revalidate")
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func validClaims() *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuerBase + testProjectID,
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{testProjectID},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:         "driver@example.com",
		EmailVerified: true,
	}
}

// Test helper to create a signed test token
func createTestToken(t *testing.T, privateKey *rsa.PrivateKey, kid string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	if kid != "" {
		token.Header["kid"] = kid
	}
	signed, err := token.SignedString(privateKey)
	require.NoError(t, err)
	return signed
}

func newTestVerifier(url string) *Verifier {
	return NewVerifier(
		Config{ProjectID: testProjectID, IssuerBase: testIssuerBase},
		NewHTTPKeySetFetcher(url, 5*time.Second),
	)
}

func TestVerifier_VerifyToken(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	otherKey := generateTestKeyPair(t)
	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	server := createMockJWKSServer(t, encodeJWKS(t, map[string]interface{}{
		testKid: &privateKey.PublicKey,
		"ec-key": &ecKey.PublicKey,
	}), nil)
	verifier := newTestVerifier(server.URL)

	tests := []struct {
		name      string
		token     func() string
		wantErr   error
		wantCause error
		wantKind  ErrorKind
	}{
		{
			name: "valid token",
			token: func() string {
				return createTestToken(t, privateKey, testKid, validClaims())
			},
		},
		{
			name: "nbf in the future is ignored",
			token: func() string {
				claims := validClaims()
				claims.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))
				return createTestToken(t, privateKey, testKid, claims)
			},
		},
		{
			name:     "not a jwt",
			token:    func() string { return "not-a-token" },
			wantErr:  ErrMalformedToken,
			wantKind: KindMalformedToken,
		},
		{
			name:     "empty token",
			token:    func() string { return "" },
			wantErr:  ErrMalformedToken,
			wantKind: KindMalformedToken,
		},
		{
			name: "missing kid",
			token: func() string {
				return createTestToken(t, privateKey, "", validClaims())
			},
			wantErr:  ErrMalformedToken,
			wantKind: KindMalformedToken,
		},
		{
			name: "unknown kid",
			token: func() string {
				return createTestToken(t, privateKey, "rotated-away", validClaims())
			},
			wantErr:  ErrUnknownKey,
			wantKind: KindUnknownKey,
		},
		{
			name: "kid points at a non-RSA key",
			token: func() string {
				return createTestToken(t, privateKey, "ec-key", validClaims())
			},
			wantErr:  ErrInvalidKeyMaterial,
			wantKind: KindInvalidKeyMaterial,
		},
		{
			name: "signed by a different key",
			token: func() string {
				return createTestToken(t, otherKey, testKid, validClaims())
			},
			wantErr:   ErrClaimsInvalid,
			wantCause: ErrInvalidSignature,
			wantKind:  KindClaimsInvalid,
		},
		{
			name: "expired token",
			token: func() string {
				claims := validClaims()
				claims.IssuedAt = jwt.NewNumericDate(time.Now().Add(-2 * time.Hour))
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
				return createTestToken(t, privateKey, testKid, claims)
			},
			wantErr:   ErrClaimsInvalid,
			wantCause: ErrTokenExpired,
			wantKind:  KindClaimsInvalid,
		},
		{
			name: "missing exp",
			token: func() string {
				claims := validClaims()
				claims.ExpiresAt = nil
				return createTestToken(t, privateKey, testKid, claims)
			},
			wantErr:  ErrClaimsInvalid,
			wantKind: KindClaimsInvalid,
		},
		{
			name: "wrong audience",
			token: func() string {
				claims := validClaims()
				claims.Audience = jwt.ClaimStrings{"other-project"}
				return createTestToken(t, privateKey, testKid, claims)
			},
			wantErr:   ErrClaimsInvalid,
			wantCause: ErrInvalidAudience,
			wantKind:  KindClaimsInvalid,
		},
		{
			name: "wrong issuer",
			token: func() string {
				claims := validClaims()
				claims.Issuer = testIssuerBase + "other-project"
				return createTestToken(t, privateKey, testKid, claims)
			},
			wantErr:   ErrClaimsInvalid,
			wantCause: ErrInvalidIssuer,
			wantKind:  KindClaimsInvalid,
		},
		{
			name: "HS256 token with a matching kid",
			token: func() string {
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims())
				token.Header["kid"] = testKid
				signed, err := token.SignedString([]byte("shared-secret"))
				require.NoError(t, err)
				return signed
			},
			wantErr:   ErrClaimsInvalid,
			wantCause: ErrInvalidSignature,
			wantKind:  KindClaimsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifier.VerifyToken(context.Background(), tt.token())

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, claims)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantCause != nil {
					assert.ErrorIs(t, err, tt.wantCause)
				}
				assert.Equal(t, tt.wantKind, KindOf(err))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, claims)
			assert.Equal(t, "user-1", claims.Subject)
			assert.Equal(t, testProjectID, claims.Audience)
			assert.Equal(t, "https://securetoken.example.com/proj-123", claims.Issuer)
			assert.Equal(t, "driver@example.com", claims.Email)
			assert.True(t, claims.EmailVerified)
			assert.True(t, claims.ExpiresAt.After(time.Now()))
		})
	}
}

func TestVerifier_KeySetUnavailable(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	token := createTestToken(t, privateKey, testKid, validClaims())

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>maintenance</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			claims, err := newTestVerifier(server.URL).VerifyToken(context.Background(), token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrKeySetUnavailable)
			assert.Equal(t, KindKeySetUnavailable, KindOf(err))
		})
	}
}

func TestVerifier_KeySetFetchTimeout(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	token := createTestToken(t, privateKey, testKid, validClaims())

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	verifier := NewVerifier(
		Config{ProjectID: testProjectID, IssuerBase: testIssuerBase},
		NewHTTPKeySetFetcher(server.URL, 50*time.Millisecond),
	)

	start := time.Now()
	_, err := verifier.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeySetUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestVerifier_CancelledContext(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	server := createMockJWKSServer(t, encodeJWKS(t, map[string]interface{}{testKid: &privateKey.PublicKey}), nil)
	token := createTestToken(t, privateKey, testKid, validClaims())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestVerifier(server.URL).VerifyToken(ctx, token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKeySetUnavailable)
}

func TestVerifier_FetchesKeySetPerVerification(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	var hits int32
	server := createMockJWKSServer(t, encodeJWKS(t, map[string]interface{}{testKid: &privateKey.PublicKey}), &hits)
	verifier := newTestVerifier(server.URL)
	token := createTestToken(t, privateKey, testKid, validClaims())

	first, err := verifier.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	second, err := verifier.VerifyToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestVerifier_ConcurrentVerification(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	server := createMockJWKSServer(t, encodeJWKS(t, map[string]interface{}{testKid: &privateKey.PublicKey}), nil)
	verifier := newTestVerifier(server.URL)
	token := createTestToken(t, privateKey, testKid, validClaims())

	const workers = 8
	var wg sync.WaitGroup
	results := make([]*ParsedClaims, workers)
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = verifier.VerifyToken(context.Background(), token)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestVerifier_NonKeySetFetcherErrorIsUnavailable(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	token := createTestToken(t, privateKey, testKid, validClaims())

	verifier := NewVerifier(Config{ProjectID: testProjectID, IssuerBase: testIssuerBase}, fetcherFunc(func(context.Context) (*KeySet, error) {
		return nil, errors.New("boom")
	}))

	_, err := verifier.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrKeySetUnavailable)
}

func TestVerifier_ClockInjection(t *testing.T) {
	privateKey := generateTestKeyPair(t)
	server := createMockJWKSServer(t, encodeJWKS(t, map[string]interface{}{testKid: &privateKey.PublicKey}), nil)
	verifier := newTestVerifier(server.URL)
	token := createTestToken(t, privateKey, testKid, validClaims())

	verifier.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err := verifier.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "expired", CauseOf(err))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindMalformedToken, KindOf(ErrMalformedToken))
	assert.Equal(t, KindKeySetUnavailable, KindOf(ErrKeySetUnavailable))
	assert.Equal(t, KindUnknownKey, KindOf(ErrUnknownKey))
	assert.Equal(t, KindInvalidKeyMaterial, KindOf(ErrInvalidKeyMaterial))
	assert.Equal(t, KindClaimsInvalid, KindOf(ErrClaimsInvalid))
	assert.Equal(t, KindClaimsInvalid, KindOf(errors.New("unexpected")))
	assert.Empty(t, CauseOf(ErrUnknownKey))
}

func TestConfig_ExpectedIssuer(t *testing.T) {
	cfg := Config{ProjectID: testProjectID, IssuerBase: testIssuerBase}
	assert.True(t, strings.HasSuffix(cfg.ExpectedIssuer(), "/proj-123"))
	assert.Equal(t, "https://securetoken.example.com/proj-123", cfg.ExpectedIssuer())
}

type fetcherFunc func(context.Context) (*KeySet, error)

func (f fetcherFunc) FetchKeySet(ctx context.Context) (*KeySet, error) {
	return f(ctx)
}
