package firebase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lestrrat-go/httpcc"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	maxKeySetBytes = 1 << 20
	keySetCacheKey = "jwks"
)

// KeySet is a fetched set of signing keys addressed by kid
type KeySet struct {
	Keys jwk.Set
	// MaxAge is the Cache-Control max-age the endpoint advertised, zero when absent
	MaxAge time.Duration
}

// KeySetFetcher retrieves the current signing key set
type KeySetFetcher interface {
	FetchKeySet(ctx context.Context) (*KeySet, error)
}

// HTTPKeySetFetcher fetches the key set from a JWKS endpoint on every call
type HTTPKeySetFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPKeySetFetcher creates a fetcher whose requests are bounded by timeout
func NewHTTPKeySetFetcher(url string, timeout time.Duration) *HTTPKeySetFetcher {
	return &HTTPKeySetFetcher{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchKeySet performs a GET on the JWKS endpoint and decodes the response
func (f *HTTPKeySetFetcher) FetchKeySet(ctx context.Context) (*KeySet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrKeySetUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeySetUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status code %d", ErrKeySetUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxKeySetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrKeySetUnavailable, err)
	}

	set, err := jwk.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode JWKS: %v", ErrKeySetUnavailable, err)
	}

	return &KeySet{
		Keys:   set,
		MaxAge: parseMaxAge(resp.Header.Get("Cache-Control")),
	}, nil
}

// parseMaxAge extracts max-age from a Cache-Control header value.
// A missing or malformed header yields zero.
func parseMaxAge(header string) time.Duration {
	if header == "" {
		return 0
	}
	directives, err := httpcc.ParseResponse(header)
	if err != nil {
		return 0
	}
	seconds, ok := directives.MaxAge()
	if !ok {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// CachedKeySetFetcher keeps the last key set for a bounded TTL. The entry
// lives for the configured TTL or the advertised max-age, whichever is shorter.
// Concurrent misses share one upstream fetch.
type CachedKeySetFetcher struct {
	next  KeySetFetcher
	ttl   time.Duration
	cache *cache.Cache
	group singleflight.Group
}

// NewCachedKeySetFetcher wraps next with a TTL cache
func NewCachedKeySetFetcher(next KeySetFetcher, ttl time.Duration) *CachedKeySetFetcher {
	return &CachedKeySetFetcher{
		next:  next,
		ttl:   ttl,
		cache: cache.New(ttl, 2*ttl),
	}
}

// FetchKeySet returns the cached key set or fetches a fresh one. The shared
// fetch is detached from the caller's cancellation and bounded by the HTTP
// client timeout; a caller whose ctx ends stops waiting without failing the others.
func (f *CachedKeySetFetcher) FetchKeySet(ctx context.Context) (*KeySet, error) {
	if cached, ok := f.cache.Get(keySetCacheKey); ok {
		return cached.(*KeySet), nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(keySetCacheKey, func() (interface{}, error) {
		if cached, ok := f.cache.Get(keySetCacheKey); ok {
			return cached, nil
		}

		keySet, err := f.next.FetchKeySet(fetchCtx)
		if err != nil {
			return nil, err
		}

		ttl := f.ttl
		if keySet.MaxAge > 0 && keySet.MaxAge < ttl {
			ttl = keySet.MaxAge
		}
		f.cache.Set(keySetCacheKey, keySet, ttl)

		return keySet, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*KeySet), nil
	}
}
