package providers

import (
	"context"
	"sync"
	"time"
)

// CredentialIssuer performs one credential-issuance call and returns the
// bearer token together with its lifetime.
type CredentialIssuer func(ctx context.Context) (token string, ttl time.Duration, err error)

// TokenCache hands out a cached bearer token, refreshing it lazily when the
// previous one is within the safety margin of expiry. The mutex keeps
// issuance a single critical section ahead of parallel quote calls.
type TokenCache struct {
	issue  CredentialIssuer
	now    func() time.Time
	margin time.Duration

	mu      sync.Mutex
	tok     string
	expires time.Time
}

func NewTokenCache(issue CredentialIssuer) *TokenCache {
	return &TokenCache{
		issue:  issue,
		now:    time.Now,
		margin: 60 * time.Second,
	}
}

func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.tok != "" && c.now().Before(c.expires.Add(-c.margin)) {
		return c.tok, nil
	}

	tok, ttl, err := c.issue(ctx)
	if err != nil {
		return "", err
	}
	c.tok = tok
	c.expires = c.now().Add(ttl)
	return c.tok, nil
}

// Invalidate drops the cached token so the next Token call re-authenticates.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.tok = ""
	c.expires = time.Time{}
	c.mu.Unlock()
}
