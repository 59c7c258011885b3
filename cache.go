package pubdesk

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/eringen/pubdesk/api"
)

// ContentFetcher loads the lists the ContentCache holds. *api.Client
// implements it.
type ContentFetcher interface {
	ContentTypes(ctx context.Context, token string) ([]api.ContentType, error)
	Media(ctx context.Context, token string) ([]api.MediaItem, error)
}

// ContentCache is an in-memory, per-account cache of content types and
// media with TTL. Accounts are keyed by a hash of their bearer token so
// the token itself is never held as a map key.
type ContentCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	fetcher ContentFetcher
	now     func() time.Time
	entries map[string]*accountEntry
}

type accountEntry struct {
	mu      sync.RWMutex
	types   []api.ContentType
	typesAt time.Time
	media   []api.MediaItem
	mediaAt time.Time
}

// NewContentCache creates a ContentCache backed by fetcher.
func NewContentCache(fetcher ContentFetcher, ttl time.Duration) *ContentCache {
	return &ContentCache{
		ttl:     ttl,
		fetcher: fetcher,
		now:     time.Now,
		entries: make(map[string]*accountEntry),
	}
}

func accountKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (c *ContentCache) entry(token string) *accountEntry {
	key := accountKey(token)
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &accountEntry{}
		c.entries[key] = e
	}
	return e
}

func (c *ContentCache) fresh(at time.Time) bool {
	return !at.IsZero() && c.now().Sub(at) < c.ttl
}

// ContentTypes returns the account's content types, fetching them when
// the cached copy is missing or stale.
func (c *ContentCache) ContentTypes(ctx context.Context, token string) ([]api.ContentType, error) {
	e := c.entry(token)

	e.mu.RLock()
	if c.fresh(e.typesAt) {
		types := e.types
		e.mu.RUnlock()
		return types, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if c.fresh(e.typesAt) {
		return e.types, nil
	}
	types, err := c.fetcher.ContentTypes(ctx, token)
	if err != nil {
		return nil, err
	}
	e.types = types
	e.typesAt = c.now()
	return types, nil
}

// Media returns the account's media library, fetching it when the cached
// copy is missing or stale.
func (c *ContentCache) Media(ctx context.Context, token string) ([]api.MediaItem, error) {
	e := c.entry(token)

	e.mu.RLock()
	if c.fresh(e.mediaAt) {
		media := e.media
		e.mu.RUnlock()
		return media, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if c.fresh(e.mediaAt) {
		return e.media, nil
	}
	media, err := c.fetcher.Media(ctx, token)
	if err != nil {
		return nil, err
	}
	e.media = media
	e.mediaAt = c.now()
	return media, nil
}

// InvalidateContentTypes drops the account's cached content types.
func (c *ContentCache) InvalidateContentTypes(token string) {
	e := c.entry(token)
	e.mu.Lock()
	e.types, e.typesAt = nil, time.Time{}
	e.mu.Unlock()
}

// InvalidateMedia drops the account's cached media.
func (c *ContentCache) InvalidateMedia(token string) {
	e := c.entry(token)
	e.mu.Lock()
	e.media, e.mediaAt = nil, time.Time{}
	e.mu.Unlock()
}

// Forget removes everything cached for the account, e.g. on logout.
func (c *ContentCache) Forget(token string) {
	c.mu.Lock()
	delete(c.entries, accountKey(token))
	c.mu.Unlock()
}
