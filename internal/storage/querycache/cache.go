// Package querycache is the client's read-through query cache: fetches are
// registered under a (scope, params) key, identical in-flight fetches are
// deduplicated, and mutating commands invalidate whole scopes by key prefix
// so the next read re-fetches.
package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/snipurl/snip-cli/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Cache keys shared by the link and analytics services. Mutations invalidate
// by prefix, so every key of a scope starts with that scope's prefix.
const (
	PrefixLinks     = "links/"
	PrefixAnalytics = "analytics/"

	KeyMyLinks         = PrefixLinks + "my-links"
	KeyGlobalAnalytics = PrefixAnalytics + "global"
)

// KeyLinkAnalytics returns the cache key for one link's aggregate.
func KeyLinkAnalytics(slug string) string {
	return PrefixAnalytics + "slug/" + slug
}

type Config struct {
	MaxEntries int
	TTL        time.Duration
}

type call struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Cache wraps ristretto with the two behaviors the views need and ristretto
// does not provide: in-flight deduplication and prefix invalidation. Ristretto
// cannot enumerate its keys, so a registry tracks live keys per prefix.
type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration

	mu       sync.Mutex
	keys     map[string]struct{}
	inflight map[string]*call
}

func New(cfg Config) (*Cache, error) {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = 1024
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: int64(cfg.MaxEntries) * 10,
		MaxCost:     int64(cfg.MaxEntries),
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &Cache{
		store:    store,
		ttl:      cfg.TTL,
		keys:     make(map[string]struct{}),
		inflight: make(map[string]*call),
	}, nil
}

// GetOrFetch returns the cached value for key, or runs fetch and caches its
// result. Concurrent callers of the same key share a single fetch. Fetch
// errors are not cached.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	if val, ok := c.store.Get(key); ok {
		logger.Debug("query cache hit", zap.String("key", key))
		return val, nil
	}

	c.mu.Lock()
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		cl.wg.Wait()
		return cl.val, cl.err
	}
	cl := &call{}
	cl.wg.Add(1)
	c.inflight[key] = cl
	c.mu.Unlock()

	logger.Debug("query cache miss", zap.String("key", key))
	cl.val, cl.err = fetch(ctx)

	if cl.err == nil {
		c.store.SetWithTTL(key, cl.val, 1, c.ttl)
		// Ristretto applies sets asynchronously; wait so a read that follows
		// a command's refetch sees the fresh value.
		c.store.Wait()
	}

	c.mu.Lock()
	delete(c.inflight, key)
	if cl.err == nil {
		c.keys[key] = struct{}{}
	}
	c.mu.Unlock()

	cl.wg.Done()
	return cl.val, cl.err
}

// Invalidate drops every cached entry whose key starts with one of the given
// prefixes. The next read of those keys re-fetches.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.keys {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				c.store.Del(key)
				delete(c.keys, key)
				logger.Debug("query cache invalidated", zap.String("key", key))
				break
			}
		}
	}
}

func (c *Cache) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
