package dts

import (
	"container/list"
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aethiopicuschan/dts-go/pkg/xmlx"
)

// DefaultCacheSize is the document cache capacity used when none is
// configured.
const DefaultCacheSize = 5000

// A CachingBuilder is a bounded, thread-safe LRU cache over an inner
// DocumentBuilder, keyed by URI. Concurrent builds of the same URI
// coalesce into a single parse. Failures are returned to every waiter
// but never memoized; the next request retries.
//
// Eviction only drops the cache's own reference; documents already
// handed out stay valid for as long as the caller retains them.
type CachingBuilder struct {
	inner    DocumentBuilder
	capacity int
	logger   *zap.Logger

	group singleflight.Group

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List

	hits      int64
	misses    int64
	evictions int64
}

type cacheEntry struct {
	key string
	doc *xmlx.Document
}

// CacheStats is a point-in-time snapshot of cache counters.
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Len       int
}

// NewCachingBuilder wraps inner with an LRU cache of the given
// capacity. A capacity below one falls back to DefaultCacheSize; a nil
// logger means no logging.
func NewCachingBuilder(inner DocumentBuilder, capacity int, logger *zap.Logger) *CachingBuilder {
	if capacity < 1 {
		capacity = DefaultCacheSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachingBuilder{
		inner:    inner,
		capacity: capacity,
		logger:   logger,
		items:    make(map[string]*list.Element),
		lru:      list.New(),
	}
}

// Build implements DocumentBuilder.
func (c *CachingBuilder) Build(ctx context.Context, uri *url.URL) (*xmlx.Document, error) {
	key := uri.String()

	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.lru.MoveToFront(el)
		c.hits++
		doc := el.Value.(*cacheEntry).doc
		c.mu.Unlock()
		return doc, nil
	}
	c.misses++
	c.mu.Unlock()

	v, err, shared := c.group.Do(key, func() (any, error) {
		doc, err := c.inner.Build(ctx, uri)
		if err != nil {
			return nil, err
		}
		c.insert(key, doc)
		return doc, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("coalesced document build", zap.String("uri", key))
	}
	return v.(*xmlx.Document), nil
}

func (c *CachingBuilder) insert(key string, doc *xmlx.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.lru.MoveToFront(el)
		el.Value.(*cacheEntry).doc = doc
		return
	}
	c.items[key] = c.lru.PushFront(&cacheEntry{key: key, doc: doc})

	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		if oldest == nil {
			break
		}
		entry := oldest.Value.(*cacheEntry)
		c.lru.Remove(oldest)
		delete(c.items, entry.key)
		c.evictions++
		c.logger.Debug("evicted document", zap.String("uri", entry.key))
	}
}

// Stats returns a snapshot of the cache counters.
func (c *CachingBuilder) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Len:       c.lru.Len(),
	}
}
