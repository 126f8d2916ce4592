package rendercache

import (
	"context"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	// DefaultMaxSize bounds the number of cached renders.
	DefaultMaxSize = 50
	// DefaultTTL applies when Set receives a negative ttl.
	DefaultTTL = time.Hour
	// DevelopmentTTL keeps entries short lived while content is edited.
	DevelopmentTTL = 5 * time.Minute
	// ProductionTTL keeps entries for the lifetime of a deploy in practice.
	ProductionTTL = time.Hour
)

// Stats is a snapshot of cache occupancy and effectiveness.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Expired   uint64
}

type entry struct {
	value        any
	lastAccessed time.Time
	accessCount  int
	expiresAt    time.Time
	seq          uint64
}

// Cache is an in-memory LRU keyed by content fingerprint. Entries expire
// after their ttl and are evicted on the read that finds them stale; when
// full, Set evicts the entry with the oldest last access.
type Cache struct {
	mu         sync.Mutex
	now        func() time.Time
	maxSize    int
	defaultTTL time.Duration
	logger     interfaces.Logger
	entries    map[string]*entry
	seq        uint64
	stats      Stats
}

var _ interfaces.RenderCache = (*Cache)(nil)

// Option customises a Cache.
type Option func(*Cache)

// WithClock overrides the clock, used mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithMaxSize overrides the capacity.
func WithMaxSize(size int) Option {
	return func(c *Cache) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithDefaultTTL overrides the ttl used when Set receives a negative ttl.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl >= 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithLogger attaches a logger for eviction and monitoring events.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		now:        time.Now,
		maxSize:    DefaultMaxSize,
		defaultTTL: DefaultTTL,
		logger:     logging.NoOp(),
		entries:    make(map[string]*entry),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// TTLFor returns the entry lifetime for an application environment.
func TTLFor(env string) time.Duration {
	if env == "production" {
		return ProductionTTL
	}
	return DevelopmentTTL
}

// Get returns the value stored under key. An expired entry is removed and
// reported as a miss.
func (c *Cache) Get(ctx context.Context, key string) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false, nil
	}
	now := c.now()
	if !now.Before(e.expiresAt) {
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Expired++
		return nil, false, nil
	}
	e.lastAccessed = now
	e.accessCount++
	c.stats.Hits++
	return e.value, true, nil
}

// Set stores value under key for ttl. A ttl of zero stores an entry that is
// already stale; a negative ttl selects the default ttl.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl < 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	now := c.now()
	c.seq++
	c.entries[key] = &entry{
		value:        value,
		lastAccessed: now,
		accessCount:  1,
		expiresAt:    now.Add(ttl),
		seq:          c.seq,
	}
	return nil
}

// Delete removes key if present.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	dropped := len(c.entries)
	c.entries = make(map[string]*entry)
	c.mu.Unlock()
	c.logger.Debug("render.cache.cleared", "entries", dropped)
	return nil
}

// Len reports the number of stored entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.stats
	snapshot.Size = len(c.entries)
	snapshot.MaxSize = c.maxSize
	return snapshot
}

// evictOldestLocked removes the least recently accessed entry. Ties on the
// access time go to the entry written first.
func (c *Cache) evictOldestLocked() {
	var (
		oldestKey string
		oldest    *entry
	)
	for key, e := range c.entries {
		if oldest == nil ||
			e.lastAccessed.Before(oldest.lastAccessed) ||
			(e.lastAccessed.Equal(oldest.lastAccessed) && e.seq < oldest.seq) {
			oldestKey, oldest = key, e
		}
	}
	if oldest == nil {
		return
	}
	delete(c.entries, oldestKey)
	c.stats.Evictions++
	c.logger.Debug("render.cache.evicted", "key", oldestKey, "access_count", oldest.accessCount)
}
