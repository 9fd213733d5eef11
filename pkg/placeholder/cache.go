package placeholder

import "sync"

type cacheKey struct {
	open  string
	close string
	key   string
	exact bool
}

// DefaultCacheLimit bounds the package cache. Literal-key matchers are built
// from caller-supplied keys, so an unbounded cache would grow with traffic.
const DefaultCacheLimit = 4096

// Cache memoises compiled matchers per (open, close[, key]). The zero value
// is ready to use (unbounded) and safe for concurrent callers.
type Cache struct {
	mu       sync.RWMutex
	matchers map[cacheKey]*Matcher
	limit    int
}

// NewCache returns an empty, unbounded cache.
func NewCache() *Cache {
	return &Cache{}
}

// NewCacheWithLimit returns a cache that is flushed once it holds limit
// matchers. A limit <= 0 disables the bound.
func NewCacheWithLimit(limit int) *Cache {
	return &Cache{limit: limit}
}

// Compile returns the cached general matcher for d, compiling it once.
func (c *Cache) Compile(d Delimiters) (*Matcher, error) {
	return c.load(cacheKey{open: d.Open, close: d.Close}, func() (*Matcher, error) {
		return Compile(d.Open, d.Close)
	})
}

// ForKey returns the cached literal-key matcher for d and key.
func (c *Cache) ForKey(d Delimiters, key string) (*Matcher, error) {
	return c.load(cacheKey{open: d.Open, close: d.Close, key: key, exact: true}, func() (*Matcher, error) {
		return ForKey(d.Open, d.Close, key)
	})
}

// Len reports how many matchers are cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matchers)
}

func (c *Cache) load(k cacheKey, build func() (*Matcher, error)) (*Matcher, error) {
	c.mu.RLock()
	m, ok := c.matchers[k]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := build()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.matchers[k]; ok {
		return existing, nil
	}
	if c.matchers == nil || (c.limit > 0 && len(c.matchers) >= c.limit) {
		c.matchers = make(map[cacheKey]*Matcher)
	}
	c.matchers[k] = m
	return m, nil
}

var defaultCache = NewCacheWithLimit(DefaultCacheLimit)

// Cached returns the general matcher for d from the package cache.
func Cached(d Delimiters) (*Matcher, error) {
	return defaultCache.Compile(d)
}

// CachedForKey returns the literal-key matcher for d and key from the
// package cache.
func CachedForKey(d Delimiters, key string) (*Matcher, error) {
	return defaultCache.ForKey(d, key)
}
