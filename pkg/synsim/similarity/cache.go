package similarity

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized pairs.
const DefaultCacheSize = 1 << 16

type pair struct{ lo, hi int }

type score struct {
	cos float64
	ok  bool
}

// Cached memoizes Cosine results. Pairs are stored once regardless of order.
type Cached struct {
	engine *Engine
	cache  *lru.Cache[pair, score]
}

// NewCached wraps e with an LRU cache holding up to size pairs. A
// non-positive size uses DefaultCacheSize.
func NewCached(e *Engine, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[pair, score](size)
	if err != nil {
		return nil, err
	}
	return &Cached{engine: e, cache: c}, nil
}

// Cosine returns the cached similarity of rows i and j, computing it on a miss.
func (c *Cached) Cosine(i, j int) (float64, bool) {
	key := pair{lo: i, hi: j}
	if j < i {
		key = pair{lo: j, hi: i}
	}
	if s, ok := c.cache.Get(key); ok {
		return s.cos, s.ok
	}
	cos, ok := c.engine.Cosine(key.lo, key.hi)
	c.cache.Add(key, score{cos: cos, ok: ok})
	return cos, ok
}

// Len returns the number of cached pairs.
func (c *Cached) Len() int {
	return c.cache.Len()
}
