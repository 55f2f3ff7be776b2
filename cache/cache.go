// Package cache provides an in-memory answer cache with two lookup paths:
// exact, keyed by query fingerprint, and semantic, keyed by quantized
// embedding with a cosine-similarity scan behind it. Entries expire by TTL
// and are evicted least-recently-used when the cache overfills.
package cache

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/answerit/core"
)

const (
	// DefaultMaxSize bounds the number of cached answers.
	DefaultMaxSize = 1000

	// DefaultTTL is how long an entry stays servable.
	DefaultTTL = time.Hour

	// DefaultSimilarityThreshold is the minimum cosine similarity for a
	// semantic hit. Stricter than matching thresholds: serving a cached
	// answer skips every later stage, so a near-miss here is costlier than
	// one during matching.
	DefaultSimilarityThreshold = 0.85
)

type entry struct {
	fingerprint    core.ID
	embeddingKey   core.ID
	embedding      []float32
	answer         string
	source         core.MatchSource
	context        string
	createdAt      time.Time
	lastAccessedAt time.Time
	accessCount    int
}

// Cache is a bounded TTL answer cache. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	exact    map[core.ID]*entry
	semantic map[core.ID]*entry

	maxSize   int
	ttl       time.Duration
	threshold float64

	hits      uint64
	misses    uint64
	evictions uint64

	logger *slog.Logger

	// now is replaceable in tests to exercise TTL expiry.
	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxSize sets the entry bound. Values below 1 keep the default.
func WithMaxSize(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxSize = n
		}
	}
}

// WithTTL sets the entry lifetime. Non-positive values keep the default.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSimilarityThreshold sets the minimum cosine similarity for semantic
// hits. Values outside (0, 1] keep the default.
func WithSimilarityThreshold(threshold float64) Option {
	return func(c *Cache) {
		if threshold > 0 && threshold <= 1 {
			c.threshold = threshold
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		exact:     make(map[core.ID]*entry),
		semantic:  make(map[core.ID]*entry),
		maxSize:   DefaultMaxSize,
		ttl:       DefaultTTL,
		threshold: DefaultSimilarityThreshold,
		logger:    slog.Default().With("component", "cache"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hit is a successful cache lookup.
type Hit struct {
	Answer     string
	Source     core.MatchSource
	Similarity float64
	Exact      bool
}

// GetExact looks up an answer by query fingerprint. Runs before any
// embedding work, so it must stay cheap.
func (c *Cache) GetExact(q *core.Query) (*Hit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.exact[q.Fingerprint()]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.expired(e) {
		c.removeLocked(e)
		c.evictions++
		c.misses++
		return nil, false
	}

	c.touchLocked(e)
	c.hits++
	return &Hit{
		Answer:     e.answer,
		Source:     e.source,
		Similarity: 1.0,
		Exact:      true,
	}, true
}

// GetSemantic looks up an answer by embedding. Identical quantized
// embeddings hit directly; otherwise the best cosine match above the
// threshold wins. When the query carries conversation context, only entries
// stored with equal context are eligible; context-free queries match any
// entry.
func (c *Cache) GetSemantic(q *core.Query, embedding []float32) (*Hit, bool) {
	if len(embedding) == 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := core.EmbeddingKey(embedding)
	if e, ok := c.semantic[key]; ok && c.eligible(e, q) {
		c.touchLocked(e)
		c.hits++
		return &Hit{Answer: e.answer, Source: e.source, Similarity: 1.0}, true
	}

	var (
		best      *entry
		bestScore float64
	)
	for _, e := range c.semantic {
		if !c.eligible(e, q) {
			continue
		}
		score := core.CosineSimilarity(embedding, e.embedding)
		if score > c.threshold && score > bestScore {
			best, bestScore = e, score
		}
	}
	if best == nil {
		c.misses++
		return nil, false
	}

	c.touchLocked(best)
	c.hits++
	return &Hit{Answer: best.answer, Source: best.source, Similarity: bestScore}, true
}

// Put stores an answer under the query's fingerprint and, when an embedding
// is present, under its embedding key. Storing the same fingerprint again
// replaces the previous entry.
func (c *Cache) Put(q *core.Query, embedding []float32, answer string, source core.MatchSource) {
	fingerprint := q.Fingerprint()
	now := c.now()

	e := &entry{
		fingerprint:    fingerprint,
		answer:         answer,
		source:         source,
		context:        q.Context,
		createdAt:      now,
		lastAccessedAt: now,
	}
	if len(embedding) > 0 {
		e.embedding = embedding
		e.embeddingKey = core.EmbeddingKey(embedding)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.exact[fingerprint]; ok {
		c.removeLocked(old)
	}
	c.exact[fingerprint] = e
	if len(e.embedding) > 0 {
		c.semantic[e.embeddingKey] = e
	}

	if len(c.exact) > c.maxSize {
		c.cleanupLocked()
	}
}

// Clear drops all entries. Counters survive.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exact = make(map[core.ID]*entry)
	c.semantic = make(map[core.ID]*entry)
}

func (c *Cache) expired(e *entry) bool {
	return c.now().Sub(e.createdAt) > c.ttl
}

func (c *Cache) eligible(e *entry, q *core.Query) bool {
	if c.expired(e) {
		return false
	}
	if q.Context != "" && e.context != q.Context {
		return false
	}
	return true
}

func (c *Cache) touchLocked(e *entry) {
	e.lastAccessedAt = c.now()
	e.accessCount++
}

// removeLocked drops e from both indexes. The semantic slot is only cleared
// when it still points at e; a later entry with a colliding embedding key
// must not be evicted by accident.
func (c *Cache) removeLocked(e *entry) {
	if cur, ok := c.exact[e.fingerprint]; ok && cur == e {
		delete(c.exact, e.fingerprint)
	}
	if cur, ok := c.semantic[e.embeddingKey]; ok && cur == e {
		delete(c.semantic, e.embeddingKey)
	}
}

// cleanupLocked purges expired entries, then evicts least-recently-used
// entries until the cache is at half capacity. Halving instead of shaving
// one entry keeps eviction amortized under sustained load.
func (c *Cache) cleanupLocked() {
	before := len(c.exact)

	for _, e := range c.exact {
		if c.expired(e) {
			c.removeLocked(e)
			c.evictions++
		}
	}

	target := c.maxSize / 2
	if len(c.exact) > target {
		entries := make([]*entry, 0, len(c.exact))
		for _, e := range c.exact {
			entries = append(entries, e)
		}
		slices.SortFunc(entries, func(a, b *entry) int {
			return a.lastAccessedAt.Compare(b.lastAccessedAt)
		})
		for _, e := range entries {
			if len(c.exact) <= target {
				break
			}
			c.removeLocked(e)
			c.evictions++
		}
	}

	c.logger.Debug("cache cleanup",
		"before", before,
		"after", len(c.exact),
		"evictions", c.evictions)
}

// Stats is a point-in-time snapshot of cache state and counters.
type Stats struct {
	Size         int
	SemanticSize int
	Hits         uint64
	Misses       uint64
	Evictions    uint64
	HitRate      float64
}

// Stats reports current sizes and lifetime counters. Each GetExact and
// GetSemantic call counts one hit or one miss, so a query that falls
// through both paths counts two lookups.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Size:         len(c.exact),
		SemanticSize: len(c.semantic),
		Hits:         c.hits,
		Misses:       c.misses,
		Evictions:    c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}
