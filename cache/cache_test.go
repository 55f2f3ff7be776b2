package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/answerit/core"
)

func TestExactHit(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")

	c.Put(q, nil, "Kargonuz yolda.", core.MatchSourceKeyword)

	hit, ok := c.GetExact(q)
	require.True(t, ok)
	assert.Equal(t, "Kargonuz yolda.", hit.Answer)
	assert.Equal(t, core.MatchSourceKeyword, hit.Source)
	assert.Equal(t, 1.0, hit.Similarity)
	assert.True(t, hit.Exact)
}

func TestExactMiss(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")

	_, ok := c.GetExact(q)
	assert.False(t, ok)

	// Same text under different conversation context is a different query.
	c.Put(q, nil, "Kargonuz yolda.", core.MatchSourceKeyword)
	_, ok = c.GetExact(core.NewQuery("kargom nerede", "sipariş 1881"))
	assert.False(t, ok)
}

func TestSemanticIdenticalEmbedding(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")
	embedding := []float32{0.6, 0.8}

	c.Put(q, embedding, "Kargonuz yolda.", core.MatchSourceSemantic)

	// A re-embedded paraphrase can produce bitwise-equal vectors; the key
	// path serves it without a scan.
	hit, ok := c.GetSemantic(core.NewQuery("kargom şu an nerede", ""), embedding)
	require.True(t, ok)
	assert.Equal(t, "Kargonuz yolda.", hit.Answer)
	assert.Equal(t, 1.0, hit.Similarity)
	assert.False(t, hit.Exact)
}

func TestSemanticNearMatch(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")
	c.Put(q, []float32{1, 0}, "Kargonuz yolda.", core.MatchSourceSemantic)

	t.Run("above threshold", func(t *testing.T) {
		hit, ok := c.GetSemantic(core.NewQuery("paketim nerede", ""), []float32{0.9, 0.43589})
		require.True(t, ok)
		assert.InDelta(t, 0.9, hit.Similarity, 0.001)
	})

	t.Run("below threshold", func(t *testing.T) {
		_, ok := c.GetSemantic(core.NewQuery("iade etmek istiyorum", ""), []float32{0.6, 0.8})
		assert.False(t, ok)
	})

	t.Run("empty embedding", func(t *testing.T) {
		_, ok := c.GetSemantic(q, nil)
		assert.False(t, ok)
	})
}

func TestSemanticContextMatching(t *testing.T) {
	c := New()
	stored := core.NewQuery("kargom nerede", "sipariş 1881")
	c.Put(stored, []float32{1, 0}, "1881 numaralı siparişiniz yolda.", core.MatchSourceSemantic)

	// Queries carrying context only accept entries with equal context.
	_, ok := c.GetSemantic(core.NewQuery("paketim nerede", "sipariş 2024"), []float32{1, 0})
	assert.False(t, ok)

	hit, ok := c.GetSemantic(core.NewQuery("paketim nerede", "sipariş 1881"), []float32{1, 0})
	require.True(t, ok)
	assert.Equal(t, "1881 numaralı siparişiniz yolda.", hit.Answer)

	// Context-free queries accept any entry.
	_, ok = c.GetSemantic(core.NewQuery("paketim nerede", ""), []float32{1, 0})
	assert.True(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c := New(WithTTL(time.Hour))
	current := time.Now()
	c.now = func() time.Time { return current }

	q := core.NewQuery("kargom nerede", "")
	c.Put(q, []float32{1, 0}, "Kargonuz yolda.", core.MatchSourceKeyword)

	_, ok := c.GetExact(q)
	require.True(t, ok)

	current = current.Add(2 * time.Hour)

	_, ok = c.GetExact(q)
	assert.False(t, ok)
	_, ok = c.GetSemantic(q, []float32{1, 0})
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.GreaterOrEqual(t, stats.Evictions, uint64(1))
}

func TestLRUEviction(t *testing.T) {
	c := New(WithMaxSize(4))
	current := time.Now()
	c.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		q := core.NewQuery(fmt.Sprintf("soru numara %d", i), "")
		c.Put(q, nil, fmt.Sprintf("cevap %d", i), core.MatchSourceKeyword)
		current = current.Add(time.Minute)
	}

	stats := c.Stats()
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, uint64(3), stats.Evictions)

	// The most recently stored entries survive.
	_, ok := c.GetExact(core.NewQuery("soru numara 4", ""))
	assert.True(t, ok)
	_, ok = c.GetExact(core.NewQuery("soru numara 0", ""))
	assert.False(t, ok)
}

func TestPutReplacesFingerprint(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")

	c.Put(q, []float32{1, 0}, "eski cevap", core.MatchSourceKeyword)
	c.Put(q, []float32{0, 1}, "yeni cevap", core.MatchSourceSemantic)

	hit, ok := c.GetExact(q)
	require.True(t, ok)
	assert.Equal(t, "yeni cevap", hit.Answer)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 1, stats.SemanticSize)

	// The stale embedding no longer serves the old answer.
	_, ok = c.GetSemantic(core.NewQuery("paketim nerede", ""), []float32{1, 0})
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")
	c.Put(q, nil, "Kargonuz yolda.", core.MatchSourceKeyword)

	c.GetExact(q)                               // hit
	c.GetExact(core.NewQuery("iade", ""))       // miss

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestClear(t *testing.T) {
	c := New()
	q := core.NewQuery("kargom nerede", "")
	c.Put(q, []float32{1, 0}, "Kargonuz yolda.", core.MatchSourceKeyword)
	c.GetExact(q)

	c.Clear()

	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 0, stats.SemanticSize)
	assert.Equal(t, uint64(1), stats.Hits, "counters survive Clear")

	_, ok := c.GetExact(q)
	assert.False(t, ok)
}
