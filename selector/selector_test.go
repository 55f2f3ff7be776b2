package selector

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/core"
)

func newTestSelector(t *testing.T, opts ...Option) *Selector {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestTightBudgetForcesLight(t *testing.T) {
	s := newTestSelector(t, WithDomainTerms("iade", "kargo"))

	// Even with quality priority and a complex query, a tight budget wins.
	q := core.NewQuery("iade ve kargo arasındaki fark nedir, adım adım açıklar mısın", "")
	tier := s.SelectTier(q, 50*time.Millisecond, true)
	assert.Equal(t, ai.TierLight, tier)
}

func TestQualityPriorityForcesHeavy(t *testing.T) {
	s := newTestSelector(t)

	tier := s.SelectTier(core.NewQuery("kargom nerede", ""), 0, true)
	assert.Equal(t, ai.TierHeavy, tier)
}

func TestComplexityDecides(t *testing.T) {
	s := newTestSelector(t, WithDomainTerms("iade", "kargo", "sipariş", "değişim", "ödeme"))

	t.Run("simple query goes light", func(t *testing.T) {
		tier := s.SelectTier(core.NewQuery("kargom nerede", ""), 0, false)
		assert.Equal(t, ai.TierLight, tier)
	})

	t.Run("complex query goes heavy", func(t *testing.T) {
		text := "iade ile değişim arasındaki fark nedir, eğer sipariş kargoya verilmiş olursa " +
			"ne olur, önce iade sonra yeniden ödeme adım adım nasıl yapılır, " +
			"kargo ücretini kim öder ve değişim süresi neden bu kadar uzun sürüyor " +
			"detaylı bilgi verir misiniz lütfen açıklayın"
		q := core.NewQuery(text, "")
		require.Greater(t, s.Complexity(q), 0.7)
		assert.Equal(t, ai.TierHeavy, s.SelectTier(q, 0, false))
	})
}

func TestComplexityBounds(t *testing.T) {
	s := newTestSelector(t, WithDomainTerms("kargo"))

	assert.Equal(t, 0.0, s.Complexity(core.NewQuery("", "")))
	assert.Equal(t, 0.0, s.Complexity(nil))

	long := strings.Repeat("kargo iade değişim neden nasıl fark ", 40)
	score := s.Complexity(core.NewQuery(long, ""))
	assert.LessOrEqual(t, score, 1.0)
	assert.Greater(t, score, 0.5)
}

func TestNilQueryNeverPanics(t *testing.T) {
	s := newTestSelector(t)
	assert.Equal(t, ai.TierLight, s.SelectTier(nil, 0, false))
}

func TestObserveAndStats(t *testing.T) {
	s := newTestSelector(t)

	assert.Empty(t, s.Stats(), "no tier is reported before its first observation")

	s.Observe(ai.TierLight, 20*time.Millisecond)
	s.Observe(ai.TierLight, 40*time.Millisecond)
	s.Observe(ai.TierHeavy, 300*time.Millisecond)

	stats := s.Stats()
	assert.Equal(t, uint64(2), stats[ai.TierLight].Count)
	assert.Equal(t, 30*time.Millisecond, stats[ai.TierLight].AverageLatency())
	assert.Equal(t, uint64(1), stats[ai.TierHeavy].Count)
	assert.Equal(t, 300*time.Millisecond, stats[ai.TierHeavy].AverageLatency())

	// Stats are a snapshot, not live references.
	snapshot := stats[ai.TierLight]
	s.Observe(ai.TierLight, time.Millisecond)
	assert.Equal(t, uint64(2), snapshot.Count)
}
