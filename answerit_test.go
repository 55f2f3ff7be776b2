package answerit

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/answerit/ai"
	"github.com/poiesic/answerit/ai/mock"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/corpus/badger"
)

const testCorpusJSON = `{
	"responses": {
		"kargo_takip": {
			"keywords": ["kargo takip", "kargom nerede"],
			"message": "Kargonuzu sipariş numaranızla kargo firmasının sitesinden takip edebilirsiniz."
		},
		"çalışma_saatleri": {
			"keywords": ["çalışma saat", "açılış saati"],
			"message": "Mağazalarımız her gün 09:00-18:00 arasında açıktır."
		},
		"default_response": "Üzgünüm, '{user_input}' hakkında hazır bir yanıtım yok."
	},
	"redirects": {
		"cooking": "Yemek tarifleri konusunda yardımcı olamıyorum, ama siparişlerinizle ilgilenebilirim."
	}
}`

// Same corpus with one answer changed, for reload tests.
const testCorpusV2JSON = `{
	"responses": {
		"kargo_takip": {
			"keywords": ["kargo takip", "kargom nerede"],
			"message": "Kargo takibi bakım nedeniyle geçici olarak kapalıdır."
		},
		"default_response": "Üzgünüm, '{user_input}' hakkında hazır bir yanıtım yok."
	}
}`

func writeCorpusFile(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func resolveCorpus(t *testing.T, doc string) *corpus.Corpus {
	t.Helper()
	parsed, err := corpus.Parse([]byte(doc), ".json")
	require.NoError(t, err)
	c, err := corpus.Resolve(parsed)
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *mock.MockProvider) {
	t.Helper()
	provider := mock.NewMockProvider().(*mock.MockProvider)
	opts = append([]Option{WithProvider(provider)}, opts...)
	engine, err := New(corpus.NewFileStore(writeCorpusFile(t, testCorpusJSON)), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine, provider
}

// swapStore serves whichever corpus was last set, for reload tests.
type swapStore struct {
	mu sync.Mutex
	c  *corpus.Corpus
}

func (s *swapStore) Load(context.Context) (*corpus.Corpus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c, nil
}

func (s *swapStore) set(c *corpus.Corpus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c = c
}

func TestNewRequiresStore(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrCorpusStoreRequired)
}

func TestNewFailsOnEmptyCorpus(t *testing.T) {
	_, err := New(corpus.NewFileStore(writeCorpusFile(t, `{}`)), WithoutAI())
	assert.ErrorIs(t, err, corpus.ErrEmptyCorpus)
}

func TestNewFailsOnUnreadableCorpus(t *testing.T) {
	_, err := New(corpus.NewFileStore(filepath.Join(t.TempDir(), "missing.json")), WithoutAI())
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("relevant", func(t *testing.T) {
		result := engine.Classify("kargom nerede", "")
		require.NotNil(t, result)
		assert.True(t, result.IsRelevant)
	})

	t.Run("irrelevant with corpus redirect", func(t *testing.T) {
		result := engine.Classify("pizza tarifi nedir", "")
		require.NotNil(t, result)
		assert.False(t, result.IsRelevant)
		assert.Contains(t, result.Redirect, "Yemek tarifleri")
	})
}

func TestFindAnswerKeywordThenExactCache(t *testing.T) {
	engine, provider := newTestEngine(t)
	ctx := context.Background()

	first := engine.FindAnswer(ctx, "kargom nerede")
	require.NotNil(t, first)
	assert.Equal(t, core.MatchSourceKeyword, first.Source)
	assert.Equal(t, "kargo_takip", first.Category)

	second := engine.FindAnswer(ctx, "kargom nerede")
	assert.Equal(t, core.MatchSourceExactCache, second.Source)
	assert.Equal(t, first.Answer, second.Answer)

	assert.Equal(t, 0, provider.GetMockEmbedder().CallCount(),
		"keyword path must not embed")

	stats := engine.CacheStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, uint64(1), stats.Hits)
}

func TestFindAnswerRedirectsOffDomain(t *testing.T) {
	engine, provider := newTestEngine(t)

	result := engine.FindAnswer(context.Background(), "pizza tarifi nedir")
	require.NotNil(t, result)
	assert.Equal(t, core.MatchSourceIrrelevant, result.Source)
	assert.Contains(t, result.Answer, "Yemek tarifleri")
	assert.Equal(t, 0, provider.GetMockEmbedder().CallCount())
}

func TestFindAnswerWithoutAI(t *testing.T) {
	engine, err := New(corpus.NewFileStore(writeCorpusFile(t, testCorpusJSON)), WithoutAI())
	require.NoError(t, err)
	defer engine.Close()

	result := engine.FindAnswer(context.Background(), "ödeme yapamıyorum bana yardım eder misiniz")
	require.NotNil(t, result)
	assert.Equal(t, core.MatchSourceDefault, result.Source)
	assert.Contains(t, result.Answer, "ödeme yapamıyorum")

	assert.ErrorIs(t, engine.WarmUp(context.Background(), ai.TierLight), ErrAIDisabled)
}

func TestSelectorStatsObserved(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.Empty(t, engine.SelectorStats())

	engine.FindAnswer(context.Background(), "ödeme yapamıyorum bana yardım eder misiniz")
	stats := engine.SelectorStats()
	require.Contains(t, stats, ai.TierLight)
	assert.Equal(t, uint64(1), stats[ai.TierLight].Count)
}

func TestWarmUpPersistsAndWarmStarts(t *testing.T) {
	store, vectors, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	c := resolveCorpus(t, testCorpusJSON)
	require.NoError(t, store.Put(ctx, c))

	provider := mock.NewMockProvider().(*mock.MockProvider)
	engine, err := New(store, WithProvider(provider), WithVectorRepository(vectors))
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.WarmUp(ctx, ai.TierLight))
	assert.Equal(t, 2, provider.GetMockEmbedder().CallCount())

	persisted, err := vectors.GetVectors(ctx, c.Hash(), string(ai.TierLight))
	require.NoError(t, err)
	assert.Len(t, persisted, 2)

	// Second warmup loads persisted vectors instead of re-embedding.
	require.NoError(t, engine.WarmUp(ctx, ai.TierLight))
	assert.Equal(t, 2, provider.GetMockEmbedder().CallCount())

	// Reload onto a changed corpus drops the stale revision's vectors.
	c2 := resolveCorpus(t, testCorpusV2JSON)
	require.NoError(t, store.Put(ctx, c2))
	require.NoError(t, engine.Reload(ctx))

	stale, err := vectors.GetVectors(ctx, c.Hash(), string(ai.TierLight))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestReloadSwapsAnswersAndClearsCache(t *testing.T) {
	store := &swapStore{c: resolveCorpus(t, testCorpusJSON)}
	engine, err := New(store, WithoutAI())
	require.NoError(t, err)
	defer engine.Close()

	ctx := context.Background()
	first := engine.FindAnswer(ctx, "kargom nerede")
	assert.Equal(t, core.MatchSourceKeyword, first.Source)

	store.set(resolveCorpus(t, testCorpusV2JSON))
	require.NoError(t, engine.Reload(ctx))

	second := engine.FindAnswer(ctx, "kargom nerede")
	assert.Equal(t, core.MatchSourceKeyword, second.Source,
		"cache is cleared on reload, so this is a fresh keyword match")
	assert.NotEqual(t, first.Answer, second.Answer)
	assert.Contains(t, second.Answer, "kapalı")
}

func TestReloadKeepsServingOnLoadFailure(t *testing.T) {
	path := writeCorpusFile(t, testCorpusJSON)
	engine, err := New(corpus.NewFileStore(path), WithoutAI())
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, os.Remove(path))
	assert.Error(t, engine.Reload(context.Background()))

	result := engine.FindAnswer(context.Background(), "kargom nerede")
	assert.Equal(t, core.MatchSourceKeyword, result.Source)
}
