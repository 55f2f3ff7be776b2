package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/answerit/classify"
	"github.com/poiesic/answerit/core"
	"github.com/poiesic/answerit/corpus"
)

func newKeywordMatcher(t *testing.T, doc *corpus.Document, opts ...Option) *Matcher {
	t.Helper()
	c, err := corpus.Resolve(doc)
	require.NoError(t, err)
	classifier, err := classify.New()
	require.NoError(t, err)
	m, err := New(c, classifier, opts...)
	require.NoError(t, err)
	return m
}

func TestMatchKeywordsPhraseCredit(t *testing.T) {
	m := newKeywordMatcher(t, &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "çalışma_saatleri", Spec: corpus.ResponseSpec{
				Keywords: []string{"çalışma saat", "kaçta açık"},
				Message:  "Mağazalarımız 09:00-18:00 arası açıktır.",
			}},
		},
	})

	hit, ok := m.matchKeywords(core.NewQuery("çalışma saatleri nedir", ""))
	require.True(t, ok)
	assert.Equal(t, "çalışma_saatleri", hit.answer.Category)
	// One word overlap out of four keyword words plus one phrase containment.
	assert.InDelta(t, 0.55, hit.score, 0.001)
	assert.False(t, hit.fuzzyOnly)
}

func TestMatchKeywordsCategoryNameShortCircuit(t *testing.T) {
	m := newKeywordMatcher(t, &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "garanti", Spec: corpus.ResponseSpec{
				Keywords: []string{"garanti süresi"},
				Message:  "Ürünlerimiz iki yıl garantilidir.",
			}},
		},
	})

	hit, ok := m.matchKeywords(core.NewQuery("garanti var mı", ""))
	require.True(t, ok)
	assert.Equal(t, 1.0, hit.score)
}

func TestMatchKeywordsBelowFloor(t *testing.T) {
	m := newKeywordMatcher(t, &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "iade", Spec: corpus.ResponseSpec{
				Keywords: []string{"iade koşulları", "para iadesi", "geri ödeme", "ürün değişimi"},
				Message:  "İade süreniz 14 gündür.",
			}},
		},
	})

	_, ok := m.matchKeywords(core.NewQuery("merhaba nasılsınız", ""))
	assert.False(t, ok)
}

func TestMatchKeywordsTieKeepsEarlierCategory(t *testing.T) {
	m := newKeywordMatcher(t, &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "birinci", Spec: corpus.ResponseSpec{
				Keywords: []string{"hızlı teslimat"},
				Message:  "Birinci cevap.",
			}},
			{Name: "ikinci", Spec: corpus.ResponseSpec{
				Keywords: []string{"hızlı teslimat"},
				Message:  "İkinci cevap.",
			}},
		},
	})

	hit, ok := m.matchKeywords(core.NewQuery("hızlı teslimat mümkün mü", ""))
	require.True(t, ok)
	assert.Equal(t, "birinci", hit.answer.Category)
}

func TestMatchKeywordsScoreIsCapped(t *testing.T) {
	m := newKeywordMatcher(t, &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "teslimat_bilgisi", Spec: corpus.ResponseSpec{
				Keywords: []string{"kargo nerede", "kargo takip", "kargo durumu"},
				Message:  "Kargonuzu takip sayfasından izleyebilirsiniz.",
			}},
		},
	})

	hit, ok := m.matchKeywords(core.NewQuery("kargo nerede kargo takip kargo durumu", ""))
	require.True(t, ok)
	assert.Equal(t, 1.0, hit.score)
}

func TestMatchKeywordsFuzzyCredit(t *testing.T) {
	// The category name must not be a substring of the test queries, or the
	// name short-circuit answers before fuzzy scoring runs.
	doc := &corpus.Document{
		Responses: []corpus.ResponseEntry{
			{Name: "siparis_iptali", Spec: corpus.ResponseSpec{
				Keywords: []string{"sipariş iptali"},
				Message:  "Siparişinizi hesabım sayfasından iptal edebilirsiniz.",
			}},
		},
	}

	t.Run("typo earns fuzzy credit", func(t *testing.T) {
		m := newKeywordMatcher(t, doc)
		hit, ok := m.matchKeywords(core.NewQuery("siparis iptal etmek", ""))
		require.True(t, ok)
		assert.True(t, hit.fuzzyOnly)
		assert.InDelta(t, 0.3, hit.score, 0.001)
	})

	t.Run("disabled fuzzy matching", func(t *testing.T) {
		m := newKeywordMatcher(t, doc, WithFuzzyMatching(false))
		_, ok := m.matchKeywords(core.NewQuery("siparis iptal etmek", ""))
		assert.False(t, ok)
	})
}
