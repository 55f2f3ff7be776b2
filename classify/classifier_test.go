package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/answerit/core"
)

func newTestClassifier(t *testing.T, opts ...Option) *Classifier {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestEmptyQuery(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("   ", ""))
	assert.False(t, res.IsRelevant)
	assert.Equal(t, core.LevelIrrelevant, res.Level)
	assert.Equal(t, []string{TopicGeneral}, res.Categories)
	assert.NotEmpty(t, res.Redirect)
}

func TestKeywordFilterRelevant(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("kargom nerede acaba", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodKeywordFilter, res.Method)
	assert.GreaterOrEqual(t, res.Confidence, 0.85)
	assert.Equal(t, core.LevelHighlyRelevant, res.Level)
}

func TestKeywordFilterIrrelevant(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("pizza tarifi nedir", ""))
	assert.False(t, res.IsRelevant)
	assert.Equal(t, core.MethodKeywordFilter, res.Method)
	assert.GreaterOrEqual(t, res.Confidence, 0.85)
	assert.Equal(t, []string{TopicCooking}, res.Categories)
	assert.NotEmpty(t, res.Redirect, "irrelevant verdicts carry a redirect answer")
}

func TestKeywordFilterSeededTerms(t *testing.T) {
	c := newTestClassifier(t, WithAllowTerms("hediye paketi"))

	res := c.Classify(core.NewQuery("hediye paketi yapıyor musunuz", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodKeywordFilter, res.Method)
}

func TestPatternOffDomain(t *testing.T) {
	c := newTestClassifier(t)

	// No term-list hits; the phrasing alone gives it away.
	res := c.Classify(core.NewQuery("what should i watch tonight", ""))
	assert.False(t, res.IsRelevant)
	assert.Equal(t, core.MethodPatternMatching, res.Method)
	assert.Equal(t, []string{TopicEntertainment}, res.Categories)
	assert.NotEmpty(t, res.Redirect)
}

func TestPatternInDomain(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("how much is it", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodPatternMatching, res.Method)
	assert.Equal(t, []string{"pricing"}, res.Categories)
}

func TestDomainAnalysis(t *testing.T) {
	domains := map[string]core.DomainCategory{
		"lounge": {Terms: []string{"lounge erişimi", "vip salon"}, Weight: 1.0},
	}
	c := newTestClassifier(t, WithDomainCategories(domains))

	res := c.Classify(core.NewQuery("lounge erişimi var mı", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodDomainAnalysis, res.Method)
	assert.Equal(t, []string{"lounge"}, res.Categories)
	assert.GreaterOrEqual(t, res.Confidence, 0.70)
}

func TestContextAnalysis(t *testing.T) {
	c := newTestClassifier(t)

	// "alışveriş" is a business indicator but not an allow-list term, so the
	// verdict falls through to context analysis.
	res := c.Classify(core.NewQuery("alışveriş yapacağım", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodContextAnalysis, res.Method)
	assert.GreaterOrEqual(t, res.Confidence, 0.70)
}

func TestHeuristicFallback(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("bu konuda yardımcı olur musunuz", ""))
	assert.True(t, res.IsRelevant)
	assert.Equal(t, core.MethodDeepHeuristic, res.Method)
	assert.LessOrEqual(t, res.Confidence, 0.75)
}

func TestRedirectOverride(t *testing.T) {
	c := newTestClassifier(t, WithRedirectAnswers(map[string]string{
		TopicCooking: "Tarif konusunda yardımcı olamıyorum.",
	}))

	res := c.Classify(core.NewQuery("pizza tarifi nedir", ""))
	require.False(t, res.IsRelevant)
	assert.Equal(t, "Tarif konusunda yardımcı olamıyorum.", res.Redirect)
}

func TestDenyTermExtension(t *testing.T) {
	c := newTestClassifier(t, WithDenyTerms(TopicHealth, "vitamin takviyesi"))

	res := c.Classify(core.NewQuery("vitamin takviyesi almalı mıyım", ""))
	assert.False(t, res.IsRelevant)
	assert.Equal(t, []string{TopicHealth}, res.Categories)
}

func TestResultBookkeeping(t *testing.T) {
	c := newTestClassifier(t)

	res := c.Classify(core.NewQuery("kargom nerede", ""))
	assert.Equal(t, core.LevelFromConfidence(res.IsRelevant, res.Confidence), res.Level)
	assert.Greater(t, res.Latency.Nanoseconds(), int64(0))
}

func TestStagePanicIsContained(t *testing.T) {
	c := newTestClassifier(t)
	// A nil-mapped stage slot simulates a crashing stage.
	c.stages[0].run = func(q *core.Query) *core.ClassificationResult {
		panic("boom")
	}

	res := c.Classify(core.NewQuery("kargom nerede", ""))
	require.NotNil(t, res)
	// The pipeline proceeded past the crashed keyword stage.
	assert.True(t, res.IsRelevant)
	assert.NotEqual(t, core.MethodKeywordFilter, res.Method)
}

func TestIsQuestion(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"kargom nerede", true},
		{"nasıl iade ederim", true},
		{"mağazanız açık mı", true},
		{"ürün stokta var mıdır", true},
		{"is the store open", true},
		{"siparişim gelmedi", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, isQuestion(tc.text))
		})
	}
}
