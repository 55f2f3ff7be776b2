package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequenceRatio(t *testing.T) {
	assert.Equal(t, 1.0, sequenceRatio("kargo takip", "kargo takip"))
	assert.Equal(t, 0.0, sequenceRatio("", "kargo"))
	assert.Equal(t, 0.0, sequenceRatio("kargo", ""))

	// Shared characters but unrelated text stays low.
	assert.Less(t, sequenceRatio("xyz", "kargo takip"), 0.2)

	// A one-character typo stays high.
	assert.Greater(t, sequenceRatio("kargo takip", "karqo takip"), 0.85)
}

func TestPartialRatio(t *testing.T) {
	// A keyword buried in a longer query scores 1.0.
	assert.Equal(t, 1.0, partialRatio("merhaba kargo takip etmek istiyorum", "kargo takip"))

	// Order of arguments does not matter.
	assert.Equal(t,
		partialRatio("kargo takip", "merhaba kargo takip etmek istiyorum"),
		partialRatio("merhaba kargo takip etmek istiyorum", "kargo takip"))

	assert.Equal(t, 0.0, partialRatio("", "kargo"))
}

func TestTokenSetJaccard(t *testing.T) {
	// Word order is irrelevant.
	assert.Equal(t, 1.0, tokenSetJaccard("iade kargo", "kargo iade"))

	// Half overlap.
	assert.Equal(t, 1.0/3.0, tokenSetJaccard("kargo takip", "kargo iade"))

	assert.Equal(t, 0.0, tokenSetJaccard("kargo", ""))
	assert.Equal(t, 0.0, tokenSetJaccard("kargo", "iade"))
}

func TestFuzzyRatioTakesTheMaximum(t *testing.T) {
	query := "merhaba kargo takip etmek istiyorum"
	keyword := "kargo takip"

	r := fuzzyRatio(query, keyword)
	assert.GreaterOrEqual(t, r, sequenceRatio(query, keyword))
	assert.GreaterOrEqual(t, r, partialRatio(query, keyword))
	assert.GreaterOrEqual(t, r, tokenSetJaccard(query, keyword))
	assert.Equal(t, 1.0, r)
}

func TestLCSLength(t *testing.T) {
	assert.Equal(t, 5, lcsLength([]rune("kargo"), []rune("kargo")))
	assert.Equal(t, 0, lcsLength([]rune("abc"), []rune("xyz")))
	assert.Equal(t, 4, lcsLength([]rune("kargo"), []rune("karqo")))
	assert.Equal(t, 0, lcsLength([]rune(""), []rune("kargo")))
}
