package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusSerializationRoundTrip(t *testing.T) {
	original := resolveSample(t)

	data := MarshalCorpus(original)
	require.NotEmpty(t, data)

	restored, err := UnmarshalCorpus(data)
	require.NoError(t, err)

	assert.Equal(t, original.Answers(), restored.Answers())
	assert.Equal(t, original.Domains(), restored.Domains())
	assert.Equal(t, original.Redirects(), restored.Redirects())
	assert.Equal(t, original.DefaultResponse(), restored.DefaultResponse())
	assert.Equal(t, original.Hash(), restored.Hash())

	// Lookup index is rebuilt, not serialized.
	iade, ok := restored.Answer("iade")
	require.True(t, ok)
	assert.Equal(t, "İade süreniz teslimattan itibaren 14 gündür.", iade.Answer)
}

func TestCorpusSerializationDeterministic(t *testing.T) {
	c := resolveSample(t)
	assert.Equal(t, MarshalCorpus(c), MarshalCorpus(c))
}

func TestUnmarshalCorpusTruncated(t *testing.T) {
	data := MarshalCorpus(resolveSample(t))

	for _, cut := range []int{0, 1, 3, len(data) / 2} {
		_, err := UnmarshalCorpus(data[:cut])
		assert.ErrorIs(t, err, ErrSerializationFailed, "cut at %d", cut)
	}
}
