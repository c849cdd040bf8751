package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRanksByFrequency(t *testing.T) {
	t.Parallel()

	e := New(3)
	got := e.Extract("network network network graph graph learning")
	require.Equal(t, []string{"network", "graph", "learning"}, got)
}

func TestExtractTiesBreakByFirstSeen(t *testing.T) {
	t.Parallel()

	e := New(5)
	got := e.Extract("zebra apple zebra apple mango")
	require.Equal(t, []string{"zebra", "apple", "mango"}, got)
}

func TestExtractFiltersStopWordsAndShortTokens(t *testing.T) {
	t.Parallel()

	e := New(10)
	got := e.Extract("We propose an approach to AI: the ML of it all")
	// "we", "propose", "an", "approach", "to", "the", "of" are stop words;
	// "ai", "ml", "it" are too short; "all" survives.
	require.Equal(t, []string{"all"}, got)
}

func TestExtractLowercasesTokens(t *testing.T) {
	t.Parallel()

	e := New(10)
	got := e.Extract("Network NETWORK network")
	require.Equal(t, []string{"network"}, got)
}

func TestExtractEmptyTextYieldsNoKeywords(t *testing.T) {
	t.Parallel()

	e := New(10)
	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n\t"))
	assert.Empty(t, e.Extract("123 456 !!"))
}

func TestExtractDeterministic(t *testing.T) {
	t.Parallel()

	text := "quantum entanglement drives quantum computing while entanglement scales"
	e := New(10)
	first := e.Extract(text)
	second := e.Extract(text)
	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestExtractHonorsExtraStopWords(t *testing.T) {
	t.Parallel()

	e := New(10, "Quantum")
	got := e.Extract("quantum circuits quantum gates")
	require.Equal(t, []string{"circuits", "gates"}, got)
}

func TestExtractCapsAtLimit(t *testing.T) {
	t.Parallel()

	e := New(2)
	got := e.Extract("alpha beta gamma delta")
	require.Len(t, got, 2)
}
