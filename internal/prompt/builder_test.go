package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiarylabs/beed/internal/corpus"
)

func mustEntry(t *testing.T, q, a string) corpus.Entry {
	t.Helper()
	e, err := corpus.NewEntry(q, a)
	require.NoError(t, err)
	return e
}

func TestBuild_ContainsAllSections(t *testing.T) {
	b := NewBuilder()
	entries := []corpus.Entry{
		mustEntry(t, "When does clover bloom?", "Clover blooms May through September."),
	}

	got := b.Build("When does clover bloom?", entries)

	assert.Contains(t, got, "You are Bee AI")
	assert.Contains(t, got, "Knowledge Base Context:")
	assert.Contains(t, got, "Q: When does clover bloom?")
	assert.Contains(t, got, "A: Clover blooms May through September.")
	assert.Contains(t, got, "User Question: When does clover bloom?")
	assert.True(t, strings.HasSuffix(got, "Answer:"))
}

func TestBuild_AllInstructionsPresent(t *testing.T) {
	got := NewBuilder().Build("hello", nil)

	for _, line := range []string{
		"1. If this is a greeting",
		"2. If this is a bee-related question",
		"3. If the question is about plants/flowers/animals/beekeeping",
		"4. If the question is not covered in the knowledge base",
		"5. For general conversation",
		"6. Provide detailed, scientific answers",
		"7. Include relevant dates, locations",
		"8. IMPORTANT: Never provide information about non-European",
		"9. CRITICAL: Keep your responses SHORT and CONCISE",
		"10. DO NOT introduce yourself",
		"11. USE YOUR OWN KNOWLEDGE",
	} {
		assert.Contains(t, got, line)
	}
}

func TestBuild_PreservesEntryOrder(t *testing.T) {
	entries := []corpus.Entry{
		mustEntry(t, "first question", "first answer"),
		mustEntry(t, "second question", "second answer"),
		mustEntry(t, "third question", "third answer"),
	}

	got := NewBuilder().Build("anything", entries)

	first := strings.Index(got, "Q: first question")
	second := strings.Index(got, "Q: second question")
	third := strings.Index(got, "Q: third question")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, second)
	require.NotEqual(t, -1, third)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
}

func TestBuild_EmptyRetrievalKeepsHeader(t *testing.T) {
	got := NewBuilder().Build("what color is the sky", nil)

	assert.Contains(t, got, "Knowledge Base Context:")
	assert.NotContains(t, got, "\nQ: ")
	assert.Contains(t, got, "User Question: what color is the sky")
}
