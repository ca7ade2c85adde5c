package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/apiarylabs/beed/internal/corpus"
	"github.com/apiarylabs/beed/internal/prompt"
)

type stubRetriever struct {
	entries []corpus.Entry
	lastQ   string
}

func (s *stubRetriever) Retrieve(question string, k int) []corpus.Entry {
	s.lastQ = question
	return s.entries
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, p string) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func testEntry(t *testing.T, q, a string) corpus.Entry {
	t.Helper()
	e, err := corpus.NewEntry(q, a)
	require.NoError(t, err)
	return e
}

func TestAnswer_EmptyQuestion(t *testing.T) {
	svc := NewService(&stubRetriever{}, prompt.NewBuilder(), nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Answer(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyQuestion)
	}
}

func TestAnswer_PromptIncludesRetrievedEntries(t *testing.T) {
	ret := &stubRetriever{entries: []corpus.Entry{
		testEntry(t, "When does clover bloom?", "May to September."),
	}}
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "Q: When does clover bloom?") &&
			strings.Contains(p, "User Question: clover bloom time")
	})).Return("Clover blooms from May.", nil)

	svc := NewService(ret, prompt.NewBuilder(), gen)

	got, err := svc.Answer(context.Background(), "clover bloom time")
	require.NoError(t, err)
	assert.Equal(t, "Clover blooms from May.", got)
	assert.Equal(t, "clover bloom time", ret.lastQ)
	gen.AssertExpectations(t)
}

func TestAnswer_TrimsQuestionBeforeRetrieval(t *testing.T) {
	ret := &stubRetriever{}
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("ok", nil)

	svc := NewService(ret, prompt.NewBuilder(), gen)

	_, err := svc.Answer(context.Background(), "  bees in winter  ")
	require.NoError(t, err)
	assert.Equal(t, "bees in winter", ret.lastQ)
}

func TestAnswer_GenerationErrorReturnsApology(t *testing.T) {
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	svc := NewService(&stubRetriever{}, prompt.NewBuilder(), gen)

	got, err := svc.Answer(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, errorApology, got)
}

func TestAnswer_DegradedFallbacks(t *testing.T) {
	svc := NewService(&stubRetriever{}, prompt.NewBuilder(), nil)
	require.True(t, svc.Degraded())

	tests := []struct {
		question string
		want     string
	}{
		{"wild garlic almanya", fallbackWildGarlic},
		{"hello there", fallbackGreeting},
		{"when does lavender bloom", fallbackBloom},
		{"varroa treatment", fallbackDefault},
	}
	for _, tt := range tests {
		got, err := svc.Answer(context.Background(), tt.question)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "question %q", tt.question)
	}
}

func TestAnswer_NotDegradedWithGenerator(t *testing.T) {
	gen := &mockGenerator{}
	svc := NewService(&stubRetriever{}, prompt.NewBuilder(), gen)
	assert.False(t, svc.Degraded())
}
