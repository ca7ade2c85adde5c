package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SwapReplacesRetriever(t *testing.T) {
	first := NewRetriever(buildKB(t, [][2]string{
		{"clover bloom", "clover answer"},
	}), nil, DefaultConfig())
	second := NewRetriever(buildKB(t, [][2]string{
		{"lavender bloom", "lavender answer"},
		{"sunflower bloom", "sunflower answer"},
	}), nil, DefaultConfig())

	store := NewStore(first)
	assert.Equal(t, 1, store.Len())

	got := store.Retrieve("clover", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "clover bloom", got[0].Question)

	store.Swap(second)
	assert.Equal(t, 2, store.Len())

	got = store.Retrieve("lavender", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "lavender bloom", got[0].Question)

	assert.Empty(t, store.Retrieve("clover", 0))
}
