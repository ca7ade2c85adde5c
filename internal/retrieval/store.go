package retrieval

import (
	"sync/atomic"

	"github.com/apiarylabs/beed/internal/corpus"
)

// Store holds the active retriever and allows atomic replacement when the
// corpus is reloaded. Readers always see a complete retriever; in-flight
// requests keep the snapshot they started with.
type Store struct {
	current atomic.Pointer[Retriever]
}

// NewStore creates a store with an initial retriever.
func NewStore(r *Retriever) *Store {
	s := &Store{}
	s.current.Store(r)
	return s
}

// Swap replaces the active retriever.
func (s *Store) Swap(r *Retriever) {
	s.current.Store(r)
}

// Retrieve delegates to the active retriever.
func (s *Store) Retrieve(question string, k int) []corpus.Entry {
	return s.current.Load().Retrieve(question, k)
}

// Len returns the number of entries in the active retriever's corpus.
func (s *Store) Len() int {
	return s.current.Load().Len()
}
