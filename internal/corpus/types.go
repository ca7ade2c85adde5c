// Package corpus provides the knowledge base: loading, validation, and an
// immutable snapshot of question/answer entries used for retrieval.
package corpus

import (
	"strings"

	"github.com/google/uuid"
)

// Entry is a single question/answer pair from the training corpus.
// Entries are immutable once constructed.
type Entry struct {
	// ID is a load-time identifier used in logs and debugging.
	ID string `json:"id"`

	// Question is the user-side content of the pair.
	Question string `json:"question"`

	// Answer is the assistant-side content of the pair.
	Answer string `json:"answer"`
}

// NewEntry validates and constructs an Entry. Both fields must be non-empty
// after trimming.
func NewEntry(question, answer string) (Entry, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if question == "" {
		return Entry{}, ErrEmptyQuestion
	}
	if answer == "" {
		return Entry{}, ErrEmptyAnswer
	}

	return Entry{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
	}, nil
}

// KnowledgeBase is an ordered, read-only sequence of entries.
// Order is corpus file order; it is never mutated after construction,
// so concurrent reads need no locking.
type KnowledgeBase struct {
	entries []Entry
}

// NewKnowledgeBase builds a frozen knowledge base from entries.
func NewKnowledgeBase(entries []Entry) *KnowledgeBase {
	kb := &KnowledgeBase{entries: make([]Entry, len(entries))}
	copy(kb.entries, entries)
	return kb
}

// Entries returns the entries in insertion order. Callers must not modify
// the returned slice.
func (kb *KnowledgeBase) Entries() []Entry {
	if kb == nil {
		return nil
	}
	return kb.entries
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.entries)
}
