package chat

import "errors"

// Validation errors.
var (
	// ErrEmptyQuestion indicates the question was empty or whitespace.
	ErrEmptyQuestion = errors.New("chat: question must not be empty")
)
