package corpus

import "errors"

// Entry validation errors.
var (
	ErrEmptyQuestion = errors.New("entry question is empty")
	ErrEmptyAnswer   = errors.New("entry answer is empty")
)

// Load errors.
var (
	// ErrCorpusNotFound means no corpus file existed at any candidate path.
	// The loader still returns a usable knowledge base (the built-in
	// fallback corpus); callers use this to report degraded health.
	ErrCorpusNotFound = errors.New("corpus file not found")
)
