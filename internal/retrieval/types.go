// Package retrieval implements lexical top-K retrieval over the knowledge
// base. It scores entries by keyword overlap with synonym expansion and a
// partial-substring bonus; no embeddings are involved.
package retrieval

import "github.com/apiarylabs/beed/internal/corpus"

// Config holds the scoring weights. The defaults encode that question-field
// matches are more diagnostic than answer-field matches; they are tuning
// choices, kept configurable rather than hard-coded.
type Config struct {
	// TopK is the default number of entries returned by Retrieve when the
	// caller passes k <= 0.
	TopK int `koanf:"top_k"`

	// QuestionWeight is added when a keyword is a substring of an entry's
	// question field.
	QuestionWeight float64 `koanf:"question_weight"`

	// AnswerWeight is added when a keyword is a substring of an entry's
	// answer field.
	AnswerWeight float64 `koanf:"answer_weight"`

	// CombinedWeight is added when a keyword is a substring of the
	// concatenated question and answer text. Additive with the two above.
	CombinedWeight float64 `koanf:"combined_weight"`

	// PartialWeight is added once per entry word that partially matches a
	// keyword (either direction), for keywords longer than PartialMinLen.
	PartialWeight float64 `koanf:"partial_weight"`

	// PartialMinLen gates the partial-match bonus: only keywords strictly
	// longer than this take part.
	PartialMinLen int `koanf:"partial_min_len"`
}

// DefaultConfig returns the production scoring weights.
func DefaultConfig() Config {
	return Config{
		TopK:           5,
		QuestionWeight: 3,
		AnswerWeight:   2,
		CombinedWeight: 1,
		PartialWeight:  0.5,
		PartialMinLen:  3,
	}
}

// ScoredEntry pairs an entry with its relevance score for one query.
type ScoredEntry struct {
	Entry corpus.Entry
	Score float64
}
