package retrieval

import (
	"sort"
	"strings"

	"github.com/apiarylabs/beed/internal/corpus"
)

// Retriever scores knowledge base entries against free-text questions.
// All state is read-only after construction, so a Retriever is safe for
// concurrent use across requests.
type Retriever struct {
	cfg      Config
	synonyms SynonymTable
	docs     []document
}

// document holds the precomputed lowered text of one entry. Entries are
// immutable, so this is done once at construction instead of per query.
type document struct {
	entry    corpus.Entry
	question string
	answer   string
	combined string
	words    []string
}

// NewRetriever builds a retriever over a frozen knowledge base snapshot.
func NewRetriever(kb *corpus.KnowledgeBase, synonyms SynonymTable, cfg Config) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	if synonyms == nil {
		synonyms = DefaultSynonyms()
	}

	entries := kb.Entries()
	docs := make([]document, 0, len(entries))
	for _, entry := range entries {
		question := strings.ToLower(entry.Question)
		answer := strings.ToLower(entry.Answer)
		combined := question + " " + answer
		docs = append(docs, document{
			entry:    entry,
			question: question,
			answer:   answer,
			combined: combined,
			words:    strings.Fields(combined),
		})
	}

	return &Retriever{
		cfg:      cfg,
		synonyms: synonyms,
		docs:     docs,
	}
}

// Retrieve returns the ordered top-k most relevant entries for question.
// An empty or whitespace-only question returns nil. Fewer than k entries
// are returned when fewer score above zero; the result is never padded.
func (r *Retriever) Retrieve(question string, k int) []corpus.Entry {
	if k <= 0 {
		k = r.cfg.TopK
	}

	ranked := r.Rank(question)
	if len(ranked) > k {
		ranked = ranked[:k]
	}

	entries := make([]corpus.Entry, len(ranked))
	for i, s := range ranked {
		entries[i] = s.Entry
	}
	return entries
}

// Len returns the number of corpus entries the retriever was built with.
func (r *Retriever) Len() int {
	return len(r.docs)
}

// Rank scores every entry against question and returns all candidates with
// a positive score, ordered by score descending. Equal scores keep their
// knowledge base insertion order (stable sort).
func (r *Retriever) Rank(question string) []ScoredEntry {
	keywords := r.keywords(question)
	if len(keywords) == 0 {
		return nil
	}

	var candidates []ScoredEntry
	for _, doc := range r.docs {
		score := r.score(doc, keywords)
		if score > 0 {
			candidates = append(candidates, ScoredEntry{Entry: doc.entry, Score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return candidates
}

// keywords tokenizes and synonym-expands a question into a keyword set.
func (r *Retriever) keywords(question string) map[string]struct{} {
	tokens := strings.Fields(strings.ToLower(question))
	if len(tokens) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return r.synonyms.Expand(set)
}

// score computes one entry's relevance. Per keyword: question-field,
// answer-field, and combined-text substring hits are additive, not
// exclusive; the partial-match bonus fires once per qualifying entry word
// with no de-duplication.
func (r *Retriever) score(doc document, keywords map[string]struct{}) float64 {
	var score float64
	for k := range keywords {
		if strings.Contains(doc.question, k) {
			score += r.cfg.QuestionWeight
		}
		if strings.Contains(doc.answer, k) {
			score += r.cfg.AnswerWeight
		}
		if strings.Contains(doc.combined, k) {
			score += r.cfg.CombinedWeight
		}

		if len(k) > r.cfg.PartialMinLen {
			for _, w := range doc.words {
				if strings.Contains(w, k) || strings.Contains(k, w) {
					score += r.cfg.PartialWeight
				}
			}
		}
	}
	return score
}
