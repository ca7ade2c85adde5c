// Package chat implements the question answering service: retrieve
// matching knowledge, assemble the prompt, and generate an answer.
package chat

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/apiarylabs/beed/internal/corpus"
	"github.com/apiarylabs/beed/internal/gemini"
	"github.com/apiarylabs/beed/internal/prompt"
)

// errorApology is returned as the answer text when generation fails.
// Failed generation is a degraded answer, not a request error, so callers
// still see a normal response.
const errorApology = "I apologize, but I encountered an error processing your question. Please try again."

// defaultGenerateTimeout bounds a single answer's model call.
const defaultGenerateTimeout = 30 * time.Second

// Retriever returns the top entries for a question, best first. A
// non-positive k means the retriever's configured default.
type Retriever interface {
	Retrieve(question string, k int) []corpus.Entry
}

// Service answers questions. A nil generator puts the service in degraded
// mode, answering from canned keyword responses instead of the model.
type Service struct {
	retriever Retriever
	builder   *prompt.Builder
	generator gemini.Generator
	timeout   time.Duration
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithGenerateTimeout overrides the per-answer model call timeout.
func WithGenerateTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a chat service. generator may be nil for degraded
// operation.
func NewService(retriever Retriever, builder *prompt.Builder, generator gemini.Generator, opts ...Option) *Service {
	s := &Service{
		retriever: retriever,
		builder:   builder,
		generator: generator,
		timeout:   defaultGenerateTimeout,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Degraded reports whether the service answers without a model.
func (s *Service) Degraded() bool { return s.generator == nil }

// Answer produces an answer for the question. Empty questions return
// ErrEmptyQuestion. Model failures degrade to an apology message rather
// than an error; only validation failures surface as errors.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	if s.generator == nil {
		s.logger.Debug("no generator configured, using fallback response")
		return fallbackResponse(question), nil
	}

	entries := s.retriever.Retrieve(question, 0)
	p := s.builder.Build(question, entries)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Generate(genCtx, p)
	if err != nil {
		s.logger.Error("generation failed",
			zap.Int("retrieved_entries", len(entries)),
			zap.Error(err))
		return errorApology, nil
	}

	s.logger.Debug("answered question",
		zap.Int("retrieved_entries", len(entries)),
		zap.Int("answer_len", len(text)))
	return text, nil
}
