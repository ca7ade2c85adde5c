package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultFileName is the corpus file name looked up when no explicit
// path is configured.
const DefaultFileName = "bee_ai_training_data.jsonl"

// jsonlEntry is the raw on-disk shape: one object per line, holding a
// user message followed by an assistant message.
type jsonlEntry struct {
	Messages []jsonlMessage `json:"messages"`
}

type jsonlMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ParseError records a skipped corpus line.
type ParseError struct {
	Line  int
	Error string
}

// LoadResult holds the outcome of a corpus load.
type LoadResult struct {
	KnowledgeBase *KnowledgeBase

	// Source is the path the corpus was loaded from; empty when the
	// built-in fallback corpus was used.
	Source string

	// Fallback is true when no corpus file was found and the built-in
	// entries were substituted.
	Fallback bool

	// SkippedLines counts malformed or shape-invalid lines.
	SkippedLines int

	// Errors holds up to the first ten parse errors for diagnostics.
	Errors []ParseError
}

// Loader loads JSONL corpora with per-line error tolerance.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a corpus loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load tries the configured path first, then a set of conventional
// locations. A missing file is not fatal: the built-in fallback corpus is
// returned together with ErrCorpusNotFound so callers can report degraded
// health while still answering questions.
func (l *Loader) Load(configuredPath string) (*LoadResult, error) {
	for _, path := range candidatePaths(configuredPath) {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		result, err := l.LoadFile(path)
		if err != nil {
			l.logger.Warn("corpus file unreadable, trying next candidate",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		l.logger.Info("knowledge base loaded",
			zap.String("path", path),
			zap.Int("entries", result.KnowledgeBase.Len()),
			zap.Int("skipped_lines", result.SkippedLines))
		return result, nil
	}

	l.logger.Warn("no corpus file found, using built-in fallback corpus")
	return &LoadResult{
		KnowledgeBase: FallbackKnowledgeBase(),
		Fallback:      true,
	}, ErrCorpusNotFound
}

// LoadFile reads a single JSONL corpus file. Malformed lines are skipped
// and counted, never fatal; only an unreadable file returns an error.
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()

	result := &LoadResult{Source: path}

	var entries []Entry
	scanner := bufio.NewScanner(f)

	// Some corpus answers carry long assistant content.
	const maxLineSize = 1024 * 1024
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			result.SkippedLines++
			if len(result.Errors) < 10 {
				result.Errors = append(result.Errors, ParseError{
					Line:  lineNum,
					Error: err.Error(),
				})
			}
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	result.KnowledgeBase = NewKnowledgeBase(entries)
	return result, nil
}

// parseLine decodes one JSONL object into a validated Entry.
// The expected shape is a user message followed by an assistant message.
func parseLine(line string) (Entry, error) {
	var raw jsonlEntry
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, fmt.Errorf("json parse error: %w", err)
	}

	var question, answer string
	for _, msg := range raw.Messages {
		switch msg.Role {
		case "user":
			if question == "" {
				question = msg.Content
			}
		case "assistant":
			if answer == "" {
				answer = msg.Content
			}
		}
	}

	return NewEntry(question, answer)
}

// candidatePaths returns the paths tried in order, mirroring the lookup
// used in serverless deployments of the original dataset: explicit config
// path, working directory, parent directory, and alongside the binary.
func candidatePaths(configuredPath string) []string {
	var paths []string
	if configuredPath != "" {
		paths = append(paths, configuredPath)
	}

	paths = append(paths,
		DefaultFileName,
		filepath.Join("..", DefaultFileName),
	)

	if wd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(wd, DefaultFileName))
	}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), DefaultFileName))
	}

	return paths
}
