// Package gemini wraps the Google GenAI SDK behind a small text
// generation interface with rate limiting and bounded retries.
package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// DefaultModel is the model used when configuration does not name one.
	DefaultModel = "gemini-1.5-flash"

	// DefaultTimeout bounds a single generation call when config does not
	// set one.
	DefaultTimeout = 30 * time.Second

	defaultRateLimit   = 2.0 // requests per second
	defaultBurst       = 5
	defaultMaxRetries  = 3
	defaultBaseBackoff = 500 * time.Millisecond
)

// Credential environment variables, checked in order.
var credentialEnvVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// Generator produces a text answer for a fully assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds client settings.
type Config struct {
	// APIKey overrides environment credential resolution when set.
	APIKey string `koanf:"api_key"`

	// Model is the Gemini model identifier.
	Model string `koanf:"model"`

	// Timeout bounds a single generation call, rate-limiter wait included.
	Timeout time.Duration `koanf:"timeout"`

	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries int `koanf:"max_retries"`

	// RateLimit is the sustained request rate per second.
	RateLimit float64 `koanf:"rate_limit"`
}

// DefaultConfig returns the default client settings.
func DefaultConfig() Config {
	return Config{
		Model:      DefaultModel,
		Timeout:    DefaultTimeout,
		MaxRetries: defaultMaxRetries,
		RateLimit:  defaultRateLimit,
	}
}

// ResolveCredential returns the API key from config or the environment.
// Environment variables are checked in declaration order so GEMINI_API_KEY
// wins over GOOGLE_API_KEY.
func ResolveCredential(cfg Config) (string, error) {
	if cfg.APIKey != "" {
		return cfg.APIKey, nil
	}
	for _, name := range credentialEnvVars {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return "", ErrMissingCredential
}

// CredentialPresent reports whether any credential source is set, without
// exposing the value.
func CredentialPresent(cfg Config) bool {
	_, err := ResolveCredential(cfg)
	return err == nil
}

// MaskCredential renders a key as first4***last4 for diagnostics. Short
// keys are fully masked.
func MaskCredential(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "***" + key[len(key)-4:]
}

// Client implements Generator against the Gemini API.
type Client struct {
	client     *genai.Client
	model      string
	limiter    *rate.Limiter
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates a Gemini client. It fails with ErrMissingCredential
// when no API key can be resolved; callers decide whether that is fatal.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey, err := ResolveCredential(cfg)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = defaultRateLimit
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{
		client:     client,
		model:      model,
		limiter:    rate.NewLimiter(rate.Limit(limit), defaultBurst),
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// Generate sends the prompt to the model and returns the trimmed response
// text. Transient failures are retried with exponential backoff; context
// cancellation aborts both the wait and the request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := defaultBaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			c.logger.Debug("retrying generation",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
		}

		text, err := c.doGenerate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: max retries exceeded: %v", ErrGenerationFailed, lastErr)
}

func (c *Client) doGenerate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &retryableError{err: fmt.Errorf("%w: %v", ErrGenerationFailed, err)}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

var _ Generator = (*Client)(nil)
