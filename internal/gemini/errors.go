package gemini

import "errors"

// Configuration errors.
var (
	// ErrMissingCredential indicates no API key was found in the
	// environment or configuration. The daemon treats this as a degraded
	// state rather than a startup failure.
	ErrMissingCredential = errors.New("gemini: no API key configured")
)

// Generation errors.
var (
	// ErrEmptyResponse indicates the model returned no usable text.
	ErrEmptyResponse = errors.New("gemini: empty response from model")

	// ErrGenerationFailed wraps any upstream failure after retries are
	// exhausted.
	ErrGenerationFailed = errors.New("gemini: generation failed")
)

// IsServiceError reports whether err is a generation-path failure that
// callers should absorb into a safe default answer rather than propagate.
func IsServiceError(err error) bool {
	return errors.Is(err, ErrGenerationFailed) || errors.Is(err, ErrEmptyResponse)
}

// retryableError marks an error as transient so the retry loop knows to
// try again instead of returning immediately.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func isRetryableError(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}
