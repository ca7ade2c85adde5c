// Package config provides configuration loading for beed.
package config

import (
	"fmt"
	"time"

	"github.com/apiarylabs/beed/internal/gemini"
	"github.com/apiarylabs/beed/internal/retrieval"
)

// Config is the root configuration for the daemon.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Corpus    CorpusConfig     `koanf:"corpus"`
	Retrieval retrieval.Config `koanf:"retrieval"`
	Gemini    gemini.Config    `koanf:"gemini"`
	Telemetry TelemetryConfig  `koanf:"telemetry"`
	Log       LogConfig        `koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is the sustained request rate per second per server.
	// Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`

	// AllowOrigins configures CORS. Empty means allow all origins.
	AllowOrigins []string `koanf:"allow_origins"`
}

// CorpusConfig holds knowledge base settings.
type CorpusConfig struct {
	// Path to the JSONL corpus file. Empty triggers the default search
	// path candidates.
	Path string `koanf:"path"`

	// Watch enables hot reload of the corpus file.
	Watch bool `koanf:"watch"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
	Endpoint    string `koanf:"endpoint"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Development switches to the human friendly console encoder.
	Development bool `koanf:"development"`
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.RateBurst == 0 {
		cfg.Server.RateBurst = 20
	}

	def := retrieval.DefaultConfig()
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = def.TopK
	}
	if cfg.Retrieval.QuestionWeight == 0 {
		cfg.Retrieval.QuestionWeight = def.QuestionWeight
	}
	if cfg.Retrieval.AnswerWeight == 0 {
		cfg.Retrieval.AnswerWeight = def.AnswerWeight
	}
	if cfg.Retrieval.CombinedWeight == 0 {
		cfg.Retrieval.CombinedWeight = def.CombinedWeight
	}
	if cfg.Retrieval.PartialWeight == 0 {
		cfg.Retrieval.PartialWeight = def.PartialWeight
	}
	if cfg.Retrieval.PartialMinLen == 0 {
		cfg.Retrieval.PartialMinLen = def.PartialMinLen
	}

	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = gemini.DefaultModel
	}
	if cfg.Gemini.Timeout == 0 {
		cfg.Gemini.Timeout = gemini.DefaultTimeout
	}
	if cfg.Gemini.MaxRetries == 0 {
		cfg.Gemini.MaxRetries = gemini.DefaultConfig().MaxRetries
	}
	if cfg.Gemini.RateLimit == 0 {
		cfg.Gemini.RateLimit = gemini.DefaultConfig().RateLimit
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "beed"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}

	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be positive, got %d", c.Retrieval.TopK)
	}
	if c.Retrieval.PartialMinLen < 0 {
		return fmt.Errorf("retrieval.partial_min_len must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}

	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint required when telemetry is enabled")
	}

	return nil
}
