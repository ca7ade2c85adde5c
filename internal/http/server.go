// Package http provides the HTTP API for beed.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/apiarylabs/beed/internal/chat"
)

// ChatService answers questions.
type ChatService interface {
	Answer(ctx context.Context, question string) (string, error)
	Degraded() bool
}

// Status is a point-in-time snapshot of daemon readiness.
type Status struct {
	GeminiLoaded        bool
	KnowledgeBaseLoaded bool
	KnowledgeEntries    int
	EnvPresent          bool
	EnvMasked           string
}

// StatusFunc reports current daemon status for the health endpoints.
type StatusFunc func() Status

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// RateLimit is requests per second per client IP. Zero disables
	// rate limiting.
	RateLimit float64
	RateBurst int

	// AllowOrigins configures CORS. Empty allows all origins.
	AllowOrigins []string
}

// Server provides the HTTP endpoints.
type Server struct {
	echo    *echo.Echo
	svc     ChatService
	status  StatusFunc
	metrics *Metrics
	logger  *zap.Logger
	config  Config
}

// NewServer creates an HTTP server. metrics may be nil to skip the
// Prometheus endpoint.
func NewServer(svc ChatService, status StatusFunc, metrics *Metrics, logger *zap.Logger, cfg Config) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("chat service cannot be nil")
	}
	if status == nil {
		return nil, fmt.Errorf("status func cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst == 0 {
			burst = int(cfg.RateLimit) + 1
		}
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:  rate.Limit(cfg.RateLimit),
				Burst: burst,
			}),
		}))
	}

	// OTel request metrics; the global meter provider is a no-op unless
	// telemetry is enabled.
	e.Use(NewHTTPMetrics(logger).Middleware())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:    e,
		svc:     svc,
		status:  status,
		metrics: metrics,
		logger:  logger,
		config:  cfg,
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.POST("/api/chat", s.handleChat)
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/debug-env", s.handleDebugEnv)

	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}
}

// ChatRequest is the request body for POST /api/chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the response body for POST /api/chat.
type ChatResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Status   string `json:"status"`
}

// ErrorResponse is the body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the response body for GET /api/health.
type HealthResponse struct {
	GeminiLoaded        bool   `json:"gemini_loaded"`
	KnowledgeBaseLoaded bool   `json:"knowledge_base_loaded"`
	KnowledgeEntries    int    `json:"knowledge_entries"`
	EnvPresent          bool   `json:"env_present"`
	Status              string `json:"status"`
}

// DebugEnvResponse is the response body for GET /api/debug-env. The key is
// never exposed, only a first4***last4 mask.
type DebugEnvResponse struct {
	EnvPresent       bool   `json:"env_present"`
	EnvMasked        string `json:"env_masked,omitempty"`
	ModelInitialized bool   `json:"model_initialized"`
}

func (s *Server) handleChat(c echo.Context) error {
	start := time.Now()

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid chat request", zap.Error(err))
		s.metrics.ObserveChat("invalid", time.Since(start))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No question provided"})
	}

	answer, err := s.svc.Answer(c.Request().Context(), req.Question)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyQuestion) {
			s.metrics.ObserveChat("invalid", time.Since(start))
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No question provided"})
		}
		s.logger.Error("chat request failed", zap.Error(err))
		s.metrics.ObserveChat("error", time.Since(start))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}

	s.metrics.ObserveChat("success", time.Since(start))
	return c.JSON(http.StatusOK, ChatResponse{
		Question: req.Question,
		Answer:   answer,
		Status:   "success",
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	st := s.status()
	return c.JSON(http.StatusOK, HealthResponse{
		GeminiLoaded:        st.GeminiLoaded,
		KnowledgeBaseLoaded: st.KnowledgeBaseLoaded,
		KnowledgeEntries:    st.KnowledgeEntries,
		EnvPresent:          st.EnvPresent,
		Status:              "healthy",
	})
}

func (s *Server) handleDebugEnv(c echo.Context) error {
	st := s.status()
	return c.JSON(http.StatusOK, DebugEnvResponse{
		EnvPresent:       st.EnvPresent,
		EnvMasked:        st.EnvMasked,
		ModelInitialized: st.GeminiLoaded,
	})
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
