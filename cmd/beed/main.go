// Beed is the beekeeping question answering daemon.
//
// It serves a small HTTP API that answers beekeeping and plant phenology
// questions by retrieving matching entries from a JSONL knowledge base,
// assembling a grounding prompt, and calling the Gemini API. Without an
// API key the daemon still starts and answers from canned responses.
//
// Usage:
//
//	# Start with defaults
//	beed
//
//	# Configure via environment
//	SERVER_PORT=9090 GEMINI_API_KEY=... CORPUS_PATH=/data/corpus.jsonl beed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/apiarylabs/beed/internal/chat"
	"github.com/apiarylabs/beed/internal/config"
	"github.com/apiarylabs/beed/internal/corpus"
	"github.com/apiarylabs/beed/internal/gemini"
	httpapi "github.com/apiarylabs/beed/internal/http"
	"github.com/apiarylabs/beed/internal/logging"
	"github.com/apiarylabs/beed/internal/prompt"
	"github.com/apiarylabs/beed/internal/retrieval"
	"github.com/apiarylabs/beed/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  beed           Start the beed daemon\n")
			fmt.Fprintf(os.Stderr, "  beed version   Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

func printVersion() {
	fmt.Printf("beed by Apiary Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the daemon and blocks until context cancellation.
//
// Initialization order:
//  1. Load and validate configuration
//  2. Build logger and telemetry
//  3. Load the knowledge base (fallback corpus on failure)
//  4. Build retriever, Gemini client and chat service
//  5. Start corpus watcher when enabled
//  6. Start HTTP server; shut down gracefully on cancellation
func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logging.Sync(logger)
	}()

	logger.Info("Starting beed",
		zap.String("version", version),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	tel, err := telemetry.New(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: version,
		Endpoint:       cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	metrics := httpapi.NewMetrics()

	// Load the knowledge base. A missing corpus file is not fatal; the
	// loader falls back to a built-in minimal corpus.
	loader := corpus.NewLoader(logger)
	result, err := loader.Load(cfg.Corpus.Path)
	if err != nil && !errors.Is(err, corpus.ErrCorpusNotFound) {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}
	if result.Fallback {
		logger.Warn("corpus file not found, using fallback knowledge base",
			zap.String("configured_path", cfg.Corpus.Path))
	}

	synonyms := retrieval.DefaultSynonyms()
	store := retrieval.NewStore(retrieval.NewRetriever(result.KnowledgeBase, synonyms, cfg.Retrieval))
	metrics.SetKnowledgeEntries(store.Len())

	// Build the Gemini client. A missing credential degrades to canned
	// responses instead of failing startup.
	var generator gemini.Generator
	client, err := gemini.NewClient(ctx, cfg.Gemini, logger)
	switch {
	case err == nil:
		generator = client
		logger.Info("gemini client initialized", zap.String("model", client.Model()))
	case errors.Is(err, gemini.ErrMissingCredential):
		logger.Warn("no Gemini API key found, running in degraded mode")
	default:
		return fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	svc := chat.NewService(store, prompt.NewBuilder(), generator,
		chat.WithLogger(logger),
		chat.WithGenerateTimeout(cfg.Gemini.Timeout))

	status := func() httpapi.Status {
		key, keyErr := gemini.ResolveCredential(cfg.Gemini)
		st := httpapi.Status{
			GeminiLoaded:        generator != nil,
			KnowledgeBaseLoaded: store.Len() > 0,
			KnowledgeEntries:    store.Len(),
			EnvPresent:          keyErr == nil,
		}
		if keyErr == nil {
			st.EnvMasked = gemini.MaskCredential(key)
		}
		return st
	}

	srv, err := httpapi.NewServer(svc, status, metrics, logger, httpapi.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		RateLimit:    cfg.Server.RateLimit,
		RateBurst:    cfg.Server.RateBurst,
		AllowOrigins: cfg.Server.AllowOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create http server: %w", err)
	}

	// Hot reload: swap in a fresh retriever when the corpus file changes.
	if cfg.Corpus.Watch && !result.Fallback {
		watcher, err := corpus.NewWatcher(loader, result.Source, func(kb *corpus.KnowledgeBase) {
			store.Swap(retrieval.NewRetriever(kb, synonyms, cfg.Retrieval))
			metrics.SetKnowledgeEntries(kb.Len())
			logger.Info("knowledge base reloaded", zap.Int("entries", kb.Len()))
		}, logger)
		if err != nil {
			logger.Warn("failed to start corpus watcher", zap.Error(err))
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Warn("corpus watcher stopped", zap.Error(err))
				}
			}()
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
