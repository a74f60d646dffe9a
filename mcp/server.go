// Package mcp wires the reddit SDK into an MCP tool server.
package mcp

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rrajasek95/reddit-data-mcp/mcp/internal/handlers"
	"github.com/rrajasek95/reddit-data-mcp/reddit"
)

// Configuration holds all settings for the MCP server.
type config struct {
	ServerName    string `envconfig:"SERVER_NAME" default:"reddit-data-mcp"`
	ServerVersion string `envconfig:"SERVER_VERSION" default:"0.2.0"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	ListenAddr      string        `envconfig:"LISTEN_ADDR" default:":11547"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	BackendTimeout  time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`
	PullPushBaseURL string        `envconfig:"PULLPUSH_BASE_URL"`
	RedditBaseURL   string        `envconfig:"REDDIT_BASE_URL"`
	UserAgent       string        `envconfig:"USER_AGENT"`
	RateBurst       int           `envconfig:"RATE_BURST" default:"3"`
	RatePerMinute   int           `envconfig:"RATE_PER_MINUTE" default:"3"`
	ResultCacheTTL  time.Duration `envconfig:"RESULT_CACHE_TTL" default:"15m"`
	ResultCacheSize int           `envconfig:"RESULT_CACHE_SIZE" default:"32"`
	OverfetchFactor int           `envconfig:"OVERFETCH_FACTOR" default:"3"`
	CommentWorkers  int           `envconfig:"COMMENT_WORKERS" default:"8"`
}

// loadConfig reads REDDIT_MCP_* environment variables, with command line
// flags overriding the log level.
func loadConfig() (*config, error) {
	var cfg config
	if err := envconfig.Process("reddit_mcp", &cfg); err != nil {
		return nil, err
	}

	var rawLogLevel string
	flag.StringVar(&rawLogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	flag.Parse()
	if rawLogLevel != "" {
		cfg.LogLevel = rawLogLevel
	}
	return &cfg, nil
}

func (c *config) initLogger() {
	zerolog.SetGlobalLevel(parseLogLevel(c.LogLevel))
	log.Logger = log.With().Caller().Logger()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

// newSDKClient builds the single process-wide reddit client. One client
// means one shared rate-limiter bucket, which is what the live backend's
// per-origin quota requires.
func newSDKClient(cfg *config) (*reddit.Client, error) {
	opts := []reddit.Option{
		reddit.WithHTTPTimeout(cfg.BackendTimeout),
		reddit.WithArchivalBaseURL(cfg.PullPushBaseURL),
		reddit.WithLiveBaseURL(cfg.RedditBaseURL),
		reddit.WithRateLimiter(cfg.RateBurst, cfg.RatePerMinute),
		reddit.WithResultCache(cfg.ResultCacheTTL, cfg.ResultCacheSize),
		reddit.WithOverfetchMultiplier(cfg.OverfetchFactor),
		reddit.WithCommentWorkers(cfg.CommentWorkers),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, reddit.WithUserAgent(cfg.UserAgent))
	}
	return reddit.New(opts...)
}

// RunMCPServer starts the MCP server with the given configuration.
func RunMCPServer() error {
	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	cfg.initLogger()

	sdk, err := newSDKClient(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create reddit client")
		return err
	}
	log.Info().Msg("Reddit client created")

	s := server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewSearchHandler(sdk), "search")
	registerHandler(s, handlers.NewResultHandler(sdk), "result")

	if shouldUseStdio() {
		// Stdio transport (for launched agent processes)
		log.Info().Msg("Starting reddit-data MCP server (stdio transport)")
		if err := server.ServeStdio(s); err != nil {
			log.Fatal().Err(err).Msg("Stdio server error")
		}
		return nil
	}

	// HTTP transport (for manual/Docker startup)
	log.Info().Str("addr", cfg.ListenAddr).Msg("Starting reddit-data MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	shutdownComplete := make(chan struct{})

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // no deadline, required for SSE streaming
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		defer close(shutdownComplete)

		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("HTTP server error")
	}

	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment.
func shouldUseStdio() bool {
	if os.Getenv("MCP_STDIO") == "true" {
		return true
	}
	if os.Getenv("MCP_HTTP") == "true" {
		return false
	}
	// Auto-detect: use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}
	return false
}
