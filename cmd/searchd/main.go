package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/sign-company/searchd/internal/cache"
	"github.com/sign-company/searchd/internal/classifier"
	"github.com/sign-company/searchd/internal/config"
	"github.com/sign-company/searchd/internal/history"
	logpkg "github.com/sign-company/searchd/internal/logger"
	"github.com/sign-company/searchd/internal/metrics"
	"github.com/sign-company/searchd/internal/search"
	"github.com/sign-company/searchd/internal/searcher"
	"github.com/sign-company/searchd/internal/store"
	chiTransport "github.com/sign-company/searchd/internal/transport/chi"
	"github.com/sign-company/searchd/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchd API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
	)

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer db.Close()

	resultCache := cache.New(cache.Config{
		Addrs:          cfg.Cache.Addrs,
		Password:       cfg.Cache.Password,
		SweepInterval:  time.Duration(cfg.Cache.SweepSec) * time.Second,
		ConnectTimeout: time.Duration(cfg.Cache.ConnectTimeout) * time.Second,
	}, logger)
	defer resultCache.Close()

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Intent classifier: external model when a key is configured,
	// deterministic fallback otherwise.
	var intents search.Classifier = classifier.Heuristic{}
	if cfg.Classifier.APIKey != "" {
		intents = classifier.NewOpenAI(classifier.Config{
			APIKey:  cfg.Classifier.APIKey,
			BaseURL: cfg.Classifier.BaseURL,
			Model:   cfg.Classifier.Model,
			Timeout: time.Duration(cfg.Classifier.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		logger.Info("Intent classifier enabled",
			zap.String("model", cfg.Classifier.Model),
			zap.String("base_url", cfg.Classifier.BaseURL),
		)
	} else {
		logger.Info("No classifier API key configured, using deterministic fallback")
	}

	registry := searcher.NewRegistry(
		searcher.NewFiles(db, cfg.Search.PerCategoryLimit),
		searcher.NewOwners(db, cfg.Search.PerCategoryLimit),
		searcher.NewEvents(db, cfg.Search.PerCategoryLimit),
		searcher.NewForum(db, cfg.Search.PerCategoryLimit),
		searcher.NewStories(db, cfg.Search.PerCategoryLimit),
	)

	ledger := history.New(db, cfg.Search.HistoryCap)

	searchSvc := search.NewService(search.Config{
		Cache:       resultCache,
		Classifier:  intents,
		Registry:    registry,
		History:     ledger,
		Logger:      logger,
		TTL:         time.Duration(cfg.Cache.TTLSec) * time.Second,
		MergedLimit: cfg.Search.MergedLimit,
	})

	server := chiTransport.NewServer(searchSvc, db, logger, env != "prod")

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
