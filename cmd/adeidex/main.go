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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/config"
	dbRedis "github.com/oic-analytics/adeidex/internal/db/redis"
	logpkg "github.com/oic-analytics/adeidex/internal/logger"
	"github.com/oic-analytics/adeidex/internal/metrics"
	"github.com/oic-analytics/adeidex/internal/repository/answercache"
	datasetrepo "github.com/oic-analytics/adeidex/internal/repository/dataset"
	feedbackrepo "github.com/oic-analytics/adeidex/internal/repository/feedback"
	chiTransport "github.com/oic-analytics/adeidex/internal/transport/chi"
	comparisonuc "github.com/oic-analytics/adeidex/internal/usecase/comparison"
	geouc "github.com/oic-analytics/adeidex/internal/usecase/geo"
	healthuc "github.com/oic-analytics/adeidex/internal/usecase/health"
	overviewuc "github.com/oic-analytics/adeidex/internal/usecase/overview"
	raguc "github.com/oic-analytics/adeidex/internal/usecase/rag"
	"github.com/oic-analytics/adeidex/internal/version"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting adeidex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx := context.Background()

	dataset, err := datasetrepo.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer dataset.Close()

	if err := dataset.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	feedback := feedbackrepo.New(dataset.Pool())
	if err := feedback.EnsureSchema(ctx); err != nil {
		logger.Fatal("Failed to ensure feedback schema", zap.Error(err))
	}

	// Answer cache is optional: no cache addresses means every answer is
	// computed fresh.
	var cache raguc.AnswerCache
	var cacheStore *dbRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cacheStore, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer cacheStore.Close()

		if err := cacheStore.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		cache = answercache.New(cacheStore, cfg.Cache.KeyPrefix, time.Duration(cfg.Cache.TTLSec)*time.Second, logger)
		logger.Info("Connected to answer cache", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	// Register RAG metrics explicitly (no init())
	metrics.RegisterRAGMetrics()

	ragSvc := raguc.New(dataset, feedback, cache, logger).
		WithDepth(cfg.RAG.SearchDepth, cfg.RAG.MinDepth, cfg.RAG.MaxDepth)
	if err := ragSvc.Reload(ctx); err != nil {
		logger.Fatal("Failed to build index", zap.Error(err))
	}
	logger.Info("Index ready", zap.Int("records", ragSvc.DocumentCount()))

	comparisonSvc := comparisonuc.New(dataset, cfg.Comparison.MaxCountries)
	geoSvc := geouc.New(dataset)
	overviewSvc := overviewuc.New(dataset)

	// Pass nil interface (not typed nil pointer!) if the cache is not configured.
	var cachePinger healthuc.CachePinger
	if cacheStore != nil {
		cachePinger = cacheStore
	}
	healthSvc := healthuc.New(dataset, cachePinger)

	server := chiTransport.NewServer(ragSvc, comparisonSvc, geoSvc, overviewSvc, healthSvc, dataset, logger)

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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
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
			ctx := logpkg.WithContext(r.Context(), reqLogger)

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
