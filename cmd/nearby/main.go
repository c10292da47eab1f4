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

	"github.com/artloci/nearby/internal/config"
	dbRedis "github.com/artloci/nearby/internal/db/redis"
	"github.com/artloci/nearby/internal/domain/curate"
	"github.com/artloci/nearby/internal/domain/query"
	logpkg "github.com/artloci/nearby/internal/logger"
	"github.com/artloci/nearby/internal/metrics"
	"github.com/artloci/nearby/internal/render"
	productsrepo "github.com/artloci/nearby/internal/repository/products"
	"github.com/artloci/nearby/internal/repository/resultcache"
	chiTransport "github.com/artloci/nearby/internal/transport/chi"
	healthuc "github.com/artloci/nearby/internal/usecase/health"
	nearbyuc "github.com/artloci/nearby/internal/usecase/nearby"
	"github.com/artloci/nearby/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting nearby API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("index", cfg.Search.IndexName),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register search metrics explicitly (no init())
	metrics.RegisterCurationMetrics()

	repo := productsrepo.New(store, cfg.Search.IndexName, cfg.Search.KeyPrefix).
		WithPageSize(cfg.Search.PageSize)

	cache := resultcache.New(store, time.Duration(cfg.Cache.TTLHours)*time.Hour)

	opts := curate.Options{
		Policy:              curate.Policy(cfg.Curate.GroupingPolicy),
		FeaturedFirst:       cfg.Curate.FeaturedFirst,
		MaxPerGroup:         cfg.Curate.MaxPerGroup,
		TargetCount:         cfg.Curate.TargetCount,
		CollapseTitles:      cfg.Curate.CollapseTitles,
		SimilarityThreshold: cfg.Curate.SimilarityThreshold,
		MinTokenLen:         cfg.Curate.MinTokenLen,
	}

	nearbySvc := nearbyuc.New(repo, cache, opts, cfg.Search.OverfetchFactor)
	healthSvc := healthuc.New(store, store, cfg.Search.IndexName)

	renderer, err := render.New()
	if err != nil {
		logger.Fatal("Failed to build renderer", zap.Error(err))
	}

	limits := query.Limits{
		DefaultRadiusM:  cfg.Search.DefaultRadiusM,
		MaxRadiusM:      cfg.Search.MaxRadiusM,
		DefaultCount:    cfg.Curate.TargetCount,
		DefaultPerGroup: cfg.Curate.MaxPerGroup,
	}
	server := chiTransport.NewServer(nearbySvc, healthSvc, renderer, logger).
		WithQueryLimits(limits)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

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
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
